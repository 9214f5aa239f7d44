package detect

import (
	"net/http"
	"strconv"
)

// Published header names. External harnesses poll these instead of
// re-invoking detection; the collector script mirrors the same triple
// onto the document root as data-headless-score,
// data-headless-detected and data-detection-version. Stable contract.
const (
	HeaderScore    = "X-Headless-Score"
	HeaderDetected = "X-Headless-Detected"
	HeaderVersion  = "X-Detection-Version"
)

// DetectedThreshold gates the boolean verdict published alongside the
// raw score.
const DetectedThreshold = 0.5

// Publish mirrors the verdict triple onto the response headers:
// score formatted to three decimals, the thresholded boolean as the
// literal "true"/"false", and the detection version.
func Publish(h http.Header, r *Result) {
	h.Set(HeaderScore, strconv.FormatFloat(r.IsHeadless, 'f', 3, 64))
	h.Set(HeaderDetected, strconv.FormatBool(r.IsHeadless > DetectedThreshold))
	h.Set(HeaderVersion, r.DetectionVersion)
}
