// Package report wraps a detection result in the envelope the sinks
// consume, enriched with server-side corroboration signals derived
// from the HTTP request that delivered the snapshot. Server signals
// never feed the detection score; they ride along for downstream
// analysis.
package report

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/probekit/headlessd/internal/detect"
)

// Report is the sink-facing envelope. Optional fields are omitted when
// empty.
type Report struct {
	ReportID string         `json:"report_id"`
	TS       string         `json:"ts"` // ISO8601
	Kind     string         `json:"kind"`
	Result   *detect.Result `json:"result"`
	Server   ServerMeta     `json:"server"`
}

// ServerMeta carries everything the server observed about the request
// itself, independent of the snapshot payload.
type ServerMeta struct {
	IP                string         `json:"ip,omitempty"`
	HeaderFingerprint string         `json:"header_fingerprint,omitempty"`
	Headers           HeaderAnalysis `json:"headers"`
	Timing            TimingAnalysis `json:"timing"`
}

// New builds the envelope for one detection run. trustProxy controls
// whether forwarded-for headers are believed for client-IP extraction.
func New(r *http.Request, res *detect.Result, tracker TimingTracker, trustProxy bool) Report {
	ip := clientIP(r, trustProxy)
	return Report{
		ReportID: uuid.New().String(),
		TS:       time.Now().UTC().Format(time.RFC3339Nano),
		Kind:     "detection",
		Result:   res,
		Server: ServerMeta{
			IP:                ip,
			HeaderFingerprint: headerFingerprint(r.Header),
			Headers:           analyzeHeaders(r.Header),
			Timing:            analyzeTiming(ip, time.Now(), tracker),
		},
	}
}
