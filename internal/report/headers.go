package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// HeaderAnalysis contains header-based corroboration signals.
type HeaderAnalysis struct {
	MissingExpected   []string `json:"missing_expected"`
	AutomationHeaders []string `json:"automation_headers"`
	HeaderOrder       []string `json:"header_order"`
	HeaderCount       int      `json:"header_count"`
}

var expectedHeaders = []string{"User-Agent", "Accept", "Accept-Language", "Accept-Encoding"}

var automationHeaderKeywords = []string{
	"headless", "selenium", "webdriver", "puppeteer", "playwright",
}

// headersOfInterest are inspected for automation signatures beyond the
// keyword scan of their values.
var headersOfInterest = []string{
	"User-Agent",
	"X-Requested-With",
	"Purpose",
	"X-Purpose",
	"Sec-Fetch-Mode",
	"Chrome-Proxy",
	"X-DevTools-Emulate-Network-Conditions-Client-Id",
}

func analyzeHeaders(headers http.Header) HeaderAnalysis {
	analysis := HeaderAnalysis{
		MissingExpected:   []string{},
		AutomationHeaders: []string{},
		HeaderOrder:       []string{},
		HeaderCount:       len(headers),
	}

	for key := range headers {
		analysis.HeaderOrder = append(analysis.HeaderOrder, strings.ToLower(key))
	}
	sort.Strings(analysis.HeaderOrder)

	for _, header := range headersOfInterest {
		value := headers.Get(header)
		if value == "" {
			continue
		}
		lower := strings.ToLower(value)
		for _, keyword := range automationHeaderKeywords {
			if strings.Contains(lower, keyword) {
				analysis.AutomationHeaders = append(analysis.AutomationHeaders,
					fmt.Sprintf("%s: %s", header, value))
				break
			}
		}
	}

	for _, expected := range expectedHeaders {
		if headers.Get(expected) == "" {
			analysis.MissingExpected = append(analysis.MissingExpected, expected)
		}
	}

	return analysis
}

// headerFingerprint derives a short stable fingerprint from header
// names and value prefixes.
func headerFingerprint(headers http.Header) string {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, strings.ToLower(key))
	}
	sort.Strings(keys)

	var parts []string
	for _, key := range keys {
		value := headers.Get(key)
		if len(value) > 20 {
			value = value[:20] + "..."
		}
		parts = append(parts, key+":"+value)
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:8])
}
