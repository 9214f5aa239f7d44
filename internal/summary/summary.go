// Package summary turns the raw detection result into a ranked,
// human-readable report: per-check good/bad/warning classification
// against the explanation registry, severity assignment, and the
// overall verdict derived from the aggregate score.
package summary

import "sort"

// Detection is one check that fired. Signals/Patterns/Renderer carry
// the raw evidence the probes already collected, attached here so the
// display layer never has to re-derive it.
type Detection struct {
	Category string   `json:"category"`
	Severity string   `json:"severity"`
	Message  string   `json:"message"`
	CheckID  string   `json:"check_id"`
	Value    any      `json:"value"`
	Signals  []string `json:"signals,omitempty"`
	Patterns []string `json:"patterns,omitempty"`
	Renderer string   `json:"renderer,omitempty"`
}

// Summary is the verdict block of a detection result.
type Summary struct {
	Score          float64     `json:"score"`
	Classification string      `json:"classification"`
	Detections     []Detection `json:"detections"`
	Warnings       []Detection `json:"warnings"`
	TotalIssues    int         `json:"total_issues"`
	RiskLevel      string      `json:"risk_level"`
	Recommendation string      `json:"recommendation"`
}

// Input is the projection the orchestrator hands over: the aggregate
// score, the flat check-id value map, and the raw evidence lists to
// attach onto matching detections.
type Input struct {
	Score      float64
	Items      map[string]any
	CDPSignals []string
	UAMatches  []string
	Renderer   string
}

// goodWhenTrue lists the checks whose healthy value is true; every
// other boolean check is expected to be false.
var goodWhenTrue = map[string]bool{
	"outer-dims":      true,
	"adv-permissions": true,
	"chrome-runtime":  true,
	"media-webrtc":    true,
	"media-devices":   true,
}

// criticalChecks fire with severity critical; other bad checks are
// high, warnings always medium.
var criticalChecks = map[string]bool{
	"cdp-detected":         true,
	"cdp-keys":             true,
	"webdriver-status":     true,
	"adv-stacktrace":       true,
	"worker-mismatch":      true,
	"emoji-suspicious":     true,
	"webgl-rendering-test": true,
}

const (
	severityCritical = "critical"
	severityHigh     = "high"
	severityMedium   = "medium"
)

// Generate classifies every projected check item and derives the
// overall verdict. Check ids without a registry entry are skipped
// silently; iteration is in sorted id order so output is stable.
func Generate(in Input) Summary {
	s := Summary{
		Score:      in.Score,
		Detections: []Detection{},
		Warnings:   []Detection{},
	}

	ids := make([]string, 0, len(in.Items))
	for id := range in.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		exp, ok := Explain(id)
		if !ok {
			continue
		}
		if exp.Good == "" && exp.Bad == "" {
			continue // informational entry, displayed but never classified
		}

		value := in.Items[id]
		switch v := value.(type) {
		case bool:
			if v != goodWhenTrue[id] {
				s.Detections = append(s.Detections, in.detection(id, exp, value))
			}
		case string:
			b, isYesNo := yesNoValue(v)
			if isYesNo && b != goodWhenTrue[id] {
				s.Detections = append(s.Detections, in.detection(id, exp, value))
			}
		case int:
			switch {
			case id == "cdp-keys" && v > 0:
				s.Detections = append(s.Detections, in.detection(id, exp, value))
			case id == "plugins-count" && v == 0:
				s.Warnings = append(s.Warnings, Detection{
					Category: exp.Label,
					Severity: severityMedium,
					Message:  exp.Bad,
					CheckID:  id,
					Value:    value,
				})
			}
		}
	}

	s.TotalIssues = len(s.Detections) + len(s.Warnings)
	s.Classification = Classify(in.Score)
	s.RiskLevel = riskLevel(in.Score)
	s.Recommendation = recommendation(in.Score)
	return s
}

func (in Input) detection(id string, exp Explanation, value any) Detection {
	d := Detection{
		Category: exp.Label,
		Severity: severityHigh,
		Message:  exp.Bad,
		CheckID:  id,
		Value:    value,
	}
	if criticalChecks[id] {
		d.Severity = severityCritical
	}
	switch id {
	case "cdp-detected":
		d.Signals = in.CDPSignals
	case "ua-suspicious":
		d.Patterns = in.UAMatches
	case "webgl-software", "webgl-rendering-test":
		d.Renderer = in.Renderer
	}
	return d
}

func yesNoValue(s string) (value, ok bool) {
	switch s {
	case "YES":
		return true, true
	case "NO":
		return false, true
	}
	return false, false
}

// Classify maps the aggregate score onto the published verdict bands.
func Classify(score float64) string {
	switch {
	case score > 0.7:
		return "Definitely Headless"
	case score > 0.5:
		return "Likely Headless"
	case score > 0.3:
		return "Suspicious"
	case score > 0.15:
		return "Minor Warnings"
	}
	return "Normal Browser"
}

func riskLevel(score float64) string {
	switch {
	case score > 0.5:
		return "high"
	case score > 0.3:
		return "medium"
	}
	return "low"
}

func recommendation(score float64) string {
	switch {
	case score > 0.5:
		return "Block or challenge this session; multiple strong automation signals fired."
	case score > 0.3:
		return "Apply additional verification; some automation signals fired."
	}
	return "No action needed; the session looks like a regular browser."
}
