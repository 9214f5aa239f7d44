package probe

import (
	"regexp"
	"strings"
)

// UserAgentResult is the outcome of matching the UA string and Client
// Hints against known automation markers. Matches holds the source
// text of every regexp that fired, for the summary's pattern detail.
type UserAgentResult struct {
	UserAgent   string            `json:"user_agent"`
	Suspicious  bool              `json:"suspicious"`
	Matches     []string          `json:"matches"`
	ClientHints ClientHintsResult `json:"client_hints"`
}

type ClientHintsResult struct {
	Available  bool     `json:"available"`
	Suspicious bool     `json:"suspicious"`
	Brands     []string `json:"brands,omitempty"`
}

var uaPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)headlesschrome`),
	regexp.MustCompile(`(?i)phantomjs`),
	regexp.MustCompile(`(?i)slimerjs`),
	regexp.MustCompile(`(?i)selenium`),
	regexp.MustCompile(`(?i)webdriver`),
	regexp.MustCompile(`(?i)puppeteer`),
	regexp.MustCompile(`(?i)playwright`),
	regexp.MustCompile(`(?i)nightmare`),
	regexp.MustCompile(`(?i)electron`),
	regexp.MustCompile(`(?i)crawler|spider|scraper`),
	regexp.MustCompile(`(?i)\bbot\b`),
	regexp.MustCompile(`(?i)python-requests|curl/|wget/`),
}

// UserAgent tests the UA string against the automation patterns and,
// separately, the Client-Hints brand list for a "headless" brand.
func UserAgent(env Env) UserAgentResult {
	nav := env.Navigator()
	res := UserAgentResult{
		UserAgent: nav.UserAgent,
		Matches:   []string{},
	}

	for _, p := range uaPatterns {
		if p.MatchString(nav.UserAgent) {
			res.Matches = append(res.Matches, p.String())
		}
	}

	if nav.UAData != nil {
		res.ClientHints.Available = true
		res.ClientHints.Brands = nav.UAData.Brands
		for _, brand := range nav.UAData.Brands {
			if strings.Contains(strings.ToLower(brand), "headless") {
				res.ClientHints.Suspicious = true
			}
		}
	}

	res.Suspicious = len(res.Matches) > 0 || res.ClientHints.Suspicious
	return res
}
