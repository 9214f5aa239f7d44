package probe

import "strings"

// AutomationResult is the flat read of automation-adjacent navigator
// state plus known automation globals.
type AutomationResult struct {
	Globals               []string `json:"globals"`
	PluginCount           int      `json:"plugin_count"`
	MimeTypeCount         int      `json:"mime_type_count"`
	LanguageCount         int      `json:"language_count"`
	CookieEnabled         bool     `json:"cookie_enabled"`
	DoNotTrack            string   `json:"do_not_track,omitempty"`
	HasChrome             bool     `json:"has_chrome"`
	HasChromeRuntimeID    bool     `json:"has_chrome_runtime_id"`
	PlaywrightBinding     bool     `json:"playwright_binding"`
	PlaywrightInitScripts bool     `json:"playwright_init_scripts"`
}

// automationFlagGlobals extends the webdriver list with controller and
// framework globals that do not by themselves imply WebDriver.
var automationFlagGlobals = []string{
	"domAutomation",
	"domAutomationController",
	"_WEBDRIVER_ELEM_CACHE",
	"ChromeDriverw",
	"driver-evaluate",
	"webdriver-evaluate",
	"selenium-evaluate",
	"webdriverCommand",
	"webdriver-evaluate-response",
	"__webdriverFunc",
	"__driver_evaluate",
	"__webdriver_evaluate",
	"__selenium_evaluate",
	"__fxdriver_evaluate",
	"_selenium",
	"_phantom",
	"callPhantom",
	"__nightmare",
	"__playwright__binding__",
	"__pwInitScripts",
}

// Automation reads the automation flag battery: global markers,
// plugin/language/mimeType counts, chrome object shape, Playwright
// injection globals.
func Automation(env Env) AutomationResult {
	nav := env.Navigator()
	chrome := env.Chrome()

	res := AutomationResult{
		Globals:            []string{},
		PluginCount:        nav.PluginCount,
		MimeTypeCount:      nav.MimeTypeCount,
		LanguageCount:      len(nav.Languages),
		CookieEnabled:      nav.CookieEnabled,
		DoNotTrack:         nav.DoNotTrack,
		HasChrome:          chrome.Present,
		HasChromeRuntimeID: chrome.RuntimeID != "",
	}

	present := globalNames(env)
	for _, name := range automationFlagGlobals {
		if present[name] {
			res.Globals = append(res.Globals, name)
		}
	}
	for _, g := range env.Globals() {
		if strings.HasPrefix(g.Name, "$cdc_") {
			res.Globals = append(res.Globals, g.Name)
		}
	}

	res.PlaywrightBinding = present["__playwright__binding__"]
	res.PlaywrightInitScripts = present["__pwInitScripts"]
	return res
}

// ExposedFunctionsResult reports globals that look like Playwright
// exposeFunction/exposeBinding installations. Names are capped at five
// so a hostile page cannot use the result to dump its own global
// surface.
type ExposedFunctionsResult struct {
	Detected bool     `json:"detected"`
	Count    int      `json:"count"`
	Names    []string `json:"names"`
}

const maxReportedNames = 5

// bindingSourceMarkers are substrings of the function source template
// Playwright injects for exposed bindings.
var bindingSourceMarkers = []string{
	"bindingName",
	"serializeAsCallArgument",
	"__installed",
}

// ExposedFunctions enumerates global function values, skipping the
// collector's own installed functions (tagged structurally at
// registration, not matched by name) and underscore-prefixed Headless
// shims, and flags Playwright binding signatures.
func ExposedFunctions(env Env) ExposedFunctionsResult {
	res := ExposedFunctionsResult{Names: []string{}}

	for _, g := range env.Globals() {
		if g.CollectorOwned {
			continue
		}
		if strings.HasPrefix(g.Name, "_") && strings.Contains(g.Name, "Headless") {
			continue
		}
		if g.Kind != "function" {
			continue
		}

		matched := g.Installed
		if !matched {
			for _, marker := range bindingSourceMarkers {
				if strings.Contains(g.Source, marker) {
					matched = true
					break
				}
			}
		}
		if !matched {
			continue
		}

		res.Count++
		if len(res.Names) < maxReportedNames {
			res.Names = append(res.Names, g.Name)
		}
	}

	res.Detected = res.Count > 0
	return res
}
