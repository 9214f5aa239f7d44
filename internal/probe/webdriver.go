package probe

// automationGlobals are global property names left behind by common
// automation frameworks (Selenium, PhantomJS, Nightmare, Playwright
// and friends). Presence of any of them is equivalent to the
// navigator.webdriver flag being set.
var automationGlobals = []string{
	"webdriver",
	"_selenium",
	"callSelenium",
	"_Selenium_IDE_Recorder",
	"__webdriver_script_fn",
	"__webdriver_script_func",
	"__webdriver_evaluate",
	"__driver_evaluate",
	"__selenium_evaluate",
	"__fxdriver_evaluate",
	"__driver_unwrapped",
	"__webdriver_unwrapped",
	"__selenium_unwrapped",
	"__fxdriver_unwrapped",
	"_phantom",
	"callPhantom",
	"__nightmare",
	"__playwright__binding__",
}

// WebDriver reports whether the session advertises WebDriver control:
// the navigator.webdriver flag, or any known automation global.
func WebDriver(env Env) bool {
	nav := env.Navigator()
	if nav.Webdriver != nil && *nav.Webdriver {
		return true
	}
	present := globalNames(env)
	for _, name := range automationGlobals {
		if present[name] {
			return true
		}
	}
	return false
}

func globalNames(env Env) map[string]bool {
	names := make(map[string]bool)
	for _, g := range env.Globals() {
		names[g.Name] = true
	}
	return names
}
