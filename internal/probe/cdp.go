package probe

import "strings"

// CDPResult reports Chrome-DevTools-Protocol artifacts on the global
// object. Signals are named after the check that produced them, in
// check order.
type CDPResult struct {
	Detected     bool     `json:"detected"`
	Signals      []string `json:"signals"`
	CDCKeysFound int      `json:"cdc_keys_found"`
}

// driverArtifacts are property names injected by specific driver
// implementations, mapped to the signal name they raise.
var driverArtifacts = []struct {
	name   string
	signal string
}{
	{"$cdc_asdjflasutopfhvcZLmcfl_", "chromedriver_artifact"},
	{"$chrome_asyncScriptInfo", "chromedriver_artifact"},
	{"__$webdriverAsyncExecutor", "selenium_artifact"},
	{"__lastWatirAlert", "watir_artifact"},
	{"__lastWatirConfirm", "watir_artifact"},
	{"__lastWatirPrompt", "watir_artifact"},
	{"__webdriverFunc", "firefox_driver"},
	{"__fxdriver_evaluate", "firefox_driver"},
	{"__puppeteer_evaluation_script__", "puppeteer_eval"},
	{"__playwright_evaluation_script__", "playwright_eval"},
}

const nativeCodeMarker = "[native code]"

// CDP scans the global object for DevTools-protocol leftovers:
// cdc_-prefixed keys from ChromeDriver, known driver properties, and a
// patched navigator.webdriver getter whose source lost the native-code
// marker.
func CDP(env Env) CDPResult {
	res := CDPResult{Signals: []string{}}

	for _, g := range env.Globals() {
		if strings.HasPrefix(g.Name, "cdc_") {
			res.CDCKeysFound++
		}
	}
	if res.CDCKeysFound > 0 {
		res.Signals = append(res.Signals, "chromedriver_cdc")
	}

	present := globalNames(env)
	seen := make(map[string]bool)
	for _, a := range driverArtifacts {
		if present[a.name] && !seen[a.signal] {
			res.Signals = append(res.Signals, a.signal)
			seen[a.signal] = true
		}
	}

	if getter, ok := env.WebdriverGetter(); ok && getter.Source != "" {
		if !strings.Contains(getter.Source, nativeCodeMarker) {
			res.Signals = append(res.Signals, "webdriver_getter_patched")
		}
	}

	res.Detected = len(res.Signals) > 0
	return res
}

// StackTraceResult reports the Error.stack getter trap. Runtime.enable
// reads the stack of every thrown Error object; a read count above
// zero means a DevTools client is attached.
type StackTraceResult struct {
	Available bool `json:"available"`
	Detected  bool `json:"detected"`
	Reads     int  `json:"reads"`
}

func StackTrace(env Env) StackTraceResult {
	traps := env.Traps()
	if !traps.Instrumented {
		return StackTraceResult{}
	}
	return StackTraceResult{
		Available: true,
		Detected:  traps.StackReads > 0,
		Reads:     traps.StackReads,
	}
}

// ConsoleLeakResult reports the console.debug argument trap. A CDP
// client serializing console arguments reads the instrumented property
// a second time; environments whose console never invokes getters
// simply report not-detected.
type ConsoleLeakResult struct {
	Available bool `json:"available"`
	Detected  bool `json:"detected"`
	Reads     int  `json:"reads"`
}

func ConsoleLeak(env Env) ConsoleLeakResult {
	traps := env.Traps()
	if !traps.Instrumented {
		return ConsoleLeakResult{}
	}
	return ConsoleLeakResult{
		Available: true,
		Detected:  traps.ConsoleReads > 1,
		Reads:     traps.ConsoleReads,
	}
}
