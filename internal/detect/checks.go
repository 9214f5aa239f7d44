package detect

// checkItems projects the nested result tree into the flat check-id
// value map the summary classifier consumes. A handful of values use
// the literal strings "YES"/"NO" where the original display contract
// expects them.
func checkItems(r *Result) map[string]any {
	return map[string]any{
		"webdriver-status":       yesNo(r.Webdriver),
		"cdp-detected":           r.CDP.Detected,
		"cdp-keys":               r.CDP.CDCKeysFound,
		"adv-stacktrace":         r.StackTrace.Detected,
		"adv-console":            r.ConsoleLeak.Detected,
		"ua-suspicious":          r.UserAgentCheck.Suspicious,
		"clienthints-suspicious": r.UserAgentCheck.ClientHints.Suspicious,
		"webgl-software":         r.WebGL.SoftwareRenderer,
		"webgl-rendering-test":   r.WebGL.RenderingTest.Suspicious,
		"plugins-count":          r.Automation.PluginCount,
		"languages-count":        r.Automation.LanguageCount,
		"playwright-binding":     r.Automation.PlaywrightBinding || r.Automation.PlaywrightInitScripts,
		"playwright-exposed":     r.ExposedFunctions.Detected,
		"outer-dims":             r.Indicators.OuterWidth != 0 || r.Indicators.OuterHeight != 0,
		"inner-outer-match":      innerOuterMatch(r),
		"adv-permissions":        r.Permissions.Available,
		"permissions-denied":     r.Permissions.DeniedByDefault,
		"chrome-runtime":         !r.ChromeRuntime.Missing,
		"media-devices":          r.Media.MediaDevices.Available,
		"media-webrtc":           r.Media.WebRTC.Available,
		"webrtc-suspicious":      r.Media.WebRTC.Suspicious,
		"canvas-suspicious":      r.Canvas.Suspicious,
		"emoji-suspicious":       r.Emoji.Suspicious,
		"audio-suspicious":       r.Audio.Suspicious,
		"fonts-suspicious":       r.Fonts.Suspicious,
		"worker-available":       yesNo(r.Worker.Available),
		"worker-mismatch":        r.Worker.UserAgentMismatch || r.Worker.PlatformMismatch,
		"battery-available":      r.Media.Battery.Available,
	}
}

func innerOuterMatch(r *Result) bool {
	in := r.Indicators
	if in.OuterWidth == 0 && in.OuterHeight == 0 {
		return false // covered by the outer-dims check
	}
	return in.InnerWidth == in.OuterWidth && in.InnerHeight == in.OuterHeight
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
