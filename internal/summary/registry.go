package summary

// Explanation is the static human-readable text for one check id.
// Good/Bad describe the healthy and firing states; Info marks checks
// that are displayed but never scored.
type Explanation struct {
	Label       string
	Description string
	Good        string
	Bad         string
	Info        string
}

// registry maps check ids to their explanations. A check id with no
// entry here is silently skipped by the classifier, never an error.
var registry = map[string]Explanation{
	"webdriver-status": {
		Label:       "WebDriver flag",
		Description: "navigator.webdriver or a known automation global is set",
		Good:        "No WebDriver control advertised",
		Bad:         "Session is driven by a WebDriver client",
	},
	"cdp-detected": {
		Label:       "DevTools protocol artifacts",
		Description: "ChromeDriver cdc_ keys, driver globals or a patched webdriver getter",
		Good:        "No DevTools protocol leftovers",
		Bad:         "DevTools protocol artifacts present on the global object",
	},
	"cdp-keys": {
		Label:       "ChromeDriver cdc_ keys",
		Description: "count of cdc_-prefixed global keys",
		Good:        "No cdc_ keys",
		Bad:         "ChromeDriver marker keys found",
	},
	"adv-stacktrace": {
		Label:       "Stack trace leak",
		Description: "Error.stack getter read by an attached DevTools client",
		Good:        "Stack getter never read",
		Bad:         "A DevTools client eagerly read Error.stack",
	},
	"adv-console": {
		Label:       "Console serialization leak",
		Description: "console.debug argument re-read by a protocol client",
		Good:        "Console arguments read once",
		Bad:         "Console arguments serialized twice, protocol client attached",
	},
	"ua-suspicious": {
		Label:       "User-Agent string",
		Description: "UA matched a known automation framework pattern",
		Good:        "UA looks like a regular browser",
		Bad:         "UA names an automation framework",
	},
	"clienthints-suspicious": {
		Label:       "Client Hints brands",
		Description: "a userAgentData brand contains \"headless\"",
		Good:        "Brand list looks normal",
		Bad:         "Headless brand advertised via Client Hints",
	},
	"webgl-software": {
		Label:       "WebGL renderer",
		Description: "renderer string names a software rasterizer",
		Good:        "Hardware-accelerated renderer",
		Bad:         "Software renderer (SwiftShader/llvmpipe class)",
	},
	"webgl-rendering-test": {
		Label:       "WebGL rendering consistency",
		Description: "noise profile of a fixed render vs the claimed GPU",
		Good:        "Rendering behavior matches the claimed hardware",
		Bad:         "Claimed discrete GPU with software-class rendering output",
	},
	"plugins-count": {
		Label:       "Plugin count",
		Description: "navigator.plugins length",
		Good:        "Plugins present",
		Bad:         "No plugins registered",
	},
	"languages-count": {
		Label:       "Language count",
		Description: "navigator.languages length",
		Info:        "Shown for context; empty list is scored, not classified",
	},
	"playwright-binding": {
		Label:       "Playwright injection globals",
		Description: "__playwright__binding__ / __pwInitScripts present",
		Good:        "No Playwright injection globals",
		Bad:         "Playwright binding or init-script globals installed",
	},
	"playwright-exposed": {
		Label:       "Exposed automation functions",
		Description: "global functions matching the exposeFunction template",
		Good:        "No exposed binding functions",
		Bad:         "Playwright-style exposed functions on the global object",
	},
	"outer-dims": {
		Label:       "Outer window dimensions",
		Description: "window.outerWidth/outerHeight reported",
		Good:        "Outer dimensions present",
		Bad:         "Zero outer dimensions, no real window chrome",
	},
	"inner-outer-match": {
		Label:       "Inner/outer geometry",
		Description: "inner viewport exactly equals outer window",
		Good:        "Window chrome occupies space as expected",
		Bad:         "Viewport equals window, typical of synthetic windows",
	},
	"adv-permissions": {
		Label:       "Permissions API",
		Description: "Notification permission readable",
		Good:        "Permissions API available",
		Bad:         "Permissions API missing",
	},
	"permissions-denied": {
		Label:       "Default-denied notifications",
		Description: "Notification.permission is denied without a prompt",
		Good:        "Permission not pre-denied",
		Bad:         "Notifications denied by default",
	},
	"chrome-runtime": {
		Label:       "chrome.runtime",
		Description: "window.chrome present with its runtime member",
		Good:        "chrome.runtime present",
		Bad:         "window.chrome without runtime, headless Chrome shape",
	},
	"media-devices": {
		Label:       "MediaDevices",
		Description: "navigator.mediaDevices availability",
		Good:        "MediaDevices available",
		Bad:         "MediaDevices missing",
	},
	"media-webrtc": {
		Label:       "WebRTC",
		Description: "RTCPeerConnection availability",
		Good:        "WebRTC available",
		Bad:         "WebRTC missing",
	},
	"webrtc-suspicious": {
		Label:       "WebRTC instantiation",
		Description: "RTCPeerConnection present but its constructor throws",
		Good:        "Peer connections construct normally",
		Bad:         "WebRTC artificially disabled",
	},
	"canvas-suspicious": {
		Label:       "Canvas fingerprint",
		Description: "serialized canvas too short or read blocked",
		Good:        "Canvas rendered and serialized normally",
		Bad:         "Canvas output implausible or intercepted",
	},
	"emoji-suspicious": {
		Label:       "Emoji rendering",
		Description: "emoji glyphs rendered to a uniform buffer",
		Good:        "Emoji rendered with real glyphs",
		Bad:         "Emoji failed to render, fontless environment",
	},
	"audio-suspicious": {
		Label:       "AudioContext sample rate",
		Description: "sample rate other than 44100/48000",
		Good:        "Standard audio sample rate",
		Bad:         "Non-standard sample rate",
	},
	"fonts-suspicious": {
		Label:       "Installed fonts",
		Description: "fewer than three common fonts detected by width probing",
		Good:        "Common font set present",
		Bad:         "Stripped-down font set",
	},
	"worker-available": {
		Label:       "Worker round-trip",
		Description: "a Worker thread echoed its navigator identity",
		Info:        "Absence of worker corroboration is not itself evidence",
	},
	"worker-mismatch": {
		Label:       "Worker navigator consistency",
		Description: "worker-thread UA/platform differs from the main thread",
		Good:        "Worker and main thread agree",
		Bad:         "Worker reports a different identity than the page",
	},
	"battery-available": {
		Label:       "Battery API",
		Description: "navigator.getBattery availability",
		Info:        "Presence or absence is informational only",
	},
}

// Explain returns the registry entry for a check id.
func Explain(id string) (Explanation, bool) {
	e, ok := registry[id]
	return e, ok
}
