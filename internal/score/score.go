// Package score combines probe outputs into a single confidence value
// in [0,1] via a fixed-weight additive model. Weights are additive and
// independent; the raw sum can exceed 1 and is clamped, which makes
// the score intentionally saturating rather than a normalized
// probability.
package score

import "github.com/probekit/headlessd/internal/probe"

// Per-signal weights. Changing any of these changes the published
// score contract; treat the table as frozen.
const (
	WeightWebdriver            = 0.20
	WeightCDP                  = 0.25
	WeightCDPCDCKeys           = 0.10
	WeightCDPPuppeteerEval     = 0.10
	WeightZeroPlugins          = 0.07
	WeightNoLanguages          = 0.07
	WeightPlaywrightBinding    = 0.30
	WeightPlaywrightExposed    = 0.25
	WeightNoOuterDims          = 0.10
	WeightInnerOuterMatch      = 0.03
	WeightUASuspicious         = 0.12
	WeightSoftwareRenderer     = 0.10
	WeightRenderingTest        = 0.12
	WeightPermissionsDenied    = 0.06
	WeightChromeRuntimeMissing = 0.05
	WeightStackTraceLeak       = 0.12
	WeightWebRTCSuspicious     = 0.08
	WeightMediaDevices         = 0.06
	WeightCanvasSuspicious     = 0.07
	WeightAudioSuspicious      = 0.05
	WeightFontsSuspicious      = 0.08
	WeightWorkerMismatch       = 0.15
)

// Input carries the already-computed probe results. The aggregator
// never invokes a probe itself; in particular the worker probe's
// result must be threaded through from the one run the orchestrator
// performed.
type Input struct {
	Webdriver        bool
	CDP              probe.CDPResult
	StackTrace       probe.StackTraceResult
	UserAgent        probe.UserAgentResult
	WebGL            probe.WebGLResult
	Automation       probe.AutomationResult
	ExposedFunctions probe.ExposedFunctionsResult
	Indicators       probe.IndicatorsResult
	ChromeRuntime    probe.ChromeRuntimeResult
	Permissions      probe.PermissionsResult
	Media            probe.MediaResult
	Canvas           probe.CanvasResult
	Audio            probe.AudioResult
	Fonts            probe.FontsResult
	Worker           probe.WorkerResult
}

// Compute returns the clamped weighted sum of every firing signal.
func Compute(in Input) float64 {
	s := 0.0

	if in.Webdriver {
		s += WeightWebdriver
	}

	if in.CDP.Detected {
		s += WeightCDP
		if hasSignal(in.CDP.Signals, "chromedriver_cdc") {
			s += WeightCDPCDCKeys
		}
		if hasSignal(in.CDP.Signals, "puppeteer_eval") {
			s += WeightCDPPuppeteerEval
		}
	}

	if in.Automation.PluginCount == 0 {
		s += WeightZeroPlugins
	}
	if in.Automation.LanguageCount == 0 {
		s += WeightNoLanguages
	}
	if in.Automation.PlaywrightBinding || in.Automation.PlaywrightInitScripts {
		s += WeightPlaywrightBinding
	}
	if in.ExposedFunctions.Detected {
		s += WeightPlaywrightExposed
	}

	if in.Indicators.OuterWidth == 0 && in.Indicators.OuterHeight == 0 {
		s += WeightNoOuterDims
	} else if in.Indicators.InnerWidth == in.Indicators.OuterWidth &&
		in.Indicators.InnerHeight == in.Indicators.OuterHeight {
		s += WeightInnerOuterMatch
	}

	if in.UserAgent.Suspicious {
		s += WeightUASuspicious
	}
	if in.WebGL.SoftwareRenderer {
		s += WeightSoftwareRenderer
	}
	if in.WebGL.RenderingTest.Suspicious {
		s += WeightRenderingTest
	}
	if in.Permissions.DeniedByDefault {
		s += WeightPermissionsDenied
	}
	if in.ChromeRuntime.Missing {
		s += WeightChromeRuntimeMissing
	}
	if in.StackTrace.Detected {
		s += WeightStackTraceLeak
	}
	if in.Media.WebRTC.Suspicious {
		s += WeightWebRTCSuspicious
	}
	if in.Media.MediaDevices.Suspicious {
		s += WeightMediaDevices
	}
	if in.Canvas.Suspicious {
		s += WeightCanvasSuspicious
	}
	if in.Audio.Suspicious {
		s += WeightAudioSuspicious
	}
	if in.Fonts.Suspicious {
		s += WeightFontsSuspicious
	}
	if in.Worker.Available && in.Worker.UserAgentMismatch {
		s += WeightWorkerMismatch
	}

	return clamp(s)
}

func hasSignal(signals []string, want string) bool {
	for _, s := range signals {
		if s == want {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
