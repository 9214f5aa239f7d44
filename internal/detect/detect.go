// Package detect orchestrates the probe battery: it runs every probe
// over an injected environment, aggregates the weighted score,
// generates the summary, and assembles the full detection result.
package detect

import (
	"context"
	"errors"
	"time"

	"github.com/probekit/headlessd/internal/probe"
	"github.com/probekit/headlessd/internal/score"
	"github.com/probekit/headlessd/internal/summary"
)

// Version identifies the detection logic revision. It is part of the
// published contract (X-Detection-Version / data-detection-version).
const Version = "2.1.0"

// ErrNilEnv is the only error Detect returns: a missing environment is
// a wiring defect in the caller, not an environment condition.
var ErrNilEnv = errors.New("detect: nil environment")

// Result is the complete outcome of one detection run. Every field is
// populated even in a maximally degraded environment; probes degrade
// to Available:false rather than failing the run.
type Result struct {
	Webdriver        bool                         `json:"webdriver"`
	CDP              probe.CDPResult              `json:"cdp"`
	StackTrace       probe.StackTraceResult       `json:"stack_trace"`
	ConsoleLeak      probe.ConsoleLeakResult      `json:"console_leak"`
	UserAgentCheck   probe.UserAgentResult        `json:"user_agent_check"`
	WebGL            probe.WebGLResult            `json:"webgl"`
	Automation       probe.AutomationResult       `json:"automation"`
	ExposedFunctions probe.ExposedFunctionsResult `json:"exposed_functions"`
	Indicators       probe.IndicatorsResult       `json:"indicators"`
	ChromeRuntime    probe.ChromeRuntimeResult    `json:"chrome_runtime"`
	Permissions      probe.PermissionsResult      `json:"permissions"`
	Media            probe.MediaResult            `json:"media"`
	Canvas           probe.CanvasResult           `json:"canvas"`
	Emoji            probe.EmojiResult            `json:"emoji"`
	Audio            probe.AudioResult            `json:"audio"`
	Fonts            probe.FontsResult            `json:"fonts"`
	Worker           probe.WorkerResult           `json:"worker"`

	IsHeadless       float64         `json:"is_headless"`
	Summary          summary.Summary `json:"summary"`
	Timestamp        string          `json:"timestamp"`
	UserAgent        string          `json:"user_agent"`
	DetectionVersion string          `json:"detection_version"`
}

// Detect runs the battery. The worker probe is the only asynchronous
// one and runs first, awaited; the synchronous probes follow in fixed
// order but do not depend on each other. The aggregate score and the
// summary are derived from the results computed here; no probe is
// ever invoked twice in one run.
func Detect(ctx context.Context, env probe.Env) (*Result, error) {
	if env == nil {
		return nil, ErrNilEnv
	}

	res := &Result{
		Worker:           probe.Worker(ctx, env),
		Webdriver:        probe.WebDriver(env),
		CDP:              probe.CDP(env),
		StackTrace:       probe.StackTrace(env),
		ConsoleLeak:      probe.ConsoleLeak(env),
		UserAgentCheck:   probe.UserAgent(env),
		WebGL:            probe.WebGL(env),
		Automation:       probe.Automation(env),
		ExposedFunctions: probe.ExposedFunctions(env),
		Indicators:       probe.Indicators(env),
		ChromeRuntime:    probe.ChromeRuntime(env),
		Permissions:      probe.Permissions(env),
		Media:            probe.Media(env),
		Canvas:           probe.Canvas(env),
		Emoji:            probe.Emoji(env),
		Audio:            probe.Audio(env),
		Fonts:            probe.Fonts(env),
	}

	res.IsHeadless = score.Compute(score.Input{
		Webdriver:        res.Webdriver,
		CDP:              res.CDP,
		StackTrace:       res.StackTrace,
		UserAgent:        res.UserAgentCheck,
		WebGL:            res.WebGL,
		Automation:       res.Automation,
		ExposedFunctions: res.ExposedFunctions,
		Indicators:       res.Indicators,
		ChromeRuntime:    res.ChromeRuntime,
		Permissions:      res.Permissions,
		Media:            res.Media,
		Canvas:           res.Canvas,
		Audio:            res.Audio,
		Fonts:            res.Fonts,
		Worker:           res.Worker,
	})

	res.Summary = summary.Generate(summary.Input{
		Score:      res.IsHeadless,
		Items:      checkItems(res),
		CDPSignals: res.CDP.Signals,
		UAMatches:  res.UserAgentCheck.Matches,
		Renderer:   res.WebGL.Renderer,
	})

	res.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	res.UserAgent = env.Navigator().UserAgent
	res.DetectionVersion = Version
	return res, nil
}
