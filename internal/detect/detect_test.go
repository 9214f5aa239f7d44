package detect

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probekit/headlessd/internal/probe"
)

func boolPtr(b bool) *bool { return &b }

func cleanSnapshot() *probe.Snapshot {
	return &probe.Snapshot{
		NavigatorData: probe.NavigatorInfo{
			UserAgent:           "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/126.0.0.0 Safari/537.36",
			Platform:            "Win32",
			Webdriver:           boolPtr(false),
			Languages:           []string{"en-US", "en"},
			PluginCount:         5,
			HardwareConcurrency: 8,
		},
		WindowData:      probe.WindowInfo{InnerWidth: 1920, InnerHeight: 955, OuterWidth: 1920, OuterHeight: 1040},
		ScreenData:      probe.ScreenInfo{Width: 1920, Height: 1080, ColorDepth: 24, PixelDepth: 24},
		ChromeData:      probe.ChromeInfo{Present: true, RuntimePresent: true},
		MediaData:       probe.MediaInfo{MediaDevicesPresent: true, WebRTCPresent: true},
		PermissionsData: &probe.PermissionsInfo{Notification: "default"},
		WorkerData: &probe.WorkerEcho{
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/126.0.0.0 Safari/537.36",
			Platform:  "Win32",
		},
	}
}

func headlessSnapshot() *probe.Snapshot {
	return &probe.Snapshot{
		NavigatorData: probe.NavigatorInfo{
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) HeadlessChrome/126.0.0.0 Safari/537.36",
			Platform:  "Linux x86_64",
			Webdriver: boolPtr(true),
		},
		ChromeData:      probe.ChromeInfo{Present: true},
		PermissionsData: &probe.PermissionsInfo{Notification: "denied"},
	}
}

func TestDetectNilEnv(t *testing.T) {
	res, err := Detect(context.Background(), nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrNilEnv)
}

func TestDetectCleanSession(t *testing.T) {
	res, err := Detect(context.Background(), cleanSnapshot())
	require.NoError(t, err)

	assert.False(t, res.Webdriver)
	assert.Less(t, res.IsHeadless, 0.3)
	assert.Equal(t, Version, res.DetectionVersion)
	assert.Equal(t, res.IsHeadless, res.Summary.Score)

	ts, err := time.Parse(time.RFC3339Nano, res.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), ts, time.Minute)
}

func TestDetectHeadlessSession(t *testing.T) {
	res, err := Detect(context.Background(), headlessSnapshot())
	require.NoError(t, err)

	assert.True(t, res.Webdriver)
	assert.True(t, res.UserAgentCheck.Suspicious)
	assert.Greater(t, res.IsHeadless, DetectedThreshold)
	assert.NotEmpty(t, res.Summary.Detections)
	assert.Equal(t, res.Summary.TotalIssues,
		len(res.Summary.Detections)+len(res.Summary.Warnings))
}

// A snapshot with every optional capability absent must still resolve a
// complete, well-typed result.
func TestDetectMaximallyDegraded(t *testing.T) {
	res, err := Detect(context.Background(), &probe.Snapshot{})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.GreaterOrEqual(t, res.IsHeadless, 0.0)
	assert.LessOrEqual(t, res.IsHeadless, 1.0)
	assert.False(t, res.Worker.Available)
	assert.False(t, res.Worker.Suspicious)
	assert.False(t, res.WebGL.Available)
	assert.Equal(t, "unknown", res.WebGL.Renderer)
	assert.False(t, res.Canvas.Available)
	assert.NotEmpty(t, res.Summary.Classification)
	assert.NotEmpty(t, res.Summary.Recommendation)
	assert.NotEmpty(t, res.Timestamp)
}

func TestDetectScoreMatchesProbeOutput(t *testing.T) {
	snap := cleanSnapshot()
	snap.NavigatorData.Webdriver = boolPtr(true)
	res, err := Detect(context.Background(), snap)
	require.NoError(t, err)
	// Exactly one extra signal over the clean baseline.
	clean, err := Detect(context.Background(), cleanSnapshot())
	require.NoError(t, err)
	assert.InDelta(t, clean.IsHeadless+0.20, res.IsHeadless, 1e-9)
}

func TestCheckItems(t *testing.T) {
	res, err := Detect(context.Background(), cleanSnapshot())
	require.NoError(t, err)
	items := checkItems(res)

	assert.Equal(t, "NO", items["webdriver-status"])
	assert.Equal(t, "YES", items["worker-available"])
	assert.Equal(t, false, items["cdp-detected"])
	assert.Equal(t, 5, items["plugins-count"])
	assert.Equal(t, true, items["outer-dims"])
	assert.Equal(t, false, items["inner-outer-match"])
	assert.Equal(t, true, items["chrome-runtime"])
}

func TestInnerOuterMatch(t *testing.T) {
	t.Run("zero outer is not a match", func(t *testing.T) {
		r := &Result{Indicators: probe.IndicatorsResult{InnerWidth: 800, InnerHeight: 600}}
		assert.False(t, innerOuterMatch(r))
	})
	t.Run("exact equality matches", func(t *testing.T) {
		r := &Result{Indicators: probe.IndicatorsResult{
			InnerWidth: 1280, InnerHeight: 720, OuterWidth: 1280, OuterHeight: 720,
		}}
		assert.True(t, innerOuterMatch(r))
	})
}

func TestPublish(t *testing.T) {
	h := http.Header{}
	Publish(h, &Result{IsHeadless: 0.612345, DetectionVersion: Version})

	assert.Equal(t, "0.612", h.Get(HeaderScore))
	assert.Equal(t, "true", h.Get(HeaderDetected))
	assert.Equal(t, Version, h.Get(HeaderVersion))

	h = http.Header{}
	Publish(h, &Result{IsHeadless: 0.5, DetectionVersion: Version})
	assert.Equal(t, "0.500", h.Get(HeaderScore))
	// the threshold itself is not a detection
	assert.Equal(t, "false", h.Get(HeaderDetected))
}
