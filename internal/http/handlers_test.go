package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/probekit/headlessd/internal/detect"
	"github.com/probekit/headlessd/internal/probe"
	"github.com/probekit/headlessd/internal/report"
	cfg "github.com/probekit/headlessd/pkg/config"
)

func testEnv() (Env, *[]report.Report) {
	var emitted []report.Report
	env := Env{
		Cfg: cfg.Config{MaxBodyBytes: 1 << 20},
		Emit: func(r report.Report) {
			emitted = append(emitted, r)
		},
		Tracker: report.NewMemoryTimingTracker(),
	}
	return env, &emitted
}

func snapshotBody(t *testing.T, snap probe.Snapshot) []byte {
	t.Helper()
	b, err := json.Marshal(&snap)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	return b
}

func TestHealthz(t *testing.T) {
	env, _ := testEnv()
	rec := httptest.NewRecorder()
	env.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("expected body ok, got %q", rec.Body.String())
	}
}

func TestReadyz(t *testing.T) {
	env, _ := testEnv()
	rec := httptest.NewRecorder()
	env.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestCollectorJS(t *testing.T) {
	env, _ := testEnv()
	rec := httptest.NewRecorder()
	env.CollectorJS(rec, httptest.NewRequest(http.MethodGet, "/collector.js", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/javascript" {
		t.Errorf("expected javascript content type, got %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected a non-empty script")
	}

	rec = httptest.NewRecorder()
	env.CollectorJS(rec, httptest.NewRequest(http.MethodPost, "/collector.js", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for POST, got %d", rec.Code)
	}
}

func TestDetectHappyPath(t *testing.T) {
	env, emitted := testEnv()

	body := snapshotBody(t, probe.Snapshot{
		NavigatorData: probe.NavigatorInfo{
			UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/126.0.0.0",
			Languages:   []string{"en-US"},
			PluginCount: 3,
		},
		WindowData: probe.WindowInfo{InnerWidth: 1920, InnerHeight: 955, OuterWidth: 1920, OuterHeight: 1040},
		ChromeData: probe.ChromeInfo{Present: true, RuntimePresent: true},
		MediaData:  probe.MediaInfo{MediaDevicesPresent: true, WebRTCPresent: true},
	})

	req := httptest.NewRequest(http.MethodPost, "/detect", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.Detect(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(detect.HeaderScore) == "" {
		t.Error("expected the score header to be published")
	}
	if got := rec.Header().Get(detect.HeaderDetected); got != "false" {
		t.Errorf("expected detected=false for a clean snapshot, got %q", got)
	}
	if rec.Header().Get(detect.HeaderVersion) != detect.Version {
		t.Error("expected the version header to be published")
	}

	var res detect.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("response is not a detection result: %v", err)
	}
	if res.DetectionVersion != detect.Version {
		t.Errorf("expected version %s, got %s", detect.Version, res.DetectionVersion)
	}

	if len(*emitted) != 1 {
		t.Fatalf("expected one emitted report, got %d", len(*emitted))
	}
	if (*emitted)[0].Kind != "detection" {
		t.Errorf("expected a detection report, got %q", (*emitted)[0].Kind)
	}
}

func TestDetectHeadlessVerdictHeader(t *testing.T) {
	env, _ := testEnv()
	body := snapshotBody(t, probe.Snapshot{
		NavigatorData: probe.NavigatorInfo{
			UserAgent: "Mozilla/5.0 HeadlessChrome/126.0.0.0",
			Webdriver: boolPtr(true),
		},
		ChromeData:      probe.ChromeInfo{Present: true},
		PermissionsData: &probe.PermissionsInfo{Notification: "denied"},
	})

	req := httptest.NewRequest(http.MethodPost, "/detect", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.Detect(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get(detect.HeaderDetected); got != "true" {
		t.Errorf("expected detected=true, got %q", got)
	}
}

func boolPtr(b bool) *bool { return &b }

func TestDetectRejectsWrongMethod(t *testing.T) {
	env, _ := testEnv()
	rec := httptest.NewRecorder()
	env.Detect(rec, httptest.NewRequest(http.MethodGet, "/detect", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestDetectRejectsWrongContentType(t *testing.T) {
	env, _ := testEnv()
	req := httptest.NewRequest(http.MethodPost, "/detect", strings.NewReader("<xml/>"))
	req.Header.Set("Content-Type", "text/xml")
	rec := httptest.NewRecorder()
	env.Detect(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", rec.Code)
	}
}

func TestDetectRejectsInvalidJSON(t *testing.T) {
	env, emitted := testEnv()
	req := httptest.NewRequest(http.MethodPost, "/detect", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.Detect(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if len(*emitted) != 0 {
		t.Error("invalid payloads must not reach the sinks")
	}
}

func TestDetectBodyLimit(t *testing.T) {
	env, _ := testEnv()
	env.Cfg.MaxBodyBytes = 64

	big := `{"navigator":{"user_agent":"` + strings.Repeat("x", 256) + `"}}`
	req := httptest.NewRequest(http.MethodPost, "/detect", strings.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.Detect(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}
}

func TestDetectHMACRequired(t *testing.T) {
	env, emitted := testEnv()
	env.HMACAuth = NewHMACAuth("test-secret", true)

	body := snapshotBody(t, probe.Snapshot{})
	req := httptest.NewRequest(http.MethodPost, "/detect", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.Detect(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a signature, got %d", rec.Code)
	}
	if len(*emitted) != 0 {
		t.Error("unauthenticated payloads must not reach the sinks")
	}
}
