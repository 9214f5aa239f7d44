package httpx

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/probekit/headlessd/internal/assets"
	"github.com/probekit/headlessd/internal/detect"
	"github.com/probekit/headlessd/internal/metrics"
	"github.com/probekit/headlessd/internal/probe"
	"github.com/probekit/headlessd/internal/report"
	cfg "github.com/probekit/headlessd/pkg/config"
)

// Env bundles the handler dependencies: config, the sink fan-out, the
// optional HMAC verifier, the timing tracker and the metrics handle.
type Env struct {
	Cfg      cfg.Config
	Emit     func(report.Report) // injected sink fan-out
	HMACAuth *HMACAuth
	Tracker  report.TimingTracker
	Metrics  *metrics.Metrics
}

func (e Env) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (e Env) Readyz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// CollectorJS serves the embedded capture script.
func (e Env) CollectorJS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(assets.CollectorJS)
}

// Detect accepts one environment snapshot, runs the probe battery and
// responds with the full detection result. The verdict triple is also
// published as stable response headers for polling harnesses.
func (e Env) Detect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "application/json") {
		http.Error(w, "content-type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	defer r.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, e.Cfg.MaxBodyBytes))
	if err != nil {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}

	if e.HMACAuth != nil && !e.HMACAuth.Verify(r, body) {
		http.Error(w, "invalid or missing HMAC signature", http.StatusUnauthorized)
		return
	}

	var snap probe.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	res, err := detect.Detect(r.Context(), &snap)
	if err != nil {
		log.Printf("detect: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if e.Metrics != nil {
		e.Metrics.ObserveDetection(res.Summary.Classification, res.IsHeadless)
	}
	if e.Emit != nil {
		e.Emit(report.New(r, res, e.Tracker, e.Cfg.TrustProxy))
	}

	detect.Publish(w.Header(), res)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(res)
}
