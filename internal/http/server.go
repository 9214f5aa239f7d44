package httpx

import "net/http"

// NewMux wires the detection endpoints behind the logging, metrics and
// CORS middleware.
func NewMux(e Env) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", e.Healthz)
	mux.HandleFunc("/readyz", e.Readyz)
	mux.HandleFunc("/detect", e.Detect)
	mux.HandleFunc("/collector.js", e.CollectorJS)

	// HMAC authentication endpoints
	mux.HandleFunc("/hmac.js", e.HMACScript)
	mux.HandleFunc("/hmac/public-key", e.PublicKey)

	return RequestLogger(MetricsMiddleware(e.Metrics)(cors(mux)))
}
