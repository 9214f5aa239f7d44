package httpx

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
)

// HMACHeader carries the request signature computed by the collector.
const HMACHeader = "X-Headlessd-HMAC"

// HMACAuth verifies snapshot submissions. The key is derived per
// client IP from the shared secret, so a signature captured from one
// client is useless from another address.
type HMACAuth struct {
	secret      []byte
	publicKey   []byte
	requireHMAC bool
}

func NewHMACAuth(secret string, requireHMAC bool) *HMACAuth {
	auth := &HMACAuth{
		secret:      []byte(secret),
		requireHMAC: requireHMAC,
	}
	if len(auth.secret) > 0 {
		auth.publicKey = auth.derivePublicKey(auth.secret)
	}
	return auth
}

func (h *HMACAuth) derivePublicKey(secret []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte("headlessd-public-key-derivation"))
	return mac.Sum(nil)[:16]
}

// PublicKeyBase64 returns the base64 key the collector signs with.
func (h *HMACAuth) PublicKeyBase64() string {
	if len(h.publicKey) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(h.publicKey)
}

func (h *HMACAuth) sign(payload []byte, clientIP string) string {
	if len(h.secret) == 0 {
		return ""
	}
	mac := hmac.New(sha256.New, h.deriveClientKey(clientIP))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func (h *HMACAuth) deriveClientKey(clientIP string) []byte {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte("client-key:" + normalizeIP(clientIP)))
	return mac.Sum(nil)
}

func normalizeIP(addr string) string {
	// [::1]:8080 -> ::1
	if strings.HasPrefix(addr, "[") {
		if idx := strings.LastIndex(addr, "]"); idx > 0 {
			return addr[1:idx]
		}
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// Verify validates the request signature. When HMAC is not required
// the check always passes.
func (h *HMACAuth) Verify(r *http.Request, payload []byte) bool {
	if !h.requireHMAC {
		return true
	}
	if len(h.secret) == 0 {
		log.Printf("hmac: verification failed: no secret configured")
		return false
	}

	provided := r.Header.Get(HMACHeader)
	if provided == "" {
		log.Printf("hmac: verification failed: missing %s header", HMACHeader)
		return false
	}

	clientIP := requestIP(r)
	expected := h.sign(payload, clientIP)
	if !hmac.Equal([]byte(provided), []byte(expected)) {
		log.Printf("hmac: verification failed for IP %s", clientIP)
		return false
	}
	return true
}

func requestIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ips := strings.Split(xff, ","); len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	return r.RemoteAddr
}

// PublicKey serves the signing key metadata for collectors that embed
// their own transport.
func (e Env) PublicKey(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if e.HMACAuth == nil || e.HMACAuth.PublicKeyBase64() == "" {
		http.Error(w, "HMAC authentication not configured", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"public_key": e.HMACAuth.PublicKeyBase64(),
		"algorithm":  "HMAC-SHA256",
		"header":     HMACHeader,
	})
}

// ClientScript emits the snippet a page includes to sign its snapshot
// posts with the derived public key.
func (h *HMACAuth) ClientScript() string {
	if len(h.publicKey) == 0 {
		return ""
	}
	return fmt.Sprintf(`(function() {
  const HEADLESSD_PUBLIC_KEY = '%s';

  async function generateHMAC(payload, key) {
    const encoder = new TextEncoder();
    const cryptoKey = await crypto.subtle.importKey(
      'raw', encoder.encode(key), { name: 'HMAC', hash: 'SHA-256' }, false, ['sign']
    );
    const signature = await crypto.subtle.sign('HMAC', cryptoKey, encoder.encode(payload));
    return Array.from(new Uint8Array(signature))
      .map(b => b.toString(16).padStart(2, '0'))
      .join('');
  }

  const originalFetch = window.fetch;
  window.fetch = async function(url, options = {}) {
    if (url.includes('/detect') && options.method === 'POST' && options.body) {
      try {
        const hmac = await generateHMAC(options.body, HEADLESSD_PUBLIC_KEY);
        options.headers = options.headers || {};
        options.headers['%s'] = hmac;
      } catch (e) {
        console.warn('headlessd HMAC generation failed:', e);
      }
    }
    return originalFetch.call(this, url, options);
  };
})();
`, h.PublicKeyBase64(), HMACHeader)
}

// HMACScript serves the client signing snippet.
func (e Env) HMACScript(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if e.HMACAuth == nil {
		http.Error(w, "HMAC authentication not configured", http.StatusNotFound)
		return
	}
	script := e.HMACAuth.ClientScript()
	if script == "" {
		http.Error(w, "HMAC client script not available", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(script))
}
