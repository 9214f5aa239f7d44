package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHMACVerify(t *testing.T) {
	t.Run("not required always passes", func(t *testing.T) {
		auth := NewHMACAuth("", false)
		req := httptest.NewRequest(http.MethodPost, "/detect", nil)
		if !auth.Verify(req, []byte("payload")) {
			t.Error("expected verification to pass when not required")
		}
	})

	t.Run("required without secret fails", func(t *testing.T) {
		auth := NewHMACAuth("", true)
		req := httptest.NewRequest(http.MethodPost, "/detect", nil)
		if auth.Verify(req, []byte("payload")) {
			t.Error("expected verification to fail with no secret")
		}
	})

	t.Run("missing header fails", func(t *testing.T) {
		auth := NewHMACAuth("secret", true)
		req := httptest.NewRequest(http.MethodPost, "/detect", nil)
		if auth.Verify(req, []byte("payload")) {
			t.Error("expected verification to fail without the header")
		}
	})

	t.Run("valid signature passes", func(t *testing.T) {
		auth := NewHMACAuth("secret", true)
		payload := []byte(`{"navigator":{}}`)

		req := httptest.NewRequest(http.MethodPost, "/detect", nil)
		req.RemoteAddr = "203.0.113.42:51234"
		req.Header.Set(HMACHeader, auth.sign(payload, "203.0.113.42"))

		if !auth.Verify(req, payload) {
			t.Error("expected a correctly signed request to pass")
		}
	})

	t.Run("signature bound to client ip", func(t *testing.T) {
		auth := NewHMACAuth("secret", true)
		payload := []byte(`{"navigator":{}}`)

		req := httptest.NewRequest(http.MethodPost, "/detect", nil)
		req.RemoteAddr = "198.51.100.7:40000"
		req.Header.Set(HMACHeader, auth.sign(payload, "203.0.113.42"))

		if auth.Verify(req, payload) {
			t.Error("a signature minted for another IP must not verify")
		}
	})

	t.Run("tampered payload fails", func(t *testing.T) {
		auth := NewHMACAuth("secret", true)
		req := httptest.NewRequest(http.MethodPost, "/detect", nil)
		req.RemoteAddr = "203.0.113.42:51234"
		req.Header.Set(HMACHeader, auth.sign([]byte("original"), "203.0.113.42"))

		if auth.Verify(req, []byte("tampered")) {
			t.Error("a tampered payload must not verify")
		}
	})
}

func TestNormalizeIP(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"203.0.113.42:51234", "203.0.113.42"},
		{"203.0.113.42", "203.0.113.42"},
		{"[::1]:8080", "::1"},
		{"[2001:db8::1]:443", "2001:db8::1"},
	}
	for _, tt := range tests {
		if got := normalizeIP(tt.in); got != tt.want {
			t.Errorf("normalizeIP(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPublicKeyEndpoint(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		env := Env{}
		rec := httptest.NewRecorder()
		env.PublicKey(rec, httptest.NewRequest(http.MethodGet, "/hmac/public-key", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("configured", func(t *testing.T) {
		env := Env{HMACAuth: NewHMACAuth("secret", true)}
		rec := httptest.NewRecorder()
		env.PublicKey(rec, httptest.NewRequest(http.MethodGet, "/hmac/public-key", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "public_key") {
			t.Error("expected the public key in the response")
		}
		if !strings.Contains(rec.Body.String(), HMACHeader) {
			t.Error("expected the header name in the response")
		}
	})
}

func TestHMACScriptEndpoint(t *testing.T) {
	env := Env{HMACAuth: NewHMACAuth("secret", true)}
	rec := httptest.NewRecorder()
	env.HMACScript(rec, httptest.NewRequest(http.MethodGet, "/hmac.js", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/javascript" {
		t.Errorf("expected javascript content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), env.HMACAuth.PublicKeyBase64()) {
		t.Error("expected the derived public key to be embedded in the script")
	}
}
