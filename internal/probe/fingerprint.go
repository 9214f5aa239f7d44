package probe

import "strings"

// CanvasResult fingerprints the 2D canvas render. An implausibly short
// serialization means the canvas produced no real image data; a
// chrome-extension frame in the getImageData error stack means a
// noise-blocking extension intercepted the read.
type CanvasResult struct {
	Available  bool   `json:"available"`
	Hash       string `json:"hash,omitempty"`
	Length     int    `json:"length"`
	Suspicious bool   `json:"suspicious"`
	Blocked    bool   `json:"blocked"`
}

// minCanvasDataURL is well under any real PNG data URL for the fixed
// text+shape content.
const minCanvasDataURL = 100

func Canvas(env Env) CanvasResult {
	c, ok := env.Canvas()
	if !ok {
		return CanvasResult{}
	}

	res := CanvasResult{
		Available: true,
		Hash:      fingerprint([]byte(c.DataURL)),
		Length:    len(c.DataURL),
	}
	if strings.Contains(c.GetImageDataError, "chrome-extension") {
		res.Blocked = true
	}
	res.Suspicious = res.Blocked || res.Length < minCanvasDataURL
	return res
}

// EmojiResult checks that emoji actually rendered (a buffer of
// identical pixels means the glyph pipeline is broken, typical of
// fontless headless images) and carries a best-guess OS label derived
// from the UA string, purely for display.
type EmojiResult struct {
	Available  bool   `json:"available"`
	Uniform    bool   `json:"uniform"`
	Suspicious bool   `json:"suspicious"`
	OS         string `json:"os"`
}

func Emoji(env Env) EmojiResult {
	res := EmojiResult{OS: osLabel(env.Navigator().UserAgent)}

	e, ok := env.Emoji()
	if !ok || len(e.Pixels) == 0 {
		return res
	}
	res.Available = true
	res.Uniform = uniformPixels(e.Pixels)
	res.Suspicious = res.Uniform
	return res
}

func uniformPixels(pixels []byte) bool {
	const bpp = 4
	if len(pixels) < bpp {
		return true
	}
	for i := bpp; i+bpp <= len(pixels); i += bpp {
		for c := 0; c < bpp; c++ {
			if pixels[i+c] != pixels[c] {
				return false
			}
		}
	}
	return true
}

// osLabel extracts a display-only OS name from the UA string. Mobile
// platforms first: iOS UAs also contain "Mac OS X".
func osLabel(ua string) string {
	lower := strings.ToLower(ua)
	switch {
	case strings.Contains(lower, "iphone"), strings.Contains(lower, "ipad"):
		return "iOS"
	case strings.Contains(lower, "android"):
		return "Android"
	case strings.Contains(lower, "windows"):
		return "Windows"
	case strings.Contains(lower, "mac"):
		return "macOS"
	case strings.Contains(lower, "linux"):
		return "Linux"
	}
	return "Unknown"
}

// AudioResult flags a non-standard AudioContext sample rate; real
// hardware stacks report 44100 or 48000.
type AudioResult struct {
	Available  bool    `json:"available"`
	SampleRate float64 `json:"sample_rate"`
	Suspicious bool    `json:"suspicious"`
}

func Audio(env Env) AudioResult {
	a, ok := env.Audio()
	if !ok {
		return AudioResult{}
	}
	return AudioResult{
		Available:  true,
		SampleRate: a.SampleRate,
		Suspicious: a.SampleRate != 44100 && a.SampleRate != 48000,
	}
}

// FontsResult counts named fonts whose measured width differs from
// their generic fallback. A desktop browser with fewer than three of
// the common set installed is almost certainly a stripped-down
// automation image.
type FontsResult struct {
	Available  bool     `json:"available"`
	Detected   []string `json:"detected"`
	Count      int      `json:"count"`
	Suspicious bool     `json:"suspicious"`
}

const minDetectedFonts = 3

func Fonts(env Env) FontsResult {
	f, ok := env.Fonts()
	if !ok || len(f.BaseWidths) == 0 {
		return FontsResult{Detected: []string{}}
	}

	res := FontsResult{Available: true, Detected: []string{}}
	seen := make(map[string]bool)
	for _, m := range f.Measurements {
		base, known := f.BaseWidths[m.Base]
		if !known || seen[m.Font] {
			continue
		}
		if m.Width != base {
			seen[m.Font] = true
			res.Detected = append(res.Detected, m.Font)
		}
	}
	res.Count = len(res.Detected)
	res.Suspicious = res.Count < minDetectedFonts
	return res
}
