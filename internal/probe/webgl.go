package probe

import (
	"regexp"
	"strings"
)

// WebGLResult reports the claimed GPU identity and the outcome of the
// synthetic rendering test performed by the collector.
type WebGLResult struct {
	Available        bool          `json:"available"`
	Vendor           string        `json:"vendor"`
	Renderer         string        `json:"renderer"`
	SoftwareRenderer bool          `json:"software_renderer"`
	RenderingTest    RenderingTest `json:"rendering_test"`
}

// RenderingTest analyzes the pixel readback of a fixed 64x64
// two-triangle render: a prefix fingerprint plus a strided
// neighbor-noise ratio. A renderer string claiming discrete-GPU
// hardware that produces noisy readback is lying about its backend.
type RenderingTest struct {
	Performed  bool    `json:"performed"`
	Hash       string  `json:"hash,omitempty"`
	NoiseRatio float64 `json:"noise_ratio"`
	Suspicious bool    `json:"suspicious"`
	Error      string  `json:"error,omitempty"`
}

var softwareRendererMarkers = []string{
	"swiftshader",
	"llvmpipe",
	"softpipe",
	"virtualbox",
	"vmware",
	"mesa",
}

var highEndGPUPattern = regexp.MustCompile(`(?i)nvidia|geforce|rtx|gtx|radeon`)

const (
	renderHashPrefix = 512  // bytes of the readback fed to the fingerprint
	noiseStride      = 16   // sample every Nth pixel
	noiseThreshold   = 0.1
)

// WebGL inspects the unmasked vendor/renderer strings and runs the
// rendering-consistency analysis over the captured pixel buffer.
func WebGL(env Env) WebGLResult {
	c, ok := env.WebGL()
	if !ok {
		return WebGLResult{Vendor: "unknown", Renderer: "unknown"}
	}

	res := WebGLResult{
		Available: true,
		Vendor:    c.Vendor,
		Renderer:  c.Renderer,
	}
	if !c.DebugInfo || res.Vendor == "" {
		res.Vendor = "unknown"
	}
	if !c.DebugInfo || res.Renderer == "" {
		res.Renderer = "unknown"
	}

	lower := strings.ToLower(res.Renderer)
	for _, marker := range softwareRendererMarkers {
		if strings.Contains(lower, marker) {
			res.SoftwareRenderer = true
			break
		}
	}

	res.RenderingTest = analyzeRender(c, res.Renderer)
	return res
}

func analyzeRender(c WebGLCapture, renderer string) RenderingTest {
	if c.ShaderError != "" {
		return RenderingTest{Error: c.ShaderError}
	}
	if len(c.Pixels) == 0 {
		return RenderingTest{}
	}

	test := RenderingTest{Performed: true}

	prefix := c.Pixels
	if len(prefix) > renderHashPrefix {
		prefix = prefix[:renderHashPrefix]
	}
	test.Hash = fingerprint(prefix)
	test.NoiseRatio = noiseRatio(c.Pixels)

	if highEndGPUPattern.MatchString(renderer) && test.NoiseRatio > noiseThreshold {
		test.Suspicious = true
	}
	return test
}

// noiseRatio samples RGBA pixels at a fixed stride and reports the
// fraction whose right-hand neighbor differs in any channel.
func noiseRatio(pixels []byte) float64 {
	const bpp = 4
	samples, noisy := 0, 0
	for i := 0; i+2*bpp <= len(pixels); i += bpp * noiseStride {
		samples++
		for c := 0; c < bpp; c++ {
			if pixels[i+c] != pixels[i+bpp+c] {
				noisy++
				break
			}
		}
	}
	if samples == 0 {
		return 0
	}
	return float64(noisy) / float64(samples)
}
