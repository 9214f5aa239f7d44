package probe

import "context"

// Env is the ambient-environment capability every probe reads from.
// Probes never touch process-wide state; they see only what the Env
// exposes, which keeps each probe deterministic and unit-testable.
//
// The production implementation is Snapshot, decoded from the JSON
// payload the collector script posts. The second return value of the
// optional accessors distinguishes "capability absent" from "capability
// present with zero values". Probes degrade to Available:false on the
// former, never error.
type Env interface {
	Navigator() NavigatorInfo
	Window() WindowInfo
	Screen() ScreenInfo

	// Globals returns the enumerable own properties of the global
	// object, as recorded by the collector.
	Globals() []GlobalProp

	// WebdriverGetter reports the source text of the
	// navigator.webdriver property getter, when the collector could
	// read its descriptor.
	WebdriverGetter() (GetterInfo, bool)

	// Traps returns the getter-trap access counters the collector
	// installed to observe DevTools-protocol property reads.
	Traps() TrapCounters

	Chrome() ChromeInfo
	Permissions() (PermissionsInfo, bool)
	Media() MediaInfo
	Timezone() TimezoneInfo
	Connection() (ConnectionInfo, bool)

	WebGL() (WebGLCapture, bool)
	Canvas() (CanvasCapture, bool)
	Emoji() (EmojiCapture, bool)
	Audio() (AudioCapture, bool)
	Fonts() (FontCapture, bool)

	// WorkerEcho delivers the worker-thread navigator echo. The call
	// may block (a live environment round-trips through a real worker);
	// the worker probe races it against its own fixed timeout.
	WorkerEcho(ctx context.Context) (WorkerEcho, error)
}

// NavigatorInfo mirrors the navigator fields the probes read.
type NavigatorInfo struct {
	UserAgent           string       `json:"user_agent"`
	Platform            string       `json:"platform"`
	Webdriver           *bool        `json:"webdriver,omitempty"` // nil when the property is absent
	Language            string       `json:"language"`
	Languages           []string     `json:"languages"`
	PluginCount         int          `json:"plugin_count"`
	MimeTypeCount       int          `json:"mime_type_count"`
	CookieEnabled       bool         `json:"cookie_enabled"`
	DoNotTrack          string       `json:"do_not_track"`
	HardwareConcurrency int          `json:"hardware_concurrency"`
	DeviceMemory        float64      `json:"device_memory"`
	MaxTouchPoints      int          `json:"max_touch_points"`
	UAData              *ClientHints `json:"ua_data,omitempty"`
}

// ClientHints carries navigator.userAgentData when the browser
// exposes it.
type ClientHints struct {
	Brands   []string `json:"brands"`
	Mobile   bool     `json:"mobile"`
	Platform string   `json:"platform"`
}

type WindowInfo struct {
	InnerWidth  int `json:"inner_width"`
	InnerHeight int `json:"inner_height"`
	OuterWidth  int `json:"outer_width"`
	OuterHeight int `json:"outer_height"`
}

type ScreenInfo struct {
	Width       int `json:"width"`
	Height      int `json:"height"`
	AvailWidth  int `json:"avail_width"`
	AvailHeight int `json:"avail_height"`
	ColorDepth  int `json:"color_depth"`
	PixelDepth  int `json:"pixel_depth"`
}

// GlobalProp describes one enumerable own property of the global
// object. The collector tags the functions it installed itself with
// CollectorOwned at registration time, so probes can exclude them
// structurally instead of by name.
type GlobalProp struct {
	Name           string `json:"name"`
	Kind           string `json:"kind"` // typeof result: "function", "object", ...
	Source         string `json:"source,omitempty"`
	Installed      bool   `json:"installed,omitempty"` // boolean __installed own property
	CollectorOwned bool   `json:"collector_owned,omitempty"`
}

// GetterInfo is the recorded toString of a property getter.
type GetterInfo struct {
	Source string `json:"source"`
}

// TrapCounters holds the access counts of the collector's instrumented
// getters. Runtime.enable eagerly reads Error.stack and re-reads
// console.debug arguments, which is observable here.
type TrapCounters struct {
	Instrumented bool `json:"instrumented"`
	StackReads   int  `json:"stack_reads"`
	ConsoleReads int  `json:"console_reads"`
}

type ChromeInfo struct {
	Present        bool   `json:"present"`
	RuntimePresent bool   `json:"runtime_present"`
	RuntimeID      string `json:"runtime_id,omitempty"`
}

type PermissionsInfo struct {
	Notification string `json:"notification"`
}

type MediaInfo struct {
	MediaDevicesPresent bool   `json:"media_devices_present"`
	WebRTCPresent       bool   `json:"webrtc_present"`
	RTCError            string `json:"rtc_error,omitempty"` // RTCPeerConnection constructor throw
	BatteryPresent      bool   `json:"battery_present"`
}

type TimezoneInfo struct {
	Name          string `json:"name"`
	OffsetMinutes int    `json:"offset_minutes"`
}

type ConnectionInfo struct {
	EffectiveType string  `json:"effective_type"`
	DownlinkMbps  float64 `json:"downlink"`
	RTT           int     `json:"rtt"`
}

// WebGLCapture is the raw WebGL observation: claimed vendor/renderer
// plus the pixel readback of the synthetic two-triangle render.
type WebGLCapture struct {
	DebugInfo   bool   `json:"debug_info"` // debug-info extension present
	Vendor      string `json:"vendor"`
	Renderer    string `json:"renderer"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Pixels      []byte `json:"pixels,omitempty"` // RGBA readback, base64 on the wire
	ShaderError string `json:"shader_error,omitempty"`
}

type CanvasCapture struct {
	DataURL           string `json:"data_url"`
	GetImageDataError string `json:"get_image_data_error,omitempty"`
}

type EmojiCapture struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Pixels []byte `json:"pixels,omitempty"`
}

type AudioCapture struct {
	SampleRate float64 `json:"sample_rate"`
}

// FontCapture holds text-width measurements: one per generic base
// font, then one per named font rendered with that base as fallback.
type FontCapture struct {
	BaseWidths   map[string]float64 `json:"base_widths"`
	Measurements []FontMeasurement  `json:"measurements"`
}

type FontMeasurement struct {
	Font  string  `json:"font"`
	Base  string  `json:"base"`
	Width float64 `json:"width"`
}

// WorkerEcho is the navigator identity reported from inside a Worker
// thread.
type WorkerEcho struct {
	UserAgent string `json:"user_agent"`
	Platform  string `json:"platform"`
}
