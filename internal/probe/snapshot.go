package probe

import (
	"context"
	"errors"
)

// ErrWorkerUnavailable is returned by Snapshot.WorkerEcho when the
// collector recorded no worker round-trip.
var ErrWorkerUnavailable = errors.New("worker unavailable")

// Snapshot is a captured browser environment, decoded from the JSON
// body the collector script posts to /detect. It implements Env.
//
// Optional capability groups are pointers: a nil pointer means the
// collector could not exercise that capability (no canvas, no WebGL,
// worker failed, ...) and the matching probe degrades.
type Snapshot struct {
	NavigatorData   NavigatorInfo    `json:"navigator"`
	WindowData      WindowInfo       `json:"window"`
	ScreenData      ScreenInfo       `json:"screen"`
	GlobalsData     []GlobalProp     `json:"globals"`
	WebdriverGet    *GetterInfo      `json:"webdriver_getter,omitempty"`
	TrapsData       TrapCounters     `json:"traps"`
	ChromeData      ChromeInfo       `json:"chrome"`
	PermissionsData *PermissionsInfo `json:"permissions,omitempty"`
	MediaData       MediaInfo        `json:"media"`
	TimezoneData    TimezoneInfo     `json:"timezone"`
	ConnectionData  *ConnectionInfo  `json:"connection,omitempty"`
	WebGLData       *WebGLCapture    `json:"webgl,omitempty"`
	CanvasData      *CanvasCapture   `json:"canvas,omitempty"`
	EmojiData       *EmojiCapture    `json:"emoji,omitempty"`
	AudioData       *AudioCapture    `json:"audio,omitempty"`
	FontsData       *FontCapture     `json:"fonts,omitempty"`
	WorkerData      *WorkerEcho      `json:"worker,omitempty"`
}

func (s *Snapshot) Navigator() NavigatorInfo { return s.NavigatorData }
func (s *Snapshot) Window() WindowInfo       { return s.WindowData }
func (s *Snapshot) Screen() ScreenInfo       { return s.ScreenData }
func (s *Snapshot) Globals() []GlobalProp    { return s.GlobalsData }
func (s *Snapshot) Traps() TrapCounters      { return s.TrapsData }
func (s *Snapshot) Chrome() ChromeInfo       { return s.ChromeData }
func (s *Snapshot) Media() MediaInfo         { return s.MediaData }
func (s *Snapshot) Timezone() TimezoneInfo   { return s.TimezoneData }

func (s *Snapshot) WebdriverGetter() (GetterInfo, bool) {
	if s.WebdriverGet == nil {
		return GetterInfo{}, false
	}
	return *s.WebdriverGet, true
}

func (s *Snapshot) Permissions() (PermissionsInfo, bool) {
	if s.PermissionsData == nil {
		return PermissionsInfo{}, false
	}
	return *s.PermissionsData, true
}

func (s *Snapshot) Connection() (ConnectionInfo, bool) {
	if s.ConnectionData == nil {
		return ConnectionInfo{}, false
	}
	return *s.ConnectionData, true
}

func (s *Snapshot) WebGL() (WebGLCapture, bool) {
	if s.WebGLData == nil {
		return WebGLCapture{}, false
	}
	return *s.WebGLData, true
}

func (s *Snapshot) Canvas() (CanvasCapture, bool) {
	if s.CanvasData == nil {
		return CanvasCapture{}, false
	}
	return *s.CanvasData, true
}

func (s *Snapshot) Emoji() (EmojiCapture, bool) {
	if s.EmojiData == nil {
		return EmojiCapture{}, false
	}
	return *s.EmojiData, true
}

func (s *Snapshot) Audio() (AudioCapture, bool) {
	if s.AudioData == nil {
		return AudioCapture{}, false
	}
	return *s.AudioData, true
}

func (s *Snapshot) Fonts() (FontCapture, bool) {
	if s.FontsData == nil {
		return FontCapture{}, false
	}
	return *s.FontsData, true
}

// WorkerEcho returns the recorded echo immediately. A snapshot with no
// recorded echo resolves as unavailable without consuming the probe's
// timeout budget.
func (s *Snapshot) WorkerEcho(ctx context.Context) (WorkerEcho, error) {
	if s.WorkerData == nil {
		return WorkerEcho{}, ErrWorkerUnavailable
	}
	return *s.WorkerData, nil
}
