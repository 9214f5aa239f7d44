package probe

// IndicatorsResult is a pure read of environment shape: geometry,
// depths, connection, locale and hardware hints. No branching logic
// beyond presence checks; consumers decide what is suspicious.
type IndicatorsResult struct {
	InnerWidth  int `json:"inner_width"`
	InnerHeight int `json:"inner_height"`
	OuterWidth  int `json:"outer_width"`
	OuterHeight int `json:"outer_height"`
	ColorDepth  int `json:"color_depth"`
	PixelDepth  int `json:"pixel_depth"`

	ConnectionAvailable bool           `json:"connection_available"`
	Connection          ConnectionInfo `json:"connection,omitempty"`

	NotificationPermission string   `json:"notification_permission,omitempty"`
	Languages              []string `json:"languages"`
	HardwareConcurrency    int      `json:"hardware_concurrency"`
	DeviceMemory           float64  `json:"device_memory"`
	MaxTouchPoints         int      `json:"max_touch_points"`
	Timezone               string   `json:"timezone"`
	UTCOffsetMinutes       int      `json:"utc_offset_minutes"`
}

func Indicators(env Env) IndicatorsResult {
	nav := env.Navigator()
	win := env.Window()
	scr := env.Screen()
	tz := env.Timezone()

	res := IndicatorsResult{
		InnerWidth:          win.InnerWidth,
		InnerHeight:         win.InnerHeight,
		OuterWidth:          win.OuterWidth,
		OuterHeight:         win.OuterHeight,
		ColorDepth:          scr.ColorDepth,
		PixelDepth:          scr.PixelDepth,
		Languages:           nav.Languages,
		HardwareConcurrency: nav.HardwareConcurrency,
		DeviceMemory:        nav.DeviceMemory,
		MaxTouchPoints:      nav.MaxTouchPoints,
		Timezone:            tz.Name,
		UTCOffsetMinutes:    tz.OffsetMinutes,
	}
	if conn, ok := env.Connection(); ok {
		res.ConnectionAvailable = true
		res.Connection = conn
	}
	if perms, ok := env.Permissions(); ok {
		res.NotificationPermission = perms.Notification
	}
	return res
}

// ChromeRuntimeResult flags the window.chrome object missing its
// runtime member, the shape headless Chrome ships with.
type ChromeRuntimeResult struct {
	HasChrome  bool `json:"has_chrome"`
	HasRuntime bool `json:"has_runtime"`
	Missing    bool `json:"missing"`
}

func ChromeRuntime(env Env) ChromeRuntimeResult {
	chrome := env.Chrome()
	return ChromeRuntimeResult{
		HasChrome:  chrome.Present,
		HasRuntime: chrome.RuntimePresent,
		Missing:    chrome.Present && !chrome.RuntimePresent,
	}
}

// PermissionsResult flags the notification permission being denied
// before the user was ever asked, a common headless default.
type PermissionsResult struct {
	Available       bool   `json:"available"`
	Notification    string `json:"notification,omitempty"`
	DeniedByDefault bool   `json:"denied_by_default"`
}

func Permissions(env Env) PermissionsResult {
	perms, ok := env.Permissions()
	if !ok {
		return PermissionsResult{}
	}
	return PermissionsResult{
		Available:       true,
		Notification:    perms.Notification,
		DeniedByDefault: perms.Notification == "denied",
	}
}
