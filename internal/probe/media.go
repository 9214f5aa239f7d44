package probe

// MediaResult groups the media-surface presence checks. Battery is
// informational only and never marked suspicious.
type MediaResult struct {
	MediaDevices MediaDevicesResult `json:"media_devices"`
	WebRTC       WebRTCResult       `json:"webrtc"`
	Battery      BatteryResult      `json:"battery"`
}

type MediaDevicesResult struct {
	Available  bool `json:"available"`
	Suspicious bool `json:"suspicious"`
}

type WebRTCResult struct {
	Available  bool   `json:"available"`
	Suspicious bool   `json:"suspicious"`
	Error      string `json:"error,omitempty"`
}

type BatteryResult struct {
	Available bool `json:"available"`
}

// Media checks MediaDevices (absence is suspicious on any modern
// browser), WebRTC (present but the RTCPeerConnection constructor
// threw, meaning it was artificially disabled), and Battery (presence
// recorded, never scored).
func Media(env Env) MediaResult {
	m := env.Media()
	return MediaResult{
		MediaDevices: MediaDevicesResult{
			Available:  m.MediaDevicesPresent,
			Suspicious: !m.MediaDevicesPresent,
		},
		WebRTC: WebRTCResult{
			Available:  m.WebRTCPresent,
			Suspicious: m.WebRTCPresent && m.RTCError != "",
			Error:      m.RTCError,
		},
		Battery: BatteryResult{Available: m.BatteryPresent},
	}
}
