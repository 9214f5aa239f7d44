package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/fatih/color"

	"github.com/probekit/headlessd/internal/detect"
	"github.com/probekit/headlessd/internal/probe"
	"github.com/probekit/headlessd/internal/report"
)

// selftestCase pairs a canned snapshot with the verdict band we expect
// the battery to land in.
type selftestCase struct {
	name         string
	snap         *probe.Snapshot
	expectDetect bool
}

func boolPtr(b bool) *bool { return &b }

func cleanDesktopSnapshot() *probe.Snapshot {
	return &probe.Snapshot{
		NavigatorData: probe.NavigatorInfo{
			UserAgent:           "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
			Platform:            "Win32",
			Webdriver:           boolPtr(false),
			Language:            "en-US",
			Languages:           []string{"en-US", "en"},
			PluginCount:         5,
			MimeTypeCount:       2,
			CookieEnabled:       true,
			HardwareConcurrency: 8,
			DeviceMemory:        8,
		},
		WindowData: probe.WindowInfo{InnerWidth: 1920, InnerHeight: 955, OuterWidth: 1920, OuterHeight: 1040},
		ScreenData: probe.ScreenInfo{Width: 1920, Height: 1080, AvailWidth: 1920, AvailHeight: 1040, ColorDepth: 24, PixelDepth: 24},
		ChromeData: probe.ChromeInfo{Present: true, RuntimePresent: true},
		MediaData:  probe.MediaInfo{MediaDevicesPresent: true, WebRTCPresent: true, BatteryPresent: true},
		PermissionsData: &probe.PermissionsInfo{
			Notification: "default",
		},
		TimezoneData: probe.TimezoneInfo{Name: "America/New_York", OffsetMinutes: -240},
		WebGLData: &probe.WebGLCapture{
			DebugInfo: true,
			Vendor:    "Google Inc. (NVIDIA)",
			Renderer:  "ANGLE (NVIDIA, NVIDIA GeForce RTX 3060 Direct3D11 vs_5_0 ps_5_0, D3D11)",
		},
		AudioData: &probe.AudioCapture{SampleRate: 48000},
		WorkerData: &probe.WorkerEcho{
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
			Platform:  "Win32",
		},
	}
}

func headlessChromeSnapshot() *probe.Snapshot {
	return &probe.Snapshot{
		NavigatorData: probe.NavigatorInfo{
			UserAgent:           "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) HeadlessChrome/126.0.0.0 Safari/537.36",
			Platform:            "Linux x86_64",
			Webdriver:           boolPtr(true),
			Language:            "en-US",
			Languages:           nil,
			PluginCount:         0,
			HardwareConcurrency: 2,
		},
		WindowData:      probe.WindowInfo{InnerWidth: 800, InnerHeight: 600},
		ScreenData:      probe.ScreenInfo{Width: 800, Height: 600, ColorDepth: 24, PixelDepth: 24},
		ChromeData:      probe.ChromeInfo{Present: true, RuntimePresent: false},
		MediaData:       probe.MediaInfo{WebRTCPresent: true, RTCError: "NotSupportedError"},
		PermissionsData: &probe.PermissionsInfo{Notification: "denied"},
		TimezoneData:    probe.TimezoneInfo{Name: "UTC"},
		WebGLData: &probe.WebGLCapture{
			DebugInfo: true,
			Vendor:    "Google Inc. (Google)",
			Renderer:  "ANGLE (Google, Vulkan 1.3.0 (SwiftShader Device (Subzero)), SwiftShader driver)",
		},
	}
}

func seleniumSnapshot() *probe.Snapshot {
	snap := headlessChromeSnapshot()
	snap.GlobalsData = []probe.GlobalProp{
		{Name: "$cdc_asdjflasutopfhvcZLmcfl_", Kind: "object"},
		{Name: "__webdriver_script_fn", Kind: "function"},
	}
	snap.WebdriverGet = &probe.GetterInfo{
		Source: "function get webdriver() { return true; }",
	}
	return snap
}

func selftestCases() []selftestCase {
	return []selftestCase{
		{name: "clean desktop Chrome", snap: cleanDesktopSnapshot(), expectDetect: false},
		{name: "headless Chrome", snap: headlessChromeSnapshot(), expectDetect: true},
		{name: "Selenium-driven Chrome", snap: seleniumSnapshot(), expectDetect: true},
	}
}

// runSelftest runs the canned snapshots through the full battery and
// prints a colored verdict per case. Reports flow through the
// configured sinks exactly like live traffic.
func runSelftest(emit func(report.Report)) {
	pass := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)

	log.Printf("selftest: running %d canned snapshots", len(selftestCases()))

	failures := 0
	for _, tc := range selftestCases() {
		res, err := detect.Detect(context.Background(), tc.snap)
		if err != nil {
			fail.Printf("FAIL %-24s detect error: %v\n", tc.name, err)
			failures++
			continue
		}

		detected := res.IsHeadless > detect.DetectedThreshold
		status := pass
		label := "PASS"
		if detected != tc.expectDetect {
			status = fail
			label = "FAIL"
			failures++
		}
		status.Printf("%s %-24s", label, tc.name)
		fmt.Printf(" score=%.3f classification=%s detections=%d warnings=%d\n",
			res.IsHeadless, res.Summary.Classification,
			len(res.Summary.Detections), len(res.Summary.Warnings))

		req, _ := http.NewRequest(http.MethodPost, "/detect", nil)
		req.RemoteAddr = "127.0.0.1:0"
		req.Header.Set("User-Agent", res.UserAgent)
		emit(report.New(req, res, nil, false))
	}

	if failures > 0 {
		fail.Printf("selftest: %d case(s) failed\n", failures)
		return
	}
	pass.Println("selftest: all cases passed")
}
