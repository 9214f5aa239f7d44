package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const regularChromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

func TestUserAgent(t *testing.T) {
	tests := []struct {
		name       string
		ua         string
		suspicious bool
	}{
		{"regular chrome", regularChromeUA, false},
		{"headless chrome", "Mozilla/5.0 (X11; Linux x86_64) HeadlessChrome/126.0.0.0 Safari/537.36", true},
		{"phantomjs", "Mozilla/5.0 PhantomJS/2.1.1", true},
		{"electron", "Mozilla/5.0 Chrome/126.0.0.0 Electron/31.0.0", true},
		{"curl", "curl/8.5.0", true},
		{"python requests", "python-requests/2.31.0", true},
		{"generic bot word", "SomeBot crawler", true},
		{"bot as substring of a word is not matched", "Mozilla/5.0 robotics-enthusiast-portal", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := UserAgent(&Snapshot{NavigatorData: NavigatorInfo{UserAgent: tt.ua}})
			assert.Equal(t, tt.suspicious, res.Suspicious)
			assert.Equal(t, tt.ua, res.UserAgent)
			if tt.suspicious {
				assert.NotEmpty(t, res.Matches)
			} else {
				assert.Empty(t, res.Matches)
			}
		})
	}

	t.Run("matches carry the pattern source", func(t *testing.T) {
		res := UserAgent(&Snapshot{NavigatorData: NavigatorInfo{
			UserAgent: "HeadlessChrome/126.0 selenium",
		}})
		assert.Contains(t, res.Matches, "(?i)headlesschrome")
		assert.Contains(t, res.Matches, "(?i)selenium")
	})
}

func TestUserAgentClientHints(t *testing.T) {
	t.Run("no client hints", func(t *testing.T) {
		res := UserAgent(&Snapshot{NavigatorData: NavigatorInfo{UserAgent: regularChromeUA}})
		assert.False(t, res.ClientHints.Available)
	})

	t.Run("normal brands", func(t *testing.T) {
		res := UserAgent(&Snapshot{NavigatorData: NavigatorInfo{
			UserAgent: regularChromeUA,
			UAData:    &ClientHints{Brands: []string{"Chromium", "Google Chrome", "Not/A)Brand"}},
		}})
		assert.True(t, res.ClientHints.Available)
		assert.False(t, res.ClientHints.Suspicious)
		assert.False(t, res.Suspicious)
	})

	t.Run("headless brand flips the verdict alone", func(t *testing.T) {
		res := UserAgent(&Snapshot{NavigatorData: NavigatorInfo{
			UserAgent: regularChromeUA,
			UAData:    &ClientHints{Brands: []string{"HeadlessChrome"}},
		}})
		assert.True(t, res.ClientHints.Suspicious)
		assert.True(t, res.Suspicious)
		assert.Empty(t, res.Matches)
	})
}
