package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCDP(t *testing.T) {
	t.Run("clean environment", func(t *testing.T) {
		res := CDP(&Snapshot{})
		assert.False(t, res.Detected)
		assert.Empty(t, res.Signals)
		assert.NotNil(t, res.Signals)
		assert.Zero(t, res.CDCKeysFound)
	})

	t.Run("cdc prefixed keys", func(t *testing.T) {
		snap := &Snapshot{GlobalsData: []GlobalProp{
			{Name: "cdc_adoQpoasnfa76pfcZLmcfl_Array", Kind: "function"},
			{Name: "cdc_adoQpoasnfa76pfcZLmcfl_Promise", Kind: "function"},
		}}
		res := CDP(snap)
		assert.True(t, res.Detected)
		assert.Equal(t, 2, res.CDCKeysFound)
		assert.Contains(t, res.Signals, "chromedriver_cdc")
	})

	t.Run("chromedriver dollar artifact", func(t *testing.T) {
		snap := &Snapshot{GlobalsData: []GlobalProp{
			{Name: "$cdc_asdjflasutopfhvcZLmcfl_", Kind: "object"},
		}}
		res := CDP(snap)
		assert.True(t, res.Detected)
		assert.Contains(t, res.Signals, "chromedriver_artifact")
		// $-prefixed, so not counted as a cdc_ key
		assert.Zero(t, res.CDCKeysFound)
	})

	t.Run("puppeteer and playwright eval scripts", func(t *testing.T) {
		snap := &Snapshot{GlobalsData: []GlobalProp{
			{Name: "__puppeteer_evaluation_script__", Kind: "function"},
			{Name: "__playwright_evaluation_script__", Kind: "function"},
		}}
		res := CDP(snap)
		assert.Contains(t, res.Signals, "puppeteer_eval")
		assert.Contains(t, res.Signals, "playwright_eval")
	})

	t.Run("duplicate artifacts collapse to one signal", func(t *testing.T) {
		snap := &Snapshot{GlobalsData: []GlobalProp{
			{Name: "__lastWatirAlert", Kind: "string"},
			{Name: "__lastWatirConfirm", Kind: "string"},
			{Name: "__lastWatirPrompt", Kind: "string"},
		}}
		res := CDP(snap)
		require.Len(t, res.Signals, 1)
		assert.Equal(t, "watir_artifact", res.Signals[0])
	})

	t.Run("patched webdriver getter", func(t *testing.T) {
		snap := &Snapshot{WebdriverGet: &GetterInfo{
			Source: "function get webdriver() { return false; }",
		}}
		res := CDP(snap)
		assert.True(t, res.Detected)
		assert.Contains(t, res.Signals, "webdriver_getter_patched")
	})

	t.Run("native webdriver getter", func(t *testing.T) {
		snap := &Snapshot{WebdriverGet: &GetterInfo{
			Source: "function get webdriver() { [native code] }",
		}}
		res := CDP(snap)
		assert.False(t, res.Detected)
	})
}

func TestStackTrace(t *testing.T) {
	t.Run("not instrumented", func(t *testing.T) {
		res := StackTrace(&Snapshot{})
		assert.False(t, res.Available)
		assert.False(t, res.Detected)
	})

	t.Run("instrumented with no reads", func(t *testing.T) {
		res := StackTrace(&Snapshot{TrapsData: TrapCounters{Instrumented: true}})
		assert.True(t, res.Available)
		assert.False(t, res.Detected)
	})

	t.Run("stack read by protocol client", func(t *testing.T) {
		res := StackTrace(&Snapshot{TrapsData: TrapCounters{Instrumented: true, StackReads: 1}})
		assert.True(t, res.Detected)
		assert.Equal(t, 1, res.Reads)
	})
}

func TestConsoleLeak(t *testing.T) {
	t.Run("not instrumented", func(t *testing.T) {
		res := ConsoleLeak(&Snapshot{})
		assert.False(t, res.Available)
	})

	t.Run("single read is the page's own console", func(t *testing.T) {
		res := ConsoleLeak(&Snapshot{TrapsData: TrapCounters{Instrumented: true, ConsoleReads: 1}})
		assert.True(t, res.Available)
		assert.False(t, res.Detected)
	})

	t.Run("double read means serialization", func(t *testing.T) {
		res := ConsoleLeak(&Snapshot{TrapsData: TrapCounters{Instrumented: true, ConsoleReads: 2}})
		assert.True(t, res.Detected)
		assert.Equal(t, 2, res.Reads)
	})
}
