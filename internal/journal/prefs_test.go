package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasonroy7dct/site/internal/kv"
	"github.com/jasonroy7dct/site/internal/similarity"
)

func TestPrefsDefaults(t *testing.T) {
	p := NewPrefs(kv.NewMemory(0), nil)
	assert.Equal(t, "auto", p.Language())
	assert.Equal(t, similarity.Mixed, p.SimMode())
	assert.Equal(t, DefaultPageSize, p.PageSize())
	assert.Equal(t, "", p.Draft())
	_, ok := p.LastRun()
	assert.False(t, ok)
	theme, ok := p.Theme()
	assert.False(t, ok)
	assert.Equal(t, DefaultTheme(), theme)
}

func TestPrefsRoundTrip(t *testing.T) {
	local := kv.NewMemory(0)
	p := NewPrefs(local, nil)
	p.SetLanguage("zh-Hant")
	p.SetSimMode(similarity.CJK)
	p.SetPageSize(50)
	p.SetDraft("half a thought")
	run := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	p.SetLastRun(run)
	p.SetTheme("#ff0000", "#00ff00")

	again := NewPrefs(local, nil)
	assert.Equal(t, "zh-Hant", again.Language())
	assert.Equal(t, similarity.CJK, again.SimMode())
	assert.Equal(t, 50, again.PageSize())
	got, ok := again.LastRun()
	require.True(t, ok)
	assert.True(t, run.Equal(got))
	theme, ok := again.Theme()
	require.True(t, ok)
	assert.Equal(t, Theme{Primary: "#ff0000", Primary2: "#d10000", Accent: "#00ff00"}, theme)

	assert.Equal(t, "", again.Draft(), "draft outlived its session")
	assert.Equal(t, "half a thought", p.Draft())

	p.ResetTheme()
	_, ok = p.Theme()
	assert.False(t, ok)
}

func TestPrefsRejectInvalid(t *testing.T) {
	local := kv.NewMemory(0)
	p := NewPrefs(local, nil)
	p.SetLanguage("fr")
	assert.Equal(t, "auto", p.Language())
	p.SetPageSize(15)
	assert.Equal(t, DefaultPageSize, p.PageSize())

	require.NoError(t, local.Set(PageSizeKey, "abc"))
	assert.Equal(t, DefaultPageSize, p.PageSize())
	require.NoError(t, local.Set(ThemeKey, "{"))
	_, ok := p.Theme()
	assert.False(t, ok)
}

func TestPrefsAreIndependentSlots(t *testing.T) {
	local := kv.NewMemory(0)
	p := NewPrefs(local, nil)
	p.SetLanguage("en")
	p.SetPageSize(20)
	require.NoError(t, local.Set(SimModeKey, "\x00garbage"))

	assert.Equal(t, similarity.Mixed, p.SimMode())
	assert.Equal(t, "en", p.Language())
	assert.Equal(t, 20, p.PageSize())
}

func TestDarken(t *testing.T) {
	tests := []struct {
		in   string
		amt  float64
		want string
	}{
		{"#2563eb", 0.18, "#1e51c1"},
		{"2563eb", 0, "#2563eb"},
		{"#ffffff", 0.5, "#808080"},
		{"#000000", 0.18, "#000000"},
		{"#FFFFFF", 1, "#000000"},
		{"red", 0.18, "red"},
		{"#12345", 0.18, "#12345"},
		{"#gggggg", 0.18, "#gggggg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Darken(tt.in, tt.amt), tt.in)
	}
}
