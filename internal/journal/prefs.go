package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jasonroy7dct/site/internal/kv"
	"github.com/jasonroy7dct/site/internal/logging"
	"github.com/jasonroy7dct/site/internal/similarity"
)

// Preference slots. Each one is read and written on its own.
const (
	LangKey     = "rb_lang_v1"
	SimModeKey  = "rb_sim_mode_v1"
	PageSizeKey = "rb_page_size_v1"
	ThemeKey    = "rb_theme_v1"
	DraftKey    = "rb_draft_v1"
	LastRunKey  = "rb_last_run_ts"
)

// Languages are the accepted output language preferences.
var Languages = []string{"auto", "zh-Hant", "en"}

// Theme colours.
const (
	DefaultPrimary = "#2563eb"
	DefaultAccent  = "#6366f1"
	primary2Amount = 0.18
)

// Theme is the saved colour scheme.
type Theme struct {
	Primary  string `json:"primary"`
	Primary2 string `json:"primary2"`
	Accent   string `json:"accent"`
}

// NewTheme derives Primary2 from primary.
func NewTheme(primary, accent string) Theme {
	return Theme{Primary: primary, Primary2: Darken(primary, primary2Amount), Accent: accent}
}

// DefaultTheme is used until a theme is saved.
func DefaultTheme() Theme { return NewTheme(DefaultPrimary, DefaultAccent) }

// Darken scales each channel of a #rrggbb colour by 1-amt. Anything that is
// not a six digit hex colour is returned unchanged.
func Darken(hex string, amt float64) string {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return hex
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return hex
	}
	ch := func(shift uint) string {
		c := float64((v >> shift) & 0xff)
		n := math.Round(c * (1 - amt))
		n = math.Max(0, math.Min(255, n))
		return fmt.Sprintf("%02x", int(n))
	}
	return "#" + ch(16) + ch(8) + ch(0)
}

// Prefs stores user preferences. The draft lives in session slots so it
// does not outlive the process; everything else is persistent.
type Prefs struct {
	local   kv.Slots
	session kv.Slots
}

// NewPrefs returns prefs over local. A nil session gets a fresh in-memory
// store.
func NewPrefs(local, session kv.Slots) *Prefs {
	if session == nil {
		session = kv.NewMemory(0)
	}
	return &Prefs{local: local, session: session}
}

func get(slots kv.Slots, key string) (string, bool) {
	v, err := slots.Get(key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			logging.Warn("pref read failed", "key", key, "error", err)
		}
		return "", false
	}
	return v, true
}

func set(slots kv.Slots, key, value string) {
	if err := slots.Set(key, value); err != nil {
		logging.Warn("pref not saved", "key", key, "error", err)
	}
}

// Language returns the output language, "auto" by default.
func (p *Prefs) Language() string {
	if v, ok := get(p.local, LangKey); ok && contains(Languages, v) {
		return v
	}
	return "auto"
}

// SetLanguage saves lang; unknown values save "auto".
func (p *Prefs) SetLanguage(lang string) {
	if !contains(Languages, lang) {
		lang = "auto"
	}
	set(p.local, LangKey, lang)
}

// SimMode returns the tokenization mode for similar-entry lookups.
func (p *Prefs) SimMode() similarity.Mode {
	v, _ := get(p.local, SimModeKey)
	return similarity.ParseMode(v)
}

func (p *Prefs) SetSimMode(m similarity.Mode) {
	set(p.local, SimModeKey, string(similarity.ParseMode(string(m))))
}

// PageSize returns the saved page size, DefaultPageSize when unset or
// invalid.
func (p *Prefs) PageSize() int {
	v, ok := get(p.local, PageSizeKey)
	if !ok {
		return DefaultPageSize
	}
	n, err := strconv.Atoi(v)
	if err != nil || !ValidPageSize(n) {
		return DefaultPageSize
	}
	return n
}

func (p *Prefs) SetPageSize(n int) {
	if !ValidPageSize(n) {
		n = DefaultPageSize
	}
	set(p.local, PageSizeKey, strconv.Itoa(n))
}

// Theme returns the saved theme and whether one was saved.
func (p *Prefs) Theme() (Theme, bool) {
	v, ok := get(p.local, ThemeKey)
	if !ok {
		return DefaultTheme(), false
	}
	var t Theme
	if err := json.Unmarshal([]byte(v), &t); err != nil || t.Primary == "" {
		return DefaultTheme(), false
	}
	return t, true
}

// SetTheme saves a theme built from primary and accent.
func (p *Prefs) SetTheme(primary, accent string) Theme {
	t := NewTheme(primary, accent)
	data, _ := json.Marshal(t)
	set(p.local, ThemeKey, string(data))
	return t
}

// ResetTheme forgets the saved theme.
func (p *Prefs) ResetTheme() {
	if err := p.local.Delete(ThemeKey); err != nil {
		logging.Warn("theme reset failed", "error", err)
	}
}

func (p *Prefs) Draft() string {
	v, _ := get(p.session, DraftKey)
	return v
}

func (p *Prefs) SetDraft(text string) {
	set(p.session, DraftKey, text)
}

// LastRun returns when an analysis last started.
func (p *Prefs) LastRun() (time.Time, bool) {
	v, ok := get(p.local, LastRunKey)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (p *Prefs) SetLastRun(t time.Time) {
	set(p.local, LastRunKey, t.UTC().Format(time.RFC3339Nano))
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
