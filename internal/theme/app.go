package theme

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/jonathan/career-guide/internal/db"
)

// Tokens is the set of colour values every view styles itself with.
type Tokens struct {
	Background   string `json:"background"`
	Foreground   string `json:"foreground"`
	Primary      string `json:"primary"`
	PrimaryHover string `json:"primaryHover"`
	Secondary    string `json:"secondary"`
	Accent       string `json:"accent"`
	Border       string `json:"border"`
	CardBg       string `json:"cardBg"`
	InputBg      string `json:"inputBg"`
	Muted        string `json:"muted"`
}

// AppTheme is a named application palette.
type AppTheme struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Colors Tokens `json:"colors"`
}

// DefaultAppTheme is the palette used when none is selected or the id is unknown.
const DefaultAppTheme = "light"

// appThemeOrder fixes the listing order.
var appThemeOrder = []string{"light", "dark", "nature", "sunset", "royal", "ocean"}

var appThemes = map[string]AppTheme{
	"light": {ID: "light", Name: "Light", Colors: Tokens{
		Background: "#ffffff", Foreground: "#000000", Primary: "#003366", PrimaryHover: "#002244",
		Secondary: "#f3f4f6", Accent: "#60a5fa", Border: "#e5e7eb", CardBg: "#ffffff", InputBg: "#ffffff", Muted: "#6b7280",
	}},
	"dark": {ID: "dark", Name: "Dark", Colors: Tokens{
		Background: "#1a1a1a", Foreground: "#ffffff", Primary: "#60a5fa", PrimaryHover: "#3b82f6",
		Secondary: "#2d2d2d", Accent: "#93c5fd", Border: "#404040", CardBg: "#262626", InputBg: "#2d2d2d", Muted: "#9ca3af",
	}},
	"nature": {ID: "nature", Name: "Nature Green", Colors: Tokens{
		Background: "#f0fdf4", Foreground: "#14532d", Primary: "#059669", PrimaryHover: "#047857",
		Secondary: "#dcfce7", Accent: "#10b981", Border: "#bbf7d0", CardBg: "#ffffff", InputBg: "#ffffff", Muted: "#6b7280",
	}},
	"sunset": {ID: "sunset", Name: "Sunset Orange", Colors: Tokens{
		Background: "#fff7ed", Foreground: "#7c2d12", Primary: "#ea580c", PrimaryHover: "#c2410c",
		Secondary: "#ffedd5", Accent: "#f97316", Border: "#fed7aa", CardBg: "#ffffff", InputBg: "#ffffff", Muted: "#6b7280",
	}},
	"royal": {ID: "royal", Name: "Royal Purple", Colors: Tokens{
		Background: "#faf5ff", Foreground: "#581c87", Primary: "#7c3aed", PrimaryHover: "#6d28d9",
		Secondary: "#f3e8ff", Accent: "#a78bfa", Border: "#e9d5ff", CardBg: "#ffffff", InputBg: "#ffffff", Muted: "#6b7280",
	}},
	"ocean": {ID: "ocean", Name: "Ocean Blue", Colors: Tokens{
		Background: "#f0f9ff", Foreground: "#0c4a6e", Primary: "#0284c7", PrimaryHover: "#0369a1",
		Secondary: "#e0f2fe", Accent: "#38bdf8", Border: "#bae6fd", CardBg: "#ffffff", InputBg: "#ffffff", Muted: "#6b7280",
	}},
}

// App looks up an application theme by id, falling back to light.
func App(id string) AppTheme {
	if t, ok := appThemes[id]; ok {
		return t
	}
	return appThemes[DefaultAppTheme]
}

// AppThemes lists every application theme in display order.
func AppThemes() []AppTheme {
	out := make([]AppTheme, 0, len(appThemeOrder))
	for _, id := range appThemeOrder {
		out = append(out, appThemes[id])
	}
	return out
}

// Provider holds the active application theme. The selection is persisted
// under db.KeyAppTheme when a store is attached.
type Provider struct {
	mu      sync.RWMutex
	current AppTheme
	kv      db.Store
}

// NewProvider creates a provider, restoring a previously saved selection from kv.
// kv may be nil for a purely in-memory provider.
func NewProvider(ctx context.Context, kv db.Store) *Provider {
	p := &Provider{current: App(DefaultAppTheme), kv: kv}
	if kv == nil {
		return p
	}
	saved, found, err := db.GetString(ctx, kv, db.KeyAppTheme)
	if err != nil {
		log.Printf("[THEME] Failed to load saved theme, using %s: %v", DefaultAppTheme, err)
		return p
	}
	if _, ok := appThemes[saved]; found && ok {
		p.current = appThemes[saved]
	}
	return p
}

// CurrentTheme returns the active palette.
func (p *Provider) CurrentTheme() AppTheme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// SetTheme activates the theme with id (unknown ids select light) and saves
// the id so the next session starts with it.
func (p *Provider) SetTheme(ctx context.Context, id string) (AppTheme, error) {
	t := App(id)
	p.mu.Lock()
	p.current = t
	p.mu.Unlock()

	if p.kv != nil {
		if err := db.SetString(ctx, p.kv, db.KeyAppTheme, id); err != nil {
			return t, fmt.Errorf("failed to save theme: %w", err)
		}
	}
	return t, nil
}
