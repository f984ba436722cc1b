// Package prefs bundles the theme and locale providers into one value that
// is passed explicitly to every view (CLI command or HTTP handler).
package prefs

import (
	"context"
	"sync"

	"github.com/jonathan/career-guide/internal/db"
	"github.com/jonathan/career-guide/internal/i18n"
	"github.com/jonathan/career-guide/internal/theme"
)

// Context carries the active palette and translations.
type Context struct {
	themes *theme.Provider
	locale *i18n.Provider
}

// New creates a Context whose selections are restored from and saved to kv.
func New(ctx context.Context, kv db.Store) *Context {
	return &Context{
		themes: theme.NewProvider(ctx, kv),
		locale: i18n.NewProvider(ctx, kv),
	}
}

var (
	defaultOnce sync.Once
	defaultMu   sync.RWMutex
	defaultCtx  *Context
)

// Default returns the process-wide Context. Unless replaced with SetDefault
// it is an unpersisted light/English context.
func Default() *Context {
	defaultOnce.Do(func() {
		defaultMu.Lock()
		if defaultCtx == nil {
			defaultCtx = New(context.Background(), nil)
		}
		defaultMu.Unlock()
	})
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultCtx
}

// SetDefault replaces the process-wide Context.
func SetDefault(c *Context) {
	defaultMu.Lock()
	defaultCtx = c
	defaultMu.Unlock()
}

// CurrentTheme returns the active application palette.
func (c *Context) CurrentTheme() theme.AppTheme {
	return c.themes.CurrentTheme()
}

// SetTheme activates the palette with id.
func (c *Context) SetTheme(ctx context.Context, id string) (theme.AppTheme, error) {
	return c.themes.SetTheme(ctx, id)
}

// Language returns the active language code.
func (c *Context) Language() string {
	return c.locale.Language()
}

// LanguageName returns the English name of the active language, used to
// steer the counselor's reply language.
func (c *Context) LanguageName() string {
	return i18n.Info(c.locale.Language()).Name
}

// SetLanguage activates code and returns the language that ended up active.
func (c *Context) SetLanguage(ctx context.Context, code string) (string, error) {
	return c.locale.SetLanguage(ctx, code)
}

// T translates key in the active language, returning key when missing.
func (c *Context) T(key string) string {
	return c.locale.Translate(key)
}
