package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/jonathan/career-guide/internal/db"
)

//go:embed locales/*.json
var localeFiles embed.FS

// Table is a nested translation table as stored in a locale file.
type Table map[string]any

// tables caches parsed locale files.
var (
	tables   = make(map[string]Table)
	tablesMu sync.RWMutex
)

// LoadTable loads the table for code from the embedded locale files.
// Returns an error when the language has no locale file.
func LoadTable(code string) (Table, error) {
	tablesMu.RLock()
	if t, ok := tables[code]; ok {
		tablesMu.RUnlock()
		return t, nil
	}
	tablesMu.RUnlock()

	data, err := localeFiles.ReadFile("locales/" + code + ".json")
	if err != nil {
		return nil, fmt.Errorf("translation file for %s not found: %w", code, err)
	}
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse translation file %s: %w", code, err)
	}

	tablesMu.Lock()
	tables[code] = t
	tablesMu.Unlock()
	return t, nil
}

// Lookup resolves a dotted key ("home.title") in t.
// Missing keys and non-string leaves return the key itself.
func (t Table) Lookup(key string) string {
	var value any = map[string]any(t)
	for _, part := range strings.Split(key, ".") {
		m, ok := value.(map[string]any)
		if !ok {
			return key
		}
		if value, ok = m[part]; !ok {
			return key
		}
	}
	if s, ok := value.(string); ok {
		return s
	}
	return key
}

// Provider holds the active language and its table. The selection is
// persisted under db.KeyLanguage when a store is attached.
type Provider struct {
	mu       sync.RWMutex
	language string
	table    Table
	kv       db.Store
}

// NewProvider creates a provider with the saved language (or English) loaded.
// kv may be nil.
func NewProvider(ctx context.Context, kv db.Store) *Provider {
	p := &Provider{kv: kv}
	saved := DefaultLanguage
	if kv != nil {
		code, found, err := db.GetString(ctx, kv, db.KeyLanguage)
		switch {
		case err != nil:
			log.Printf("[I18N] Failed to load saved language: %v", err)
		case found && code != "":
			saved = code
		}
	}
	p.load(saved)
	return p
}

// Language returns the active language code.
func (p *Provider) Language() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.language
}

// Translate returns the translation of key in the active language, or key
// unchanged when the table has no entry.
func (p *Provider) Translate(key string) string {
	p.mu.RLock()
	t := p.table
	p.mu.RUnlock()
	if t == nil {
		return key
	}
	return t.Lookup(key)
}

// SetLanguage loads the table for code and makes it active. When the language
// has no table, English is activated instead and nothing is saved.
// Returns the code that ended up active.
func (p *Provider) SetLanguage(ctx context.Context, code string) (string, error) {
	if resolved, ok := ResolveCode(code); ok {
		code = resolved
	}
	active := p.load(code)
	if active != code || p.kv == nil {
		return active, nil
	}
	if err := db.SetString(ctx, p.kv, db.KeyLanguage, code); err != nil {
		return active, fmt.Errorf("failed to save language: %w", err)
	}
	return active, nil
}

// load activates code, falling back to English.
func (p *Provider) load(code string) string {
	if resolved, ok := ResolveCode(code); ok {
		code = resolved
	}
	t, err := LoadTable(code)
	if err != nil {
		log.Printf("[I18N] %v, falling back to %s", err, DefaultLanguage)
		code = DefaultLanguage
		if t, err = LoadTable(DefaultLanguage); err != nil {
			log.Printf("[I18N] Failed to load fallback translations: %v", err)
			t = Table{}
		}
	}

	p.mu.Lock()
	p.language = code
	p.table = t
	p.mu.Unlock()
	return code
}
