package i18n

import (
	"context"
	"testing"

	"github.com/jonathan/career-guide/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguages(t *testing.T) {
	langs := Languages()
	assert.Len(t, langs, 23)
	assert.Equal(t, "en", langs[0].Code)
	assert.Equal(t, "Kannada", Info("kn").Name)
	assert.Equal(t, "English", Info("zz").Name)
}

func TestResolveCode(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"hi", "hi", true},
		{"TA", "ta", true},
		{" kn ", "kn", true},
		{"hi-IN", "hi", true},
		{"sat", "sat", true},
		{"fr", "", false},
		{"not a tag!", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ResolveCode(tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestMatchAcceptLanguage(t *testing.T) {
	code, ok := MatchAcceptLanguage("fr-FR, te;q=0.8, en;q=0.5")
	assert.True(t, ok)
	assert.Equal(t, "te", code)

	_, ok = MatchAcceptLanguage("fr, de")
	assert.False(t, ok)
}

func TestTableLookup(t *testing.T) {
	table := Table{
		"home": map[string]any{
			"title":  "Discover",
			"nested": map[string]any{"deep": "value"},
		},
		"count": 3.0,
	}

	assert.Equal(t, "Discover", table.Lookup("home.title"))
	assert.Equal(t, "value", table.Lookup("home.nested.deep"))
	// Missing keys come back unchanged
	assert.Equal(t, "home.missing", table.Lookup("home.missing"))
	assert.Equal(t, "nope.title", table.Lookup("nope.title"))
	// Non-string leaves and intermediate nodes also fall back to the key
	assert.Equal(t, "home", table.Lookup("home"))
	assert.Equal(t, "count", table.Lookup("count"))
	assert.Equal(t, "home.title.extra", table.Lookup("home.title.extra"))
}

func TestLoadTable_AllLocaleFilesParse(t *testing.T) {
	for _, code := range []string{"en", "hi", "kn", "ta", "te"} {
		table, err := LoadTable(code)
		require.NoError(t, err, code)
		assert.NotEqual(t, "nav.home", table.Lookup("nav.home"), code)
	}

	_, err := LoadTable("bn")
	assert.Error(t, err)
}

func TestProvider_Translate(t *testing.T) {
	p := NewProvider(context.Background(), nil)
	assert.Equal(t, "en", p.Language())
	assert.Equal(t, "Home", p.Translate("nav.home"))
	assert.Equal(t, "missing.key", p.Translate("missing.key"))
}

func TestProvider_SetLanguage_Persists(t *testing.T) {
	ctx := context.Background()
	kv := db.NewMemoryStore()
	p := NewProvider(ctx, kv)

	active, err := p.SetLanguage(ctx, "hi-IN")
	require.NoError(t, err)
	assert.Equal(t, "hi", active)
	assert.Equal(t, "होम", p.Translate("nav.home"))

	restored := NewProvider(ctx, kv)
	assert.Equal(t, "hi", restored.Language())

	raw, err := kv.Get(ctx, db.KeyLanguage)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(raw))
}

func TestProvider_RestoresSavedLanguage(t *testing.T) {
	ctx := context.Background()
	for _, stored := range []string{"ta", `"ta"`} {
		kv := db.NewMemoryStore()
		require.NoError(t, kv.Set(ctx, db.KeyLanguage, []byte(stored)))
		assert.Equal(t, "ta", NewProvider(ctx, kv).Language(), stored)
	}
}

func TestProvider_SetLanguage_FallsBackWithoutTable(t *testing.T) {
	ctx := context.Background()
	kv := db.NewMemoryStore()
	p := NewProvider(ctx, kv)

	active, err := p.SetLanguage(ctx, "bn")
	require.NoError(t, err)
	assert.Equal(t, "en", active)
	assert.Equal(t, "Home", p.Translate("nav.home"))

	// Nothing saved for an unavailable language
	_, err = kv.Get(ctx, db.KeyLanguage)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestProvider_PartialTableReturnsKey(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(ctx, nil)
	_, err := p.SetLanguage(ctx, "kn")
	require.NoError(t, err)

	assert.Equal(t, "ಮುಖಪುಟ", p.Translate("nav.home"))
	assert.Equal(t, "profile.photoTooLarge", p.Translate("profile.photoTooLarge"))
}
