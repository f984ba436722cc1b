package theme

import (
	"context"
	"testing"

	"github.com/jonathan/career-guide/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResume_KnownName(t *testing.T) {
	th := Resume("Crimson Red")
	assert.Equal(t, "Crimson Red", th.Name)
	assert.Equal(t, RGB{220, 38, 38}, th.Primary)
}

func TestResume_Fallback(t *testing.T) {
	for _, name := range []string{"", "Neon Pink", "classic blue"} {
		th := Resume(name)
		assert.Equal(t, DefaultResumeTheme, th.Name, "name %q", name)
		assert.Equal(t, RGB{0, 51, 102}, th.Primary)
	}
}

func TestResumeThemeNames(t *testing.T) {
	names := ResumeThemeNames()
	assert.Len(t, names, 10)
	assert.Equal(t, "Chocolate Brown", names[0])
	assert.Contains(t, names, DefaultResumeTheme)
}

func TestRGBHex(t *testing.T) {
	assert.Equal(t, "#003366", RGB{0, 51, 102}.Hex())
}

func TestApp_Fallback(t *testing.T) {
	assert.Equal(t, "dark", App("dark").ID)
	assert.Equal(t, DefaultAppTheme, App("unknown").ID)
	assert.Len(t, AppThemes(), 6)
	assert.Equal(t, "light", AppThemes()[0].ID)
}

func TestProvider_SetTheme_Persists(t *testing.T) {
	ctx := context.Background()
	kv := db.NewMemoryStore()

	p := NewProvider(ctx, kv)
	assert.Equal(t, "light", p.CurrentTheme().ID)

	th, err := p.SetTheme(ctx, "ocean")
	require.NoError(t, err)
	assert.Equal(t, "Ocean Blue", th.Name)
	assert.Equal(t, "#0284c7", p.CurrentTheme().Colors.Primary)

	restored := NewProvider(ctx, kv)
	assert.Equal(t, "ocean", restored.CurrentTheme().ID)

	raw, err := kv.Get(ctx, db.KeyAppTheme)
	require.NoError(t, err)
	assert.Equal(t, "ocean", string(raw))
}

func TestProvider_RestoresSavedTheme(t *testing.T) {
	ctx := context.Background()
	for _, stored := range []string{"dark", `"dark"`} {
		kv := db.NewMemoryStore()
		require.NoError(t, kv.Set(ctx, db.KeyAppTheme, []byte(stored)))
		assert.Equal(t, "dark", NewProvider(ctx, kv).CurrentTheme().ID, stored)
	}
}

func TestProvider_IgnoresUnknownSavedTheme(t *testing.T) {
	ctx := context.Background()
	kv := db.NewMemoryStore()
	require.NoError(t, db.SetString(ctx, kv, db.KeyAppTheme, "neon"))

	p := NewProvider(ctx, kv)
	assert.Equal(t, DefaultAppTheme, p.CurrentTheme().ID)
}

func TestProvider_NilStore(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(ctx, nil)
	_, err := p.SetTheme(ctx, "royal")
	require.NoError(t, err)
	assert.Equal(t, "royal", p.CurrentTheme().ID)
}
