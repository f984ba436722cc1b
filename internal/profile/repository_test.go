package profile

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/jonathan/career-guide/internal/db"
	"github.com/jonathan/career-guide/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func session(email string) *types.Session {
	return &types.Session{Name: "Asha", Email: email}
}

func TestRepository_LoadNewProfile(t *testing.T) {
	repo := NewRepository(db.NewMemoryStore())

	p, err := repo.Load(context.Background(), session("asha@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", p.Contact.Email)
	assert.Empty(t, p.Education)
	assert.NotNil(t, p.Education)
}

func TestRepository_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	kv := db.NewMemoryStore()
	repo := NewRepository(kv)

	p := types.NewProfile()
	p.About = "Student from Mandya"
	p.Contact.Email = "other@example.com"
	p.Skills = []string{"Teamwork", " "}
	p.AddEducation(types.Education{Level: "12th", Stream: "Science", Year: "2023"})

	require.NoError(t, repo.Save(ctx, "asha@example.com", p))

	loaded, err := repo.Load(ctx, session("asha@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "Student from Mandya", loaded.About)
	// Saved contact email is not overwritten by the session identity
	assert.Equal(t, "other@example.com", loaded.Contact.Email)
	assert.Equal(t, []string{"Teamwork"}, loaded.Skills)
	require.Len(t, loaded.Education, 1)
	assert.Equal(t, "2023", loaded.Education[0].Year)

	// Profiles are isolated per identity
	other, err := repo.Load(ctx, session("ravi@example.com"))
	require.NoError(t, err)
	assert.Empty(t, other.About)
}

func TestRepository_LoadCorruptBlob(t *testing.T) {
	ctx := context.Background()
	kv := db.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, db.ProfileKey("a@b.co"), []byte("{not json")))

	_, err := NewRepository(kv).Load(ctx, session("a@b.co"))
	assert.Error(t, err)
}

func TestRepository_Validate(t *testing.T) {
	repo := NewRepository(db.NewMemoryStore())

	tests := []struct {
		name    string
		mutate  func(p *types.Profile)
		wantErr string
	}{
		{"empty profile", func(p *types.Profile) {}, ""},
		{
			"experience missing role",
			func(p *types.Profile) { p.AddExperience(types.Experience{Company: "Acme"}) },
			"Experience[0].Role (required)",
		},
		{
			"project link without scheme",
			func(p *types.Profile) { p.AddProject(types.Project{Title: "X", Link: "github.com/asha/crop-app"}) },
			"",
		},
		{
			"bad contact email",
			func(p *types.Profile) { p.Contact.Email = "nope" },
			"Contact.Email (email)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := types.NewProfile()
			tt.mutate(p)
			err := repo.Validate(p)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.wantErr)
		})
	}
}

func TestRepository_SaveBareProjectLink(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(db.NewMemoryStore())

	p := types.NewProfile()
	p.AddProject(types.Project{Title: "Crop App", Link: "github.com/asha/crop-app"})
	require.NoError(t, repo.Save(ctx, "asha@example.com", p))

	loaded, err := repo.Load(ctx, session("asha@example.com"))
	require.NoError(t, err)
	require.Len(t, loaded.Projects, 1)
	assert.Equal(t, "github.com/asha/crop-app", loaded.Projects[0].Link)
}

func TestRepository_SaveRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	kv := db.NewMemoryStore()
	repo := NewRepository(kv)

	p := types.NewProfile()
	p.AddCertification(types.Certification{Issuer: "NPTEL"})

	var verr *ValidationError
	require.ErrorAs(t, repo.Save(ctx, "a@b.co", p), &verr)

	_, err := kv.Get(ctx, db.ProfileKey("a@b.co"))
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestSetPhoto(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))

	t.Run("stores data url", func(t *testing.T) {
		p := types.NewProfile()
		require.NoError(t, SetPhoto(p, "image/png", buf.Bytes()))
		assert.True(t, strings.HasPrefix(p.ProfilePhoto, "data:image/png;base64,"))

		RemovePhoto(p)
		assert.Empty(t, p.ProfilePhoto)
	})

	t.Run("sniffs missing mime", func(t *testing.T) {
		p := types.NewProfile()
		require.NoError(t, SetPhoto(p, "", buf.Bytes()))
		assert.True(t, strings.HasPrefix(p.ProfilePhoto, "data:image/png;base64,"))
	})

	t.Run("rejects non image", func(t *testing.T) {
		p := types.NewProfile()
		err := SetPhoto(p, "application/pdf", []byte("%PDF-1.4"))
		var notImage *ErrPhotoNotImage
		require.ErrorAs(t, err, &notImage)
		assert.Equal(t, "application/pdf", notImage.MIME)
		assert.Empty(t, p.ProfilePhoto)
	})

	t.Run("rejects oversized", func(t *testing.T) {
		p := types.NewProfile()
		err := SetPhoto(p, "image/jpeg", make([]byte, MaxPhotoBytes+1))
		var tooLarge *ErrPhotoTooLarge
		require.ErrorAs(t, err, &tooLarge)
		assert.Empty(t, p.ProfilePhoto)
	})

	t.Run("accepts exactly the limit", func(t *testing.T) {
		p := types.NewProfile()
		padded := append(bytes.Clone(buf.Bytes()), make([]byte, MaxPhotoBytes-buf.Len())...)
		assert.NoError(t, SetPhoto(p, "image/png", padded))
	})

	t.Run("stores jpeg", func(t *testing.T) {
		var jpg bytes.Buffer
		require.NoError(t, jpeg.Encode(&jpg, image.NewGray(image.Rect(0, 0, 1, 1)), nil))
		p := types.NewProfile()
		require.NoError(t, SetPhoto(p, "", jpg.Bytes()))
		assert.True(t, strings.HasPrefix(p.ProfilePhoto, "data:image/jpeg;base64,"))
	})

	t.Run("uses decoded format over claimed mime", func(t *testing.T) {
		p := types.NewProfile()
		require.NoError(t, SetPhoto(p, "image/jpeg", buf.Bytes()))
		assert.True(t, strings.HasPrefix(p.ProfilePhoto, "data:image/png;base64,"))
	})

	t.Run("rejects gif", func(t *testing.T) {
		var g bytes.Buffer
		require.NoError(t, gif.Encode(&g, image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.Black}), nil))
		p := types.NewProfile()
		err := SetPhoto(p, "image/gif", g.Bytes())
		var notImage *ErrPhotoNotImage
		require.ErrorAs(t, err, &notImage)
		assert.Equal(t, "image/gif", notImage.MIME)
		assert.Empty(t, p.ProfilePhoto)
	})

	t.Run("rejects undecodable image", func(t *testing.T) {
		p := types.NewProfile()
		err := SetPhoto(p, "image/webp", []byte("RIFF....WEBPVP8 "))
		var notImage *ErrPhotoNotImage
		require.ErrorAs(t, err, &notImage)
		assert.Empty(t, p.ProfilePhoto)
	})
}
