// Package profile loads, validates and saves user profiles.
package profile

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/career-guide/internal/db"
	"github.com/jonathan/career-guide/internal/types"
)

// MaxPhotoBytes is the largest accepted profile photo.
const MaxPhotoBytes = 2 * 1024 * 1024

// Repository stores one profile per identity.
type Repository struct {
	kv       db.Store
	validate *validator.Validate
}

// NewRepository creates a profile repository backed by kv.
func NewRepository(kv db.Store) *Repository {
	return &Repository{kv: kv, validate: validator.New()}
}

// Load returns the saved profile for the session's identity. A user without a
// saved profile gets an empty one with the contact email pre-filled.
func (r *Repository) Load(ctx context.Context, s *types.Session) (*types.Profile, error) {
	p := types.NewProfile()
	found, err := db.GetJSON(ctx, r.kv, db.ProfileKey(s.Email), p)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile for %s: %w", s.Email, err)
	}
	if !found {
		p.Contact.Email = s.Email
		return p, nil
	}
	p.Normalize()
	return p, nil
}

// Save validates and persists p under identity.
func (r *Repository) Save(ctx context.Context, identity string, p *types.Profile) error {
	p.Normalize()
	if err := r.Validate(p); err != nil {
		return err
	}
	if err := db.SetJSON(ctx, r.kv, db.ProfileKey(identity), p); err != nil {
		return fmt.Errorf("failed to save profile for %s: %w", identity, err)
	}
	return nil
}

// Validate checks the profile's entries against their field rules.
func (r *Repository) Validate(p *types.Profile) error {
	if err := r.validate.Struct(p); err != nil {
		return newValidationError(err)
	}
	return nil
}

// SetPhoto stores data as the profile photo data URL. An empty mime is
// sniffed from the content. Only JPEG and PNG are accepted since those are
// the formats the resume export can embed.
func SetPhoto(p *types.Profile, mime string, data []byte) error {
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	mime, _, _ = strings.Cut(mime, ";")
	mime = strings.TrimSpace(strings.ToLower(mime))
	if !strings.HasPrefix(mime, "image/") {
		return &ErrPhotoNotImage{MIME: mime}
	}
	if len(data) > MaxPhotoBytes {
		return &ErrPhotoTooLarge{Size: len(data)}
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return &ErrPhotoNotImage{MIME: mime}
	}
	switch format {
	case "jpeg", "png":
		mime = "image/" + format
	default:
		return &ErrPhotoNotImage{MIME: "image/" + format}
	}

	p.ProfilePhoto = "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	return nil
}

// RemovePhoto clears the profile photo.
func RemovePhoto(p *types.Profile) {
	p.ProfilePhoto = ""
}
