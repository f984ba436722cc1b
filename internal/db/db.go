// Package db provides key/value persistence for users, profiles, transcripts and preferences.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("key not found")

// Store is an opaque key/value store. Values are serialized JSON blobs,
// except the preference keys which hold plain strings (see GetString).
type Store interface {
	// Get returns the value for key or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any existing value
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
	// Close releases any resources held by the store
	Close() error
}

// Open opens a store from a URL.
//
//	sqlite://path/to/file.db   local SQLite file (a bare path is treated the same way)
//	postgres://... postgresql://...
//	redis://... rediss://...
//	memory://
func Open(ctx context.Context, storeURL string) (Store, error) {
	storeURL = strings.TrimSpace(storeURL)
	switch {
	case storeURL == "":
		return nil, fmt.Errorf("store URL is empty")
	case strings.HasPrefix(storeURL, "memory://"):
		return NewMemoryStore(), nil
	case strings.HasPrefix(storeURL, "postgres://"), strings.HasPrefix(storeURL, "postgresql://"):
		return ConnectPostgres(ctx, storeURL)
	case strings.HasPrefix(storeURL, "redis://"), strings.HasPrefix(storeURL, "rediss://"):
		return ConnectRedis(ctx, storeURL)
	case strings.HasPrefix(storeURL, "sqlite://"):
		return OpenSQLite(ctx, strings.TrimPrefix(storeURL, "sqlite://"))
	case strings.Contains(storeURL, "://"):
		return nil, fmt.Errorf("unsupported store URL scheme: %s", storeURL)
	default:
		return OpenSQLite(ctx, storeURL)
	}
}

// GetJSON loads key and decodes it into dst.
// Returns false when the key does not exist.
func GetJSON(ctx context.Context, s Store, key string, dst any) (bool, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// GetString reads a plain string value. A value saved as a JSON string by
// older builds is unquoted. The bool reports whether key had a value.
func GetString(ctx context.Context, s Store, key string) (string, bool, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	if len(data) > 1 && data[0] == '"' {
		var quoted string
		if err := json.Unmarshal(data, &quoted); err == nil {
			return quoted, true, nil
		}
	}
	return strings.TrimSpace(string(data)), true, nil
}

// SetString stores value under key as is, without JSON encoding.
func SetString(ctx context.Context, s Store, key, value string) error {
	return s.Set(ctx, key, []byte(value))
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}
