package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/career-guide/internal/db"
	"github.com/jonathan/career-guide/internal/types"
)

// Store keeps registered users as a single list under db.KeyUsers and the
// signed-in user under db.KeyCurrentUser.
//
// Secrets are stored and compared in plain text and sessions never expire.
// Writes to the user list are serialized so concurrent registrations on one
// Store do not drop each other.
type Store struct {
	kv db.Store
	mu sync.Mutex
}

// NewStore creates a credential store over kv.
func NewStore(kv db.Store) *Store {
	return &Store{kv: kv}
}

// Register adds a user and signs them in.
// Fails with *ErrEmailAlreadyExists when the email is taken.
func (s *Store) Register(ctx context.Context, user types.User) (*types.Session, error) {
	if err := s.addUser(ctx, user); err != nil {
		return nil, err
	}
	return s.Authenticate(ctx, user.Email, user.Password)
}

func (s *Store) addUser(ctx context.Context, user types.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users(ctx)
	if err != nil {
		return err
	}

	for _, u := range users {
		if u.Email == user.Email {
			return &ErrEmailAlreadyExists{Email: user.Email}
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	users = append(users, user)
	if err := db.SetJSON(ctx, s.kv, db.KeyUsers, users); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}

// Authenticate checks email and secret against the stored users and records
// the session. Fails with *ErrInvalidCredentials on any mismatch.
func (s *Store) Authenticate(ctx context.Context, email, secret string) (*types.Session, error) {
	users, err := s.users(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Email == email && users[i].Password == secret {
			session := users[i].Session()
			if err := db.SetJSON(ctx, s.kv, db.KeyCurrentUser, session); err != nil {
				return nil, fmt.Errorf("failed to save session: %w", err)
			}
			return session, nil
		}
	}

	return nil, &ErrInvalidCredentials{}
}

// CurrentSession returns the signed-in user, or nil when nobody is signed in.
func (s *Store) CurrentSession(ctx context.Context) (*types.Session, error) {
	var session types.Session
	found, err := db.GetJSON(ctx, s.kv, db.KeyCurrentUser, &session)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &session, nil
}

// EndSession signs the current user out.
func (s *Store) EndSession(ctx context.Context) error {
	if err := s.kv.Delete(ctx, db.KeyCurrentUser); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

func (s *Store) users(ctx context.Context) ([]types.User, error) {
	users := []types.User{}
	if _, err := db.GetJSON(ctx, s.kv, db.KeyUsers, &users); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}
