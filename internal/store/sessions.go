package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/momentumapp/momentum-server/internal/domain"
)

// CreateSession creates a new login session.
func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(sessionPrefix + session.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check session exists: %w", err)
	}
	if exists {
		return fmt.Errorf("session %s: %w", session.ID, ErrAlreadyExists)
	}

	userIndexKey := []byte(sessionByUserPrefix + session.UserID + ":" + session.ID)

	return s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}

		// Create user index for cascade deletion
		return txn.Set(userIndexKey, []byte{})
	})
}

// GetSession retrieves a session by ID.
// Returns ErrSessionExpired for sessions past their expiry.
func (s *Store) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := []byte(sessionPrefix + id)

	var session domain.Session
	if err := s.get(key, &session); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// DeleteSession deletes a session (logout). Idempotent.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(sessionPrefix + sessionID)

	// Get session data (even if expired) to clean up the user index
	var session domain.Session
	if err := s.get(key, &session); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Already gone
		}
		return fmt.Errorf("get session for deletion: %w", err)
	}

	userIndexKey := []byte(sessionByUserPrefix + session.UserID + ":" + sessionID)

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(key); err != nil {
			return err
		}
		return txn.Delete(userIndexKey)
	})
}

// DeleteUserSessions deletes every session belonging to a user.
// Returns the number of sessions deleted.
func (s *Store) DeleteUserSessions(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	prefix := sessionByUserPrefix + userID + ":"

	var sessionIDs []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			key := string(it.Item().Key())
			sessionIDs = append(sessionIDs, strings.TrimPrefix(key, prefix))
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("list user sessions: %w", err)
	}

	for _, id := range sessionIDs {
		if err := s.DeleteSession(ctx, id); err != nil {
			return 0, err
		}
	}

	return len(sessionIDs), nil
}

// DeleteExpiredSessions removes all sessions past their expiry.
// Returns the number of sessions deleted.
func (s *Store) DeleteExpiredSessions(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var expired []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(sessionPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(sessionPrefix)); it.ValidForPrefix([]byte(sessionPrefix)); it.Next() {
			key := string(it.Item().Key())
			// Skip the user index keys
			if strings.HasPrefix(key, sessionByUserPrefix) {
				continue
			}

			var session domain.Session
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &session)
			})
			if err != nil {
				return fmt.Errorf("unmarshal session: %w", err)
			}

			if session.IsExpired() {
				expired = append(expired, session.ID)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan sessions: %w", err)
	}

	for _, id := range expired {
		if err := s.DeleteSession(ctx, id); err != nil {
			return 0, err
		}
	}

	return len(expired), nil
}
