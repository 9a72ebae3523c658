package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/momentumapp/momentum-server/internal/domain"
)

// diaryKey builds the storage key for an owner's entry on one date.
// Each owner has at most one entry per date.
func diaryKey(ownerID, date string) []byte {
	return []byte(diaryPrefix + ownerID + ":" + date)
}

// ownerDiaryPrefix is the key range holding all of one owner's entries.
func ownerDiaryPrefix(ownerID string) []byte {
	return []byte(diaryPrefix + ownerID + ":")
}

// GetEntry retrieves an owner's diary entry for one date.
func (s *Store) GetEntry(ctx context.Context, ownerID, date string) (*domain.DiaryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entry domain.DiaryEntry
	err := s.get(diaryKey(ownerID, date), &entry)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get diary entry: %w", err)
	}
	return &entry, nil
}

// PutEntry creates or replaces an owner's diary entry for its date.
func (s *Store) PutEntry(ctx context.Context, entry *domain.DiaryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entry.OwnerID == "" || entry.Date == "" {
		return ErrInvalidInput.WithMessage("diary entry is missing owner or date")
	}
	return s.set(diaryKey(entry.OwnerID, entry.Date), entry)
}

// DeleteEntry removes an owner's diary entry for one date.
// The operation is idempotent.
func (s *Store) DeleteEntry(ctx context.Context, ownerID, date string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.delete(diaryKey(ownerID, date))
}

// ListEntries returns all of an owner's diary entries in date order.
// Date order falls out of the key encoding: YYYY-MM-DD sorts lexically.
func (s *Store) ListEntries(ctx context.Context, ownerID string) ([]*domain.DiaryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := ownerDiaryPrefix(ownerID)
	var entries []*domain.DiaryEntry

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var entry domain.DiaryEntry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal diary entry: %w", err)
			}
			entries = append(entries, &entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}
