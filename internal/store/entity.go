package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Entity provides CRUD with unique secondary indexes for a keyed record
// type. Records live under "<prefix><id>" and index entries under
// "<prefix>idx:<index>:<value>" pointing back at the id.
type Entity[T any] struct {
	store   *Store
	prefix  string
	indexes []index[T]
}

type index[T any] struct {
	name   string
	keyGen func(*T) []string
}

// NewEntity creates an Entity collection under the given key prefix.
func NewEntity[T any](s *Store, prefix string) *Entity[T] {
	return &Entity[T]{store: s, prefix: prefix}
}

// WithIndex adds a unique secondary index. keyGen returns the index values
// a record occupies.
func (e *Entity[T]) WithIndex(name string, keyGen func(*T) []string) *Entity[T] {
	e.indexes = append(e.indexes, index[T]{name: name, keyGen: keyGen})
	return e
}

func (e *Entity[T]) indexKey(name, value string) []byte {
	return []byte(e.prefix + "idx:" + name + ":" + value)
}

// Create stores a new record. Returns ErrAlreadyExists when the id or any
// index value is taken.
func (e *Entity[T]) Create(ctx context.Context, id string, record *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	key := []byte(e.prefix + id)

	return e.store.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return ErrAlreadyExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check existing key: %w", err)
		}

		for _, idx := range e.indexes {
			for _, v := range idx.keyGen(record) {
				if _, err := txn.Get(e.indexKey(idx.name, v)); err == nil {
					return fmt.Errorf("index %s conflict on key %s: %w", idx.name, v, ErrAlreadyExists)
				} else if !errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("failed to check index key: %w", err)
				}
			}
		}

		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}
		return e.writeIndexes(txn, id, record)
	})
}

// Get retrieves a record by id, ErrNotFound when absent.
func (e *Entity[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var record T
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(e.prefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get key: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByIndex resolves an index value to its record.
func (e *Entity[T]) GetByIndex(ctx context.Context, indexName, value string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var id string
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(e.indexKey(indexName, value))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return e.Get(ctx, id)
}

// Update replaces an existing record and migrates its index entries.
// Returns ErrNotFound when the record does not exist.
func (e *Entity[T]) Update(ctx context.Context, id string, record *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	key := []byte(e.prefix + id)

	return e.store.db.Update(func(txn *badger.Txn) error {
		old, err := e.readInTxn(txn, key)
		if err != nil {
			return err
		}

		for _, idx := range e.indexes {
			oldValues := map[string]bool{}
			for _, v := range idx.keyGen(old) {
				oldValues[v] = true
				if err := txn.Delete(e.indexKey(idx.name, v)); err != nil {
					return fmt.Errorf("failed to delete old index key: %w", err)
				}
			}
			// Only values the old record did not hold can conflict
			for _, v := range idx.keyGen(record) {
				if oldValues[v] {
					continue
				}
				if _, err := txn.Get(e.indexKey(idx.name, v)); err == nil {
					return fmt.Errorf("index %s conflict on key %s: %w", idx.name, v, ErrAlreadyExists)
				} else if !errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("failed to check index key: %w", err)
				}
			}
		}

		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}
		return e.writeIndexes(txn, id, record)
	})
}

// Delete removes a record and its index entries. Idempotent.
func (e *Entity[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(e.prefix + id)

	return e.store.db.Update(func(txn *badger.Txn) error {
		record, err := e.readInTxn(txn, key)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		for _, idx := range e.indexes {
			for _, v := range idx.keyGen(record) {
				if err := txn.Delete(e.indexKey(idx.name, v)); err != nil {
					return fmt.Errorf("failed to delete index key: %w", err)
				}
			}
		}
		if err := txn.Delete(key); err != nil {
			return fmt.Errorf("failed to delete key: %w", err)
		}
		return nil
	})
}

func (e *Entity[T]) readInTxn(txn *badger.Txn, key []byte) (*T, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key: %w", err)
	}

	var record T
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &record)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &record, nil
}

func (e *Entity[T]) writeIndexes(txn *badger.Txn, id string, record *T) error {
	for _, idx := range e.indexes {
		for _, v := range idx.keyGen(record) {
			if err := txn.Set(e.indexKey(idx.name, v), []byte(id)); err != nil {
				return fmt.Errorf("failed to set index key: %w", err)
			}
		}
	}
	return nil
}
