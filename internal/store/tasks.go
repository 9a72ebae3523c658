package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/momentumapp/momentum-server/internal/domain"
)

// taskKey builds the storage key for one task. Embedding the owner ID keeps
// every owner's tasks under their own key range.
func taskKey(ownerID, taskID string) []byte {
	return []byte(taskPrefix + ownerID + ":" + taskID)
}

// ownerTaskPrefix is the key range holding all of one owner's tasks.
func ownerTaskPrefix(ownerID string) []byte {
	return []byte(taskPrefix + ownerID + ":")
}

// SaveTask creates or replaces a task.
func (s *Store) SaveTask(ctx context.Context, task *domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if task.OwnerID == "" || task.ID == "" {
		return ErrInvalidInput.WithMessage("task is missing owner or id")
	}
	return s.set(taskKey(task.OwnerID, task.ID), task)
}

// GetTask retrieves one of an owner's tasks by ID.
func (s *Store) GetTask(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var task domain.Task
	err := s.get(taskKey(ownerID, taskID), &task)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// DeleteTask removes one of an owner's tasks.
// Returns ErrTaskNotFound if the task does not exist.
func (s *Store) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := taskKey(ownerID, taskID)
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrTaskNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check task: %w", err)
		}
		return txn.Delete(key)
	})
}

// ListTasks returns all of an owner's tasks, in key order.
func (s *Store) ListTasks(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := ownerTaskPrefix(ownerID)
	var tasks []*domain.Task

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var task domain.Task
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &task)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal task: %w", err)
			}
			tasks = append(tasks, &task)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// MaxTaskOrder returns the highest Order value among an owner's tasks,
// or -1 when the owner has none.
func (s *Store) MaxTaskOrder(ctx context.Context, ownerID string) (int, error) {
	tasks, err := s.ListTasks(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	max := -1
	for _, t := range tasks {
		if t.Order > max {
			max = t.Order
		}
	}
	return max, nil
}

// ReorderTasks rewrites the Order of the named tasks to match their position
// in ids, in a single transaction. Unknown IDs fail the whole operation.
func (s *Store) ReorderTasks(ctx context.Context, ownerID string, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for i, id := range ids {
			key := taskKey(ownerID, id)

			item, err := txn.Get(key)
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("task %s: %w", id, ErrTaskNotFound)
			}
			if err != nil {
				return fmt.Errorf("failed to get task: %w", err)
			}

			var task domain.Task
			err = item.Value(func(val []byte) error {
				return json.Unmarshal(val, &task)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal task: %w", err)
			}

			if task.Order == i {
				continue
			}
			task.Order = i

			data, err := json.Marshal(&task)
			if err != nil {
				return fmt.Errorf("failed to marshal task: %w", err)
			}
			if err := txn.Set(key, data); err != nil {
				return fmt.Errorf("failed to set task: %w", err)
			}
		}
		return nil
	})
}
