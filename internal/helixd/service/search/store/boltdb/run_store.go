package boltdb

import (
	"context"
	"fmt"
	"sort"

	"github.com/boltdb/bolt"

	"github.com/kiosk404/helix/internal/helixd/service/search/domain/entity"
	"github.com/kiosk404/helix/internal/helixd/service/search/pkg/errno"
	"github.com/kiosk404/helix/pkg/utils/json"
)

// RunStore is a BoltDB-backed store for search runs.
type RunStore struct {
	db *bolt.DB
}

// NewRunStore creates a new RunStore.
func NewRunStore(db *DB) *RunStore {
	return &RunStore{db: db.Bolt()}
}

func (s *RunStore) Create(ctx context.Context, run *entity.Run) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRunStore)
		data, err := json.Marshal(run)
		if err != nil {
			return fmt.Errorf("failed to marshal run: %w", err)
		}
		return b.Put([]byte(run.ID), data)
	})
}

func (s *RunStore) Get(ctx context.Context, id string) (*entity.Run, error) {
	var run entity.Run
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRunStore)
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("run %q: %w", id, errno.ErrRunNotFound)
		}
		return json.Unmarshal(data, &run)
	})
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (s *RunStore) Update(ctx context.Context, run *entity.Run) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRunStore)
		if b.Get([]byte(run.ID)) == nil {
			return fmt.Errorf("run %q: %w", run.ID, errno.ErrRunNotFound)
		}
		data, err := json.Marshal(run)
		if err != nil {
			return fmt.Errorf("failed to marshal run: %w", err)
		}
		return b.Put([]byte(run.ID), data)
	})
}

func (s *RunStore) ListByUser(_ context.Context, userID string) ([]*entity.Run, error) {
	var runs []*entity.Run
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRunStore)
		return b.ForEach(func(k, v []byte) error {
			var r entity.Run
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("failed to unmarshal run: %w", err)
			}
			if r.UserID == userID {
				runs = append(runs, &r)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list runs for user %q: %w", userID, err)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}
