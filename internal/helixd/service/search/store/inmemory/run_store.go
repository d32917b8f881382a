package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/kiosk404/helix/internal/helixd/service/search/domain/entity"
	"github.com/kiosk404/helix/internal/helixd/service/search/pkg/errno"
)

// RunStore keeps runs in memory. Runs are copied at every boundary, so the
// coordinator can keep mutating its run between Create and the final Update
// while concurrent lookups read a consistent snapshot.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]*entity.Run
}

func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string]*entity.Run),
	}
}

func cloneRun(run *entity.Run) *entity.Run {
	clone := *run
	if len(run.Agents) > 0 {
		clone.Agents = append([]entity.AgentRecord(nil), run.Agents...)
	}
	return &clone
}

func (s *RunStore) Create(_ context.Context, run *entity.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = cloneRun(run)
	return nil
}

func (s *RunStore) Get(_ context.Context, id string) (*entity.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, errno.ErrRunNotFound
	}
	return cloneRun(run), nil
}

func (s *RunStore) Update(_ context.Context, run *entity.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = cloneRun(run)
	return nil
}

func (s *RunStore) ListByUser(_ context.Context, userID string) ([]*entity.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := make([]*entity.Run, 0, len(s.runs))
	for _, run := range s.runs {
		if run.UserID == userID {
			runs = append(runs, cloneRun(run))
		}
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}
