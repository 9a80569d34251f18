package memory

import (
	"context"
	"sync"

	"event-publisher/internal/domain/instances"
)

type instancesRepo struct {
	mu   sync.RWMutex
	rows []instances.InstanceRow
}

func NewInstancesRepo() instances.Repository {
	return &instancesRepo{}
}

func (r *instancesRepo) Replace(ctx context.Context, rows []instances.InstanceRow) error {
	cp := make([]instances.InstanceRow, len(rows))
	copy(cp, rows)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = cp
	return nil
}

func (r *instancesRepo) List(ctx context.Context) ([]instances.InstanceRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]instances.InstanceRow, len(r.rows))
	copy(out, r.rows)
	return out, nil
}
