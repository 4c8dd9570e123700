package repository

import (
	"ap_quiz_backend/internal/model"
	"ap_quiz_backend/internal/util"
	"context"
	"sync"
	"time"
)

// MemoryResultRepository 进程内存储，用于开发和测试
type MemoryResultRepository struct {
	mu      sync.RWMutex
	records []model.ResultRecord
}

func NewMemoryResultRepository() *MemoryResultRepository {
	return &MemoryResultRepository{}
}

func (r *MemoryResultRepository) Backend() string {
	return util.BackendMemory
}

func (r *MemoryResultRepository) EnsureHeader(ctx context.Context) error {
	return nil
}

func (r *MemoryResultRepository) AppendRow(ctx context.Context, rec *model.ResultRecord) error {
	return instrument(ctx, r.Backend(), "append_row", func(ctx context.Context) error {
		r.mu.Lock()
		defer r.mu.Unlock()

		row := *rec
		row.ID = uint(len(r.records) + 1)
		if row.CreatedAt.IsZero() {
			row.CreatedAt = time.Now()
		}
		r.records = append(r.records, row)
		return nil
	})
}

func (r *MemoryResultRepository) ReadAll(ctx context.Context) ([]model.ResultRecord, error) {
	var out []model.ResultRecord
	err := instrument(ctx, r.Backend(), "read_all", func(ctx context.Context) error {
		r.mu.RLock()
		defer r.mu.RUnlock()

		out = make([]model.ResultRecord, len(r.records))
		copy(out, r.records)
		return nil
	})
	return out, err
}

func (r *MemoryResultRepository) Ping(ctx context.Context) error {
	return nil
}
