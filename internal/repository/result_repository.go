package repository

import (
	"ap_quiz_backend/internal/model"
	"ap_quiz_backend/internal/util"
	"ap_quiz_backend/pkg/monitoring"
	"ap_quiz_backend/pkg/tracing"
	"context"
	"fmt"
	"time"
)

// ResultRepository 答题记录存储，只追加。
// 所有实现都不重试、不去重，错误原样交给调用方。
type ResultRepository interface {
	// EnsureHeader 存储为空时写入表头（表格后端），启动时调用一次
	EnsureHeader(ctx context.Context) error
	AppendRow(ctx context.Context, rec *model.ResultRecord) error
	ReadAll(ctx context.Context) ([]model.ResultRecord, error)
	Ping(ctx context.Context) error
	Backend() string
}

// instrument 为一次存储调用记录 span 和耗时，并把错误包装为外部服务错误
func instrument(ctx context.Context, backend, op string, fn func(ctx context.Context) error) error {
	start := time.Now()
	ctx, span := tracing.StartStoreSpan(ctx, backend, op)
	err := fn(ctx)
	tracing.EndSpan(span, err)
	monitoring.ObserveStore(backend, op, start, err)

	if err != nil {
		return util.ExternalError(backend+" "+op, fmt.Errorf("%w: %w", util.ErrResultStoreUnavailable, err))
	}
	return nil
}
