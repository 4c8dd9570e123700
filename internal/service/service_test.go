package service

import (
	"ap_quiz_backend/internal/config"
	"ap_quiz_backend/internal/model"
	"ap_quiz_backend/internal/quiz"
	"ap_quiz_backend/internal/repository"
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// recordingPublisher 记录发布的事件，可模拟发布失败
type recordingPublisher struct {
	mu      sync.Mutex
	records []model.ResultRecord
	err     error
}

func (p *recordingPublisher) PublishAnswerGraded(ctx context.Context, sessionID string, rec *model.ResultRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.records = append(p.records, *rec)
	return nil
}

func (p *recordingPublisher) Close() error {
	return nil
}

// failingResultRepository 第 failAt 次写入开始返回错误
type failingResultRepository struct {
	*repository.MemoryResultRepository
	calls  int
	failAt int
	err    error
}

func (r *failingResultRepository) AppendRow(ctx context.Context, rec *model.ResultRecord) error {
	r.calls++
	if r.calls >= r.failAt {
		return r.err
	}
	return r.MemoryResultRepository.AppendRow(ctx, rec)
}

func newTestStorage(t *testing.T) (*StorageService, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{Storage: config.StorageConfig{Type: "local", LocalPath: dir}}
	return NewStorageService(cfg), dir
}

func newTestSessionService() *SessionService {
	return NewSessionService(repository.NewMemorySessionRepository(), &config.SessionConfig{
		Secret:     testSecret,
		ExpireTime: time.Hour,
	})
}

type quizFixture struct {
	svc       *QuizService
	results   *repository.MemoryResultRepository
	sessions  *SessionService
	publisher *recordingPublisher
	storage   string
}

func newQuizFixture(t *testing.T) *quizFixture {
	t.Helper()
	storage, dir := newTestStorage(t)
	results := repository.NewMemoryResultRepository()
	sessions := newTestSessionService()
	publisher := &recordingPublisher{}

	svc := NewQuizService(
		results,
		sessions,
		quiz.NewGenerator(rand.NewSource(7)),
		NewChartService(storage),
		storage,
		publisher,
	)
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 15, 4, 5, 0, time.Local) }

	return &quizFixture{svc: svc, results: results, sessions: sessions, publisher: publisher, storage: dir}
}

var errBackend = errors.New("backend down")

func requireRecords(t *testing.T, repo repository.ResultRepository, n int) []model.ResultRecord {
	t.Helper()
	records, err := repo.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, n)
	return records
}
