package repository

import (
	"ap_quiz_backend/internal/model"
	"ap_quiz_backend/internal/util"
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionRepository 保存会话题目。Save 直接覆盖，同一会话并发写入以最后一次为准
type SessionRepository interface {
	Save(ctx context.Context, session *model.QuizSession) error
	// Find 会话不存在或已过期时返回 util.ErrSessionNotFound
	Find(ctx context.Context, id string) (*model.QuizSession, error)
	Ping(ctx context.Context) error
}

// MemorySessionRepository 过期的会话在读取时删除，未再读取的由 StartJanitor 定期清理
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]model.QuizSession
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]model.QuizSession),
		now:      time.Now,
	}
}

func (r *MemorySessionRepository) Save(ctx context.Context, session *model.QuizSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := *session
	s.Questions = append([]model.Question(nil), session.Questions...)
	r.sessions[session.ID] = s
	return nil
}

func (r *MemorySessionRepository) Find(ctx context.Context, id string) (*model.QuizSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	if s.Expired(r.now()) {
		delete(r.sessions, id)
		return nil, util.ErrSessionNotFound
	}

	s.Questions = append([]model.Question(nil), s.Questions...)
	return &s, nil
}

// StartJanitor 按 interval 清理过期会话，重复调用无效，Close 后停止
func (r *MemorySessionRepository) StartJanitor(interval time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil || interval <= 0 {
		return
	}
	r.stop = make(chan struct{})

	go func(stop <-chan struct{}) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.sweepExpired()
			case <-stop:
				return
			}
		}
	}(r.stop)
}

// sweepExpired 删除所有已过期的会话，返回删除数量
func (r *MemorySessionRepository) sweepExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Close 停止清理协程
func (r *MemorySessionRepository) Close() error {
	r.mu.Lock()
	stop := r.stop
	r.mu.Unlock()
	if stop != nil {
		r.stopOnce.Do(func() { close(stop) })
	}
	return nil
}

func (r *MemorySessionRepository) Ping(ctx context.Context) error {
	return nil
}

// RedisSessionRepository 会话以 JSON 保存，TTL 与会话过期时间一致
type RedisSessionRepository struct {
	Redis *redis.Client
}

func NewRedisSessionRepository(rdb *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{Redis: rdb}
}

func sessionKey(id string) string {
	return "quiz:session:" + id
}

func (r *RedisSessionRepository) Save(ctx context.Context, session *model.QuizSession) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		// 已过期的会话直接删除旧值
		return r.Redis.Del(ctx, sessionKey(session.ID)).Err()
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.Redis.Set(ctx, sessionKey(session.ID), data, ttl).Err()
}

func (r *RedisSessionRepository) Find(ctx context.Context, id string) (*model.QuizSession, error) {
	data, err := r.Redis.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session model.QuizSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *RedisSessionRepository) Ping(ctx context.Context) error {
	return r.Redis.Ping(ctx).Err()
}
