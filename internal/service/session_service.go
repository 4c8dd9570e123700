package service

import (
	"ap_quiz_backend/internal/config"
	"ap_quiz_backend/internal/model"
	"ap_quiz_backend/internal/repository"
	"ap_quiz_backend/internal/util"
	"ap_quiz_backend/pkg/logger"
	"ap_quiz_backend/pkg/monitoring"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"go.uber.org/zap"
)

// IssuedSession 新签发给客户端的会话
type IssuedSession struct {
	ID        string
	Token     string
	ExpiresAt time.Time
}

type SessionService struct {
	Repo   repository.SessionRepository
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(repo repository.SessionRepository, cfg *config.SessionConfig) *SessionService {
	secret := cfg.Secret
	if secret == "" {
		// 仅 debug 模式会走到这里，release 模式配置校验要求显式设置
		secret = randomSecret()
		logger.Log.Warn("Session secret is empty, generated a random one; sessions will not survive restarts")
	}

	return &SessionService{
		Repo:   repo,
		secret: secret,
		ttl:    cfg.ExpireTime,
		now:    time.Now,
	}
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// Issue 生成新的会话 ID 和签名 token，会话内容在第一次保存题目时写入存储
func (s *SessionService) Issue() (*IssuedSession, error) {
	issued, err := s.sign(model.GenerateUUID())
	if err != nil {
		return nil, err
	}
	monitoring.SessionsCreated.Inc()
	return issued, nil
}

// Renew 为已有会话重新签发 token，过期时间与 SaveQuestions 写入的一致
func (s *SessionService) Renew(sessionID string) (*IssuedSession, error) {
	if sessionID == "" {
		return nil, util.ErrInvalidSession
	}
	return s.sign(sessionID)
}

func (s *SessionService) sign(id string) (*IssuedSession, error) {
	expiresAt := s.now().Add(s.ttl)

	token, err := util.GenerateSessionToken(id, s.secret, expiresAt)
	if err != nil {
		return nil, err
	}
	return &IssuedSession{ID: id, Token: token, ExpiresAt: expiresAt}, nil
}

// Resolve 校验 token 并返回会话 ID
func (s *SessionService) Resolve(token string) (string, error) {
	if token == "" {
		return "", util.ErrInvalidSession
	}
	claims, err := util.ParseSessionToken(token, s.secret)
	if err != nil {
		return "", err
	}
	return claims.ID, nil
}

// Questions 会话不存在或已过期时返回空列表
func (s *SessionService) Questions(ctx context.Context, sessionID string) ([]model.Question, error) {
	if sessionID == "" {
		return nil, nil
	}

	session, err := s.Repo.Find(ctx, sessionID)
	if errors.Is(err, util.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, util.ExternalError("load session", err)
	}
	return session.Questions, nil
}

// SaveQuestions 覆盖会话中的题目，并顺延过期时间。调用方需同时用 Renew 刷新客户端 token
func (s *SessionService) SaveQuestions(ctx context.Context, sessionID string, questions []model.Question) error {
	now := s.now()
	session := &model.QuizSession{
		ID:        sessionID,
		Questions: questions,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.Repo.Save(ctx, session); err != nil {
		return util.ExternalError("save session", err)
	}
	logger.Log.Debug("Session questions saved", zap.String("sessionID", sessionID), zap.Int("count", len(questions)))
	return nil
}
