package model

import (
	"time"

	"github.com/google/uuid"
)

// QuizSession 服务端保存的会话，通过签名 token 关联客户端
type QuizSession struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

func (s *QuizSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

func GenerateUUID() string {
	return uuid.New().String()
}
