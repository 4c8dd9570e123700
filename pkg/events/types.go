package events

import (
	"ap_quiz_backend/internal/model"
	"encoding/json"
	"time"
)

type EventType string

const (
	AnswerGraded EventType = "answer.graded"
)

// AnswerGradedEvent 每写入一行答题记录发布一次
type AnswerGradedEvent struct {
	Type          EventType `json:"type"`
	SessionID     string    `json:"sessionId"`
	Name          string    `json:"name"`
	Question      string    `json:"question"`
	UserAnswer    string    `json:"userAnswer"`
	CorrectAnswer int       `json:"correctAnswer"`
	Status        string    `json:"status"`
	Timestamp     string    `json:"timestamp"`
	PublishedAt   time.Time `json:"publishedAt"`
}

func NewAnswerGradedEvent(sessionID string, rec *model.ResultRecord) *AnswerGradedEvent {
	return &AnswerGradedEvent{
		Type:          AnswerGraded,
		SessionID:     sessionID,
		Name:          rec.Name,
		Question:      rec.Question,
		UserAnswer:    rec.UserAnswer,
		CorrectAnswer: rec.CorrectAnswer,
		Status:        string(rec.Status),
		Timestamp:     rec.Timestamp,
		PublishedAt:   time.Now().UTC(),
	}
}

func (e *AnswerGradedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
