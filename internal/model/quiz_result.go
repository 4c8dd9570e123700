package model

import (
	"strings"
	"time"
)

// ResultStatus 答题判定结果
type ResultStatus string

const (
	StatusCorrect   ResultStatus = "Correct"
	StatusIncorrect ResultStatus = "Incorrect"
)

// StatusFor 根据判分结果返回状态
func StatusFor(correct bool) ResultStatus {
	if correct {
		return StatusCorrect
	}
	return StatusIncorrect
}

// ResultHeader 表格存储的表头，顺序与 ResultRecord.Row 一致
var ResultHeader = []string{"Name", "Question", "User Answer", "Correct Answer", "Status", "Timestamp"}

// ResultRecord 一条答题记录，只追加，不修改
type ResultRecord struct {
	ID            uint         `gorm:"primaryKey;autoIncrement" json:"-" bson:"-"`
	Name          string       `gorm:"size:255" json:"name" bson:"name"`
	Question      string       `gorm:"type:text" json:"question" bson:"question"`
	UserAnswer    string       `gorm:"size:255" json:"userAnswer" bson:"user_answer"`
	CorrectAnswer int          `json:"correctAnswer" bson:"correct_answer"`
	Status        ResultStatus `gorm:"size:16;index" json:"status" bson:"status"`
	Timestamp     string       `gorm:"size:32" json:"timestamp" bson:"timestamp"`
	CreatedAt     time.Time    `json:"-" bson:"created_at"`
}

func (ResultRecord) TableName() string {
	return "result_records"
}

// Row 按表头顺序返回单元格
func (r *ResultRecord) Row() []interface{} {
	return []interface{}{r.Name, r.Question, r.UserAnswer, r.CorrectAnswer, string(r.Status), r.Timestamp}
}

// IsCorrect 状态比较不区分大小写，兼容手工编辑过的表格
func (r *ResultRecord) IsCorrect() bool {
	return strings.EqualFold(string(r.Status), string(StatusCorrect))
}

func (r *ResultRecord) IsIncorrect() bool {
	return strings.EqualFold(string(r.Status), string(StatusIncorrect))
}

// ResultSummary 结果统计
type ResultSummary struct {
	CorrectCount   int            `json:"correctCount"`
	IncorrectCount int            `json:"incorrectCount"`
	Total          int            `json:"total"`
	Records        []ResultRecord `json:"-"`
}

// Summarize 统计正确与错误的数量，其他状态不计入两者
func Summarize(records []ResultRecord) *ResultSummary {
	s := &ResultSummary{Total: len(records), Records: records}
	for i := range records {
		switch {
		case records[i].IsCorrect():
			s.CorrectCount++
		case records[i].IsIncorrect():
			s.IncorrectCount++
		}
	}
	return s
}
