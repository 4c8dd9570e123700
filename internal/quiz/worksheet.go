package quiz

import (
	"ap_quiz_backend/internal/model"
	"fmt"
	"strings"
	"time"
)

const (
	WorksheetTitle      = "Arithmetic Progression Worksheet:"
	WorksheetEmptyNotes = "No quiz questions available. Please take the quiz first."
)

// WorksheetFilename AP_worksheet_20240102_150405.txt
func WorksheetFilename(now time.Time) string {
	return "AP_worksheet_" + now.Format("20060102_150405") + ".txt"
}

// WorksheetContent 按原顺序列出题目，每行以 "= " 结尾留给作答
func WorksheetContent(questions []model.Question) string {
	var b strings.Builder
	b.WriteString(WorksheetTitle)
	b.WriteString("\n\n")

	if len(questions) == 0 {
		b.WriteString(WorksheetEmptyNotes)
		return b.String()
	}

	for i, q := range questions {
		fmt.Fprintf(&b, "%d. %s = \n", i+1, q.Text)
	}
	return b.String()
}
