package model

// Question 生成的题目，只保存在会话中
type Question struct {
	Text          string `json:"text"`
	CorrectAnswer int    `json:"correctAnswer"`
}

// SubmittedAnswer 表单中的一道题及用户答案
type SubmittedAnswer struct {
	QuestionText string
	UserAnswer   string
}

// Submission 一次表单提交
type Submission struct {
	Name      string
	Answers   []SubmittedAnswer
	Timestamp string
}

// FindQuestion 按题目文本精确匹配
func FindQuestion(questions []Question, text string) (*Question, bool) {
	for i := range questions {
		if questions[i].Text == text {
			return &questions[i], true
		}
	}
	return nil, false
}
