package service

import (
	"ap_quiz_backend/internal/model"
	"ap_quiz_backend/internal/quiz"
	"ap_quiz_backend/internal/repository"
	"ap_quiz_backend/internal/util"
	"ap_quiz_backend/pkg/events"
	"ap_quiz_backend/pkg/logger"
	"ap_quiz_backend/pkg/monitoring"
	"context"
	"time"

	"go.uber.org/zap"
)

// ResultsView 结果页需要的数据
type ResultsView struct {
	Summary  *model.ResultSummary
	ChartURL string
}

// WorksheetFile 已写入存储的练习单
type WorksheetFile struct {
	Filename string
	URL      string
	Content  string
}

type QuizService struct {
	Results   repository.ResultRepository
	Sessions  *SessionService
	Generator *quiz.Generator
	Charts    *ChartService
	Storage   *StorageService
	Events    events.Publisher
	now       func() time.Time
}

func NewQuizService(
	results repository.ResultRepository,
	sessions *SessionService,
	generator *quiz.Generator,
	charts *ChartService,
	storage *StorageService,
	publisher events.Publisher,
) *QuizService {
	return &QuizService{
		Results:   results,
		Sessions:  sessions,
		Generator: generator,
		Charts:    charts,
		Storage:   storage,
		Events:    publisher,
		now:       time.Now,
	}
}

// NewQuiz 生成一组新题目并替换会话中的旧题目
func (s *QuizService) NewQuiz(ctx context.Context, sessionID string) ([]model.Question, error) {
	questions := s.Generator.GenerateSet(quiz.QuestionsPerQuiz)
	if err := s.Sessions.SaveQuestions(ctx, sessionID, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// Submit 逐题批改并追加记录。遇到无法匹配的题目立即返回，
// 之前已写入的记录保留，之后的不再写入。返回写入的条数。
func (s *QuizService) Submit(ctx context.Context, sessionID string, sub *model.Submission) (int, error) {
	stored, err := s.Sessions.Questions(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	if sub.Timestamp == "" {
		sub.Timestamp = s.now().Format(util.TimeFormat)
	}

	written := 0
	for _, ans := range sub.Answers {
		q, ok := model.FindQuestion(stored, ans.QuestionText)
		if !ok {
			logger.Log.Info("Submitted question not found in session",
				zap.String("sessionID", sessionID),
				zap.String("question", ans.QuestionText),
				zap.Int("written", written))
			return written, util.NotMatchedError(ans.QuestionText)
		}

		status := model.StatusFor(quiz.CheckAnswer(ans.UserAnswer, q.CorrectAnswer))
		rec := &model.ResultRecord{
			Name:          sub.Name,
			Question:      ans.QuestionText,
			UserAnswer:    ans.UserAnswer,
			CorrectAnswer: q.CorrectAnswer,
			Status:        status,
			Timestamp:     sub.Timestamp,
		}

		if err := s.Results.AppendRow(ctx, rec); err != nil {
			return written, err
		}
		written++
		monitoring.AnswersGraded.WithLabelValues(string(status)).Inc()

		s.publish(ctx, sessionID, rec)
	}

	return written, nil
}

func (s *QuizService) publish(ctx context.Context, sessionID string, rec *model.ResultRecord) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishAnswerGraded(ctx, sessionID, rec); err != nil {
		logger.Log.Warn("Failed to publish answer graded event", zap.Error(err), zap.String("sessionID", sessionID))
	}
}

// Summary 读取全部记录并统计
func (s *QuizService) Summary(ctx context.Context) (*model.ResultSummary, error) {
	records, err := s.Results.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return model.Summarize(records), nil
}

// ResultsPage 统计并重新生成统计图
func (s *QuizService) ResultsPage(ctx context.Context) (*ResultsView, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}

	url, err := s.Charts.SaveSummaryChart(ctx, summary)
	if err != nil {
		return nil, err
	}

	return &ResultsView{Summary: summary, ChartURL: url}, nil
}

// Worksheet 将会话中的题目写成练习单文件，没有题目时写入提示文字
func (s *QuizService) Worksheet(ctx context.Context, sessionID string) (*WorksheetFile, error) {
	questions, err := s.Sessions.Questions(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	filename := quiz.WorksheetFilename(s.now())
	content := quiz.WorksheetContent(questions)

	url, err := s.Storage.Save(ctx, filename, []byte(content), util.MimeText)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Worksheet created", zap.String("filename", filename), zap.Int("questions", len(questions)))
	return &WorksheetFile{Filename: filename, URL: url, Content: content}, nil
}
