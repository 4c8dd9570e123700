package service

import (
	"ap_quiz_backend/internal/model"
	"ap_quiz_backend/internal/quiz"
	"ap_quiz_backend/internal/repository"
	"ap_quiz_backend/internal/util"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// submissionFor 按题目顺序作答，前 correct 题答对
func submissionFor(questions []model.Question, correct int) *model.Submission {
	sub := &model.Submission{Name: "Ada"}
	for i, q := range questions {
		answer := strconv.Itoa(q.CorrectAnswer)
		if i >= correct {
			answer = strconv.Itoa(q.CorrectAnswer + 1)
		}
		sub.Answers = append(sub.Answers, model.SubmittedAnswer{QuestionText: q.Text, UserAnswer: answer})
	}
	return sub
}

func TestQuizService_NewQuiz(t *testing.T) {
	f := newQuizFixture(t)
	ctx := context.Background()

	questions, err := f.svc.NewQuiz(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, questions, quiz.QuestionsPerQuiz)

	stored, err := f.sessions.Questions(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, questions, stored)
}

func TestQuizService_Submit(t *testing.T) {
	f := newQuizFixture(t)
	ctx := context.Background()

	questions, err := f.svc.NewQuiz(ctx, "s1")
	require.NoError(t, err)

	written, err := f.svc.Submit(ctx, "s1", submissionFor(questions, 3))
	require.NoError(t, err)
	assert.Equal(t, 5, written)

	records := requireRecords(t, f.results, 5)
	for i, rec := range records {
		assert.Equal(t, "Ada", rec.Name)
		assert.Equal(t, questions[i].Text, rec.Question)
		assert.Equal(t, questions[i].CorrectAnswer, rec.CorrectAnswer)
		assert.Equal(t, "2024-01-02 15:04:05", rec.Timestamp)
		assert.Equal(t, model.StatusFor(i < 3), rec.Status)
	}
	assert.Len(t, f.publisher.records, 5)
}

func TestQuizService_SubmitUnmatchedStopsWrites(t *testing.T) {
	f := newQuizFixture(t)
	ctx := context.Background()

	questions, err := f.svc.NewQuiz(ctx, "s1")
	require.NoError(t, err)

	sub := submissionFor(questions, 5)
	sub.Answers[2].QuestionText = "Find the 99th term of the AP: 1, 2, 3, ..."

	written, err := f.svc.Submit(ctx, "s1", sub)
	require.Error(t, err)
	assert.Equal(t, 2, written)
	assert.True(t, util.IsValidation(err))
	assert.ErrorIs(t, err, util.ErrQuestionNotMatched)
	assert.Equal(t, "Could not match question: Find the 99th term of the AP: 1, 2, 3, ...", err.Error())

	requireRecords(t, f.results, 2)
}

func TestQuizService_SubmitWithoutSession(t *testing.T) {
	f := newQuizFixture(t)

	sub := &model.Submission{Name: "Ada", Answers: []model.SubmittedAnswer{{QuestionText: "q", UserAnswer: "1"}}}
	written, err := f.svc.Submit(context.Background(), "expired", sub)
	assert.Zero(t, written)
	assert.True(t, util.IsValidation(err))
	requireRecords(t, f.results, 0)
}

func TestQuizService_SubmitStoreFailure(t *testing.T) {
	f := newQuizFixture(t)
	ctx := context.Background()
	failing := &failingResultRepository{
		MemoryResultRepository: f.results,
		failAt:                 2,
		err:                    util.ExternalError("sheets append_row", errBackend),
	}
	f.svc.Results = failing

	questions, err := f.svc.NewQuiz(ctx, "s1")
	require.NoError(t, err)

	written, err := f.svc.Submit(ctx, "s1", submissionFor(questions, 5))
	require.Error(t, err)
	assert.Equal(t, 1, written)
	assert.True(t, util.IsExternal(err))
	assert.ErrorIs(t, err, errBackend)
	requireRecords(t, f.results, 1)
}

func TestQuizService_PublishFailureIgnored(t *testing.T) {
	f := newQuizFixture(t)
	ctx := context.Background()
	f.publisher.err = errBackend

	questions, err := f.svc.NewQuiz(ctx, "s1")
	require.NoError(t, err)

	written, err := f.svc.Submit(ctx, "s1", submissionFor(questions, 5))
	require.NoError(t, err)
	assert.Equal(t, 5, written)
}

func TestQuizService_DuplicateSubmissions(t *testing.T) {
	f := newQuizFixture(t)
	ctx := context.Background()

	questions, err := f.svc.NewQuiz(ctx, "s1")
	require.NoError(t, err)

	sub := submissionFor(questions, 2)
	_, err = f.svc.Submit(ctx, "s1", sub)
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, "s1", sub)
	require.NoError(t, err)

	summary, err := f.svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, summary.Total)
	assert.Equal(t, 4, summary.CorrectCount)
	assert.Equal(t, 6, summary.IncorrectCount)
}

func TestQuizService_ResultsPage(t *testing.T) {
	f := newQuizFixture(t)
	ctx := context.Background()

	view, err := f.svc.ResultsPage(ctx)
	require.NoError(t, err)
	assert.Zero(t, view.Summary.Total)
	assert.Equal(t, "/uploads/barplot.png", view.ChartURL)

	questions, err := f.svc.NewQuiz(ctx, "s1")
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, "s1", submissionFor(questions, 4))
	require.NoError(t, err)

	view, err = f.svc.ResultsPage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, view.Summary.CorrectCount)
	assert.Equal(t, 1, view.Summary.IncorrectCount)
	assert.Len(t, view.Summary.Records, 5)
	assert.FileExists(t, filepath.Join(f.storage, util.ChartFilename))
}

func TestQuizService_ResultsPageStoreFailure(t *testing.T) {
	f := newQuizFixture(t)
	f.svc.Results = &readFailingRepository{MemoryResultRepository: f.results}

	_, err := f.svc.ResultsPage(context.Background())
	require.Error(t, err)
	assert.True(t, util.IsExternal(err))
}

type readFailingRepository struct {
	*repository.MemoryResultRepository
}

func (r *readFailingRepository) ReadAll(ctx context.Context) ([]model.ResultRecord, error) {
	return nil, util.ExternalError("memory read_all", errBackend)
}

func TestQuizService_Worksheet(t *testing.T) {
	f := newQuizFixture(t)
	ctx := context.Background()

	questions, err := f.svc.NewQuiz(ctx, "s1")
	require.NoError(t, err)

	file, err := f.svc.Worksheet(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "AP_worksheet_20240102_150405.txt", file.Filename)
	assert.Equal(t, "/uploads/AP_worksheet_20240102_150405.txt", file.URL)

	data, err := os.ReadFile(filepath.Join(f.storage, file.Filename))
	require.NoError(t, err)
	assert.Equal(t, quiz.WorksheetContent(questions), string(data))
	assert.Contains(t, string(data), "1. "+questions[0].Text+" = \n")
}

func TestQuizService_WorksheetWithoutQuestions(t *testing.T) {
	f := newQuizFixture(t)

	file, err := f.svc.Worksheet(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Arithmetic Progression Worksheet:\n\nNo quiz questions available. Please take the quiz first.", file.Content)
}
