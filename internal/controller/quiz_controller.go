package controller

import (
	"ap_quiz_backend/internal/model"
	"ap_quiz_backend/internal/quiz"
	"ap_quiz_backend/internal/service"
	"ap_quiz_backend/internal/util"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// Index 首页
func (c *QuizController) Index(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "index.html", nil)
}

// Form 生成新题目并渲染答题表单
func (c *QuizController) Form(ctx *gin.Context) {
	questions, err := c.QuizService.NewQuiz(ctx.Request.Context(), util.GetSessionIDFromContext(ctx))
	if err != nil {
		util.PlainTextError(ctx, err)
		return
	}

	texts := make([]string, len(questions))
	for i, q := range questions {
		texts[i] = q.Text
	}
	ctx.HTML(http.StatusOK, "form.html", gin.H{"Questions": texts})
}

// Submit 批改表单中的 question1..5 / answer1..5
func (c *QuizController) Submit(ctx *gin.Context) {
	name, ok := ctx.GetPostForm("name")
	if !ok {
		name = util.DefaultName
	}

	sub := &model.Submission{Name: name}
	for i := 1; i <= quiz.QuestionsPerQuiz; i++ {
		n := strconv.Itoa(i)
		sub.Answers = append(sub.Answers, model.SubmittedAnswer{
			QuestionText: ctx.PostForm("question" + n),
			UserAnswer:   ctx.PostForm("answer" + n),
		})
	}

	if _, err := c.QuizService.Submit(ctx.Request.Context(), util.GetSessionIDFromContext(ctx), sub); err != nil {
		util.PlainTextError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, "success.html", nil)
}

// Results 统计表格和统计图
func (c *QuizController) Results(ctx *gin.Context) {
	view, err := c.QuizService.ResultsPage(ctx.Request.Context())
	if err != nil {
		util.PlainTextError(ctx, err)
		return
	}

	headers := make([]string, len(model.ResultHeader))
	for i, h := range model.ResultHeader {
		headers[i] = strings.ToLower(h)
	}

	ctx.HTML(http.StatusOK, "result.html", gin.H{
		"Headers":        headers,
		"Records":        view.Summary.Records,
		"CorrectCount":   view.Summary.CorrectCount,
		"IncorrectCount": view.Summary.IncorrectCount,
		"GraphURL":       view.ChartURL,
	})
}

// Worksheet 生成练习单文件
func (c *QuizController) Worksheet(ctx *gin.Context) {
	file, err := c.QuizService.Worksheet(ctx.Request.Context(), util.GetSessionIDFromContext(ctx))
	if err != nil {
		util.PlainTextError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, "worksheet_success.html", gin.H{
		"Filename": file.Filename,
		"URL":      file.URL,
	})
}

// @Summary 答题结果统计
// @Description 返回全部答题记录中正确和错误的数量
// @Tags 结果
// @Produce json
// @Success 200 {object} util.Response{data=model.ResultSummary}
// @Failure 502 {object} util.Response
// @Router /results/summary [get]
func (c *QuizController) ResultsSummary(ctx *gin.Context) {
	summary, err := c.QuizService.Summary(ctx.Request.Context())
	if err != nil {
		if util.IsExternal(err) {
			util.LogExternalError(ctx, err)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}
