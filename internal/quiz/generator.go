// Package quiz 生成等差数列题目并判分
package quiz

import (
	"ap_quiz_backend/internal/model"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// 题目参数范围（闭区间）
const (
	MinFirstTerm  = 1
	MaxFirstTerm  = 20
	MinDifference = 1
	MaxDifference = 10
	MinTermIndex  = 3
	MaxTermIndex  = 10
)

// QuestionsPerQuiz 每份表单的题目数量
const QuestionsPerQuiz = 5

// Generator 随机出题。rand.Rand 不是并发安全的，所以加锁
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Generator{rnd: rand.New(src)}
}

// Generate 生成一道题
func (g *Generator) Generate() model.Question {
	g.mu.Lock()
	a := randInt(g.rnd, MinFirstTerm, MaxFirstTerm)
	d := randInt(g.rnd, MinDifference, MaxDifference)
	n := randInt(g.rnd, MinTermIndex, MaxTermIndex)
	g.mu.Unlock()

	return BuildQuestion(a, d, n)
}

// GenerateSet 生成 k 道互相独立的题
func (g *Generator) GenerateSet(k int) []model.Question {
	questions := make([]model.Question, 0, k)
	for i := 0; i < k; i++ {
		questions = append(questions, g.Generate())
	}
	return questions
}

// BuildQuestion 首项 a、公差 d，求第 n 项
func BuildQuestion(a, d, n int) model.Question {
	return model.Question{
		Text:          fmt.Sprintf("Find the %s term of the AP: %d, %d, %d, ...", Ordinal(n), a, a+d, a+2*d),
		CorrectAnswer: NthTerm(a, d, n),
	}
}

func NthTerm(a, d, n int) int {
	return a + (n-1)*d
}

// Ordinal 1 -> 1st, 12 -> 12th, 21 -> 21st
func Ordinal(n int) string {
	suffix := "th"
	if m := n % 100; m < 11 || m > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func randInt(r *rand.Rand, min, max int) int {
	return min + r.Intn(max-min+1)
}
