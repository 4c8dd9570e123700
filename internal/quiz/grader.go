package quiz

import (
	"strconv"
	"strings"
)

// CheckAnswer 把用户输入解析为整数后与正确答案比较。
// 无法解析（如 "abc"、"42.0"）视为答错，不返回错误。
func CheckAnswer(userInput string, correct int) bool {
	n, err := strconv.Atoi(strings.TrimSpace(userInput))
	if err != nil {
		return false
	}
	return n == correct
}
