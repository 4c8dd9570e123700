package util

import (
	"errors"
	"fmt"
)

var (
	ErrQuestionNotMatched     = errors.New("question not matched")
	ErrResultStoreUnavailable = errors.New("result store unavailable")
	ErrStorageUnavailable     = errors.New("storage unavailable")
	ErrInvalidSession         = errors.New("invalid session token")
	ErrSessionNotFound        = errors.New("session not found")
)

type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindExternal   ErrorKind = "external"
)

// QuizError 区分用户输入错误和外部服务错误
type QuizError struct {
	Kind    ErrorKind
	Op      string
	Message string
	Err     error
}

func (e *QuizError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		if e.Op != "" {
			return fmt.Sprintf("%s: %v", e.Op, e.Err)
		}
		return e.Err.Error()
	}
	return string(e.Kind) + " error"
}

func (e *QuizError) Unwrap() error {
	return e.Err
}

// NotMatchedError 提交的题目不在会话中
func NotMatchedError(question string) error {
	return &QuizError{
		Kind:    KindValidation,
		Op:      "match question",
		Message: "Could not match question: " + question,
		Err:     ErrQuestionNotMatched,
	}
}

// ExternalError 包装外部服务（表格、数据库、对象存储）的错误
func ExternalError(op string, err error) error {
	if err == nil {
		return nil
	}
	var qe *QuizError
	if errors.As(err, &qe) {
		return err
	}
	return &QuizError{Kind: KindExternal, Op: op, Err: err}
}

func IsValidation(err error) bool {
	var qe *QuizError
	return errors.As(err, &qe) && qe.Kind == KindValidation
}

func IsExternal(err error) bool {
	var qe *QuizError
	return errors.As(err, &qe) && qe.Kind == KindExternal
}
