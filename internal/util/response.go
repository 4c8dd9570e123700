package util

import (
	"ap_quiz_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err), zap.String("path", c.FullPath()))
	InternalServerError(c)
}

// PlainTextError HTML 页面的错误以纯文本返回，外部服务错误为 502
func PlainTextError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Error: " + err.Error()

	switch {
	case IsValidation(err):
		status = http.StatusBadRequest
		message = err.Error()
		logger.Log.Info("Rejected submission", zap.Error(err))
	case IsExternal(err):
		status = http.StatusBadGateway
		logger.Log.Error("External service failure", zap.Error(err), zap.String("path", c.FullPath()))
	default:
		logger.Log.Error("Request failed", zap.Error(err), zap.String("path", c.FullPath()))
	}

	c.String(status, message)
}

func LogExternalError(c *gin.Context, err error) {
	logger.Log.Error("External service failure", zap.Error(err), zap.String("path", c.FullPath()))
	Error(c, http.StatusBadGateway, err.Error())
}
