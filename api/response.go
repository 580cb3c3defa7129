package api

import (
	"errors"
	"net/http"

	"expenses/config"
	"expenses/logger"
	"expenses/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotFoundMessage 删除目标不存在时返回的错误信息
const NotFoundMessage = "Not found"

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Error string `json:"error" example:"Not found"`
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound 404 错误响应
func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, NotFoundMessage)
}

// InternalError 500 错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// respondError 按错误类型映射 HTTP 状态码，未知错误记录日志后返回 500
func respondError(c *gin.Context, log *zap.Logger, err error, fallback string) {
	switch {
	case service.IsValidation(err):
		BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotFound):
		NotFound(c)
	default:
		_ = c.Error(err)
		logger.FromContext(c, log).Error(fallback, zap.Error(err))
		InternalError(c, SafeErrorMessage(err, fallback))
	}
}

// SafeErrorMessage release 模式下只返回 fallback，不暴露内部错误
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}
