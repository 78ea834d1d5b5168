package api

import (
	"errors"
	"net/http"
	"strconv"

	"CricketPredict/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// statusFor 业务错误类型 -> HTTP 状态码
func statusFor(err error) int {
	var appErr *apperr.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case apperr.TypeNotFound:
		return http.StatusNotFound
	case apperr.TypeInvalidState, apperr.TypeConflict:
		return http.StatusConflict
	case apperr.TypeValidation:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError 只返回 AppError.Message，底层错误只写日志
func respondError(c *gin.Context, logger *logrus.Logger, op string, err error) {
	status := statusFor(err)
	entry := logger.WithError(err).WithField("path", c.FullPath())
	if status >= http.StatusInternalServerError {
		entry.Error(op + " failed")
	} else {
		entry.Warn(op + " rejected")
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		c.JSON(status, gin.H{"error": appErr.Message, "code": appErr.Code})
		return
	}
	c.JSON(status, gin.H{"error": "internal server error"})
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return page, pageSize
}
