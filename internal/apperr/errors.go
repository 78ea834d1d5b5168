package apperr

import (
	"errors"
	"fmt"
)

// Type 错误分类
type Type int

const (
	TypeNotFound Type = iota
	TypeInvalidState
	TypeValidation
	TypeConflict
	TypePersistence
)

func (t Type) String() string {
	switch t {
	case TypeNotFound:
		return "not_found"
	case TypeInvalidState:
		return "invalid_state"
	case TypeValidation:
		return "validation"
	case TypeConflict:
		return "conflict"
	case TypePersistence:
		return "persistence"
	}
	return "unknown"
}

// AppError 业务层统一错误
type AppError struct {
	Type     Type
	Code     string
	Message  string
	Internal error
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Internal }

// NotFound 引用的比赛/用户/预测等不存在
func NotFound(code, message string) *AppError {
	return &AppError{Type: TypeNotFound, Code: code, Message: message}
}

// InvalidState 当前状态下不允许该操作，如对未完赛比赛计分
func InvalidState(code, message string) *AppError {
	return &AppError{Type: TypeInvalidState, Code: code, Message: message}
}

func Validation(code, message string) *AppError {
	return &AppError{Type: TypeValidation, Code: code, Message: message}
}

func Conflict(code, message string) *AppError {
	return &AppError{Type: TypeConflict, Code: code, Message: message}
}

// Persistence 数据库写入/读取失败，原样上抛不重试
func Persistence(code string, err error) *AppError {
	return &AppError{Type: TypePersistence, Code: code, Message: "database operation failed", Internal: err}
}

// Is 判断 err 链上是否存在指定类型的 AppError
func Is(err error, t Type) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}
