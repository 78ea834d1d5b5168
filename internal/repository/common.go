package repository

import (
	"errors"

	"CricketPredict/internal/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormConfig 仓储层的 gorm 配置；TranslateError 打开后唯一键冲突才会变成 gorm.ErrDuplicatedKey
func GormConfig(level logger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	}
}

// translate 把 gorm 错误转换为业务错误：记录不存在 -> NotFound，其余 -> Persistence
func translate(err error, code, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(code, notFoundMsg)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(code, "record already exists")
	}
	return apperr.Persistence(code, err)
}

func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
