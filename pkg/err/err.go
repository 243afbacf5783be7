package errprocess

import (
	"errors"
	"fmt"

	"farm_market_service/pkg/logger"
)

// 錯誤分類，handler 依此對應 HTTP 狀態碼
var (
	// ErrValidation 缺少必填欄位或欄位值不合法 -> 400
	ErrValidation = errors.New("validation error")
	// ErrNotFound 查無資料 -> 404
	ErrNotFound = errors.New("not found")
	// ErrAuth 未登入或權限不足 -> 401/403
	ErrAuth = errors.New("unauthorized")
)

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}

// Validation wrap ErrValidation with detail
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// NotFound wrap ErrNotFound with detail
func NotFound(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}

// Auth wrap ErrAuth with detail
func Auth(msg string) error {
	return fmt.Errorf("%w: %s", ErrAuth, msg)
}
