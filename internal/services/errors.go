package services

import (
	"fmt"

	"staywise/internal/store"
)

// ErrNotFound slug 或 fingerprint 不存在
var ErrNotFound = store.ErrNotFound

// ValidationError 输入缺少必填字段或格式错误
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
