package errs

import (
	"errors"
	"fmt"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/02/10
 * @file: errs.go
 * @description: 领域错误定义
 */

var (
	// ErrNotFound 请求的实体不存在
	ErrNotFound = errors.New("entity not found")

	// ErrConflict 唯一性约束冲突（登录名、邮箱等）
	ErrConflict = errors.New("entity already exists")

	// ErrStructural 结构性错误（菜单父图成环、组织层级边非法）
	ErrStructural = errors.New("structural error")

	// ErrForbidden 已认证但无授权记录
	ErrForbidden = errors.New("permission denied")

	// ErrUnauthenticated 缺少凭证
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Structuralf wraps ErrStructural with a formatted detail message.
func Structuralf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrStructural}, args...)...)
}

// Conflictf wraps ErrConflict with a formatted detail message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}

// NotFoundf wraps ErrNotFound with a formatted detail message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}
