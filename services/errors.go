// file: services/errors.go
package services

import (
	"errors"
	"fmt"
	"time"
)

// 业务错误集合，controller 统一翻译为响应码。
// 注意：任何错误信息都不允许包含题目正解。
var (
	ErrNotAuthenticated  = errors.New("用户不存在或未登录")
	ErrUserBanned        = errors.New("账号已被封禁")
	ErrChallengeNotFound = errors.New("题目不存在")
	ErrInvalidHintIndex  = errors.New("提示编号超出范围")
	ErrHintOutOfOrder    = errors.New("请先解锁上一条提示")
	ErrCategoryNotFound  = errors.New("题目分类不存在")
)

// RateLimitedError 限流错误，携带建议重试时间
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("提交过于频繁，请 %d 秒后重试", int(e.RetryAfter.Seconds()))
}

// isBusinessErr 区分业务结果与存储故障，只有后者值得重试
func isBusinessErr(err error) bool {
	for _, target := range []error{
		ErrNotAuthenticated, ErrUserBanned, ErrChallengeNotFound,
		ErrInvalidHintIndex, ErrHintOutOfOrder, ErrCategoryNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	var rle *RateLimitedError
	return errors.As(err, &rle)
}

// withStorageRetry 对瞬时存储故障做有限次重试，业务错误直接返回。
// 重试耗尽后把最后一次错误抛给上层，绝不吞掉写失败。
func withStorageRetry(fn func() error) error {
	const maxAttempts = 3
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = fn()
		if err == nil || isBusinessErr(err) {
			return err
		}
	}
	return err
}
