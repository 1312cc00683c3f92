// file: models/solve.go
package models

import (
	"time"
)

// Solve 首次解题记录，(user_id, challenge_id) 唯一索引是"只记一次分"的
// 最终防线：并发的两次正确提交只有一次 Create 成功，另一次触发唯一键冲突，
// 由计分服务还原为 already_solved 响应。
type Solve struct {
	ID          uint64    `gorm:"primarykey"`
	ChallengeID uint32    `gorm:"uniqueIndex:unique_user_solve;not null"`
	UserID      uint32    `gorm:"uniqueIndex:unique_user_solve;not null"`
	Points      uint      `gorm:"not null"`
	HintsUsed   uint      `gorm:"default:0"`
	SolvedAt    time.Time `gorm:"not null"`
}

func (Solve) TableName() string {
	return "secxplore_solve"
}
