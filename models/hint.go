// file: models/hint.go
package models

import (
	"time"
)

// Hint 题目提示内容，按 hint_index 从 1 开始递增，管理员维护
type Hint struct {
	ID          uint32 `gorm:"primarykey"`
	ChallengeID uint32 `gorm:"uniqueIndex:unique_challenge_hint;not null"`
	HintIndex   uint   `gorm:"uniqueIndex:unique_challenge_hint;not null"`
	Content     string `gorm:"type:text;not null"`
	CreatedAt   time.Time
}

func (Hint) TableName() string {
	return "secxplore_hint"
}

// HintDisclosure 对应 secxplore_user_hint 表。
// 每个 (user, challenge, hint_index) 至多一行，由唯一索引保证；
// 记录只增不改不删，作为永久审计与罚分依据。
type HintDisclosure struct {
	ID          uint64    `gorm:"primarykey"`
	UserID      uint32    `gorm:"uniqueIndex:unique_user_hint;not null"`
	ChallengeID uint32    `gorm:"uniqueIndex:unique_user_hint;not null"`
	HintIndex   uint      `gorm:"uniqueIndex:unique_user_hint;not null"`
	DisclosedAt time.Time `gorm:"not null"`
}

func (HintDisclosure) TableName() string {
	return "secxplore_user_hint"
}
