// file: models/submission.go
package models

import (
	"time"
)

type FlagResult string

const (
	FlagResultCorrect     FlagResult = "correct"
	FlagResultWrong       FlagResult = "wrong"
	FlagResultDuplicate   FlagResult = "duplicate"
	FlagResultRateLimited FlagResult = "rate_limited"
)

// Submission 对应 secxplore_submission 表，所有提交（对/错/重复/限流）都落一行，
// 只追加，永不更新或删除（Suspected 人工标记除外）。
// 用户总分 = SUM(points_awarded)，该表是分数的唯一真值来源。
type Submission struct {
	ID            uint64     `gorm:"primarykey"`
	PublicID      string     `gorm:"size:36;unique;not null"`
	ChallengeID   uint32     `gorm:"index;not null"`
	UserID        uint32     `gorm:"index;not null"`
	SubmittedFlag string     `gorm:"size:255;not null"`
	FlagResult    FlagResult `gorm:"size:20;not null"`
	IsCorrect     bool       `gorm:"default:0"`
	PointsAwarded uint       `gorm:"default:0"`
	IPAddress     string     `gorm:"size:45"`
	Suspected     bool       `gorm:"default:0"`
	SubmittedAt   time.Time  `gorm:"index;not null"`
}

func (Submission) TableName() string {
	return "secxplore_submission"
}
