// file: models/solve_feed.go
package models

import (
	"time"
)

// SolveFeed 对应 secxplore_solve_feed 缓存表，记录最近的解题动态
type SolveFeed struct {
	ID             uint64    `gorm:"primarykey"`
	ChallengeID    uint32    `gorm:"not null"`
	ChallengeTitle string    `gorm:"size:100;not null"`
	UserID         uint32    `gorm:"not null"`
	Username       string    `gorm:"size:50;not null"`
	Points         uint      `gorm:"not null"`
	SolvedAt       time.Time `gorm:"index;not null"`
}

func (SolveFeed) TableName() string {
	return "secxplore_solve_feed"
}
