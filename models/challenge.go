// file: models/challenge.go
package models

import (
	"time"
)

type ChallengeState string
type ChallengeDifficulty string

const (
	ChallengeStateVisible ChallengeState = "visible"
	ChallengeStateHidden  ChallengeState = "hidden"

	ChallengeDifficultyEasy   ChallengeDifficulty = "easy"
	ChallengeDifficultyMedium ChallengeDifficulty = "medium"
	ChallengeDifficultyHard   ChallengeDifficulty = "hard"
)

// Challenge 对应 secxplore_challenge 表。
// CanonicalFlag 是服务端唯一真值，任何接口响应、日志、错误信息都不得携带该字段
// （管理员详情接口除外）。
type Challenge struct {
	ID            uint32              `gorm:"primarykey"`
	Code          string              `gorm:"size:50;unique;not null"`
	Title         string              `gorm:"size:100;unique;not null"`
	CategoryID    uint32              `gorm:"not null"`
	Category      Category            `gorm:"foreignKey:CategoryID"`
	Author        string              `gorm:"size:50;not null"`
	Description   string              `gorm:"type:text;not null"`
	State         ChallengeState      `gorm:"size:20;default:'hidden'"`
	IsActive      bool                `gorm:"default:true"`
	CanonicalFlag string              `gorm:"size:255;not null" json:"-"`
	ChallengeURL  string              `gorm:"size:2048"`
	Difficulty    ChallengeDifficulty `gorm:"size:20;default:'medium'"`
	BaseScore     uint                `gorm:"not null"`
	SolvedCount   uint                `gorm:"default:0"`
	Hints         []Hint              `gorm:"foreignKey:ChallengeID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Challenge) TableName() string {
	return "secxplore_challenge"
}
