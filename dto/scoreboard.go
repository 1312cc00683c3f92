// file: dto/scoreboard.go
package dto

import "time"

type ScoreboardRow struct {
	Rank             uint   `json:"rank"`
	UserID           uint32 `json:"user_id"`
	Username         string `json:"username"`
	DisplayName      string `json:"display_name"`
	TotalScore       uint   `json:"total_score"`
	ChallengesSolved uint   `json:"challenges_solved"`
}

type SolveFeedItem struct {
	ChallengeID    uint32    `json:"challenge_id"`
	ChallengeTitle string    `json:"challenge_title"`
	UserID         uint32    `json:"user_id"`
	Username       string    `json:"username"`
	Points         uint      `json:"points"`
	SolvedAt       time.Time `json:"solved_at"`
}

type UserScoreResp struct {
	UserID           uint32 `json:"user_id"`
	TotalScore       uint   `json:"total_score"`
	ChallengesSolved uint   `json:"challenges_solved"`
}

type SolveInfo struct {
	ChallengeID    uint32 `json:"challenge_id"`
	ChallengeTitle string `json:"challenge_title"`
	Points         uint   `json:"points"`
	HintsUsed      uint   `json:"hints_used"`
	SolvedAt       string `json:"solved_at"`
}
