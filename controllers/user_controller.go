// file: controllers/user_controller.go
package controllers

import (
	"SecXplore/database"
	"SecXplore/dto"
	"SecXplore/middlewares"
	"SecXplore/services"
	"SecXplore/utils"
	"github.com/gin-gonic/gin"
	"time"
)

// GetMyScore —— 当前用户的总分与解题数（由提交流水推导）
func GetMyScore(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.Error(c, 4001, "未登录")
		return
	}

	score, err := services.GetUserScore(userID)
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	utils.Success(c, "success", score)
}

// GetMyRank —— 当前用户名次，尚无提交记录时 rank 为 null
func GetMyRank(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.Error(c, 4001, "未登录")
		return
	}

	rank, ranked, err := services.GetUserRank(userID)
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	if !ranked {
		utils.Success(c, "success", gin.H{"rank": nil})
		return
	}
	utils.Success(c, "success", gin.H{"rank": rank})
}

// GetMySolves —— 当前用户的解题记录
func GetMySolves(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.Error(c, 4001, "未登录")
		return
	}

	var solves []struct {
		ChallengeID uint32
		Title       string
		Points      uint
		HintsUsed   uint
		SolvedAt    time.Time
	}
	if err := database.DB.Table("secxplore_solve s").
		Select("s.challenge_id, c.title, s.points, s.hints_used, s.solved_at").
		Joins("LEFT JOIN secxplore_challenge c ON s.challenge_id = c.id").
		Where("s.user_id = ?", userID).
		Order("s.solved_at asc").
		Find(&solves).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	result := make([]dto.SolveInfo, 0, len(solves))
	for _, solve := range solves {
		result = append(result, dto.SolveInfo{
			ChallengeID:    solve.ChallengeID,
			ChallengeTitle: solve.Title,
			Points:         solve.Points,
			HintsUsed:      solve.HintsUsed,
			SolvedAt:       solve.SolvedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.Success(c, "success", result)
}
