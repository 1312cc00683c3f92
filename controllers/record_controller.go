// file: controllers/record_controller.go
package controllers

import (
	"SecXplore/database"
	"SecXplore/models"
	"SecXplore/utils"
	"errors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"strconv"
	"time"
)

// GetFlagLogs 管理员查询 Flag 提交流水（审计用，含原始提交值）
func GetFlagLogs(c *gin.Context) {
	type LogDetail struct {
		ID            uint64    `json:"id"`
		PublicID      string    `json:"public_id"`
		ChallengeID   uint32    `json:"challenge_id"`
		Title         string    `json:"challenge_title"`
		UserID        uint32    `json:"user_id"`
		Username      string    `json:"username"`
		SubmittedFlag string    `json:"submitted_flag"`
		FlagResult    string    `json:"flag_result"`
		PointsAwarded uint      `json:"points_awarded"`
		SubmittedAt   time.Time `json:"submitted_at"`
		IPAddress     string    `json:"ip_address"`
		Suspected     bool      `json:"suspected"`
	}

	db := database.DB.Table("secxplore_submission s").
		Select("s.id, s.public_id, s.challenge_id, c.title, s.user_id, u.username, s.submitted_flag, s.flag_result, s.points_awarded, s.submitted_at, s.ip_address, s.suspected").
		Joins("LEFT JOIN secxplore_challenge c ON s.challenge_id = c.id").
		Joins("LEFT JOIN secxplore_user u ON s.user_id = u.id")

	if challengeID := c.Query("challenge_id"); challengeID != "" {
		db = db.Where("s.challenge_id = ?", challengeID)
	}
	if userID := c.Query("user_id"); userID != "" {
		db = db.Where("s.user_id = ?", userID)
	}
	if result := c.Query("result"); result != "" {
		db = db.Where("s.flag_result = ?", result)
	}
	if suspected := c.Query("suspected"); suspected == "1" {
		db = db.Where("s.suspected = ?", true)
	}

	var results []LogDetail
	db.Order("s.submitted_at desc").Find(&results)

	utils.Success(c, "success", results)
}

// MarkSuspectSubmission 管理员手动标记可疑提交
func MarkSuspectSubmission(c *gin.Context) {
	logID, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Suspected bool `json:"suspected"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid request body")
		return
	}

	result := database.DB.Model(&models.Submission{}).Where("id = ?", logID).Update("suspected", req.Suspected)
	if result.Error != nil {
		utils.Error(c, 5000, "Database update failed: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, 4004, "Submission not found")
		return
	}

	utils.Success(c, "Flag submission marked as suspected", nil)
}

// CompareFlagSubmissions 对比同一提交值在不同用户间的出现情况，
// 用于发现 Flag 抄袭（多人提交同一个错误值，或互相传答案）
func CompareFlagSubmissions(c *gin.Context) {
	flag := c.Query("flag")
	if flag == "" {
		utils.Error(c, 1001, "Missing 'flag' query parameter")
		return
	}

	var firstSubmission models.Submission
	err := database.DB.Where("submitted_flag = ?", flag).First(&firstSubmission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, 4004, "No submissions found for this flag")
			return
		}
		utils.Error(c, 5000, "Database error")
		return
	}

	type CompareResult struct {
		UserID      uint32    `json:"user_id"`
		Username    string    `json:"username"`
		ChallengeID uint32    `json:"challenge_id"`
		FlagResult  string    `json:"flag_result"`
		SubmittedAt time.Time `json:"submitted_at"`
		IPAddress   string    `json:"ip_address"`
	}

	var results []CompareResult
	database.DB.Table("secxplore_submission s").
		Select("s.user_id, u.username, s.challenge_id, s.flag_result, s.submitted_at, s.ip_address").
		Joins("JOIN secxplore_user u ON s.user_id = u.id").
		Where("s.submitted_flag = ?", flag).
		Order("s.submitted_at asc").
		Find(&results)

	utils.Success(c, "success", gin.H{
		"flag_value":  flag,
		"submissions": results,
	})
}
