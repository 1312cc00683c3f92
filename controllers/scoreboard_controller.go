// file: controllers/scoreboard_controller.go
package controllers

import (
	"SecXplore/services"
	"SecXplore/utils"
	"github.com/gin-gonic/gin"
	"strconv"
)

// GetScoreboard 查询排行榜
func GetScoreboard(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	rows, err := services.GetScoreboard(limit)
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	utils.Success(c, "success", rows)
}

// GetSolveFeed 查询实时解题动态
func GetSolveFeed(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "20")
	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	feed, err := services.GetSolveFeed(limit)
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	utils.Success(c, "success", feed)
}
