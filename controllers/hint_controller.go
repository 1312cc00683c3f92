// file: controllers/hint_controller.go
package controllers

import (
	"SecXplore/database"
	"SecXplore/dto"
	"SecXplore/middlewares"
	"SecXplore/models"
	"SecXplore/services"
	"SecXplore/utils"
	"github.com/gin-gonic/gin"
	"strconv"
)

// RequestHint —— 解锁提示（顺序解锁、重复请求不重复扣分）
func RequestHint(c *gin.Context) {
	challengeID, _ := strconv.Atoi(c.Param("id"))
	hintIndex, err := strconv.Atoi(c.Param("hint_index"))
	if err != nil || hintIndex < 1 {
		utils.Error(c, 1002, "提示编号超出范围")
		return
	}

	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.Error(c, 4001, "未登录")
		return
	}

	result, err := services.RequestHint(userID, uint32(challengeID), uint(hintIndex))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	msg := "提示解锁成功"
	if result.AlreadyDisclosed {
		msg = "提示已解锁过，不重复扣分"
	}
	utils.Success(c, msg, result)
}

// AddHint —— 管理员为题目追加一条提示，编号自动顺延
func AddHint(c *gin.Context) {
	challengeID, _ := strconv.Atoi(c.Param("id"))

	var req dto.CreateHintReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()
	if req.Content == "" {
		utils.Error(c, 1001, "提示内容不能为空")
		return
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, challengeID).Error; err != nil {
		utils.Error(c, 4004, "题目不存在")
		return
	}

	count, err := services.HintCount(challenge.ID)
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	hint := models.Hint{
		ChallengeID: challenge.ID,
		HintIndex:   uint(count + 1),
		Content:     req.Content,
	}
	if err := database.DB.Create(&hint).Error; err != nil {
		utils.Error(c, 5000, "创建提示失败: "+err.Error())
		return
	}

	utils.Success(c, "Hint created successfully", gin.H{
		"challenge_id": challenge.ID,
		"hint_index":   hint.HintIndex,
	})
}
