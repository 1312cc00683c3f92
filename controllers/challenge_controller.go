// file: controllers/challenge_controller.go
package controllers

import (
	"SecXplore/database"
	"SecXplore/dto"
	"SecXplore/mappers"
	"SecXplore/middlewares"
	"SecXplore/models"
	"SecXplore/services"
	"SecXplore/utils"
	"errors"
	"github.com/gin-gonic/gin"
	"strconv"
	"strings"
)

// handleServiceError 把 services 层错误翻译为统一响应码
func handleServiceError(c *gin.Context, err error) {
	var rle *services.RateLimitedError
	switch {
	case errors.As(err, &rle):
		utils.RateLimited(c, err.Error(), int(rle.RetryAfter.Seconds()))
	case errors.Is(err, services.ErrNotAuthenticated):
		utils.Error(c, 4001, err.Error())
	case errors.Is(err, services.ErrUserBanned):
		utils.Error(c, 4003, err.Error())
	case errors.Is(err, services.ErrChallengeNotFound):
		utils.Error(c, 4004, err.Error())
	case errors.Is(err, services.ErrCategoryNotFound):
		utils.Error(c, 4004, err.Error())
	case errors.Is(err, services.ErrInvalidHintIndex):
		utils.Error(c, 1002, err.Error())
	case errors.Is(err, services.ErrHintOutOfOrder):
		utils.Error(c, 4006, err.Error())
	default:
		// 存储类故障：只回生成性信息，细节进日志
		utils.Error(c, 5000, "服务暂时不可用，请稍后重试")
	}
}

// CreateChallenge —— 管理员建题，未提供 Flag 时服务端随机生成
func CreateChallenge(c *gin.Context) {
	var req dto.CreateChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()

	if req.Title == "" || req.CategoryID == 0 || req.Author == "" ||
		req.Description == "" || req.BaseScore == 0 {
		utils.Error(c, 1001, "缺少必填字段")
		return
	}
	if req.Difficulty != "easy" && req.Difficulty != "medium" && req.Difficulty != "hard" {
		utils.Error(c, 1001, "difficulty 取值无效（easy/medium/hard）")
		return
	}
	if req.Flag != "" && !utils.ValidateFlagFormat(req.Flag) {
		utils.Error(c, 1002, "Flag 格式无效，应为 secXplore{...}")
		return
	}

	var category models.Category
	if err := database.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.Error(c, 4004, "题目分类不存在")
		return
	}

	flag := req.Flag
	if flag == "" {
		flag = utils.GenerateDynamicFlag()
	}
	code := req.Code
	if code == "" {
		prefix := category.Direction
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		code = utils.GenerateChallengeCode(prefix, 6)
	}

	chal := models.Challenge{
		Code:          code,
		Title:         req.Title,
		CategoryID:    req.CategoryID,
		Author:        req.Author,
		Description:   req.Description,
		Difficulty:    models.ChallengeDifficulty(req.Difficulty),
		CanonicalFlag: flag,
		ChallengeURL:  req.ChallengeURL,
		BaseScore:     req.BaseScore,
	}

	for i, content := range req.Hints {
		content = strings.TrimSpace(content)
		if content == "" {
			utils.Error(c, 1001, "提示内容不能为空")
			return
		}
		chal.Hints = append(chal.Hints, models.Hint{
			HintIndex: uint(i + 1),
			Content:   content,
		})
	}

	if err := database.DB.Create(&chal).Error; err != nil {
		utils.Error(c, 5000, "创建题目失败: "+err.Error())
		return
	}
	utils.Success(c, "Challenge created successfully", gin.H{"id": chal.ID, "code": chal.Code})
}

// ListChallenges —— 用户可见的题目列表，可按分类/难度筛选
func ListChallenges(c *gin.Context) {
	userID, _ := middlewares.CurrentUserID(c)

	db := database.DB.Model(&models.Challenge{}).
		Where("state = ? AND is_active = ?", models.ChallengeStateVisible, true).
		Preload("Category").
		Preload("Hints")

	if direction := strings.TrimSpace(c.Query("category")); direction != "" {
		db = db.Joins("JOIN secxplore_category ct ON secxplore_challenge.category_id = ct.id").
			Where("ct.direction = ?", direction)
	}
	if diff := strings.TrimSpace(c.Query("difficulty")); diff != "" {
		db = db.Where("difficulty = ?", models.ChallengeDifficulty(diff))
	}

	var challenges []models.Challenge
	if err := db.Find(&challenges).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	solved := solvedChallengeSet(userID)

	items := make([]dto.ChallengeItemResp, 0, len(challenges))
	for _, ch := range challenges {
		items = append(items, mappers.MapModelToItemResp(ch, solved[ch.ID]))
	}

	utils.Success(c, "success", gin.H{
		"total":      len(items),
		"challenges": items,
	})
}

// solvedChallengeSet 当前用户已解出的题目集合，用于列表/详情的 solved 标记
func solvedChallengeSet(userID uint32) map[uint32]bool {
	solved := make(map[uint32]bool)
	if userID == 0 {
		return solved
	}
	var ids []uint32
	database.DB.Model(&models.Solve{}).
		Where("user_id = ?", userID).
		Pluck("challenge_id", &ids)
	for _, id := range ids {
		solved[id] = true
	}
	return solved
}

// GetChallengeDetail —— 用户可见的题目详情（绝不返回正解）
func GetChallengeDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	userID, _ := middlewares.CurrentUserID(c)

	var challenge models.Challenge
	if err := database.DB.Preload("Category").Preload("Hints").
		First(&challenge, id).Error; err != nil {
		utils.Error(c, 4004, "题目不存在")
		return
	}
	if challenge.State != models.ChallengeStateVisible || !challenge.IsActive {
		utils.Error(c, 4004, "题目不存在")
		return
	}

	solved := solvedChallengeSet(userID)

	utils.Success(c, "success", mappers.MapModelToDetailResp(challenge, solved[challenge.ID]))
}

// SubmitFlag —— 提交 Flag，核心校验与计分全部在 services.SubmitFlag 事务内完成
func SubmitFlag(c *gin.Context) {
	challengeID, _ := strconv.Atoi(c.Param("id"))

	var req dto.SubmitFlagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()
	if req.Flag == "" {
		utils.Error(c, 1001, "Flag 不能为空")
		return
	}

	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.Error(c, 4001, "未登录")
		return
	}

	result, err := services.SubmitFlag(userID, uint32(challengeID), req.Flag, c.ClientIP())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	msg := "Flag 错误"
	if result.IsCorrect {
		msg = "Flag 正确！"
	}
	utils.Success(c, msg, result)
}

// AdminListChallenges —— 管理员题目列表（可见/隐藏均可，支持筛选+分页）
func AdminListChallenges(c *gin.Context) {
	state := strings.TrimSpace(c.Query("state"))
	diff := strings.TrimSpace(c.Query("difficulty"))
	kw := strings.TrimSpace(c.Query("keyword"))
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "10")

	page, _ := strconv.Atoi(pageStr)
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.DB.Model(&models.Challenge{}).Preload("Category")

	if state != "" {
		db = db.Where("state = ?", models.ChallengeState(state))
	}
	if diff != "" {
		db = db.Where("difficulty = ?", models.ChallengeDifficulty(diff))
	}
	if kw != "" {
		like := "%" + kw + "%"
		db = db.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		utils.Error(c, 5000, "查询失败: "+err.Error())
		return
	}

	var list []models.Challenge
	if err := db.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&list).Error; err != nil {
		utils.Error(c, 5000, "查询失败: "+err.Error())
		return
	}

	items := make([]dto.AdminChallengeItemResp, 0, len(list))
	for _, ch := range list {
		items = append(items, dto.AdminChallengeItemResp{
			ID:          ch.ID,
			Code:        ch.Code,
			Title:       ch.Title,
			Category:    ch.Category.Alias,
			Difficulty:  string(ch.Difficulty),
			State:       string(ch.State),
			IsActive:    ch.IsActive,
			BaseScore:   ch.BaseScore,
			SolvedCount: ch.SolvedCount,
			UpdatedAt:   ch.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.Success(c, "success", gin.H{
		"total":      total,
		"page":       page,
		"limit":      limit,
		"challenges": items,
	})
}

// AdminGetChallengeDetail —— 管理员题目详情，唯一允许返回正解的接口
func AdminGetChallengeDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var ch models.Challenge
	if err := database.DB.Preload("Category").Preload("Hints").
		First(&ch, id).Error; err != nil {
		utils.Error(c, 4004, "题目不存在")
		return
	}

	hints := make([]string, 0, len(ch.Hints))
	for _, h := range ch.Hints {
		hints = append(hints, h.Content)
	}

	resp := dto.AdminChallengeDetailResp{
		ID:            ch.ID,
		Code:          ch.Code,
		Title:         ch.Title,
		Category:      ch.Category.Alias,
		Author:        ch.Author,
		Description:   ch.Description,
		Difficulty:    string(ch.Difficulty),
		State:         string(ch.State),
		IsActive:      ch.IsActive,
		CanonicalFlag: ch.CanonicalFlag,
		ChallengeURL:  ch.ChallengeURL,
		BaseScore:     ch.BaseScore,
		SolvedCount:   ch.SolvedCount,
		Hints:         hints,
		CreatedAt:     ch.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     ch.UpdatedAt.Format("2006-01-02 15:04:05"),
	}

	utils.Success(c, "success", resp)
}

// UpdateChallengeState —— 管理员切换可见性/上下架（题目发布后仅允许改这两项）
func UpdateChallengeState(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req dto.UpdateChallengeStateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.State != nil {
		if *req.State != string(models.ChallengeStateVisible) && *req.State != string(models.ChallengeStateHidden) {
			utils.Error(c, 1001, "state 取值无效（visible/hidden）")
			return
		}
		updates["state"] = *req.State
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		utils.Error(c, 1001, "没有需要更新的字段")
		return
	}

	result := database.DB.Model(&models.Challenge{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		utils.Error(c, 5000, "更新失败: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, 4004, "题目不存在")
		return
	}

	utils.Success(c, "Challenge state updated", nil)
}
