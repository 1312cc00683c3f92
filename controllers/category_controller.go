// file: controllers/category_controller.go
package controllers

import (
	"SecXplore/database"
	"SecXplore/models"
	"SecXplore/utils"
	"github.com/gin-gonic/gin"
	"strconv"
	"strings"
)

// GetCategoryList —— 公开的分类列表
func GetCategoryList(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Order("id asc").Find(&categories).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}
	utils.Success(c, "success", categories)
}

// GetCategoryDetail —— 分类详情
func GetCategoryDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var category models.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		utils.Error(c, 4004, "分类不存在")
		return
	}
	utils.Success(c, "success", category)
}

// CreateCategory —— 管理员新建分类（web/crypto/forensics/network/reverse/mobile 等）
func CreateCategory(c *gin.Context) {
	var req struct {
		Direction   string `json:"direction"`
		Alias       string `json:"alias"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	req.Direction = strings.ToLower(strings.TrimSpace(req.Direction))
	if req.Direction == "" {
		utils.Error(c, 1001, "direction 不能为空")
		return
	}
	if req.Alias == "" {
		req.Alias = strings.ToUpper(req.Direction)
	}

	category := models.Category{
		Direction:   req.Direction,
		Alias:       req.Alias,
		Description: req.Description,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		utils.Error(c, 5000, "创建分类失败: "+err.Error())
		return
	}

	utils.Success(c, "Category created successfully", gin.H{"id": category.ID})
}

// UpdateCategory —— 管理员更新分类别名/描述
func UpdateCategory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Alias       *string `json:"alias"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Alias != nil {
		updates["alias"] = *req.Alias
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) == 0 {
		utils.Error(c, 1001, "没有需要更新的字段")
		return
	}

	result := database.DB.Model(&models.Category{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		utils.Error(c, 5000, "更新失败: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, 4004, "分类不存在")
		return
	}

	utils.Success(c, "Category updated", nil)
}

// DeleteCategory —— 管理员删除分类（仍有题目引用时拒绝）
func DeleteCategory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var count int64
	database.DB.Model(&models.Challenge{}).Where("category_id = ?", id).Count(&count)
	if count > 0 {
		utils.Error(c, 4009, "该分类下仍有题目，不能删除")
		return
	}

	result := database.DB.Delete(&models.Category{}, id)
	if result.Error != nil {
		utils.Error(c, 5000, "删除失败: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, 4004, "分类不存在")
		return
	}

	utils.Success(c, "Category deleted", nil)
}
