// file: services/testdb_test.go
package services

import (
	"SecXplore/database"
	"SecXplore/models"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 每个测试用独立的内存 SQLite，单连接串行化并发事务
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Challenge{},
		&models.Hint{},
		&models.HintDisclosure{},
		&models.Submission{},
		&models.Solve{},
		&models.SolveFeed{},
	))

	database.DB = db
	database.RDB = nil
}

func createTestUser(t *testing.T, username string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@test.local",
		Role:     models.RoleUser,
		Status:   models.StatusActive,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func createTestChallenge(t *testing.T, title, flag string, baseScore uint, hintCount int) models.Challenge {
	t.Helper()

	category := models.Category{Direction: "web", Alias: "WEB"}
	if err := database.DB.Where("direction = ?", "web").First(&category).Error; err != nil {
		require.NoError(t, database.DB.Create(&category).Error)
	}

	chal := models.Challenge{
		Code:          "WEB-" + title,
		Title:         title,
		CategoryID:    category.ID,
		Author:        "tester",
		Description:   "test challenge",
		State:         models.ChallengeStateVisible,
		IsActive:      true,
		CanonicalFlag: flag,
		Difficulty:    models.ChallengeDifficultyEasy,
		BaseScore:     baseScore,
	}
	for i := 1; i <= hintCount; i++ {
		chal.Hints = append(chal.Hints, models.Hint{
			HintIndex: uint(i),
			Content:   "hint content",
		})
	}
	require.NoError(t, database.DB.Create(&chal).Error)
	return chal
}
