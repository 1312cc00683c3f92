// file: controllers/challenge_controller_test.go
package controllers_test

import (
	"SecXplore/database"
	"SecXplore/models"
	"SecXplore/routes"
	"SecXplore/utils"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testCanonicalFlag = "secXplore{controller_test_secret}"

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

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
	return routes.SetupRouter()
}

func seedUser(t *testing.T, username string, role models.UserRole) (models.User, string) {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@test.local",
		Role:     role,
		Status:   models.StatusActive,
	}
	require.NoError(t, database.DB.Create(&user).Error)

	token, err := utils.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

func seedChallenge(t *testing.T, hintCount int) models.Challenge {
	t.Helper()
	category := models.Category{Direction: "web", Alias: "WEB"}
	require.NoError(t, database.DB.FirstOrCreate(&category, models.Category{Direction: "web"}).Error)

	chal := models.Challenge{
		Code:          "WEB-TEST01",
		Title:         "SQL Injection 101",
		CategoryID:    category.ID,
		Author:        "tester",
		Description:   "find the flag in the login form",
		State:         models.ChallengeStateVisible,
		IsActive:      true,
		CanonicalFlag: testCanonicalFlag,
		Difficulty:    models.ChallengeDifficultyEasy,
		BaseScore:     100,
	}
	for i := 1; i <= hintCount; i++ {
		chal.Hints = append(chal.Hints, models.Hint{HintIndex: uint(i), Content: "try a single quote"})
	}
	require.NoError(t, database.DB.Create(&chal).Error)
	return chal
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func envelope(t *testing.T, w *httptest.ResponseRecorder) (int, map[string]interface{}) {
	t.Helper()
	var resp struct {
		Code int                    `json:"code"`
		Msg  string                 `json:"msg"`
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Code, resp.Data
}

func TestSubmitFlagRequiresAuth(t *testing.T) {
	r := setupTestServer(t)
	chal := seedChallenge(t, 0)

	w := doJSON(r, http.MethodPost, "/api/v1/challenges/"+strconv.Itoa(int(chal.ID))+"/submit", "",
		gin.H{"flag": testCanonicalFlag})
	code, _ := envelope(t, w)
	assert.Equal(t, 4001, code)

	// 没有任何提交入账
	var count int64
	database.DB.Model(&models.Submission{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSubmitFlagEndToEnd(t *testing.T) {
	r := setupTestServer(t)
	chal := seedChallenge(t, 0)
	_, token := seedUser(t, "alice", models.RoleUser)
	path := "/api/v1/challenges/" + strconv.Itoa(int(chal.ID)) + "/submit"

	w := doJSON(r, http.MethodPost, path, token, gin.H{"flag": testCanonicalFlag})
	code, data := envelope(t, w)
	require.Equal(t, 0, code)
	assert.Equal(t, true, data["is_correct"])
	assert.Equal(t, false, data["already_solved"])
	assert.Equal(t, float64(100), data["points_earned"])

	// 重复提交：幂等返回当年的分数
	w = doJSON(r, http.MethodPost, path, token, gin.H{"flag": testCanonicalFlag})
	code, data = envelope(t, w)
	require.Equal(t, 0, code)
	assert.Equal(t, true, data["already_solved"])
	assert.Equal(t, float64(100), data["points_earned"])
}

// 任何响应路径（对、错、错误信息）都不得携带正解
func TestSubmitFlagNeverLeaksCanonicalFlag(t *testing.T) {
	r := setupTestServer(t)
	chal := seedChallenge(t, 0)
	_, token := seedUser(t, "alice", models.RoleUser)
	path := "/api/v1/challenges/" + strconv.Itoa(int(chal.ID)) + "/submit"

	for _, guess := range []string{"secXplore{wrong}", "not-a-flag", "", testCanonicalFlag} {
		w := doJSON(r, http.MethodPost, path, token, gin.H{"flag": guess})
		if guess != testCanonicalFlag {
			assert.NotContains(t, w.Body.String(), testCanonicalFlag)
		}
	}

	// 详情与列表同样不泄露
	w := doJSON(r, http.MethodGet, "/api/v1/challenges/"+strconv.Itoa(int(chal.ID)), token, nil)
	assert.NotContains(t, w.Body.String(), testCanonicalFlag)
	w = doJSON(r, http.MethodGet, "/api/v1/challenges", token, nil)
	assert.NotContains(t, w.Body.String(), testCanonicalFlag)
}

func TestRequestHintEndpointSequential(t *testing.T) {
	r := setupTestServer(t)
	chal := seedChallenge(t, 2)
	_, token := seedUser(t, "alice", models.RoleUser)
	base := "/api/v1/challenges/" + strconv.Itoa(int(chal.ID)) + "/hints/"

	w := doJSON(r, http.MethodPost, base+"2", token, nil)
	code, _ := envelope(t, w)
	assert.Equal(t, 4006, code)

	w = doJSON(r, http.MethodPost, base+"1", token, nil)
	code, data := envelope(t, w)
	require.Equal(t, 0, code)
	assert.Equal(t, float64(10), data["penalty_points"])
	assert.Equal(t, false, data["already_disclosed"])

	w = doJSON(r, http.MethodPost, base+"1", token, nil)
	code, data = envelope(t, w)
	require.Equal(t, 0, code)
	assert.Equal(t, float64(0), data["penalty_points"])
	assert.Equal(t, true, data["already_disclosed"])
}

func TestAdminRoutesRequireRole(t *testing.T) {
	r := setupTestServer(t)
	_, userToken := seedUser(t, "alice", models.RoleUser)

	w := doJSON(r, http.MethodGet, "/api/v1/admin/challenges", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminCreateChallengeGeneratesFlag(t *testing.T) {
	r := setupTestServer(t)
	_, adminToken := seedUser(t, "root", models.RoleAdmin)

	category := models.Category{Direction: "crypto", Alias: "CRYPTO"}
	require.NoError(t, database.DB.Create(&category).Error)

	w := doJSON(r, http.MethodPost, "/api/v1/admin/challenges", adminToken, gin.H{
		"title":       "RSA Basics",
		"category_id": category.ID,
		"author":      "tester",
		"description": "small exponent attack",
		"base_score":  200,
		"hints":       []string{"look at e", "think about cube roots"},
	})
	code, data := envelope(t, w)
	require.Equal(t, 0, code)
	require.NotNil(t, data["id"])

	var chal models.Challenge
	require.NoError(t, database.DB.Preload("Hints").First(&chal, uint32(data["id"].(float64))).Error)
	assert.True(t, utils.ValidateFlagFormat(chal.CanonicalFlag))
	assert.Len(t, chal.Hints, 2)
	// 新题默认隐藏，等管理员手动上架
	assert.Equal(t, models.ChallengeStateHidden, chal.State)
}

func TestGetMySolvesEndpoint(t *testing.T) {
	r := setupTestServer(t)
	chal := seedChallenge(t, 0)
	_, token := seedUser(t, "alice", models.RoleUser)

	doJSON(r, http.MethodPost, "/api/v1/challenges/"+strconv.Itoa(int(chal.ID))+"/submit", token,
		gin.H{"flag": testCanonicalFlag})

	w := doJSON(r, http.MethodGet, "/api/v1/users/me/solves", token, nil)
	var resp struct {
		Code int `json:"code"`
		Data []struct {
			ChallengeID    uint32 `json:"challenge_id"`
			ChallengeTitle string `json:"challenge_title"`
			Points         uint   `json:"points"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.Code)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, chal.ID, resp.Data[0].ChallengeID)
	assert.Equal(t, "SQL Injection 101", resp.Data[0].ChallengeTitle)
	assert.Equal(t, uint(100), resp.Data[0].Points)
}

func TestScoreboardEndpointPublic(t *testing.T) {
	r := setupTestServer(t)
	chal := seedChallenge(t, 0)
	_, token := seedUser(t, "alice", models.RoleUser)

	doJSON(r, http.MethodPost, "/api/v1/challenges/"+strconv.Itoa(int(chal.ID))+"/submit", token,
		gin.H{"flag": testCanonicalFlag})

	w := doJSON(r, http.MethodGet, "/api/v1/scoreboard?limit=10", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int `json:"code"`
		Data []struct {
			Rank       uint   `json:"rank"`
			Username   string `json:"username"`
			TotalScore uint   `json:"total_score"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.Code)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "alice", resp.Data[0].Username)
	assert.Equal(t, uint(100), resp.Data[0].TotalScore)
	assert.Equal(t, uint(1), resp.Data[0].Rank)
}
