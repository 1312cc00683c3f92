// file: services/leaderboard_service_test.go
package services

import (
	"SecXplore/database"
	"SecXplore/models"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// journalAward 直接向流水表写一条计分记录，模拟历史数据
func journalAward(t *testing.T, userID, challengeID uint32, points uint, at time.Time) {
	t.Helper()
	require.NoError(t, database.DB.Create(&models.Submission{
		PublicID:      uuid.New().String(),
		ChallengeID:   challengeID,
		UserID:        userID,
		SubmittedFlag: "secXplore{redacted}",
		FlagResult:    models.FlagResultCorrect,
		IsCorrect:     true,
		PointsAwarded: points,
		SubmittedAt:   at,
	}).Error)
}

func TestScoreboardOrderingAndRank(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	carol := createTestUser(t, "carol")

	base := time.Now().Add(-time.Hour)
	// bob 150 分，alice 100 分，carol 100 分但比 alice 晚到达
	journalAward(t, bob.ID, 1, 150, base)
	journalAward(t, alice.ID, 2, 100, base.Add(5*time.Minute))
	journalAward(t, carol.ID, 3, 100, base.Add(10*time.Minute))

	rows, err := GetScoreboard(10)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, bob.ID, rows[0].UserID)
	assert.Equal(t, uint(1), rows[0].Rank)
	assert.Equal(t, uint(150), rows[0].TotalScore)

	// 同分 tie-break：先到达该分数者在前
	assert.Equal(t, alice.ID, rows[1].UserID)
	assert.Equal(t, carol.ID, rows[2].UserID)

	// 分数非增
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].TotalScore, rows[i].TotalScore)
	}

	rank, ranked, err := GetUserRank(carol.ID)
	require.NoError(t, err)
	assert.True(t, ranked)
	assert.Equal(t, uint(3), rank)
}

func TestScoreboardDerivedFromJournalOnly(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")

	now := time.Now()
	journalAward(t, alice.ID, 1, 100, now.Add(-2*time.Minute))
	// 同题的重复正确提交 0 分，不改变总分，但解题数仍按去重统计
	require.NoError(t, database.DB.Create(&models.Submission{
		PublicID:      uuid.New().String(),
		ChallengeID:   1,
		UserID:        alice.ID,
		SubmittedFlag: "secXplore{redacted}",
		FlagResult:    models.FlagResultDuplicate,
		IsCorrect:     true,
		PointsAwarded: 0,
		SubmittedAt:   now.Add(-time.Minute),
	}).Error)
	// 错误提交不影响任何统计
	require.NoError(t, database.DB.Create(&models.Submission{
		PublicID:      uuid.New().String(),
		ChallengeID:   2,
		UserID:        alice.ID,
		SubmittedFlag: "secXplore{bad}",
		FlagResult:    models.FlagResultWrong,
		SubmittedAt:   now,
	}).Error)

	score, err := GetUserScore(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(100), score.TotalScore)
	assert.Equal(t, uint(1), score.ChallengesSolved)

	rows, err := GetScoreboard(10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, uint(100), rows[0].TotalScore)
	assert.Equal(t, uint(1), rows[0].ChallengesSolved)
}

func TestGetUserRankUnranked(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")

	_, ranked, err := GetUserRank(alice.ID)
	require.NoError(t, err)
	assert.False(t, ranked)
}

func TestScoreboardExcludesBannedUsers(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")
	mallory := createTestUser(t, "mallory")
	require.NoError(t, database.DB.Model(&models.User{}).
		Where("id = ?", mallory.ID).Update("status", models.StatusBanned).Error)

	now := time.Now()
	journalAward(t, alice.ID, 1, 50, now)
	journalAward(t, mallory.ID, 1, 500, now)

	rows, err := GetScoreboard(10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, alice.ID, rows[0].UserID)
}

func TestSolveFeed(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	chal := createTestChallenge(t, "feed", "secXplore{feed_flag_1}", 100, 0)

	_, err := SubmitFlag(user.ID, chal.ID, "secXplore{feed_flag_1}", "127.0.0.1")
	require.NoError(t, err)

	feed, err := GetSolveFeed(20)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, chal.ID, feed[0].ChallengeID)
	assert.Equal(t, "feed", feed[0].ChallengeTitle)
	assert.Equal(t, uint(100), feed[0].Points)
}
