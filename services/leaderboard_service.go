// file: services/leaderboard_service.go
package services

import (
	"SecXplore/database"
	"SecXplore/dto"
	"SecXplore/models"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

const scoreboardCacheTTL = 15 * time.Second

// scoreboardRows 从提交流水聚合出全量排名。
// 总分 = SUM(points_awarded)，解题数 = 有正确记录的题目数，完全由流水推导，
// 不维护任何可能漂移的独立计数器。排序：总分降序 → 最近得分时间升序 → 用户 ID 升序。
func scoreboardRows() ([]dto.ScoreboardRow, error) {
	var rows []dto.ScoreboardRow
	err := database.DB.Table("secxplore_submission s").
		Select("s.user_id, u.username, "+
			"COALESCE(NULLIF(u.display_name, ''), u.username) AS display_name, "+
			"COALESCE(SUM(s.points_awarded), 0) AS total_score, "+
			"COUNT(DISTINCT CASE WHEN s.is_correct THEN s.challenge_id END) AS challenges_solved").
		Joins("JOIN secxplore_user u ON s.user_id = u.id").
		Where("u.status = ?", models.StatusActive).
		Group("s.user_id, u.username, u.display_name").
		Order("total_score desc, MAX(CASE WHEN s.points_awarded > 0 THEN s.submitted_at END) asc, s.user_id asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// 名次即排序位置：同分用户按先得分者在前，名次互不相同，不并列
	for i := range rows {
		rows[i].Rank = uint(i + 1)
	}
	return rows, nil
}

// GetScoreboard 查询排行榜，带 15 秒 Redis 缓存保证准实时性。
// 缓存只是读路径的加速，决不会作为写路径或分数真值。
func GetScoreboard(limit int) ([]dto.ScoreboardRow, error) {
	cacheKey := fmt.Sprintf("scoreboard:overall:%d", limit)

	if database.RDB != nil {
		if val, err := database.RDB.Get(database.Ctx, cacheKey).Result(); err == nil {
			var cached []dto.ScoreboardRow
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		}
	}

	rows, err := scoreboardRows()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	if database.RDB != nil {
		if jsonData, err := json.Marshal(rows); err == nil {
			database.RDB.Set(database.Ctx, cacheKey, jsonData, scoreboardCacheTTL)
		}
	}

	return rows, nil
}

// GetUserRank 返回用户当前名次，没有任何提交记录时返回 (0, false)
func GetUserRank(userID uint32) (uint, bool, error) {
	rows, err := scoreboardRows()
	if err != nil {
		return 0, false, err
	}
	for _, row := range rows {
		if row.UserID == userID {
			return row.Rank, true, nil
		}
	}
	return 0, false, nil
}

// GetUserScore 流水推导的个人总分与解题数
func GetUserScore(userID uint32) (*dto.UserScoreResp, error) {
	resp := dto.UserScoreResp{UserID: userID}
	err := database.DB.Model(&models.Submission{}).
		Select("COALESCE(SUM(points_awarded), 0) AS total_score, "+
			"COUNT(DISTINCT CASE WHEN is_correct THEN challenge_id END) AS challenges_solved").
		Where("user_id = ?", userID).
		Scan(&resp).Error
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSolveFeed 最近解题动态
func GetSolveFeed(limit int) ([]dto.SolveFeedItem, error) {
	var feed []models.SolveFeed
	if err := database.DB.Order("solved_at desc").Limit(limit).Find(&feed).Error; err != nil {
		return nil, err
	}

	items := make([]dto.SolveFeedItem, 0, len(feed))
	for _, f := range feed {
		items = append(items, dto.SolveFeedItem{
			ChallengeID:    f.ChallengeID,
			ChallengeTitle: f.ChallengeTitle,
			UserID:         f.UserID,
			Username:       f.Username,
			Points:         f.Points,
			SolvedAt:       f.SolvedAt,
		})
	}
	return items, nil
}

// InvalidateScoreboardCache 记分后清空排行榜相关缓存，下次查询取最新数据
func InvalidateScoreboardCache() {
	if database.RDB == nil {
		return
	}
	keys, err := database.RDB.Keys(database.Ctx, "scoreboard:*").Result()
	if err == nil && len(keys) > 0 {
		database.RDB.Del(database.Ctx, keys...)
		log.Printf("Cleared %d scoreboard cache keys from Redis.", len(keys))
	}
}

// TrimSolveFeed 控制动态表的大小，保留最新的 5000 条
func TrimSolveFeed() {
	var count int64
	database.DB.Model(&models.SolveFeed{}).Count(&count)
	if count > 5000 {
		database.DB.Exec("DELETE FROM secxplore_solve_feed ORDER BY solved_at asc LIMIT ?", count-5000)
	}
}
