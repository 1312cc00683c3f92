// file: services/scoring_service.go
package services

import (
	"SecXplore/database"
	"SecXplore/dto"
	"SecXplore/models"
	"SecXplore/utils"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

const (
	rateLimitMaxAttempts = 5
	rateLimitWindow      = 5 * time.Minute
)

// SubmitFlag 校验提交并完成首解计分，流程：
//  1. 限流检查（滑动窗口，被限流的提交也会入账但不重复计入窗口）；
//  2. 事务内：恒定结构比较 Flag → 判重 → 计算净得分 → 写 Solve + 流水；
//  3. (user_id, challenge_id) 唯一索引保证并发正确提交只记一次分，
//     唯一键冲突在这里被还原为 already_solved，不向用户暴露为错误。
//
// 正解从不离开本函数的事务作用域，错误路径不携带任何比对细节。
func SubmitFlag(userID uint32, challengeID uint32, submittedFlag string, ip string) (*dto.SubmitFlagResp, error) {
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	if user.Status == models.StatusBanned {
		return nil, ErrUserBanned
	}

	// 隐藏/停用的题目对用户一律表现为不存在
	var challenge models.Challenge
	if err := database.DB.First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	if challenge.State != models.ChallengeStateVisible || !challenge.IsActive {
		return nil, ErrChallengeNotFound
	}

	now := time.Now()

	var resp dto.SubmitFlagResp
	var firstSolve bool
	var limited bool
	var limitedRetry time.Duration

	err := withStorageRetry(func() error {
		resp = dto.SubmitFlagResp{}
		firstSolve = false
		limited = false

		return database.DB.Transaction(func(tx *gorm.DB) error {
			// 窗口统计与尝试入账在同一事务内：两个并发的第 6 次尝试
			// 不能同时通过检查后各记一笔有效尝试
			retryAfter, lim, err := checkRateLimit(tx, userID, challengeID, now)
			if err != nil {
				return err
			}
			if lim {
				// 被限流的尝试仍然入账供审计，但 flag_result 标记为
				// rate_limited，不再计入窗口，避免越限越久
				limited = true
				limitedRetry = retryAfter
				rejected := models.Submission{
					PublicID:      uuid.New().String(),
					ChallengeID:   challengeID,
					UserID:        userID,
					SubmittedFlag: submittedFlag,
					FlagResult:    models.FlagResultRateLimited,
					IPAddress:     ip,
					SubmittedAt:   now,
				}
				return tx.Create(&rejected).Error
			}

			record := models.Submission{
				PublicID:      uuid.New().String(),
				ChallengeID:   challengeID,
				UserID:        userID,
				SubmittedFlag: submittedFlag,
				IPAddress:     ip,
				SubmittedAt:   now,
			}

			correct := utils.ValidateFlagFormat(submittedFlag) &&
				utils.SecureCompareFlag(challenge.CanonicalFlag, submittedFlag)

			if !correct {
				record.FlagResult = models.FlagResultWrong
				return tx.Create(&record).Error
			}

			record.IsCorrect = true
			resp.IsCorrect = true

			var existing models.Solve
			err = tx.Where("user_id = ? AND challenge_id = ?", userID, challengeID).
				First(&existing).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err == nil {
				return recordDuplicate(tx, &record, &existing, &resp)
			}

			var hintsUsed int64
			if err := tx.Model(&models.HintDisclosure{}).
				Where("user_id = ? AND challenge_id = ?", userID, challengeID).
				Count(&hintsUsed).Error; err != nil {
				return err
			}

			points := ComputeScore(challenge.BaseScore, uint(hintsUsed))
			solve := models.Solve{
				ChallengeID: challengeID,
				UserID:      userID,
				Points:      points,
				HintsUsed:   uint(hintsUsed),
				SolvedAt:    now,
			}
			if err := tx.Create(&solve).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// 并发提交抢先记了分：当作已解出处理
					if err := tx.Where("user_id = ? AND challenge_id = ?", userID, challengeID).
						First(&existing).Error; err != nil {
						return err
					}
					return recordDuplicate(tx, &record, &existing, &resp)
				}
				return err
			}

			record.FlagResult = models.FlagResultCorrect
			record.PointsAwarded = points
			if err := tx.Create(&record).Error; err != nil {
				return err
			}

			if err := tx.Model(&models.Challenge{}).Where("id = ?", challengeID).
				UpdateColumn("solved_count", gorm.Expr("solved_count + 1")).Error; err != nil {
				return err
			}

			feed := models.SolveFeed{
				ChallengeID:    challengeID,
				ChallengeTitle: challenge.Title,
				UserID:         userID,
				Username:       user.Name(),
				Points:         points,
				SolvedAt:       now,
			}
			if err := tx.Create(&feed).Error; err != nil {
				return err
			}

			firstSolve = true
			resp.AlreadySolved = false
			resp.PointsEarned = points
			resp.HintsUsed = uint(hintsUsed)
			resp.Penalty = uint(hintsUsed) * PenaltyPerHint
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if limited {
		return nil, &RateLimitedError{RetryAfter: limitedRetry}
	}

	if firstSolve {
		InvalidateScoreboardCache()
		TrimSolveFeed()
	}

	return &resp, nil
}

// recordDuplicate 重复正确提交：流水记 duplicate、0 分，响应带上当年拿到的分数
func recordDuplicate(tx *gorm.DB, record *models.Submission, solve *models.Solve, resp *dto.SubmitFlagResp) error {
	record.FlagResult = models.FlagResultDuplicate
	record.PointsAwarded = 0
	if err := tx.Create(record).Error; err != nil {
		return err
	}
	resp.AlreadySolved = true
	resp.PointsEarned = solve.Points
	resp.HintsUsed = solve.HintsUsed
	resp.Penalty = solve.HintsUsed * PenaltyPerHint
	return nil
}

// checkRateLimit 统计窗口内的有效尝试次数（rate_limited 流水不算），
// 超限时返回距窗口内最早尝试过期还需等待的时长。必须在提交事务内调用，
// 保证统计与本次尝试的入账之间没有窗口
func checkRateLimit(tx *gorm.DB, userID uint32, challengeID uint32, now time.Time) (time.Duration, bool, error) {
	windowStart := now.Add(-rateLimitWindow)

	var attempts []time.Time
	err := tx.Model(&models.Submission{}).
		Where("user_id = ? AND challenge_id = ? AND flag_result <> ? AND submitted_at > ?",
			userID, challengeID, models.FlagResultRateLimited, windowStart).
		Order("submitted_at asc").
		Pluck("submitted_at", &attempts).Error
	if err != nil {
		return 0, false, err
	}

	if len(attempts) < rateLimitMaxAttempts {
		return 0, false, nil
	}

	retryAfter := attempts[0].Add(rateLimitWindow).Sub(now)
	if retryAfter < time.Second {
		retryAfter = time.Second
	}
	return retryAfter, true, nil
}

// GetAwardedPoints 查询某题首解拿到的分数，未解出返回 (0, false)
func GetAwardedPoints(userID uint32, challengeID uint32) (uint, bool, error) {
	var solve models.Solve
	err := database.DB.Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		First(&solve).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return solve.Points, true, nil
}
