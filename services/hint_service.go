// file: services/hint_service.go
package services

import (
	"SecXplore/database"
	"SecXplore/dto"
	"SecXplore/models"
	"errors"
	"gorm.io/gorm"
	"time"
)

// RequestHint 解锁提示。规则：
//   - hint_index 必须在 [1, 题目提示数] 内；
//   - 严格顺序解锁，第 k 条要求第 k-1 条已解锁；
//   - 幂等：已解锁的提示重复请求直接返回内容，罚分为 0；
//   - 解锁记录只增不删，(user, challenge, hint_index) 唯一索引兜底并发，
//     冲突同样还原为 already_disclosed。
func RequestHint(userID uint32, challengeID uint32, hintIndex uint) (*dto.HintResp, error) {
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

	var resp dto.HintResp

	err := withStorageRetry(func() error {
		return database.DB.Transaction(func(tx *gorm.DB) error {
			var hint models.Hint
			err := tx.Where("challenge_id = ? AND hint_index = ?", challengeID, hintIndex).
				First(&hint).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidHintIndex
			}
			if err != nil {
				return err
			}

			var existing models.HintDisclosure
			err = tx.Where("user_id = ? AND challenge_id = ? AND hint_index = ?",
				userID, challengeID, hintIndex).First(&existing).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err == nil {
				resp = dto.HintResp{
					HintIndex:        hintIndex,
					Content:          hint.Content,
					PenaltyPoints:    0,
					AlreadyDisclosed: true,
				}
				return nil
			}

			// 顺序解锁检查与插入在同一事务内完成
			if hintIndex > 1 {
				var prevCount int64
				if err := tx.Model(&models.HintDisclosure{}).
					Where("user_id = ? AND challenge_id = ? AND hint_index = ?",
						userID, challengeID, hintIndex-1).
					Count(&prevCount).Error; err != nil {
					return err
				}
				if prevCount == 0 {
					return ErrHintOutOfOrder
				}
			}

			disclosure := models.HintDisclosure{
				UserID:      userID,
				ChallengeID: challengeID,
				HintIndex:   hintIndex,
				DisclosedAt: time.Now(),
			}
			if err := tx.Create(&disclosure).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// 并发请求抢先解锁了同一条提示，幂等返回，不重复扣分
					resp = dto.HintResp{
						HintIndex:        hintIndex,
						Content:          hint.Content,
						PenaltyPoints:    0,
						AlreadyDisclosed: true,
					}
					return nil
				}
				return err
			}

			resp = dto.HintResp{
				HintIndex:        hintIndex,
				Content:          hint.Content,
				PenaltyPoints:    PenaltyPerHint,
				AlreadyDisclosed: false,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// CountDisclosed 统计某用户在某题已解锁的提示数，只信账本不信客户端
func CountDisclosed(userID uint32, challengeID uint32) (uint, error) {
	var count int64
	err := database.DB.Model(&models.HintDisclosure{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return uint(count), nil
}

// HintCount 题目定义的提示总数
func HintCount(challengeID uint32) (int, error) {
	var count int64
	err := database.DB.Model(&models.Hint{}).
		Where("challenge_id = ?", challengeID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
