// file: mappers/challenge_mapper.go
package mappers

import (
	"SecXplore/dto"
	"SecXplore/models"
)

func MapModelToItemResp(ch models.Challenge, solved bool) dto.ChallengeItemResp {
	return dto.ChallengeItemResp{
		ID:          ch.ID,
		Code:        ch.Code,
		Title:       ch.Title,
		Category:    ch.Category.Alias,
		Difficulty:  string(ch.Difficulty),
		BaseScore:   ch.BaseScore,
		SolvedCount: ch.SolvedCount,
		HintCount:   len(ch.Hints),
		Solved:      solved,
	}
}

func MapModelToDetailResp(ch models.Challenge, solved bool) dto.ChallengeDetailResp {
	return dto.ChallengeDetailResp{
		ID:           ch.ID,
		Code:         ch.Code,
		Title:        ch.Title,
		Category:     ch.Category.Alias,
		Author:       ch.Author,
		Description:  ch.Description,
		Difficulty:   string(ch.Difficulty),
		ChallengeURL: ch.ChallengeURL,
		BaseScore:    ch.BaseScore,
		SolvedCount:  ch.SolvedCount,
		HintCount:    len(ch.Hints),
		Solved:       solved,
	}
}
