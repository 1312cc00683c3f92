// file: dto/hint.go
package dto

import "strings"

type CreateHintReq struct {
	Content string `json:"content"`
}

func (r *CreateHintReq) Normalize() {
	r.Content = strings.TrimSpace(r.Content)
}

type HintResp struct {
	HintIndex        uint   `json:"hint_index"`
	Content          string `json:"content"`
	PenaltyPoints    uint   `json:"penalty_points"`
	AlreadyDisclosed bool   `json:"already_disclosed"`
}
