// file: dto/challenge.go
package dto

import "strings"

// ========== 请求 DTO ==========

type CreateChallengeReq struct {
	Code         string   `json:"code"`
	Title        string   `json:"title"`
	CategoryID   uint32   `json:"category_id"`
	Author       string   `json:"author"`
	Description  string   `json:"description"`
	Difficulty   string   `json:"difficulty"` // easy / medium / hard
	Flag         string   `json:"flag"`       // 留空则服务端生成随机 Flag
	ChallengeURL string   `json:"challenge_url"`
	BaseScore    uint     `json:"base_score"`
	Hints        []string `json:"hints"` // 按顺序即 hint_index 1..n 的内容
}

// Normalize 清洗输入并补默认值
func (r *CreateChallengeReq) Normalize() {
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.Description = strings.TrimSpace(r.Description)
	r.Flag = strings.TrimSpace(r.Flag)
	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))

	if r.Difficulty == "" {
		r.Difficulty = "medium"
	}
}

type UpdateChallengeStateReq struct {
	State    *string `json:"state"` // visible/hidden
	IsActive *bool   `json:"is_active"`
}

type SubmitFlagReq struct {
	Flag string `json:"flag"`
}

func (r *SubmitFlagReq) Normalize() {
	r.Flag = strings.TrimSpace(r.Flag)
}

// ========== 响应 DTO ==========

type ChallengeItemResp struct {
	ID          uint32 `json:"id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	BaseScore   uint   `json:"base_score"`
	SolvedCount uint   `json:"solved_count"`
	HintCount   int    `json:"hint_count"`
	Solved      bool   `json:"solved"`
}

type ChallengeDetailResp struct {
	ID           uint32 `json:"id"`
	Code         string `json:"code"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	Author       string `json:"author"`
	Description  string `json:"description"`
	Difficulty   string `json:"difficulty"`
	ChallengeURL string `json:"challenge_url,omitempty"`
	BaseScore    uint   `json:"base_score"`
	SolvedCount  uint   `json:"solved_count"`
	HintCount    int    `json:"hint_count"`
	Solved       bool   `json:"solved"`
}

type SubmitFlagResp struct {
	IsCorrect     bool `json:"is_correct"`
	AlreadySolved bool `json:"already_solved"`
	PointsEarned  uint `json:"points_earned"`
	HintsUsed     uint `json:"hints_used"`
	Penalty       uint `json:"penalty"`
}

// ====== Admin 专用响应 DTO ======

type AdminChallengeItemResp struct {
	ID          uint32 `json:"id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	State       string `json:"state"`
	IsActive    bool   `json:"is_active"`
	BaseScore   uint   `json:"base_score"`
	SolvedCount uint   `json:"solved_count"`
	UpdatedAt   string `json:"updated_at"`
}

type AdminChallengeDetailResp struct {
	ID            uint32   `json:"id"`
	Code          string   `json:"code"`
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	Author        string   `json:"author"`
	Description   string   `json:"description"`
	Difficulty    string   `json:"difficulty"`
	State         string   `json:"state"`
	IsActive      bool     `json:"is_active"`
	CanonicalFlag string   `json:"canonical_flag"` // 仅管理员详情返回
	ChallengeURL  string   `json:"challenge_url,omitempty"`
	BaseScore     uint     `json:"base_score"`
	SolvedCount   uint     `json:"solved_count"`
	Hints         []string `json:"hints"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}
