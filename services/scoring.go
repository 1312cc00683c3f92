// file: services/scoring.go
package services

// PenaltyPerHint 每条提示的固定罚分
const PenaltyPerHint = 10

// ComputeScore 计算净得分：基础分减去提示罚分，最低为 0。
// 纯函数，无副作用，对 hintsUsed 单调不增。
func ComputeScore(baseScore uint, hintsUsed uint) uint {
	penalty := hintsUsed * PenaltyPerHint
	if penalty >= baseScore {
		return 0
	}
	return baseScore - penalty
}
