package scoring

import (
	"wallet-reputation/internal/worker/model"
)

const (
	LP_WEIGHT   = 0.6
	SWAP_WEIGHT = 0.4
)

// FinalScore 加权合成最终分数
func FinalScore(lpScore, swapScore float64) float64 {
	return lpScore*LP_WEIGHT + swapScore*SWAP_WEIGHT
}

// Compose 合成最终分数并组装完整特征
func Compose(lpScore, swapScore float64, lp *model.LPFeatures, swap *model.SwapFeatures,
	lpBreakdown *model.LPBreakdown, swapBreakdown *model.SwapBreakdown) (float64, model.CompleteFeatures) {

	final := FinalScore(lpScore, swapScore)
	complete := model.CompleteFeatures{
		UserTags:   GenerateTags(lp, swap),
		LPScore:    lpScore,
		SwapScore:  swapScore,
		FinalScore: final,
		ScoreBreakdown: model.ScoreBreakdown{
			LP:   lpBreakdown,
			Swap: swapBreakdown,
		},
	}
	if lp != nil {
		complete.LPFeatures = *lp
	}
	if swap != nil {
		complete.SwapFeatures = *swap
	}
	return final, complete
}
