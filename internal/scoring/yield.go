package scoring

import "github.com/dotcommander/bananaq/internal/types"

// Yield model constants, in t/ha.
const (
	BaseYieldGood  = 4.5
	BaseYieldBad   = 2.8
	YieldVariation = 2.0 // added in proportion to the normalized score
)

// PredictYield estimates crop yield for r. It runs PredictQuality and so
// consumes one random draw.
func (e *Engine) PredictYield(r types.Record) YieldEstimate {
	return YieldFromPrediction(e.PredictQuality(r))
}

// YieldFromPrediction derives the yield estimate from an existing prediction.
// The confidence passes through unchanged.
func YieldFromPrediction(p Prediction) YieldEstimate {
	base := BaseYieldBad
	if p.IsGood() {
		base = BaseYieldGood
	}
	return YieldEstimate{
		Yield:      base + (p.Score/100)*YieldVariation,
		Confidence: p.Confidence,
	}
}
