package scoring

import "github.com/dotcommander/bananaq/internal/types"

// Decision constants. The quality boundary is fixed; it is not part of a
// weight profile.
const (
	GoodThreshold     = 70.0 // normalized score at or above which quality is Good
	ConfidenceFloor   = 55.0 // lowest confidence base
	ConfidenceCeiling = 95.0 // highest confidence base
	JitterSpan        = 5.0  // confidence jitter is drawn from [-JitterSpan/2, JitterSpan/2)
)

// ParameterScore is the contribution of a single field to the overall score
type ParameterScore struct {
	Field     types.Field `json:"field"`
	Value     float64     `json:"value"`
	Points    float64     `json:"points"`     // contribution earned
	MaxPoints float64     `json:"max_points"` // the field's importance
	InRange   bool        `json:"in_range"`   // value within the optimal range
}

// Percent returns the share of the field's importance that was earned, 0-100.
func (p ParameterScore) Percent() float64 {
	if p.MaxPoints == 0 {
		return 0
	}
	return 100 * p.Points / p.MaxPoints
}

// Prediction is the quality estimate for a record
type Prediction struct {
	Quality    string           `json:"quality"`    // Good or Bad
	Confidence int              `json:"confidence"` // percent, jittered
	Score      float64          `json:"score"`      // 0-100 normalized score
	Details    []ParameterScore `json:"details"`    // per-field breakdown, field order
}

// IsGood reports whether the prediction carries the Good label.
func (p Prediction) IsGood() bool {
	return p.Quality == types.QualityGood
}

// Visual describes how a banana with the given measurements would look
type Visual struct {
	Color       string `json:"color"`
	Spotting    string `json:"spotting"`
	Shape       string `json:"shape"`
	Description string `json:"description"`
}

// YieldEstimate is the crop yield derived from a prediction, in t/ha.
type YieldEstimate struct {
	Yield      float64 `json:"yield"`
	Confidence int     `json:"confidence"`
}

// Analysis bundles every engine output for one record
type Analysis struct {
	Record          types.Record  `json:"record"`
	Profile         string        `json:"profile"`
	Prediction      Prediction    `json:"prediction"`
	Recommendations []string      `json:"recommendations"`
	Visual          Visual        `json:"visual"`
	Yield           YieldEstimate `json:"yield"`
}
