package scoring

import (
	"math"

	"github.com/dotcommander/bananaq/internal/types"
)

// ScoreParameter scores a single value against its optimal range.
//
// Inside the range the score rises from 0.7*importance at either bound to the
// full importance at the midpoint. Outside it decays linearly with the
// overshoot, reaching 0.2*importance one full range width away, and stays
// there. The result is always within [0, importance].
func ScoreParameter(value float64, r types.Range, importance float64) float64 {
	width := r.Width()

	if r.Contains(value) {
		distanceFromMid := math.Abs(value - r.Mid())
		proximity := 1 - distanceFromMid/(width/2)
		return importance * (0.7 + 0.3*proximity)
	}

	var distanceOutside float64
	if value < r.Min {
		distanceOutside = r.Min - value
	} else {
		distanceOutside = value - r.Max
	}
	penalty := min(1, distanceOutside/width)
	return importance * max(0, 0.7-0.5*penalty)
}
