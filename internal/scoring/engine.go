package scoring

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/dotcommander/bananaq/internal/profile"
	"github.com/dotcommander/bananaq/internal/types"
)

// Source supplies uniform random numbers in [0,1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// globalSource draws from the process-wide math/rand/v2 generator.
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Engine scores banana records against a weight profile. An Engine is safe
// for concurrent use; draws from its random source are serialized.
type Engine struct {
	profile *profile.Profile

	mu  sync.Mutex
	src Source
}

// Option configures an Engine.
type Option func(*Engine)

// WithSource sets the random source used for confidence jitter.
func WithSource(src Source) Option {
	return func(e *Engine) {
		if src != nil {
			e.src = src
		}
	}
}

// WithSeed seeds a PCG generator for reproducible confidence jitter.
func WithSeed(seed uint64) Option {
	return WithSource(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewEngine creates an Engine. A nil profile selects the built-in default.
func NewEngine(p *profile.Profile, opts ...Option) *Engine {
	if p == nil {
		p = profile.Default()
	}
	e := &Engine{
		profile: p,
		src:     globalSource{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Profile returns the profile the engine scores against.
func (e *Engine) Profile() *profile.Profile {
	return e.profile
}

// Score returns the normalized 0-100 score of r and its per-field breakdown.
// It is deterministic and draws nothing from the random source.
func (e *Engine) Score(r types.Record) (float64, []ParameterScore) {
	var totalScore, maxPossibleScore float64
	details := make([]ParameterScore, 0, len(types.Fields))

	for _, f := range types.Fields {
		value := r.Value(f)
		rng := e.profile.Range(f)
		importance := e.profile.Importance(f)

		points := ScoreParameter(value, rng, importance)
		totalScore += points
		maxPossibleScore += importance

		details = append(details, ParameterScore{
			Field:     f,
			Value:     value,
			Points:    points,
			MaxPoints: importance,
			InRange:   rng.Contains(value),
		})
	}

	return 100 * totalScore / maxPossibleScore, details
}

// PredictQuality labels r Good or Bad and attaches a jittered confidence.
// Quality and score are deterministic; each call consumes one random draw.
func (e *Engine) PredictQuality(r types.Record) Prediction {
	score, details := e.Score(r)

	quality := types.QualityBad
	if score >= GoodThreshold {
		quality = types.QualityGood
	}

	confidenceBase := min(ConfidenceCeiling, max(ConfidenceFloor, score))
	confidence := int(math.Round(confidenceBase + e.jitter()))

	return Prediction{
		Quality:    quality,
		Confidence: confidence,
		Score:      score,
		Details:    details,
	}
}

// Analyze runs every engine operation on r. Quality and yield share a single
// prediction, so the report carries one confidence value.
func (e *Engine) Analyze(r types.Record) Analysis {
	prediction := e.PredictQuality(r)
	return Analysis{
		Record:          r,
		Profile:         e.profile.Name(),
		Prediction:      prediction,
		Recommendations: e.GenerateRecommendations(r),
		Visual:          VisualCharacteristics(r),
		Yield:           YieldFromPrediction(prediction),
	}
}

// jitter returns a value uniform in [-JitterSpan/2, JitterSpan/2).
func (e *Engine) jitter() float64 {
	e.mu.Lock()
	u := e.src.Float64()
	e.mu.Unlock()
	return u*JitterSpan - JitterSpan/2
}
