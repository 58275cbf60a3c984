// Package chart derives the data series shown alongside a prediction: the
// yield comparison bars and the per-parameter analysis.
package chart

import (
	"github.com/dotcommander/bananaq/internal/scoring"
)

// Bar is one labelled value in a series.
type Bar struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Yield comparison multipliers relative to the predicted yield.
const (
	AverageFactor = 0.7
	TopFactor     = 1.2
	LowFactor     = 0.5
)

// QualityAxis names the extra axis ParameterAnalysis appends.
const QualityAxis = "Quality"

// YieldComparison places the predicted yield next to typical, top and low
// yields for the same crop.
func YieldComparison(y scoring.YieldEstimate) []Bar {
	return []Bar{
		{Name: "Prediction", Value: y.Yield},
		{Name: "Average", Value: y.Yield * AverageFactor},
		{Name: "Top", Value: y.Yield * TopFactor},
		{Name: "Low", Value: y.Yield * LowFactor},
	}
}

// ParameterAnalysis returns, for each field in canonical order, the share of
// its importance the record earned, followed by the Quality axis: the
// predicted yield as a percentage of the top yield. Values are in [0,100].
func ParameterAnalysis(p scoring.Prediction, y scoring.YieldEstimate) []Bar {
	bars := make([]Bar, 0, len(p.Details)+1)
	for _, d := range p.Details {
		bars = append(bars, Bar{Name: d.Field.Label(), Value: d.Percent()})
	}

	var quality float64
	if top := y.Yield * TopFactor; top > 0 {
		quality = 100 * y.Yield / top
	}
	return append(bars, Bar{Name: QualityAxis, Value: quality})
}

// Max returns the largest value in bars, or 0 for an empty series.
func Max(bars []Bar) float64 {
	var m float64
	for _, b := range bars {
		m = max(m, b.Value)
	}
	return m
}
