package output

import (
	"time"

	"github.com/dotcommander/bananaq/internal/batch"
	"github.com/dotcommander/bananaq/internal/scoring"
	"github.com/dotcommander/bananaq/internal/types"
)

// fixedSource always returns the same draw.
type fixedSource float64

func (s fixedSource) Float64() float64 { return float64(s) }

func sampleAnalysis() *scoring.Analysis {
	engine := scoring.NewEngine(nil, scoring.WithSource(fixedSource(0.5)))
	a := engine.Analyze(types.Record{Size: 0, Weight: 1.5, Sweetness: 2, Softness: -1.5, HarvestTime: -0.5, Ripeness: 2, Acidity: 1})
	return &a
}

func badAnalysis() *scoring.Analysis {
	engine := scoring.NewEngine(nil, scoring.WithSource(fixedSource(0.5)))
	a := engine.Analyze(types.Record{Size: 3, Weight: -1, Sweetness: -2, Softness: 2, HarvestTime: 2, Ripeness: -1, Acidity: 4})
	return &a
}

func sampleSummary() *batch.Summary {
	files := []batch.FileResult{
		{File: "farm/a.csv", Records: 3, Good: 2, Bad: 1, MeanScore: 72.5, MeanYield: 4.1, Labelled: 3, Agreements: 2},
		{File: "b.csv", Records: 1, Good: 1, MeanScore: 91.6, MeanYield: 4.9},
		{File: "broken.csv", Error: "broken.csv: line 2: too few columns"},
	}
	return &batch.Summary{
		Profile:     "default",
		Files:       files,
		FailedFiles: 1,
		Totals: batch.FileResult{
			File: "total", Records: 4, Good: 3, Bad: 1, MeanScore: 77.3, MeanYield: 4.3, Labelled: 3, Agreements: 2,
		},
		StartTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Duration:  42 * time.Millisecond,
	}
}
