// Package batch scores whole datasets concurrently and aggregates the
// results, comparing the heuristic against labelled rows where present.
package batch

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dotcommander/bananaq/internal/dataset"
	"github.com/dotcommander/bananaq/internal/discovery"
	"github.com/dotcommander/bananaq/internal/scoring"
	"github.com/dotcommander/bananaq/internal/types"
)

// FileResult aggregates the scoring of one dataset file
type FileResult struct {
	File       string  `json:"file"`
	Records    int     `json:"records"`
	Good       int     `json:"good"`
	Bad        int     `json:"bad"`
	MeanScore  float64 `json:"mean_score"`
	MeanYield  float64 `json:"mean_yield"`
	Labelled   int     `json:"labelled"`
	Agreements int     `json:"agreements"` // labelled rows whose label matches the prediction
	Error      string  `json:"error,omitempty"`
}

// Failed reports whether the file could not be scored.
func (r FileResult) Failed() bool {
	return r.Error != ""
}

// Agreement returns the percentage of labelled rows the heuristic matched,
// or 0 when no row is labelled.
func (r FileResult) Agreement() float64 {
	if r.Labelled == 0 {
		return 0
	}
	return 100 * float64(r.Agreements) / float64(r.Labelled)
}

// Summary is the outcome of a batch run
type Summary struct {
	Profile     string        `json:"profile"`
	Files       []FileResult  `json:"files"`
	Totals      FileResult    `json:"totals"`
	FailedFiles int           `json:"failed_files"`
	StartTime   time.Time     `json:"start_time"`
	Duration    time.Duration `json:"duration"`
}

// Runner scores dataset files with a shared engine
type Runner struct {
	engine      *scoring.Engine
	logger      *zap.Logger
	concurrency int
}

// NewRunner creates a Runner. Concurrency below 1 is treated as 1; a nil
// logger discards output.
func NewRunner(engine *scoring.Engine, logger *zap.Logger, concurrency int) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		engine:      engine,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Run scores every file. A file that cannot be read or parsed is recorded
// with its error and does not stop the run; cancelling ctx does.
func (r *Runner) Run(ctx context.Context, files []discovery.File) (*Summary, error) {
	summary := &Summary{
		Profile:   r.engine.Profile().Name(),
		Files:     make([]FileResult, len(files)),
		StartTime: time.Now(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, f := range files {
		g.Go(func() error {
			result, err := r.scoreFile(gctx, f)
			if err != nil {
				return err
			}
			summary.Files[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.Totals = total(summary.Files)
	for _, f := range summary.Files {
		if f.Failed() {
			summary.FailedFiles++
		}
	}
	summary.Duration = time.Since(summary.StartTime)

	r.logger.Info("batch complete",
		zap.Int("files", len(files)),
		zap.Int("records", summary.Totals.Records),
		zap.Int("failed_files", summary.FailedFiles),
		zap.Duration("duration", summary.Duration),
	)
	return summary, nil
}

// scoreFile returns an error only for cancellation; dataset problems are
// reported in the result.
func (r *Runner) scoreFile(ctx context.Context, f discovery.File) (FileResult, error) {
	result := FileResult{File: f.RelPath}
	log := r.logger.With(zap.String("file", f.RelPath))

	if err := ctx.Err(); err != nil {
		return result, err
	}

	rows, err := dataset.Load(f.Path)
	if err != nil {
		log.Debug("dataset skipped", zap.Error(err))
		result.Error = err.Error()
		return result, nil
	}

	var scoreSum, yieldSum float64
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		prediction := r.engine.PredictQuality(row.Record)
		yield := scoring.YieldFromPrediction(prediction)

		result.Records++
		scoreSum += prediction.Score
		yieldSum += yield.Yield
		if prediction.Quality == types.QualityGood {
			result.Good++
		} else {
			result.Bad++
		}
		if row.Labelled() {
			result.Labelled++
			if row.Label == prediction.Quality {
				result.Agreements++
			}
		}
	}

	if result.Records > 0 {
		result.MeanScore = scoreSum / float64(result.Records)
		result.MeanYield = yieldSum / float64(result.Records)
	}

	log.Debug("dataset scored",
		zap.Int("records", result.Records),
		zap.Int("good", result.Good),
		zap.Int("bad", result.Bad),
	)
	return result, nil
}

// total combines file results, weighting means by record count.
func total(files []FileResult) FileResult {
	t := FileResult{File: "total"}
	var scoreSum, yieldSum float64
	for _, f := range files {
		t.Records += f.Records
		t.Good += f.Good
		t.Bad += f.Bad
		t.Labelled += f.Labelled
		t.Agreements += f.Agreements
		scoreSum += f.MeanScore * float64(f.Records)
		yieldSum += f.MeanYield * float64(f.Records)
	}
	if t.Records > 0 {
		t.MeanScore = scoreSum / float64(t.Records)
		t.MeanYield = yieldSum / float64(t.Records)
	}
	return t
}
