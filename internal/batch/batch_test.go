package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dotcommander/bananaq/internal/discovery"
	"github.com/dotcommander/bananaq/internal/scoring"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const header = "Size,Weight,Sweetness,Softness,HarvestTime,Ripeness,Acidity,Quality\n"

// defaultsRow scores about 91.6 under the default profile; outlierRow about 20.
const (
	defaultsRow = "0,1.5,2.0,-1.5,-0.5,2.0,1.0"
	outlierRow  = "9,9,9,9,9,9,9"
)

func writeDatasets(t *testing.T, files map[string]string) []discovery.File {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	found, err := discovery.NewFileDiscovery(root, false, nil).DiscoverFiles(nil)
	require.NoError(t, err)
	return found
}

func TestRun(t *testing.T) {
	files := writeDatasets(t, map[string]string{
		"a.csv": header +
			defaultsRow + ",good\n" +
			outlierRow + ",Good\n" +
			outlierRow + ",bad\n",
		"b.csv": header +
			defaultsRow + "\n",
	})
	require.Len(t, files, 2)

	engine := scoring.NewEngine(nil, scoring.WithSeed(7))
	summary, err := NewRunner(engine, zap.NewNop(), 4).Run(context.Background(), files)
	require.NoError(t, err)

	assert.Equal(t, "default", summary.Profile)
	require.Len(t, summary.Files, 2)
	assert.Zero(t, summary.FailedFiles)

	a := summary.Files[0]
	assert.Equal(t, "a.csv", a.File)
	assert.Equal(t, 3, a.Records)
	assert.Equal(t, 1, a.Good)
	assert.Equal(t, 2, a.Bad)
	assert.Equal(t, 3, a.Labelled)
	assert.Equal(t, 2, a.Agreements)
	assert.InDelta(t, 200.0/3, a.Agreement(), 1e-9)

	b := summary.Files[1]
	assert.Equal(t, "b.csv", b.File)
	assert.Equal(t, 1, b.Records)
	assert.Zero(t, b.Labelled)
	assert.Zero(t, b.Agreement())
	assert.InDelta(t, 91.6141133484512, b.MeanScore, 1e-9)

	totals := summary.Totals
	assert.Equal(t, 4, totals.Records)
	assert.Equal(t, 2, totals.Good)
	assert.Equal(t, 2, totals.Bad)
	assert.InDelta(t, (a.MeanScore*3+b.MeanScore)/4, totals.MeanScore, 1e-9)
	assert.Greater(t, totals.MeanYield, 0.0)
}

func TestRunRecordsBrokenFiles(t *testing.T) {
	files := writeDatasets(t, map[string]string{
		"good.csv":   header + defaultsRow + "\n",
		"broken.csv": header + "1,2,3\n",
	})

	engine := scoring.NewEngine(nil, scoring.WithSeed(1))
	summary, err := NewRunner(engine, nil, 1).Run(context.Background(), files)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.FailedFiles)
	assert.True(t, summary.Files[0].Failed())
	assert.Contains(t, summary.Files[0].Error, "broken.csv")
	assert.False(t, summary.Files[1].Failed())
	assert.Equal(t, 1, summary.Totals.Records)
}

func TestRunLogsBrokenFilesAtDebug(t *testing.T) {
	files := writeDatasets(t, map[string]string{
		"broken.csv": header + "1,2,3\n",
	})

	core, logs := observer.New(zapcore.DebugLevel)
	engine := scoring.NewEngine(nil, scoring.WithSeed(1))
	_, err := NewRunner(engine, zap.New(core), 1).Run(context.Background(), files)
	require.NoError(t, err)

	skipped := logs.FilterMessage("dataset skipped").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, zapcore.DebugLevel, skipped[0].Level)
	assert.Empty(t, logs.FilterLevelExact(zapcore.WarnLevel).All())
}

func TestRunCancelled(t *testing.T) {
	files := writeDatasets(t, map[string]string{
		"a.csv": header + defaultsRow + "\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := scoring.NewEngine(nil, scoring.WithSeed(1))
	_, err := NewRunner(engine, nil, 2).Run(ctx, files)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunEmpty(t *testing.T) {
	engine := scoring.NewEngine(nil)
	summary, err := NewRunner(engine, nil, 0).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, summary.Files)
	assert.Zero(t, summary.Totals.Records)
	assert.Zero(t, summary.Totals.MeanScore)
}
