package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/plus3/tetrino/tetrino"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tinyConfig is a board where the first square always blocks the spawn of
// the second, so every game tops out after one piece.
func tinyConfig(t *testing.T) tetrino.Config {
	t.Helper()
	catalog, err := tetrino.DefaultCatalog().Subset("O")
	require.NoError(t, err)

	cfg := tetrino.DefaultConfig()
	cfg.GridCols, cfg.GridRows = 4, 2
	cfg.Catalog = catalog
	cfg.SpawnX, cfg.SpawnY = 1, 0
	return cfg
}

func TestRunnerPlaysGamesToTopOut(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	report := &Report{}
	runner := NewRunner(tinyConfig(t), 42, logger)
	require.NoError(t, runner.Play(ctx, 3, report))

	require.Len(t, report.Results, 3)
	for _, game := range report.Results {
		assert.True(t, game.Over)
		assert.Equal(t, 1, game.Pieces)
	}
	assert.Equal(t, 3, report.Pieces)
	assert.Equal(t, 0, report.RowsCollapsed)
	assert.Positive(t, report.TotalUpdates)
	assert.Equal(t, report.TotalUpdates, report.UpdateTime.Count)

	var toppedOut int
	for _, entry := range hook.AllEntries() {
		if entry.Message == "topped out" {
			toppedOut++
			assert.Equal(t, logrus.WarnLevel, entry.Level)
			assert.Contains(t, entry.Data, "game")
		}
	}
	assert.Equal(t, 3, toppedOut)
}

func TestRunnerStopsOnCancel(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := &Report{}
	require.NoError(t, NewRunner(tinyConfig(t), 1, logger).Play(ctx, 5, report))
	assert.Empty(t, report.Results)
}

func TestReportGenerate(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	report := &Report{Duration: time.Second, Games: 2, Seed: 7, Cols: 4, Rows: 2, Shapes: 1}
	require.NoError(t, NewRunner(tinyConfig(t), 7, logger).Play(context.Background(), 2, report))
	report.UpdateTime.Finalize()

	var totalRuns int64
	for _, cmd := range report.Commands {
		totalRuns += cmd.ExecutionCount
		assert.LessOrEqual(t, cmd.AppliedCount, cmd.ExecutionCount)
	}
	assert.Equal(t, report.TotalUpdates, totalRuns)
	assert.LessOrEqual(t, report.UpdateTime.Min, report.UpdateTime.Avg)
	assert.LessOrEqual(t, report.UpdateTime.Avg, report.UpdateTime.Max)

	var out bytes.Buffer
	require.NoError(t, report.Generate(&out))
	assert.Contains(t, out.String(), "# Tetrino Soak Report")
	assert.Contains(t, out.String(), "- **Games Played:** 2")
	assert.Contains(t, out.String(), "- **Grid:** 4x2")
	assert.Contains(t, out.String(), "| MoveLeft |")
	assert.Contains(t, out.String(), "| "+report.Results[0].SessionID+" | 1 | 0 | true |")
}

func TestStatsRunningTotals(t *testing.T) {
	var s Stats
	s.Finalize()
	assert.Equal(t, Stats{}, s)

	for _, d := range []time.Duration{30, 10, 20} {
		s.Add(d * time.Millisecond)
	}
	s.Finalize()

	assert.Equal(t, int64(3), s.Count)
	assert.Equal(t, 10*time.Millisecond, s.Min)
	assert.Equal(t, 30*time.Millisecond, s.Max)
	assert.Equal(t, 20*time.Millisecond, s.Avg)
}
