package main

import (
	"testing"
	"time"

	"github.com/plus3/tetrino/session"
	"github.com/plus3/tetrino/tetrino"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFlags(t *testing.T) {
	cfg, err := applyFlags(tetrino.DefaultConfig(), 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, tetrino.DefaultConfig().GridCols, cfg.GridCols)

	cfg, err = applyFlags(tetrino.DefaultConfig(), 10, 12, 200*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.GridCols)
	assert.Equal(t, 12, cfg.GridRows)
	assert.Equal(t, 3, cfg.SpawnX)
	assert.Equal(t, 200*time.Millisecond, cfg.FallInterval)

	base := tetrino.DefaultConfig()
	base.SpawnY = 5
	_, err = applyFlags(base, 0, 4, 0)
	assert.ErrorIs(t, err, tetrino.ErrSpawnOutOfBounds)
}

func TestRepeating(t *testing.T) {
	var fired []int
	for d := 0; d <= 30; d++ {
		if repeating(d) {
			fired = append(fired, d)
		}
	}
	assert.Equal(t, []int{1, 15, 19, 23, 27}, fired)
}

func TestRestartKeepsLatestFrame(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	game := NewGame(tetrino.DefaultConfig(), logger)
	require.NoError(t, game.Restart())
	require.NotNil(t, game.frame)
	assert.Len(t, game.frame.Active, 4)

	width, height := game.boardSize()
	assert.Equal(t, game.frame.Width(), width)
	assert.Equal(t, game.frame.Height()+statusHeight, height)

	game.cmds.Push(session.SoftDrop)
	assert.Equal(t, 1, game.cmds.Flush(game.ctrl))
	assert.Equal(t, game.ctrl.Frame().Active, game.frame.Active)

	first := game.ctrl
	require.NoError(t, game.Restart())
	assert.NotSame(t, first, game.ctrl)
	assert.Nil(t, game.overlay)
}
