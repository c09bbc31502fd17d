package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tetrino/config"
	"github.com/plus3/tetrino/debugui"
	debugui_ebiten "github.com/plus3/tetrino/debugui/ebiten"
	"github.com/plus3/tetrino/tetrino"
)

func main() {
	envFile := flag.String("env", ".env", "Optional .env file with TETRINO_* settings.")
	cols := flag.Int("cols", 0, "Grid width in cells. Overrides TETRINO_COLS.")
	rows := flag.Int("rows", 0, "Grid height in cells. Overrides TETRINO_ROWS.")
	interval := flag.Duration("interval", 0, "Fall interval. Overrides TETRINO_FALL_INTERVAL_MS.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui inspector overlay.")
	flag.Parse()

	settings, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := settings.Logger()

	cfg, err := applyFlags(settings.Game, *cols, *rows, *interval)
	if err != nil {
		log.WithError(err).Fatal("invalid flags")
	}

	game := NewGame(cfg, log)
	width, height := game.boardSize()

	if *debug {
		backend := debugui_ebiten.NewImguiBackend("Tetrino (debug)", width+800, max(height, 480))
		game.EnableDebug(backend, debugui.NewFrameTimer())
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle("Tetrino")
	}

	if err := game.Restart(); err != nil {
		log.WithError(err).Fatal("failed to start session")
	}

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Fatal("game exited")
	}
}

// applyFlags overrides cfg with any non-zero flag value. A changed width
// recentres the spawn column.
func applyFlags(cfg tetrino.Config, cols, rows int, interval time.Duration) (tetrino.Config, error) {
	if cols > 0 {
		cfg.GridCols = cols
		cfg.SpawnX = tetrino.CenteredSpawn(cols)
	}
	if rows > 0 {
		cfg.GridRows = rows
	}
	if interval > 0 {
		cfg.FallInterval = interval
	}
	return cfg, cfg.Validate()
}
