package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/plus3/tetrino/config"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the soak should run for.")
	games := flag.Int("games", 8, "The maximum number of games to play.")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for piece and command selection.")
	envFile := flag.String("env", ".env", "Optional .env file with TETRINO_* settings.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	settings, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := settings.Logger()

	report := &Report{
		Duration:       *duration,
		Games:          *games,
		Seed:           *seed,
		Cols:           settings.Game.GridCols,
		Rows:           settings.Game.GridRows,
		Shapes:         settings.Game.Catalog.Len(),
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.WithField("duration", *duration).Info("running soak")
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	runner := NewRunner(settings.Game, *seed, log)
	if err := runner.Play(ctx, *games, report); err != nil {
		log.WithError(err).Fatal("soak failed")
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.WithField("games", len(report.Results)).Info("soak finished")

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.WithError(err).Fatal("failed to generate report")
	}
	fmt.Println("--- End of Report ---")
}
