package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tetrino/config"
	"github.com/plus3/tetrino/session"
	"github.com/sirupsen/logrus"
)

func main() {
	envFile := flag.String("env", ".env", "Optional .env file with TETRINO_* settings.")
	logFile := flag.String("log", "tetrino-term.log", "File to write logs to; the terminal is busy drawing.")
	flag.Parse()

	settings, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	out, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	log := settings.Logger()
	log.SetOutput(out)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.WithError(err).Fatal("failed to create screen")
	}
	if err := screen.Init(); err != nil {
		log.WithError(err).Fatal("failed to init screen")
	}
	defer screen.Fini()

	ctrl, err := session.New(settings.Game,
		session.WithLogger(log),
		session.WithRenderer(NewRenderer(screen)),
	)
	if err != nil {
		screen.Fini()
		log.WithError(err).Fatal("failed to create session")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input := make(chan session.Command, 16)
	go readInput(ctx, screen, input, cancel)

	err = ctrl.Run(ctx, input)
	if errors.Is(err, session.ErrToppedOut) {
		// Leave the final board up until the player quits.
		<-ctx.Done()
	} else if err != nil {
		log.WithError(err).Error("session failed")
	}

	stats := ctrl.GetStats()
	log.WithFields(logrus.Fields{
		"pieces": stats.Pieces,
		"rows":   stats.RowsCollapsed,
	}).Info("exiting")
}
