// Package config loads startup settings from an optional .env file and the
// process environment. Settings are read once; nothing is reconfigured while
// a session runs.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/plus3/tetrino/tetrino"
	"github.com/sirupsen/logrus"
)

// Environment keys.
const (
	EnvCols         = "TETRINO_COLS"
	EnvRows         = "TETRINO_ROWS"
	EnvCellSize     = "TETRINO_CELL_SIZE"
	EnvFallInterval = "TETRINO_FALL_INTERVAL_MS"
	EnvShapes       = "TETRINO_SHAPES"
	EnvPalette      = "TETRINO_PALETTE"
	EnvSpawnX       = "TETRINO_SPAWN_X"
	EnvSpawnY       = "TETRINO_SPAWN_Y"
	EnvLogLevel     = "TETRINO_LOG_LEVEL"
)

var keys = []string{
	EnvCols, EnvRows, EnvCellSize, EnvFallInterval, EnvShapes,
	EnvPalette, EnvSpawnX, EnvSpawnY, EnvLogLevel,
}

// Settings is the loaded configuration.
type Settings struct {
	Game     tetrino.Config
	LogLevel logrus.Level
}

// Load starts from tetrino.DefaultConfig, applies the given .env files in
// order (missing files are skipped), then the process environment, and
// validates the result.
func Load(envFiles ...string) (*Settings, error) {
	values := make(map[string]string)

	for _, path := range envFiles {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		file, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		for k, v := range file {
			values[k] = v
		}
	}

	for _, key := range keys {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
		}
	}

	return fromValues(values)
}

func fromValues(values map[string]string) (*Settings, error) {
	s := &Settings{
		Game:     tetrino.DefaultConfig(),
		LogLevel: logrus.InfoLevel,
	}
	cfg := &s.Game

	ints := []struct {
		key string
		dst *int
	}{
		{EnvCols, &cfg.GridCols},
		{EnvRows, &cfg.GridRows},
		{EnvCellSize, &cfg.CellPixelSize},
	}
	for _, field := range ints {
		if err := parseInt(values, field.key, field.dst); err != nil {
			return nil, err
		}
	}

	var intervalMs int
	if err := parseInt(values, EnvFallInterval, &intervalMs); err != nil {
		return nil, err
	}
	if _, ok := values[EnvFallInterval]; ok {
		cfg.FallInterval = time.Duration(intervalMs) * time.Millisecond
	}

	cfg.SpawnX = tetrino.CenteredSpawn(cfg.GridCols)
	if err := parseInt(values, EnvSpawnX, &cfg.SpawnX); err != nil {
		return nil, err
	}
	if err := parseInt(values, EnvSpawnY, &cfg.SpawnY); err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(values[EnvShapes]); v != "" {
		catalog, err := cfg.Catalog.Subset(splitList(v)...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvShapes, err)
		}
		cfg.Catalog = catalog
	}

	if v := strings.TrimSpace(values[EnvPalette]); v != "" {
		palette, err := ParsePalette(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvPalette, err)
		}
		cfg.Palette = palette
	}

	if v := strings.TrimSpace(values[EnvLogLevel]); v != "" {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		s.LogLevel = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseInt(values map[string]string, key string, dst *int) error {
	v, ok := values[key]
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParsePalette parses a comma-separated list of #rrggbb colours.
func ParsePalette(v string) ([]color.RGBA, error) {
	var palette []color.RGBA
	for _, hex := range splitList(v) {
		hex = strings.TrimPrefix(hex, "#")
		if len(hex) != 6 {
			return nil, fmt.Errorf("colour %q: want #rrggbb", hex)
		}
		rgb, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("colour %q: %w", hex, err)
		}
		palette = append(palette, color.RGBA{
			R: uint8(rgb >> 16),
			G: uint8(rgb >> 8),
			B: uint8(rgb),
			A: 255,
		})
	}
	if len(palette) == 0 {
		return nil, tetrino.ErrEmptyPalette
	}
	return palette, nil
}

// Logger builds a text logger at the configured level.
func (s *Settings) Logger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(s.LogLevel)
	return log
}
