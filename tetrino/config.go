package tetrino

import (
	"errors"
	"fmt"
	"image/color"
	"time"
)

var (
	ErrInvalidCellSize  = errors.New("cell pixel size must be positive")
	ErrInvalidInterval  = errors.New("fall interval must be positive")
	ErrEmptyPalette     = errors.New("colour palette is empty")
	ErrSpawnOutOfBounds = errors.New("spawn origin is off the grid")
)

// Config is the startup configuration of one game session. It is built once
// and never changed while a session runs.
type Config struct {
	CellPixelSize int
	GridCols      int
	GridRows      int
	FallInterval  time.Duration
	Catalog       *Catalog
	Palette       []color.RGBA

	// Origin given to every newly spawned piece.
	SpawnX, SpawnY int
}

// DefaultConfig returns the canonical 18x24 board with a 500ms fall step.
func DefaultConfig() Config {
	cfg := Config{
		CellPixelSize: 24,
		GridCols:      18,
		GridRows:      24,
		FallInterval:  500 * time.Millisecond,
		Catalog:       DefaultCatalog(),
		Palette:       DefaultPalette(),
	}
	cfg.SpawnX = CenteredSpawn(cfg.GridCols)
	return cfg
}

// CenteredSpawn returns a spawn column that keeps a four-wide shape centred.
func CenteredSpawn(cols int) int {
	return max((cols-4)/2, 0)
}

// DefaultPalette returns one colour per default shape.
func DefaultPalette() []color.RGBA {
	return []color.RGBA{
		{R: 102, G: 191, B: 255, A: 255},
		{R: 255, G: 203, B: 0, A: 255},
		{R: 200, G: 122, B: 255, A: 255},
		{R: 0, G: 228, B: 48, A: 255},
		{R: 255, G: 109, B: 194, A: 255},
		{R: 0, G: 121, B: 241, A: 255},
		{R: 255, G: 161, B: 0, A: 255},
	}
}

// Validate reports the first problem that makes the configuration unusable.
func (c Config) Validate() error {
	if c.GridCols <= 0 || c.GridRows <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, c.GridCols, c.GridRows)
	}
	if c.CellPixelSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCellSize, c.CellPixelSize)
	}
	if c.FallInterval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, c.FallInterval)
	}
	if c.Catalog == nil || c.Catalog.Len() == 0 {
		return ErrEmptyCatalog
	}
	if len(c.Palette) == 0 {
		return ErrEmptyPalette
	}
	if c.SpawnX < 0 || c.SpawnX >= c.GridCols || c.SpawnY < 0 || c.SpawnY >= c.GridRows {
		return fmt.Errorf("%w: (%d,%d)", ErrSpawnOutOfBounds, c.SpawnX, c.SpawnY)
	}
	return nil
}

// Colour returns the palette entry for a colour tag, wrapping around.
func (c Config) Colour(tag int) color.RGBA {
	n := len(c.Palette)
	return c.Palette[((tag%n)+n)%n]
}
