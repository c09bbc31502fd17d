package tetrino_test

import (
	"testing"

	"github.com/plus3/tetrino/tetrino"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shapeIndex(t *testing.T, c *tetrino.Catalog, name string) int {
	t.Helper()
	idx, ok := c.Index(name)
	require.True(t, ok, "shape %s", name)
	return idx
}

func TestPieceRotationWraps(t *testing.T) {
	catalog := tetrino.DefaultCatalog()

	for _, name := range []string{"I", "T", "S", "Z", "J", "L"} {
		t.Run(name, func(t *testing.T) {
			p := tetrino.NewPiece(catalog, shapeIndex(t, catalog, name), 0)
			start := p.CurrentOffsets()
			n := catalog.RotationCount(p.Shape())

			for i := 1; i < n; i++ {
				p.Rotate()
				assert.Equal(t, i, p.Rotation())
			}
			p.Rotate()

			assert.Equal(t, 0, p.Rotation())
			assert.Equal(t, start, p.CurrentOffsets())
		})
	}
}

func TestPieceFourRotationsRestoreOffsets(t *testing.T) {
	catalog := tetrino.DefaultCatalog()
	p := tetrino.NewPiece(catalog, shapeIndex(t, catalog, "J"), 2)
	start := p.CurrentOffsets()

	for i := 0; i < 4; i++ {
		p.Rotate()
	}

	assert.Equal(t, start, p.CurrentOffsets())
	assert.Equal(t, 2, p.Rotation())
}

func TestSingleRotationShapeIsUnchanged(t *testing.T) {
	catalog := tetrino.DefaultCatalog()
	p := tetrino.NewPiece(catalog, shapeIndex(t, catalog, "O"), 0)
	start := p.CurrentOffsets()

	assert.Equal(t, start, p.NextRotationOffsets())
	p.Rotate()
	assert.Equal(t, 0, p.Rotation())
	assert.Equal(t, start, p.CurrentOffsets())
}

func TestNextRotationOffsets(t *testing.T) {
	catalog := tetrino.DefaultCatalog()
	p := tetrino.NewPiece(catalog, shapeIndex(t, catalog, "T"), 0)

	next := p.NextRotationOffsets()
	assert.Equal(t, 0, p.Rotation(), "peeking must not rotate")
	assert.Equal(t, catalog.Offsets(p.Shape(), 1), next)

	// Scribbling on the returned slice leaves the catalog alone.
	next[0] = tetrino.Offset{X: 99, Y: 99}
	p.Rotate()
	assert.Equal(t, catalog.Offsets(p.Shape(), 1), p.CurrentOffsets())
	assert.NotContains(t, p.CurrentOffsets(), tetrino.Offset{X: 99, Y: 99})
}

func TestNewPiece(t *testing.T) {
	catalog := tetrino.DefaultCatalog()
	tIdx := shapeIndex(t, catalog, "T")

	assert.Equal(t, 3, tetrino.NewPiece(catalog, tIdx, -1).Rotation())
	assert.Equal(t, 1, tetrino.NewPiece(catalog, tIdx, 5).Rotation())
	assert.Equal(t, "T", tetrino.NewPiece(catalog, tIdx, 0).Name())

	assert.Panics(t, func() { tetrino.NewPiece(catalog, catalog.Len(), 0) })
	assert.Panics(t, func() { tetrino.NewPiece(catalog, -1, 0) })
}

func TestPieceCells(t *testing.T) {
	catalog := tetrino.DefaultCatalog()
	p := tetrino.NewPiece(catalog, shapeIndex(t, catalog, "O"), 0)
	p.X, p.Y = 3, 5

	assert.Equal(t, []tetrino.Point{{3, 5}, {4, 5}, {3, 6}, {4, 6}}, p.Cells())
}
