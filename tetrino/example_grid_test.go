package tetrino_test

import (
	"fmt"

	"github.com/plus3/tetrino/tetrino"
)

// ExampleGrid_PlaceActive shows a piece being moved one row down. The grid
// erases the previous placement before drawing the new one.
func ExampleGrid_PlaceActive() {
	grid, _ := tetrino.NewGrid(4, 4)
	square := []tetrino.Offset{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

	grid.PlaceActive(1, 0, square)
	if grid.IsMoveLegal(1, 1, square) {
		grid.PlaceActive(1, 1, square)
	}
	fmt.Print(grid)

	// Output:
	// ....
	// .@@.
	// .@@.
	// ....
}

// ExampleGrid_CollapseCompletedRows fossilizes a piece that completes the
// bottom row, then collapses it.
func ExampleGrid_CollapseCompletedRows() {
	grid, _ := tetrino.ParseLayout(`
		....
		....
		#..#
	`)
	domino := []tetrino.Offset{{0, 0}, {1, 0}}

	grid.Fossilize(1, 2, domino)
	fmt.Print(grid)

	removed := grid.CollapseCompletedRows()
	fmt.Println("removed", removed)
	fmt.Print(grid)

	// Output:
	// ....
	// ....
	// ####
	// removed 1
	// ....
	// ....
	// ....
}

// ExamplePiece_NextRotationOffsets checks a rotation before committing it.
func ExamplePiece_NextRotationOffsets() {
	catalog := tetrino.DefaultCatalog()
	shape, _ := catalog.Index("I")
	piece := tetrino.NewPiece(catalog, shape, 0)

	grid, _ := tetrino.NewGrid(4, 3)

	// The vertical I needs four rows; this grid only has three.
	if grid.IsMoveLegal(piece.X, piece.Y, piece.NextRotationOffsets()) {
		piece.Rotate()
	}
	fmt.Println("rotation", piece.Rotation())
	fmt.Println(piece.Cells())

	// Output:
	// rotation 0
	// [{0 1} {1 1} {2 1} {3 1}]
}
