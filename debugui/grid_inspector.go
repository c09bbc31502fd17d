package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetrino/session"
	"github.com/plus3/tetrino/tetrino"
)

// GridInspector shows the board, the active piece and how full each row is.
type GridInspector struct {
	showEmptyRows bool
}

func NewGridInspector() *GridInspector {
	return &GridInspector{}
}

func (gi *GridInspector) Render(c *session.Controller) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 420), imgui.CondOnce)

	if !imgui.BeginV("Grid Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	grid := c.Grid()
	stats := c.GetStats()

	imgui.Text(fmt.Sprintf("Session: %s", stats.SessionID))
	imgui.Text(fmt.Sprintf("Grid: %dx%d", grid.Cols(), grid.Rows()))
	imgui.Text(fmt.Sprintf("Pieces: %d  Rows: %d", stats.Pieces, stats.RowsCollapsed))
	if stats.Over {
		imgui.Text("Topped out")
	}
	imgui.Separator()

	if p := c.Piece(); p != nil {
		imgui.Text(fmt.Sprintf("Piece: %s rot %d/%d", p.Name(), p.Rotation(), c.Config().Catalog.RotationCount(p.Shape())))
		imgui.Text(fmt.Sprintf("Origin: (%d,%d)", p.X, p.Y))
	} else {
		imgui.Text("No active piece")
	}

	if imgui.TreeNodeStr("Board") {
		for _, line := range strings.Split(strings.TrimRight(grid.String(), "\n"), "\n") {
			imgui.Text(line)
		}
		imgui.TreePop()
	}

	imgui.Checkbox("Show empty rows", &gi.showEmptyRows)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("RowTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Row")
		imgui.TableSetupColumn("Filled")
		imgui.TableHeadersRow()

		cols := grid.Cols()
		for y, filled := range RowFill(grid) {
			if filled == 0 && !gi.showEmptyRows {
				continue
			}
			imgui.TableNextRow()

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", y))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d/%d", filled, cols))

			barWidth := float32(filled) / float32(cols) * 80.0
			imgui.SameLine()
			drawList := imgui.WindowDrawList()
			pos := imgui.CursorScreenPos()
			color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
			drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
		}

		imgui.EndTable()
	}

	imgui.End()
}

// RowFill returns the number of fossil cells in each row, top row first.
func RowFill(grid *tetrino.Grid) []int {
	fill := make([]int, grid.Rows())
	for _, p := range grid.FossilCells() {
		fill[p.Y]++
	}
	return fill
}
