package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetrino/session"
)

// CommandStatsWindow plots frame time and lists per-command latency.
type CommandStatsWindow struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func NewCommandStatsWindow(historyFrames int) *CommandStatsWindow {
	return &CommandStatsWindow{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

func (cs *CommandStatsWindow) record(dt time.Duration) {
	cs.frameHistory[cs.frameIndex] = float32(dt.Seconds() * 1000.0)
	cs.frameIndex = (cs.frameIndex + 1) % cs.historyFrames
}

// average returns the mean frame time in milliseconds.
func (cs *CommandStatsWindow) average() float32 {
	var sum float32
	for _, ft := range cs.frameHistory {
		sum += ft
	}
	return sum / float32(cs.historyFrames)
}

func (cs *CommandStatsWindow) Render(c *session.Controller, dt time.Duration) {
	imgui.SetNextWindowPosV(imgui.NewVec2(340, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 320), imgui.CondOnce)

	if !imgui.BeginV("Command Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	cs.record(dt)
	stats := c.GetStats()

	avg := cs.average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	imgui.Text(fmt.Sprintf("Total Executions: %d", stats.TotalExecutions))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &cs.frameHistory[0], int32(len(cs.frameHistory)))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("CommandTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Command")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Applied")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, cmd := range stats.Commands {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(cmd.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", cmd.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", cmd.AppliedCount))
			imgui.TableNextColumn()
			imgui.Text(cmd.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(cmd.MaxDuration.String())
		}

		imgui.EndTable()
	}

	imgui.End()
}
