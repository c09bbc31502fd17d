package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/tetrino/session"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Games    int
	Seed     uint64
	Cols     int
	Rows     int
	Shapes   int

	// Results
	Results        []*session.Stats
	Commands       []session.CommandStats
	Pieces         int
	RowsCollapsed  int
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Count int64
	total time.Duration
}

// Add folds one sample into the running totals.
func (s *Stats) Add(sample time.Duration) {
	if s.Count == 0 || sample < s.Min {
		s.Min = sample
	}
	if sample > s.Max {
		s.Max = sample
	}
	s.Count++
	s.total += sample
}

func (s *Stats) Finalize() {
	if s.Count == 0 {
		return
	}
	s.Avg = s.total / time.Duration(s.Count)
}

// AddGame folds one finished game into the totals.
func (r *Report) AddGame(stats *session.Stats) {
	r.Results = append(r.Results, stats)
	r.Pieces += stats.Pieces
	r.RowsCollapsed += stats.RowsCollapsed

	if r.Commands == nil {
		r.Commands = make([]session.CommandStats, len(stats.Commands))
	}
	for i, cmd := range stats.Commands {
		total := &r.Commands[i]
		if total.ExecutionCount == 0 || (cmd.ExecutionCount > 0 && cmd.MinDuration < total.MinDuration) {
			total.MinDuration = cmd.MinDuration
		}
		total.Name = cmd.Name
		total.ExecutionCount += cmd.ExecutionCount
		total.AppliedCount += cmd.AppliedCount
		total.TotalDuration += cmd.TotalDuration
		total.MaxDuration = max(total.MaxDuration, cmd.MaxDuration)
		if total.ExecutionCount > 0 {
			total.AvgDuration = total.TotalDuration / time.Duration(total.ExecutionCount)
		}
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Tetrino Soak Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Max Games:** {{.Games}}
- **Seed:** {{.Seed}}
- **Grid:** {{.Cols}}x{{.Rows}}
- **Shapes:** {{.Shapes}}

## Results
- **Games Played:** {{len .Results}}
- **Pieces Fossilized:** {{.Pieces}}
- **Rows Collapsed:** {{.RowsCollapsed}}
- **Total Commands:** {{.TotalUpdates}}
- **Total Time:** {{.TotalTime}}
- **Command Time:**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Commands
| Command | Runs | Applied | Avg | Max |
|---|---|---|---|---|
{{- range .Commands}}
| {{.Name}} | {{.ExecutionCount}} | {{.AppliedCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}

## Games
| Session | Pieces | Rows | Topped Out |
|---|---|---|---|
{{- range .Results}}
| {{.SessionID}} | {{.Pieces}} | {{.RowsCollapsed}} | {{.Over}} |
{{- end}}

## Memory Usage (MB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
