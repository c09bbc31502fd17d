package session

import "time"

// Stats describes a controller's activity so far.
type Stats struct {
	SessionID       string
	Pieces          int
	RowsCollapsed   int
	Over            bool
	TotalExecutions int64
	Commands        []CommandStats
}

// CommandStats provides execution statistics for a single command kind.
type CommandStats struct {
	Name           string
	ExecutionCount int64
	AppliedCount   int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type commandStatsInternal struct {
	executionCount int64
	appliedCount   int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func newCommandStats() []*commandStatsInternal {
	stats := make([]*commandStatsInternal, commandCount)
	for i := range stats {
		stats[i] = &commandStatsInternal{minDuration: time.Duration(1<<63 - 1)}
	}
	return stats
}

func (s *commandStatsInternal) record(duration time.Duration, applied bool) {
	s.executionCount++
	if applied {
		s.appliedCount++
	}
	s.lastDuration = duration
	s.totalDuration += duration

	if duration < s.minDuration {
		s.minDuration = duration
	}
	if duration > s.maxDuration {
		s.maxDuration = duration
	}
}

// GetStats returns a snapshot of the controller's statistics.
func (c *Controller) GetStats() *Stats {
	stats := &Stats{
		SessionID:     c.id.String(),
		Pieces:        c.pieces,
		RowsCollapsed: c.rowsCollapsed,
		Over:          c.over,
		Commands:      make([]CommandStats, len(c.stats)),
	}

	var totalExecs int64
	for i, internal := range c.stats {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Commands[i] = CommandStats{
			Name:           Command(i).String(),
			ExecutionCount: internal.executionCount,
			AppliedCount:   internal.appliedCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
