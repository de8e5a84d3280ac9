package sprint

import (
	"time"

	"github.com/2beens/groove/pkg"
)

type Statistics struct {
	TotalSessions     int     `json:"totalSessions"`
	CompletedSessions int     `json:"completedSessions"`
	CurrentStreak     int     `json:"currentStreak"`
	LongestStreak     int     `json:"longestStreak"`
	CompletionRate    float64 `json:"completionRate"`
}

// ComputeStatistics considers sessions up to and including today. sessions must be sorted ascending.
// The current streak is not broken by today's session still being open, only by a missed past one.
func ComputeStatistics(sessions []Session, now time.Time) Statistics {
	today := pkg.DateOnly(now)
	considered := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if !pkg.DateOnly(s.Date).After(today) {
			considered = append(considered, s)
		}
	}

	stats := Statistics{
		TotalSessions: len(considered),
	}
	run := 0
	for _, s := range considered {
		if s.Completed {
			stats.CompletedSessions++
			run++
			stats.LongestStreak = max(stats.LongestStreak, run)
		} else {
			run = 0
		}
	}

	for i := len(considered) - 1; i >= 0; i-- {
		s := considered[i]
		if s.Completed {
			stats.CurrentStreak++
			continue
		}
		if pkg.DateOnly(s.Date).Before(today) {
			break
		}
	}

	if stats.TotalSessions > 0 {
		stats.CompletionRate = float64(stats.CompletedSessions) / float64(stats.TotalSessions) * 100
	}
	return stats
}
