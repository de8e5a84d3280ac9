package walk

import (
	"slices"
	"time"

	"github.com/2beens/groove/pkg"
)

// DailyWalk holds the walking time of one calendar day.
type DailyWalk struct {
	Date         time.Time `json:"date"`
	TotalSeconds int       `json:"totalSeconds"`
	Notes        *string   `json:"notes"`
}

// Completed walks are the ones with some time on them.
func (w DailyWalk) Completed() bool {
	return w.TotalSeconds > 0
}

func (w DailyWalk) key() string {
	return pkg.FormatDate(w.Date)
}

type Statistics struct {
	TotalDays      int `json:"totalDays"`
	CompletedDays  int `json:"completedDays"`
	TotalSeconds   int `json:"totalSeconds"`
	AverageSeconds int `json:"averageSeconds"`
}

// ComputeStatistics sums the completed walks; the average is per completed day.
func ComputeStatistics(walks []DailyWalk) Statistics {
	stats := Statistics{
		TotalDays: len(walks),
	}
	for _, w := range walks {
		if !w.Completed() {
			continue
		}
		stats.CompletedDays++
		stats.TotalSeconds += w.TotalSeconds
	}
	if stats.CompletedDays > 0 {
		stats.AverageSeconds = stats.TotalSeconds / stats.CompletedDays
	}
	return stats
}

// CurrentStreak counts consecutive days with a completed walk, going back from today.
// A day without one, today included, ends the streak.
func CurrentStreak(walks []DailyWalk, now time.Time) int {
	completed := make(map[string]bool, len(walks))
	for _, w := range walks {
		if w.Completed() {
			completed[w.key()] = true
		}
	}

	streak := 0
	for day := pkg.DateOnly(now); completed[pkg.FormatDate(day)]; day = pkg.AddDays(day, -1) {
		streak++
	}
	return streak
}

// LongestStreak is the longest run of completed walks on consecutive calendar days.
func LongestStreak(walks []DailyWalk) int {
	sorted := slices.Clone(walks)
	sortByDate(sorted)

	longest, run := 0, 0
	var previous time.Time
	for _, w := range sorted {
		switch {
		case !w.Completed():
			run = 0
		case run > 0 && pkg.SameDay(pkg.AddDays(previous, 1), w.Date):
			run++
		default:
			run = 1
		}
		previous = w.Date
		longest = max(longest, run)
	}
	return longest
}

// InRange keeps the walks with dates in [from, to], both inclusive, comparing dates only.
func InRange(walks []DailyWalk, from, to time.Time) []DailyWalk {
	var inRange []DailyWalk
	for _, w := range walks {
		if pkg.WithinDates(w.Date, from, to) {
			inRange = append(inRange, w)
		}
	}
	return inRange
}

// WeekBounds returns Monday and Sunday of the week of now.
func WeekBounds(now time.Time) (monday, sunday time.Time) {
	monday = pkg.AddDays(now, 1-pkg.ISOWeekday(now))
	return monday, pkg.AddDays(monday, 6)
}

func MonthBounds(now time.Time) (first, last time.Time) {
	first = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first, first.AddDate(0, 1, -1)
}

func YearBounds(now time.Time) (first, last time.Time) {
	return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()),
		time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())
}

func sortByDate(walks []DailyWalk) {
	slices.SortFunc(walks, func(a, b DailyWalk) int {
		return a.Date.Compare(b.Date)
	})
}
