package sprint

import (
	"math/rand/v2"
	"time"

	"github.com/2beens/groove/pkg"
)

const MinDaysApart = 7

// Session is a sprint day. There are two per calendar month.
type Session struct {
	Date        time.Time  `json:"date"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (s Session) key() string {
	return pkg.FormatDate(s.Date)
}

// GenerateDates draws the two sprint days of a month: the first in the first half,
// the second at least MinDaysApart later. When no such day exists the last day of the month is used.
func GenerateDates(year int, month time.Month, loc *time.Location, rng *rand.Rand) [2]time.Time {
	days := pkg.DaysIn(year, month)
	firstHalfEnd := days / 2

	day1 := 1 + rng.IntN(firstHalfEnd)
	day2 := days
	if earliest := day1 + MinDaysApart; earliest <= days {
		day2 = earliest + rng.IntN(days-earliest+1)
	}

	return [2]time.Time{
		time.Date(year, month, day1, 0, 0, 0, 0, loc),
		time.Date(year, month, day2, 0, 0, 0, 0, loc),
	}
}
