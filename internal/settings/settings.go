package settings

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/groove/pkg"
)

const (
	MinSnacksPerDay     = 1
	MaxSnacksPerDay     = 12
	DefaultSnacksPerDay = 6
)

// DayType decides which exercises are offered on a day.
type DayType string

const (
	Sport DayType = "sport"
	Rest  DayType = "rest"
)

// TimeOfDay is a wall clock time without a date.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// On places the time of day on the calendar date of day, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, day.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) normalized() TimeOfDay {
	return TimeOfDay{
		Hour:   pkg.ClampInt(t.Hour, 0, 23),
		Minute: pkg.ClampInt(t.Minute, 0, 59),
	}
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hourStr, minuteStr, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return TimeOfDay{}, fmt.Errorf("invalid time of day [%s], expected HH:MM", s)
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid hour in [%s]", s)
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid minute in [%s]", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// AppSettings is the user configuration. SportDays is keyed by ISO weekday, 1 = Monday ... 7 = Sunday.
type AppSettings struct {
	SportDays            map[int]bool `json:"sportDays"`
	ActiveWindowStart    TimeOfDay    `json:"activeWindowStart"`
	ActiveWindowEnd      TimeOfDay    `json:"activeWindowEnd"`
	SnacksPerDay         int          `json:"snacksPerDay"`
	NotificationsEnabled bool         `json:"notificationsEnabled"`
	HasSeenOnboarding    bool         `json:"hasSeenOnboarding"`
}

func defaultSportDays() map[int]bool {
	return map[int]bool{
		1: false,
		2: true,
		3: false,
		4: true,
		5: false,
		6: true,
		7: false,
	}
}

// Defaults: sport on Tuesday, Thursday and Saturday, active 08:00 to 20:00, six snacks.
func Defaults() AppSettings {
	return AppSettings{
		SportDays:            defaultSportDays(),
		ActiveWindowStart:    TimeOfDay{Hour: 8},
		ActiveWindowEnd:      TimeOfDay{Hour: 20},
		SnacksPerDay:         DefaultSnacksPerDay,
		NotificationsEnabled: true,
		HasSeenOnboarding:    false,
	}
}

// Normalize clamps out of range values instead of rejecting them.
// Unknown weekdays are dropped, missing ones are taken from the defaults.
func (s AppSettings) Normalize() AppSettings {
	days := defaultSportDays()
	for day, sport := range s.SportDays {
		if day >= 1 && day <= 7 {
			days[day] = sport
		}
	}
	s.SportDays = days
	s.SnacksPerDay = pkg.ClampInt(s.SnacksPerDay, MinSnacksPerDay, MaxSnacksPerDay)
	s.ActiveWindowStart = s.ActiveWindowStart.normalized()
	s.ActiveWindowEnd = s.ActiveWindowEnd.normalized()
	return s
}

func (s AppSettings) Clone() AppSettings {
	s.SportDays = maps.Clone(s.SportDays)
	return s
}

func (s AppSettings) IsSportDay(t time.Time) bool {
	return s.SportDays[pkg.ISOWeekday(t)]
}

func (s AppSettings) DayType(t time.Time) DayType {
	if s.IsSportDay(t) {
		return Sport
	}
	return Rest
}

// WindowFor returns the active window on the calendar day of t.
func (s AppSettings) WindowFor(t time.Time) (start time.Time, end time.Time) {
	return s.ActiveWindowStart.On(t), s.ActiveWindowEnd.On(t)
}

// ScheduleChanged reports whether other differs in anything today's schedule is built from.
func (s AppSettings) ScheduleChanged(other AppSettings) bool {
	return s.ActiveWindowStart != other.ActiveWindowStart ||
		s.ActiveWindowEnd != other.ActiveWindowEnd ||
		s.SnacksPerDay != other.SnacksPerDay ||
		!maps.Equal(s.SportDays, other.SportDays)
}

// UnmarshalJSON starts from the defaults so missing fields keep their default values,
// then normalizes. Weekday keys that are not numbers are ignored.
func (s *AppSettings) UnmarshalJSON(data []byte) error {
	type settingsAlias AppSettings
	defaults := Defaults()
	defaults.SportDays = nil
	aux := struct {
		*settingsAlias
		SportDays map[string]bool `json:"sportDays"`
	}{
		settingsAlias: (*settingsAlias)(&defaults),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	days := make(map[int]bool, len(aux.SportDays))
	for key, sport := range aux.SportDays {
		day, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			continue
		}
		days[day] = sport
	}
	defaults.SportDays = days

	*s = defaults.Normalize()
	return nil
}
