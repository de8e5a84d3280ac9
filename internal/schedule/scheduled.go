package schedule

import (
	"errors"
	"fmt"
	"time"
)

// SnoozeIDOffset moves snoozed alerts out of the range of the day's slot ids.
const SnoozeIDOffset = 1000

var ErrScheduledNotFound = errors.New("scheduled exercise not found")

// ScheduledExercise is one exercise snack placed at a time of today.
// ExerciseName is a snapshot taken when the schedule was built.
type ScheduledExercise struct {
	ExerciseID     string     `json:"exerciseId"`
	ExerciseName   string     `json:"exerciseName"`
	ScheduledTime  time.Time  `json:"scheduledTime"`
	NotificationID int        `json:"notificationId"`
	IsSnoozed      bool       `json:"isSnoozed"`
	OriginalTime   *time.Time `json:"originalTime"`
}

// BaseID is the slot id the entry was created with, before any snooze.
func (s ScheduledExercise) BaseID() int {
	if s.NotificationID >= SnoozeIDOffset {
		return s.NotificationID - SnoozeIDOffset
	}
	return s.NotificationID
}

// Snooze moves the entry to now + d. The original time is kept from the first snooze only,
// and the id stays the same across repeated snoozes so the previous alert gets replaced.
func Snooze(entry ScheduledExercise, now time.Time, d time.Duration) ScheduledExercise {
	if !entry.IsSnoozed || entry.OriginalTime == nil {
		original := entry.ScheduledTime
		entry.OriginalTime = &original
	}
	entry.NotificationID = entry.BaseID() + SnoozeIDOffset
	entry.ScheduledTime = now.Add(d)
	entry.IsSnoozed = true
	return entry
}

// Find returns the index of the entry with the given notification id.
// Both the slot id and the snoozed id of an entry match it.
func Find(list []ScheduledExercise, notificationID int) (int, error) {
	for i, entry := range list {
		if entry.NotificationID == notificationID || entry.BaseID() == notificationID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: notification id %d", ErrScheduledNotFound, notificationID)
}
