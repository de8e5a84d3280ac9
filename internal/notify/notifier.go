package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/groove/pkg"
)

const sprintPayloadPrefix = "sprint_"

// Alert is a single notification request. Payload is handed back when the alert is tapped:
// an exercise id, or a sprint sentinel (see SprintPayload).
type Alert struct {
	ID      int       `json:"id"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	Time    time.Time `json:"time"`
	Payload string    `json:"payload"`
}

// Notifier delivers alerts to the user. Ids are per-day slot handles.
type Notifier interface {
	ScheduleAt(ctx context.Context, alert Alert) error
	Cancel(ctx context.Context, id int) error
	CancelAll(ctx context.Context) error
	ShowNow(ctx context.Context, alert Alert) error
}

func SprintPayload(date time.Time) string {
	return sprintPayloadPrefix + pkg.FormatDate(date)
}

// ParseSprintPayload returns the sprint date if payload is a sprint sentinel.
func ParseSprintPayload(payload string, loc *time.Location) (time.Time, bool) {
	dateStr, ok := strings.CutPrefix(payload, sprintPayloadPrefix)
	if !ok {
		return time.Time{}, false
	}
	date, err := pkg.ParseDate(dateStr, loc)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

func (a Alert) String() string {
	return fmt.Sprintf("alert[%d] %s @ %s (%s)", a.ID, a.Title, a.Time.Format(time.RFC3339), a.Payload)
}
