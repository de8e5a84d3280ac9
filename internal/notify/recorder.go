package notify

import (
	"context"
	"sync"
)

var _ Notifier = (*Recorder)(nil)

// Recorder keeps the requested alerts instead of delivering them (dry runs).
type Recorder struct {
	Scheduled map[int]Alert
	Shown     []Alert
	mutex     sync.Mutex
}

func NewRecorder() *Recorder {
	return &Recorder{
		Scheduled: map[int]Alert{},
	}
}

func (r *Recorder) ScheduleAt(_ context.Context, alert Alert) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.Scheduled[alert.ID] = alert
	return nil
}

func (r *Recorder) Cancel(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.Scheduled, id)
	return nil
}

func (r *Recorder) CancelAll(_ context.Context) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.Scheduled = map[int]Alert{}
	return nil
}

func (r *Recorder) ShowNow(_ context.Context, alert Alert) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.Shown = append(r.Shown, alert)
	return nil
}
