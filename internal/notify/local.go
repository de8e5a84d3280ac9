package notify

import (
	"context"
	"slices"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

var _ Notifier = (*LocalNotifier)(nil)

type pendingAlert struct {
	alert Alert
	timer *time.Timer
}

// LocalNotifier delivers alerts in-process, one timer per alert id.
type LocalNotifier struct {
	deliver func(Alert)
	now     func() time.Time

	pending map[int]*pendingAlert
	mutex   sync.Mutex
}

// NewLocalNotifier creates the notifier. A nil deliver func logs the alert.
func NewLocalNotifier(deliver func(Alert)) *LocalNotifier {
	if deliver == nil {
		deliver = LogDelivery
	}
	return &LocalNotifier{
		deliver: deliver,
		now:     time.Now,
		pending: map[int]*pendingAlert{},
	}
}

func LogDelivery(alert Alert) {
	log.WithFields(log.Fields{
		"id":      alert.ID,
		"payload": alert.Payload,
	}).Infof("🔔 %s: %s", alert.Title, alert.Body)
}

// ScheduleAt replaces any alert already scheduled under the same id.
// An alert whose time already passed is delivered right away.
func (n *LocalNotifier) ScheduleAt(_ context.Context, alert Alert) error {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	n.stopLocked(alert.ID)

	delay := alert.Time.Sub(n.now())
	if delay < 0 {
		delay = 0
	}

	id := alert.ID
	p := &pendingAlert{alert: alert}
	p.timer = time.AfterFunc(delay, func() {
		n.mutex.Lock()
		current, ok := n.pending[id]
		if !ok || current != p {
			n.mutex.Unlock()
			return
		}
		delete(n.pending, id)
		n.mutex.Unlock()

		n.deliver(alert)
	})
	n.pending[id] = p

	log.Tracef("local notifier, scheduled %s", alert)
	return nil
}

func (n *LocalNotifier) Cancel(_ context.Context, id int) error {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	n.stopLocked(id)
	return nil
}

func (n *LocalNotifier) CancelAll(_ context.Context) error {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	for id := range n.pending {
		n.stopLocked(id)
	}
	return nil
}

func (n *LocalNotifier) ShowNow(_ context.Context, alert Alert) error {
	n.deliver(alert)
	return nil
}

// Pending returns the alerts still waiting to fire, sorted by time.
func (n *LocalNotifier) Pending() []Alert {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	alerts := make([]Alert, 0, len(n.pending))
	for _, p := range n.pending {
		alerts = append(alerts, p.alert)
	}
	slices.SortFunc(alerts, func(a, b Alert) int {
		return a.Time.Compare(b.Time)
	})
	return alerts
}

// Stop cancels every pending alert.
func (n *LocalNotifier) Stop() {
	_ = n.CancelAll(context.Background())
}

func (n *LocalNotifier) stopLocked(id int) {
	if p, ok := n.pending[id]; ok {
		p.timer.Stop()
		delete(n.pending, id)
	}
}
