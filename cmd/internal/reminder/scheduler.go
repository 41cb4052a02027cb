// Package reminder runs the periodic reminder evaluation loop: every 30
// seconds it scans the current event snapshot and fires a notification
// for each event whose reminder window has been entered, at most once
// per occurrence.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/labstack/gommon/log"

	"famcal/cmd/internal/domain/entity"
	"famcal/cmd/internal/notify"
	"famcal/cmd/internal/store"
	"famcal/cmd/internal/utils"
)

const defaultInterval = 30 * time.Second

type Scheduler struct {
	backend  store.Backend
	inApp    notify.Sink
	system   notify.Sink
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	events  []entity.Event
	members map[string]string // member id -> name
	// notified holds occurrence keys (event id + date + start time) that
	// already fired. Rescheduling an event changes its key, so the moved
	// occurrence is eligible again. Not persisted; a restart inside a
	// live window fires once more.
	notified map[string]struct{}
	granted  bool

	cancel      context.CancelFunc
	done        chan struct{}
	unsubEvents store.Unsubscribe
	unsubMember store.Unsubscribe
}

// New builds a stopped scheduler. system may be nil when no system-level
// sink is configured.
func New(backend store.Backend, inApp notify.Sink, system notify.Sink) *Scheduler {
	return &Scheduler{
		backend:  backend,
		inApp:    inApp,
		system:   system,
		interval: defaultInterval,
		now:      time.Now,
		members:  make(map[string]string),
		notified: make(map[string]struct{}),
	}
}

// Start subscribes to the event and member collections, asks the system
// sink for permission once (best-effort), evaluates immediately and then
// keeps evaluating on the fixed period until Stop or ctx cancellation.
// Starting a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.done != nil {
		s.mu.Unlock()
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	done := make(chan struct{})
	s.done = done
	s.mu.Unlock()

	s.attach()

	if s.system != nil {
		if err := s.system.RequestPermission(ctx); err != nil {
			log.Warnf("system notifications unavailable, in-app only: %v", err)
		} else {
			s.mu.Lock()
			s.granted = true
			s.mu.Unlock()
		}
	}

	go s.run(ctx, done)
}

// Stop cancels the periodic tick and waits for the loop to exit, so no
// timer or goroutine outlives it. Safe to call twice.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// releaseSubs drops the store subscriptions. Runs on loop exit, which
// covers both Stop and a canceled Start context.
func (s *Scheduler) releaseSubs() {
	s.mu.Lock()
	unsubEvents, unsubMember := s.unsubEvents, s.unsubMember
	s.unsubEvents, s.unsubMember = nil, nil
	s.mu.Unlock()

	if unsubEvents != nil {
		unsubEvents()
	}
	if unsubMember != nil {
		unsubMember()
	}
}

func (s *Scheduler) attach() {
	unsubEvents := s.backend.Events().Subscribe(func(events []entity.Event) {
		s.mu.Lock()
		s.events = events
		s.mu.Unlock()
	})
	unsubMember := s.backend.Members().Subscribe(func(members []entity.Member) {
		names := make(map[string]string, len(members))
		for _, m := range members {
			names[m.ID] = m.Name
		}
		s.mu.Lock()
		s.members = names
		s.mu.Unlock()
	})

	s.mu.Lock()
	s.unsubEvents = unsubEvents
	s.unsubMember = unsubMember
	s.mu.Unlock()
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer s.releaseSubs()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.check(ctx, s.now())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.check(ctx, s.now())
		}
	}
}

// check runs one evaluation pass. A problem with one event is logged and
// skipped so the rest of the pass still runs.
func (s *Scheduler) check(ctx context.Context, now time.Time) {
	// Collect due events under the lock, deliver after releasing it. The
	// snapshot callbacks need this mutex while the store's own mutation
	// lock is held, so a slow sink must never be allowed to stall
	// calendar writes.
	s.mu.Lock()
	var due []entity.Event
	names := make(map[string]string)
	for _, ev := range s.events {
		if !ev.Reminder {
			continue
		}

		key := ev.ID + "|" + ev.Date + "|" + ev.StartTime
		if _, seen := s.notified[key]; seen {
			continue
		}

		start, err := utils.EventStart(ev.Date, ev.StartTime)
		if err != nil {
			log.Warnf("skipping reminder for event %s: bad date/time: %v", ev.ID, err)
			continue
		}

		remindAt := start.Add(-time.Duration(ev.ReminderMinutes) * time.Minute)
		if now.Before(remindAt) || !now.Before(start) {
			// Not in the window. A window that passed between ticks is
			// simply missed; it never fires late.
			continue
		}

		s.notified[key] = struct{}{}
		due = append(due, ev)
		names[ev.MemberID] = s.members[ev.MemberID]
	}
	granted := s.granted
	s.mu.Unlock()

	for _, ev := range due {
		s.fire(ctx, ev, names[ev.MemberID], granted, now)
	}
}

func (s *Scheduler) fire(ctx context.Context, ev entity.Event, memberName string, granted bool, now time.Time) {
	n := notify.Notification{
		Title:  "Family Calendar",
		Body:   fmt.Sprintf("%s: %q starts in %d minutes", memberName, ev.Title, ev.ReminderMinutes),
		Detail: ev.StartTime + " - " + ev.EndTime,
		At:     now,
	}

	if err := s.inApp.Notify(ctx, n); err != nil {
		log.Errorf("in-app notification failed for event %s: %v", ev.ID, err)
	}
	if granted && s.system != nil {
		if err := s.system.Notify(ctx, n); err != nil {
			log.Errorf("system notification failed for event %s: %v", ev.ID, err)
		}
	}
}
