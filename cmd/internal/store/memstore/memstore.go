// Package memstore is the demo-mode backend: a process-local store used
// when the remote document store is not configured. Operations never
// fail from the caller's perspective and nothing survives a restart.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"famcal/cmd/internal/domain/entity"
	"famcal/cmd/internal/store"
)

type Store struct {
	// mu serializes mutations and the snapshot pushes they trigger, so
	// subscribers of one collection always observe snapshots in mutation
	// order.
	mu      sync.Mutex
	members []entity.Member
	events  []entity.Event
	memos   []entity.BoardMemo

	memberSubs *store.Listeners[entity.Member]
	eventSubs  *store.Listeners[entity.Event]
	memoSubs   *store.Listeners[entity.BoardMemo]

	now func() time.Time
}

func New() *Store {
	return &Store{
		memberSubs: store.NewListeners[entity.Member](),
		eventSubs:  store.NewListeners[entity.Event](),
		memoSubs:   store.NewListeners[entity.BoardMemo](),
		now:        time.Now,
	}
}

func (s *Store) Members() store.MemberStore { return memberView{s} }
func (s *Store) Events() store.EventStore   { return eventView{s} }
func (s *Store) Memos() store.MemoStore     { return memoView{s} }

func (s *Store) Close() error { return nil }

// Snapshot builders. Sort on read keeps inserts trivial; collections are
// family-sized, never large.

func (s *Store) memberSnapshot() []entity.Member {
	cp := make([]entity.Member, len(s.members))
	copy(cp, s.members)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Name < cp[j].Name })
	return cp
}

func (s *Store) eventSnapshot() []entity.Event {
	cp := make([]entity.Event, len(s.events))
	copy(cp, s.events)
	sort.SliceStable(cp, func(i, j int) bool {
		if cp[i].Date != cp[j].Date {
			return cp[i].Date < cp[j].Date
		}
		return cp[i].StartTime < cp[j].StartTime
	})
	return cp
}

func (s *Store) memoSnapshot() []entity.BoardMemo {
	cp := make([]entity.BoardMemo, len(s.memos))
	copy(cp, s.memos)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].UpdatedAt > cp[j].UpdatedAt })
	return cp
}

/* ---------- Members ---------- */

type memberView struct{ s *Store }

func (v memberView) Add(_ context.Context, m entity.Member) (string, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = uuid.NewString()
	s.members = append(s.members, m)
	s.memberSubs.Broadcast(s.memberSnapshot())
	return m.ID, nil
}

func (v memberView) Update(_ context.Context, id string, patch store.MemberPatch) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.members {
		if s.members[i].ID != id {
			continue
		}
		if patch.Name != nil {
			s.members[i].Name = *patch.Name
		}
		if patch.Color != nil {
			s.members[i].Color = *patch.Color
		}
		s.memberSubs.Broadcast(s.memberSnapshot())
		return nil
	}
	return nil // unknown id is a no-op
}

// Delete cascades to the member's events. Board memos keep their author
// id on purpose; see the asymmetry notes in the store tests.
func (v memberView) Delete(_ context.Context, id string) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.members[:0]
	for _, m := range s.members {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.members = kept

	keptEvents := s.events[:0]
	for _, e := range s.events {
		if e.MemberID != id {
			keptEvents = append(keptEvents, e)
		}
	}
	s.events = keptEvents

	s.memberSubs.Broadcast(s.memberSnapshot())
	s.eventSubs.Broadcast(s.eventSnapshot())
	return nil
}

func (v memberView) List(_ context.Context) ([]entity.Member, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memberSnapshot(), nil
}

func (v memberView) Subscribe(fn func([]entity.Member)) store.Unsubscribe {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	unsub := s.memberSubs.Add(fn)
	fn(s.memberSnapshot())
	return unsub
}

/* ---------- Events ---------- */

type eventView struct{ s *Store }

func (v eventView) Add(_ context.Context, e entity.Event) (string, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = uuid.NewString()
	s.events = append(s.events, e)
	s.eventSubs.Broadcast(s.eventSnapshot())
	return e.ID, nil
}

func (v eventView) Update(_ context.Context, id string, patch store.EventPatch) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID != id {
			continue
		}
		applyEventPatch(&s.events[i], patch)
		s.eventSubs.Broadcast(s.eventSnapshot())
		return nil
	}
	return nil
}

func (v eventView) Delete(_ context.Context, id string) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.events[:0]
	for _, e := range s.events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.events = kept
	s.eventSubs.Broadcast(s.eventSnapshot())
	return nil
}

func (v eventView) List(_ context.Context) ([]entity.Event, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventSnapshot(), nil
}

func (v eventView) Subscribe(fn func([]entity.Event)) store.Unsubscribe {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	unsub := s.eventSubs.Add(fn)
	fn(s.eventSnapshot())
	return unsub
}

func applyEventPatch(e *entity.Event, patch store.EventPatch) {
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.StartTime != nil {
		e.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		e.EndTime = *patch.EndTime
	}
	if patch.MemberID != nil {
		e.MemberID = *patch.MemberID
	}
	if patch.Reminder != nil {
		e.Reminder = *patch.Reminder
	}
	if patch.ReminderMinutes != nil {
		e.ReminderMinutes = *patch.ReminderMinutes
	}
}

/* ---------- Board memos ---------- */

type memoView struct{ s *Store }

func (v memoView) Add(_ context.Context, m entity.BoardMemo) (string, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC().Format(time.RFC3339)
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now
	s.memos = append(s.memos, m)
	s.memoSubs.Broadcast(s.memoSnapshot())
	return m.ID, nil
}

func (v memoView) Update(_ context.Context, id string, patch store.MemoPatch) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.memos {
		if s.memos[i].ID != id {
			continue
		}
		if patch.Content != nil {
			s.memos[i].Content = *patch.Content
		}
		// UpdatedAt moves on every edit, changed fields or not.
		s.memos[i].UpdatedAt = s.now().UTC().Format(time.RFC3339)
		s.memoSubs.Broadcast(s.memoSnapshot())
		return nil
	}
	return nil
}

func (v memoView) Delete(_ context.Context, id string) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.memos[:0]
	for _, m := range s.memos {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.memos = kept
	s.memoSubs.Broadcast(s.memoSnapshot())
	return nil
}

func (v memoView) List(_ context.Context) ([]entity.BoardMemo, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memoSnapshot(), nil
}

func (v memoView) Subscribe(fn func([]entity.BoardMemo)) store.Unsubscribe {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	unsub := s.memoSubs.Add(fn)
	fn(s.memoSnapshot())
	return unsub
}
