// Package docstore is the document-store backend, active when the remote
// configuration is present. Documents live in three collections with
// string ids; every successful mutation re-reads the ordered collection
// and pushes the fresh snapshot to subscribers, mirroring the demo
// backend's contract. Operations here can fail and say so.
package docstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"

	"famcal/cmd/internal/domain/entity"
	"famcal/cmd/internal/store"
)

type Store struct {
	db *gorm.DB

	// mu serializes mutation + snapshot push, which keeps snapshot
	// delivery in mutation order per collection.
	mu sync.Mutex

	memberSubs *store.Listeners[entity.Member]
	eventSubs  *store.Listeners[entity.Event]
	memoSubs   *store.Listeners[entity.BoardMemo]

	now func() time.Time
}

func Open(path string) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	return &Store{
		db:         db,
		memberSubs: store.NewListeners[entity.Member](),
		eventSubs:  store.NewListeners[entity.Event](),
		memoSubs:   store.NewListeners[entity.BoardMemo](),
		now:        time.Now,
	}, nil
}

func (s *Store) Members() store.MemberStore { return memberView{s} }
func (s *Store) Events() store.EventStore   { return eventView{s} }
func (s *Store) Memos() store.MemoStore     { return memoView{s} }

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

/* ---------- ordered reads ---------- */

func (s *Store) loadMembers(ctx context.Context) ([]entity.Member, error) {
	var members []entity.Member
	err := s.db.WithContext(ctx).Order("name asc").Find(&members).Error
	return members, err
}

func (s *Store) loadEvents(ctx context.Context) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).Order("date asc, start_time asc").Find(&events).Error
	return events, err
}

func (s *Store) loadMemos(ctx context.Context) ([]entity.BoardMemo, error) {
	var memos []entity.BoardMemo
	err := s.db.WithContext(ctx).Order("updated_at desc").Find(&memos).Error
	return memos, err
}

// Snapshot pushes reload from the database so subscribers see exactly
// what a fresh reader would. A failed reload is logged and the push
// skipped; the next mutation delivers the missed state anyway since
// snapshots are whole-collection replacements.

func (s *Store) pushMembers(ctx context.Context) {
	members, err := s.loadMembers(ctx)
	if err != nil {
		log.Errorf("failed to load members for snapshot push: %v", err)
		return
	}
	s.memberSubs.Broadcast(members)
}

func (s *Store) pushEvents(ctx context.Context) {
	events, err := s.loadEvents(ctx)
	if err != nil {
		log.Errorf("failed to load events for snapshot push: %v", err)
		return
	}
	s.eventSubs.Broadcast(events)
}

func (s *Store) pushMemos(ctx context.Context) {
	memos, err := s.loadMemos(ctx)
	if err != nil {
		log.Errorf("failed to load board memos for snapshot push: %v", err)
		return
	}
	s.memoSubs.Broadcast(memos)
}

/* ---------- Members ---------- */

type memberView struct{ s *Store }

func (v memberView) Add(ctx context.Context, m entity.Member) (string, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = uuid.NewString()
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return "", err
	}
	s.pushMembers(ctx)
	return m.ID, nil
}

func (v memberView) Update(ctx context.Context, id string, patch store.MemberPatch) error {
	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Color != nil {
		fields["color"] = *patch.Color
	}
	if len(fields) == 0 {
		return nil
	}

	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.db.WithContext(ctx).Model(&entity.Member{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil // unknown id is a no-op
	}
	s.pushMembers(ctx)
	return nil
}

// Delete removes the member and cascades to their events in one
// transaction, then pushes one snapshot per affected collection. Board
// memos are deliberately untouched.
func (v memberView) Delete(ctx context.Context, id string) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", id).Delete(&entity.Event{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Member{}).Error
	})
	if err != nil {
		return err
	}
	s.pushMembers(ctx)
	s.pushEvents(ctx)
	return nil
}

func (v memberView) List(ctx context.Context) ([]entity.Member, error) {
	return v.s.loadMembers(ctx)
}

func (v memberView) Subscribe(fn func([]entity.Member)) store.Unsubscribe {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	unsub := s.memberSubs.Add(fn)
	members, err := s.loadMembers(context.Background())
	if err != nil {
		// A nil replay would read as an empty collection. Skip it; the
		// next successful mutation pushes the real state.
		log.Errorf("failed to load members for subscribe replay: %v", err)
		return unsub
	}
	fn(members)
	return unsub
}

/* ---------- Events ---------- */

type eventView struct{ s *Store }

func (v eventView) Add(ctx context.Context, e entity.Event) (string, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = uuid.NewString()
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return "", err
	}
	s.pushEvents(ctx)
	return e.ID, nil
}

func (v eventView) Update(ctx context.Context, id string, patch store.EventPatch) error {
	fields := map[string]any{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Date != nil {
		fields["date"] = *patch.Date
	}
	if patch.StartTime != nil {
		fields["start_time"] = *patch.StartTime
	}
	if patch.EndTime != nil {
		fields["end_time"] = *patch.EndTime
	}
	if patch.MemberID != nil {
		fields["member_id"] = *patch.MemberID
	}
	if patch.Reminder != nil {
		fields["reminder"] = *patch.Reminder
	}
	if patch.ReminderMinutes != nil {
		fields["reminder_minutes"] = *patch.ReminderMinutes
	}
	if len(fields) == 0 {
		return nil
	}

	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.db.WithContext(ctx).Model(&entity.Event{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}
	s.pushEvents(ctx)
	return nil
}

func (v eventView) Delete(ctx context.Context, id string) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Event{}).Error; err != nil {
		return err
	}
	s.pushEvents(ctx)
	return nil
}

func (v eventView) List(ctx context.Context) ([]entity.Event, error) {
	return v.s.loadEvents(ctx)
}

func (v eventView) Subscribe(fn func([]entity.Event)) store.Unsubscribe {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	unsub := s.eventSubs.Add(fn)
	events, err := s.loadEvents(context.Background())
	if err != nil {
		log.Errorf("failed to load events for subscribe replay: %v", err)
		return unsub
	}
	fn(events)
	return unsub
}

/* ---------- Board memos ---------- */

type memoView struct{ s *Store }

func (v memoView) Add(ctx context.Context, m entity.BoardMemo) (string, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC().Format(time.RFC3339)
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return "", err
	}
	s.pushMemos(ctx)
	return m.ID, nil
}

func (v memoView) Update(ctx context.Context, id string, patch store.MemoPatch) error {
	// UpdatedAt moves on every edit, changed fields or not.
	fields := map[string]any{"updated_at": v.s.now().UTC().Format(time.RFC3339)}
	if patch.Content != nil {
		fields["content"] = *patch.Content
	}

	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.db.WithContext(ctx).Model(&entity.BoardMemo{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}
	s.pushMemos(ctx)
	return nil
}

func (v memoView) Delete(ctx context.Context, id string) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.BoardMemo{}).Error; err != nil {
		return err
	}
	s.pushMemos(ctx)
	return nil
}

func (v memoView) List(ctx context.Context) ([]entity.BoardMemo, error) {
	return v.s.loadMemos(ctx)
}

func (v memoView) Subscribe(fn func([]entity.BoardMemo)) store.Unsubscribe {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	unsub := s.memoSubs.Add(fn)
	memos, err := s.loadMemos(context.Background())
	if err != nil {
		log.Errorf("failed to load board memos for subscribe replay: %v", err)
		return unsub
	}
	fn(memos)
	return unsub
}
