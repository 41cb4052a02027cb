package memstore

import (
	"context"
	"testing"
	"time"

	"famcal/cmd/internal/domain/entity"
	"famcal/cmd/internal/store"
)

func strPtr(s string) *string { return &s }

func TestMemberMutationsMatchReferenceModel(t *testing.T) {
	s := New()
	ctx := context.Background()

	// Reference model: the same operations applied to a plain map.
	model := map[string]entity.Member{}

	aliceID, err := s.Members().Add(ctx, entity.Member{Name: "Alice", Color: "#3B82F6"})
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	model[aliceID] = entity.Member{ID: aliceID, Name: "Alice", Color: "#3B82F6"}

	bobID, err := s.Members().Add(ctx, entity.Member{Name: "Bob", Color: "#EC4899"})
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	model[bobID] = entity.Member{ID: bobID, Name: "Bob", Color: "#EC4899"}

	if err := s.Members().Update(ctx, aliceID, store.MemberPatch{Color: strPtr("#10B981")}); err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	m := model[aliceID]
	m.Color = "#10B981"
	model[aliceID] = m

	if err := s.Members().Delete(ctx, bobID); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	delete(model, bobID)

	got, err := s.Members().List(ctx)
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(got) != len(model) {
		t.Fatalf("expected %d members, got %d", len(model), len(got))
	}
	for _, member := range got {
		if model[member.ID] != member {
			t.Fatalf("member %s diverged from reference model: %+v vs %+v", member.ID, member, model[member.ID])
		}
	}
}

func TestMemberDeleteCascadesEventsButNotMemos(t *testing.T) {
	s := New()
	ctx := context.Background()

	taro, _ := s.Members().Add(ctx, entity.Member{Name: "Taro", Color: "#10B981"})
	hana, _ := s.Members().Add(ctx, entity.Member{Name: "Hana", Color: "#F59E0B"})

	_, _ = s.Events().Add(ctx, entity.Event{Title: "Practice", Date: "2025-06-01", StartTime: "16:00", EndTime: "18:00", MemberID: taro})
	_, _ = s.Events().Add(ctx, entity.Event{Title: "Lesson", Date: "2025-06-02", StartTime: "15:00", EndTime: "16:00", MemberID: hana})
	_, _ = s.Memos().Add(ctx, entity.BoardMemo{Content: "buy milk", MemberID: taro})

	if err := s.Members().Delete(ctx, taro); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}

	events, _ := s.Events().List(ctx)
	if len(events) != 1 || events[0].MemberID != hana {
		t.Fatalf("expected only Hana's event to survive, got %+v", events)
	}

	// Board memos are intentionally NOT cascaded: the original system
	// removes a member's events but leaves their memos orphaned, and the
	// asymmetry is preserved here.
	memos, _ := s.Memos().List(ctx)
	if len(memos) != 1 || memos[0].MemberID != taro {
		t.Fatalf("expected Taro's memo to survive member deletion, got %+v", memos)
	}
}

func TestSubscribeReplaysCurrentSnapshotFirst(t *testing.T) {
	s := New()
	ctx := context.Background()
	id, _ := s.Members().Add(ctx, entity.Member{Name: "Alice", Color: "#fff"})

	var snapshots [][]entity.Member
	unsub := s.Members().Subscribe(func(members []entity.Member) {
		snapshots = append(snapshots, members)
	})
	defer unsub()

	if len(snapshots) != 1 {
		t.Fatalf("expected immediate replay, got %d snapshots", len(snapshots))
	}
	if len(snapshots[0]) != 1 || snapshots[0][0].ID != id {
		t.Fatalf("replay snapshot does not match current state: %+v", snapshots[0])
	}

	_, _ = s.Members().Add(ctx, entity.Member{Name: "Bob", Color: "#000"})
	if len(snapshots) != 2 {
		t.Fatalf("expected snapshot push after mutation, got %d snapshots", len(snapshots))
	}
	if len(snapshots[1]) != 2 {
		t.Fatalf("mutation snapshot should hold both members, got %+v", snapshots[1])
	}
}

func TestUnsubscribeStopsCallbacks(t *testing.T) {
	s := New()
	ctx := context.Background()

	calls := 0
	unsub := s.Events().Subscribe(func([]entity.Event) { calls++ })
	if calls != 1 {
		t.Fatalf("expected replay call, got %d", calls)
	}

	unsub()
	unsub() // idempotent

	_, _ = s.Events().Add(ctx, entity.Event{Title: "x", Date: "2025-01-01", StartTime: "10:00", EndTime: "11:00", MemberID: "m"})
	if calls != 1 {
		t.Fatalf("callback fired after unsubscribe: %d calls", calls)
	}
}

func TestUnsubscribeRemovesExactlyOneCallback(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, second := 0, 0
	unsubFirst := s.Members().Subscribe(func([]entity.Member) { first++ })
	unsubSecond := s.Members().Subscribe(func([]entity.Member) { second++ })
	defer unsubSecond()

	unsubFirst()
	_, _ = s.Members().Add(ctx, entity.Member{Name: "Alice", Color: "#fff"})

	if first != 1 {
		t.Fatalf("unsubscribed callback fired: %d calls", first)
	}
	if second != 2 {
		t.Fatalf("surviving callback should keep firing, got %d calls", second)
	}
}

func TestSnapshotsAreIndependentCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, _ = s.Members().Add(ctx, entity.Member{Name: "Alice", Color: "#fff"})

	var held []entity.Member
	unsub := s.Members().Subscribe(func(members []entity.Member) { held = members })
	defer unsub()

	held[0].Name = "mutated"

	got, _ := s.Members().List(ctx)
	if got[0].Name != "Alice" {
		t.Fatalf("subscriber mutation leaked into the store: %+v", got[0])
	}
}

func TestCollectionOrdering(t *testing.T) {
	s := New()
	ctx := context.Background()

	// Members sort by name in the demo backend too; the original only
	// ordered the remote one.
	_, _ = s.Members().Add(ctx, entity.Member{Name: "Zoe", Color: "#fff"})
	_, _ = s.Members().Add(ctx, entity.Member{Name: "Amy", Color: "#000"})
	members, _ := s.Members().List(ctx)
	if members[0].Name != "Amy" || members[1].Name != "Zoe" {
		t.Fatalf("members not sorted by name: %+v", members)
	}

	_, _ = s.Events().Add(ctx, entity.Event{Title: "late", Date: "2025-06-01", StartTime: "16:00", EndTime: "17:00", MemberID: "m"})
	_, _ = s.Events().Add(ctx, entity.Event{Title: "early", Date: "2025-06-01", StartTime: "09:00", EndTime: "10:00", MemberID: "m"})
	_, _ = s.Events().Add(ctx, entity.Event{Title: "previous-day", Date: "2025-05-31", StartTime: "23:00", EndTime: "23:30", MemberID: "m"})
	events, _ := s.Events().List(ctx)
	if events[0].Title != "previous-day" || events[1].Title != "early" || events[2].Title != "late" {
		t.Fatalf("events not sorted by date then start time: %+v", events)
	}
}

func TestMemoTimestamps(t *testing.T) {
	s := New()
	ctx := context.Background()

	current := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	id, err := s.Memos().Add(ctx, entity.BoardMemo{Content: "first", MemberID: "m1"})
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}

	memos, _ := s.Memos().List(ctx)
	created := memos[0].CreatedAt
	if created != memos[0].UpdatedAt {
		t.Fatalf("expected createdAt == updatedAt on fresh memo")
	}

	current = current.Add(5 * time.Minute)
	if err := s.Memos().Update(ctx, id, store.MemoPatch{Content: strPtr("edited")}); err != nil {
		t.Fatalf("update returned error: %v", err)
	}

	memos, _ = s.Memos().List(ctx)
	if memos[0].CreatedAt != created {
		t.Fatalf("createdAt must not move on edit")
	}
	if memos[0].UpdatedAt == created {
		t.Fatalf("updatedAt must refresh on edit")
	}
}

func TestMemoOrderingNewestFirst(t *testing.T) {
	s := New()
	ctx := context.Background()

	current := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	old, _ := s.Memos().Add(ctx, entity.BoardMemo{Content: "old", MemberID: "m1"})
	current = current.Add(time.Minute)
	_, _ = s.Memos().Add(ctx, entity.BoardMemo{Content: "new", MemberID: "m1"})

	memos, _ := s.Memos().List(ctx)
	if memos[0].Content != "new" {
		t.Fatalf("expected newest memo first, got %+v", memos)
	}

	// Editing the old memo bumps it to the top.
	current = current.Add(time.Minute)
	_ = s.Memos().Update(ctx, old, store.MemoPatch{})
	memos, _ = s.Memos().List(ctx)
	if memos[0].Content != "old" {
		t.Fatalf("expected edited memo first, got %+v", memos)
	}
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	s := New()
	ctx := context.Background()

	calls := 0
	unsub := s.Members().Subscribe(func([]entity.Member) { calls++ })
	defer unsub()

	if err := s.Members().Update(ctx, "missing", store.MemberPatch{Name: strPtr("x")}); err != nil {
		t.Fatalf("unknown-id update should not fail: %v", err)
	}
	if calls != 1 {
		t.Fatalf("no-op update must not push a snapshot, got %d calls", calls)
	}
}

func TestSeededDemoData(t *testing.T) {
	s := Seeded()
	ctx := context.Background()

	members, _ := s.Members().List(ctx)
	if len(members) != 4 {
		t.Fatalf("expected 4 demo members, got %d", len(members))
	}
	events, _ := s.Events().List(ctx)
	if len(events) != 4 {
		t.Fatalf("expected 4 demo events, got %d", len(events))
	}
}
