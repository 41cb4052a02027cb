// Package store defines the collection contract shared by both calendar
// backends: the persistent document store and the in-memory demo store.
// The backend is picked once at startup; everything above this package is
// written against these interfaces only.
package store

import (
	"context"

	"famcal/cmd/internal/domain/entity"
)

// Unsubscribe removes the callback it was returned for. Calling it more
// than once is harmless; after it returns the callback is never invoked
// again.
type Unsubscribe func()

// Subscription semantics, identical for every collection and backend:
// the callback fires once immediately with the current snapshot, then
// once per mutation with the full replacement snapshot. A backend that
// cannot read the current state skips the initial replay rather than
// deliver a misleading empty snapshot. Snapshots are private copies the
// subscriber may keep. Callbacks run synchronously with the triggering
// mutation and must not call back into the store.

type MemberStore interface {
	// Add assigns a fresh id (the payload's ID field is ignored) and
	// returns it.
	Add(ctx context.Context, m entity.Member) (string, error)
	// Update merges the set fields of patch into the record. Unknown ids
	// are a no-op.
	Update(ctx context.Context, id string, patch MemberPatch) error
	// Delete removes the member and every event whose MemberID matches.
	// Board memos are left in place.
	Delete(ctx context.Context, id string) error
	// List returns the current snapshot, sorted by name ascending.
	List(ctx context.Context) ([]entity.Member, error)
	Subscribe(fn func([]entity.Member)) Unsubscribe
}

type EventStore interface {
	Add(ctx context.Context, e entity.Event) (string, error)
	Update(ctx context.Context, id string, patch EventPatch) error
	Delete(ctx context.Context, id string) error
	// List returns the current snapshot, sorted by date then start time.
	List(ctx context.Context) ([]entity.Event, error)
	Subscribe(fn func([]entity.Event)) Unsubscribe
}

type MemoStore interface {
	// Add stamps CreatedAt and UpdatedAt; any timestamps on the payload
	// are ignored.
	Add(ctx context.Context, m entity.BoardMemo) (string, error)
	// Update refreshes UpdatedAt even when no field of patch is set.
	Update(ctx context.Context, id string, patch MemoPatch) error
	Delete(ctx context.Context, id string) error
	// List returns the current snapshot, newest UpdatedAt first.
	List(ctx context.Context) ([]entity.BoardMemo, error)
	Subscribe(fn func([]entity.BoardMemo)) Unsubscribe
}

// Backend bundles the three collection stores of one backend.
type Backend interface {
	Members() MemberStore
	Events() EventStore
	Memos() MemoStore
	Close() error
}

// Patches carry partial updates; nil fields are left untouched.

type MemberPatch struct {
	Name  *string
	Color *string
}

type EventPatch struct {
	Title           *string
	Description     *string
	Date            *string
	StartTime       *string
	EndTime         *string
	MemberID        *string
	Reminder        *bool
	ReminderMinutes *int
}

type MemoPatch struct {
	Content *string
}
