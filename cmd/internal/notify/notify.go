// Package notify carries reminder notifications to their consumers: an
// in-app feed that always works, and an optional system-level webhook
// that has to be granted first.
package notify

import (
	"context"
	"time"
)

type Notification struct {
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

type Sink interface {
	// RequestPermission is called once before the sink is used. A non-nil
	// error means the sink stays unavailable; the caller degrades
	// silently, it never aborts.
	RequestPermission(ctx context.Context) error
	Notify(ctx context.Context, n Notification) error
}
