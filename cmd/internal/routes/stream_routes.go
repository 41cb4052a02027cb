package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"famcal/cmd/internal/notify"
	"famcal/cmd/internal/store"
)

// DefaultStreamRoute serves the live snapshot streams over SSE. Each
// connection is one subscription: the first frame is the current
// snapshot (replay-on-subscribe), then one frame per mutation, and the
// client disconnecting tears the subscription down.
type DefaultStreamRoute struct {
	Backend store.Backend
	Hub     *notify.Hub
}

func NewStreamDefault(backend store.Backend, hub *notify.Hub) *DefaultStreamRoute {
	return &DefaultStreamRoute{Backend: backend, Hub: hub}
}

func (s *DefaultStreamRoute) StreamMembers(c echo.Context) error {
	return streamCollection(c, s.Backend.Members().Subscribe)
}

func (s *DefaultStreamRoute) StreamEvents(c echo.Context) error {
	return streamCollection(c, s.Backend.Events().Subscribe)
}

func (s *DefaultStreamRoute) StreamMemos(c echo.Context) error {
	return streamCollection(c, s.Backend.Memos().Subscribe)
}

// StreamNotifications is the in-app toast feed: recent history first,
// then live reminder notifications.
func (s *DefaultStreamRoute) StreamNotifications(c echo.Context) error {
	w := sseStart(c)

	// Registering and reading the history in one step closes the gap in
	// which a notification could fire unseen between the two.
	replay, ch, unsubscribe := s.Hub.SubscribeWithReplay()
	defer unsubscribe()

	for _, n := range replay {
		if err := sseWrite(w, n); err != nil {
			return nil
		}
	}

	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case n := <-ch:
			if err := sseWrite(w, n); err != nil {
				return nil
			}
		}
	}
}

// streamCollection bridges a store subscription onto an SSE response.
// Store callbacks run under the store's lock, so they only enqueue; a
// slow client drops intermediate frames, which is harmless because every
// frame is a full replacement snapshot.
func streamCollection[T any](c echo.Context, subscribe func(func([]T)) store.Unsubscribe) error {
	w := sseStart(c)

	snapshots := make(chan []T, 8)
	unsubscribe := subscribe(func(snapshot []T) {
		select {
		case snapshots <- snapshot:
		default:
		}
	})
	defer unsubscribe()

	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case snapshot := <-snapshots:
			if err := sseWrite(w, snapshot); err != nil {
				return nil
			}
		}
	}
}

func sseStart(c echo.Context) *echo.Response {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	return w
}

func sseWrite(w *echo.Response, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("failed to encode stream frame: %v", err)
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	w.Flush()
	return nil
}
