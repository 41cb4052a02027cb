package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
)

// Webhook is the system-level sink: notifications are POSTed as JSON to
// an external receiver. RequestPermission probes the receiver once; if
// the probe fails the scheduler falls back to in-app delivery only.
type Webhook struct {
	url      string
	client   *http.Client
	attempts uint
	delay    time.Duration
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		url:      url,
		client:   &http.Client{Timeout: 10 * time.Second},
		attempts: 3,
		delay:    500 * time.Millisecond,
	}
}

func (w *Webhook) RequestPermission(ctx context.Context) error {
	if w.url == "" {
		return errors.New("no webhook url configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.url, nil)
	if err != nil {
		return err
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	drainClose(resp)
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook probe returned status %d", resp.StatusCode)
	}
	return nil
}

func (w *Webhook) Notify(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := w.client.Do(req)
			if err != nil {
				return err
			}
			drainClose(resp)
			if resp.StatusCode >= http.StatusBadRequest {
				return fmt.Errorf("webhook returned status %d", resp.StatusCode)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(w.attempts),
		retry.Delay(w.delay),
		retry.LastErrorOnly(true),
	)
}

func drainClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
