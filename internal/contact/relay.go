package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Relay forwards a message to the transactional email service.
type Relay interface {
	Send(ctx context.Context, m Message) error
}

// HTTPRelay posts messages as JSON to a configured relay endpoint.
type HTTPRelay struct {
	url    string
	client *http.Client
}

func NewHTTPRelay(url string) *HTTPRelay {
	return &HTTPRelay{
		url:    url,
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

type relayPayload struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

// Send posts the message. Any non-2xx status is a failure.
func (r *HTTPRelay) Send(ctx context.Context, m Message) error {
	payload, err := json.Marshal(relayPayload{
		FromName:  m.Name,
		FromEmail: m.Email,
		Subject:   m.Subject,
		Message:   m.Body,
	})
	if err != nil {
		return fmt.Errorf("marshal relay payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("relay message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("relay message: status %d", resp.StatusCode)
	}
	return nil
}
