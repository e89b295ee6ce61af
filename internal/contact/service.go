package contact

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrRelayFailed is what callers see when the email relay rejects a message.
// The relay's own error stays in the log.
var ErrRelayFailed = errors.New("Failed to send message. Please try again.")

// Service handles contact-form submissions: validate, keep a copy in the
// document store, relay to the email service.
type Service struct {
	repo  MessageRepository
	relay Relay
	log   *logrus.Logger
}

func NewService(repo MessageRepository, relay Relay, log *logrus.Logger) *Service {
	return &Service{repo: repo, relay: relay, log: log}
}

// Submit processes one submission. The stored copy is best-effort: a failing
// save is logged and does not block the relay.
func (s *Service) Submit(ctx context.Context, m Message) (Message, error) {
	if errs := m.Validate(); errs != nil {
		return Message{}, errs
	}

	m.ID = uuid.New().String()
	m.CreatedAt = time.Now().UTC()

	if s.repo != nil {
		if err := s.repo.Save(ctx, m); err != nil {
			s.log.Warnf("save contact message: %v", err)
		}
	}

	if err := s.relay.Send(ctx, m); err != nil {
		s.log.Errorf("relay contact message %s: %v", m.ID, err)
		return Message{}, ErrRelayFailed
	}

	return m, nil
}
