package contact

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
)

// messagesCollection is the Firestore collection keeping submission copies.
const messagesCollection = "messages"

// MessageRepository stores contact messages in the document store.
type MessageRepository interface {
	Save(ctx context.Context, m Message) error
}

// FirestoreMessageRepository is the production MessageRepository.
type FirestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) *FirestoreMessageRepository {
	return &FirestoreMessageRepository{client: client}
}

// Save writes the message under its own id.
func (r *FirestoreMessageRepository) Save(ctx context.Context, m Message) error {
	if _, err := r.client.Collection(messagesCollection).Doc(m.ID).Set(ctx, m); err != nil {
		return fmt.Errorf("save message %s: %w", m.ID, err)
	}
	return nil
}
