package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/studiofolio/portfolio-backend/internal/projects/domain"
)

// Collection is the Firestore collection holding project documents.
const Collection = "projects"

// ProjectRepository provides persistence operations for projects against a
// Firestore collection. The document key is the project id.
type ProjectRepository struct {
	client     *firestore.Client
	collection string
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(client *firestore.Client) *ProjectRepository {
	return &ProjectRepository{client: client, collection: Collection}
}

// GetAll reads every document in the collection. No server-side ordering is
// requested; the store owns the sort contract.
func (r *ProjectRepository) GetAll(ctx context.Context) ([]domain.Project, error) {
	iter := r.client.Collection(r.collection).Documents(ctx)
	defer iter.Stop()

	out := make([]domain.Project, 0, 16)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read projects: %w", err)
		}

		var p domain.Project
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("decode project %s: %w", doc.Ref.ID, err)
		}
		p.ID = doc.Ref.ID
		out = append(out, p)
	}
	return out, nil
}

// Create inserts a full document and returns the generated key.
func (r *ProjectRepository) Create(ctx context.Context, p domain.Project) (string, error) {
	doc, _, err := r.client.Collection(r.collection).Add(ctx, p)
	if err != nil {
		return "", fmt.Errorf("create project: %w", err)
	}
	return doc.ID, nil
}

// Update applies a per-field partial update to the document with key id.
func (r *ProjectRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	if _, err := r.client.Collection(r.collection).Doc(id).Update(ctx, updates); err != nil {
		return fmt.Errorf("update project %s: %w", id, err)
	}
	return nil
}

// Delete removes the document with key id.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(r.collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return nil
}
