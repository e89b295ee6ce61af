package projects

import (
	"context"

	"github.com/studiofolio/portfolio-backend/internal/projects/domain"
)

// Repository is the remote document collection holding projects. The concrete
// implementation lives in the repository subpackage.
type Repository interface {
	// GetAll reads the whole collection, unfiltered and unordered.
	GetAll(ctx context.Context) ([]domain.Project, error)
	// Create writes a full document and returns the key assigned by the store.
	Create(ctx context.Context, p domain.Project) (string, error)
	// Update applies a per-field partial update to the document with the given key.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	// Delete removes the document with the given key.
	Delete(ctx context.Context, id string) error
}
