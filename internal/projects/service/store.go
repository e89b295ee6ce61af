package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/studiofolio/portfolio-backend/internal/media"
	"github.com/studiofolio/portfolio-backend/internal/projects"
	"github.com/studiofolio/portfolio-backend/internal/projects/domain"
)

// Store owns the in-memory project list and keeps it consistent with the
// remote collection and the image CDN. All image cleanup is best-effort: its
// failure is logged and never affects the enclosing operation.
type Store struct {
	repo   projects.Repository
	cdn    media.Uploader
	log    *logrus.Logger
	onSync func()

	mu     sync.RWMutex
	items  []domain.Project
	loaded bool
}

// NewStore creates a store over the given repository and CDN client.
func NewStore(repo projects.Repository, cdn media.Uploader, log *logrus.Logger) *Store {
	return &Store{repo: repo, cdn: cdn, log: log}
}

// OnSync registers a hook invoked after every successful mutation or refresh,
// used to drop derived caches of the listing.
func (s *Store) OnSync(fn func()) {
	s.onSync = fn
}

// Fetch reads the whole remote collection and replaces the cached list
// wholesale. On failure the stale list is kept and the error returned.
func (s *Store) Fetch(ctx context.Context) error {
	list, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Errorf("fetch projects: %v", err)
		return err
	}
	sortProjects(list)

	s.mu.Lock()
	s.items = list
	s.loaded = true
	s.mu.Unlock()

	s.notifySync()
	return nil
}

// List returns the cached project list, fetching it first if the cache is
// cold. The returned slice is a copy.
func (s *Store) List(ctx context.Context) ([]domain.Project, error) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()

	if !loaded {
		if err := s.Fetch(ctx); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Project, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Get returns the cached record for id.
func (s *Store) Get(id string) (domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.items {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Project{}, domain.ErrNotFound
}

// Add validates the fields, uploads the image if one is given, creates the
// remote document and prepends the new record to the cache. An upload failure
// aborts the whole operation: no document is created.
func (s *Store) Add(ctx context.Context, fields domain.Fields, image *media.File) (string, error) {
	if err := validate(fields, image); err != nil {
		return "", err
	}

	imageURL := ""
	if image != nil {
		url, err := s.cdn.Upload(ctx, *image)
		if err != nil {
			return "", err
		}
		imageURL = url
	}

	now := time.Now().UTC()
	p := domain.Project{
		Title:       fields.Title,
		Description: fields.Description,
		Category:    fields.Category,
		Tags:        fields.Tags,
		Link:        fields.Link,
		Client:      fields.Client,
		Year:        fields.Year,
		Role:        fields.Role,
		Challenge:   fields.Challenge,
		Solution:    fields.Solution,
		ImageURL:    imageURL,
		Featured:    fields.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return "", err
	}
	p.ID = id

	s.mu.Lock()
	s.items = append([]domain.Project{p}, s.items...)
	s.mu.Unlock()

	s.notifySync()
	return id, nil
}

// Update validates and writes the merged field set plus a refreshed updatedAt
// to the remote document, then merges the same fields into the cached record.
// A new image is uploaded first; if that succeeds, the previous image is
// deleted from the CDN best-effort. id and createdAt never change.
func (s *Store) Update(ctx context.Context, id string, fields domain.Fields, image *media.File) error {
	if err := validate(fields, image); err != nil {
		return err
	}

	prev, err := s.Get(id)
	if err != nil {
		return err
	}

	var newImageURL *string
	if image != nil {
		url, uploadErr := s.cdn.Upload(ctx, *image)
		if uploadErr != nil {
			return uploadErr
		}
		newImageURL = &url

		if prev.ImageURL != "" {
			s.deleteImageAsync(prev.ImageURL)
		}
	}

	now := time.Now().UTC()
	updates := fieldUpdates(fields, now)
	if newImageURL != nil {
		updates["imageUrl"] = *newImageURL
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		applyFields(&s.items[i], fields)
		if newImageURL != nil {
			s.items[i].ImageURL = *newImageURL
		}
		s.items[i].UpdatedAt = now
		break
	}
	s.mu.Unlock()

	s.notifySync()
	return nil
}

// Delete removes the remote document and drops the record from the cache. The
// associated CDN image, if any, is deleted best-effort first. A failing remote
// delete leaves the cache untouched.
func (s *Store) Delete(ctx context.Context, id string) error {
	p, err := s.Get(id)
	if err != nil {
		return err
	}

	if p.ImageURL != "" {
		s.deleteImageAsync(p.ImageURL)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.mu.Unlock()

	s.notifySync()
	return nil
}

func (s *Store) notifySync() {
	if s.onSync != nil {
		s.onSync()
	}
}

// deleteImageAsync fires the CDN delete without tying it to the caller's
// result. Failures end up in the log sink only.
func (s *Store) deleteImageAsync(imageURL string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.cdn.Delete(ctx, imageURL); err != nil {
			s.log.Warnf("delete image %s: %v", imageURL, err)
		}
	}()
}

func validate(fields domain.Fields, image *media.File) error {
	if errs := domain.Validate(fields); errs != nil {
		return errs
	}
	if image != nil {
		if errs := domain.ValidateImage(image.ContentType, image.Size); errs != nil {
			return errs
		}
	}
	return nil
}

// sortProjects orders featured projects first, newest first within each group.
func sortProjects(list []domain.Project) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Featured != list[j].Featured {
			return list[i].Featured
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

func fieldUpdates(f domain.Fields, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"title":       f.Title,
		"description": f.Description,
		"category":    f.Category,
		"tags":        f.Tags,
		"link":        f.Link,
		"client":      f.Client,
		"year":        f.Year,
		"role":        f.Role,
		"challenge":   f.Challenge,
		"solution":    f.Solution,
		"featured":    f.Featured,
		"updatedAt":   now,
	}
}

func applyFields(p *domain.Project, f domain.Fields) {
	p.Title = f.Title
	p.Description = f.Description
	p.Category = f.Category
	p.Tags = f.Tags
	p.Link = f.Link
	p.Client = f.Client
	p.Year = f.Year
	p.Role = f.Role
	p.Challenge = f.Challenge
	p.Solution = f.Solution
	p.Featured = f.Featured
}
