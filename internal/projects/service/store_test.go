package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiofolio/portfolio-backend/internal/media"
	"github.com/studiofolio/portfolio-backend/internal/projects/domain"
)

type fakeRepo struct {
	mu          sync.Mutex
	docs        map[string]domain.Project
	nextID      int
	createCalls int
	updateCalls int

	failGetAll error
	failCreate error
	failUpdate error
	failDelete error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: map[string]domain.Project{}}
}

func (r *fakeRepo) GetAll(ctx context.Context) ([]domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGetAll != nil {
		return nil, r.failGetAll
	}
	out := make([]domain.Project, 0, len(r.docs))
	for id, p := range r.docs {
		p.ID = id
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepo) Create(ctx context.Context, p domain.Project) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.failCreate != nil {
		return "", r.failCreate
	}
	r.nextID++
	id := fmt.Sprintf("doc-%d", r.nextID)
	r.docs[id] = p
	return id, nil
}

func (r *fakeRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	if r.failUpdate != nil {
		return r.failUpdate
	}
	p, ok := r.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	if v, ok := fields["title"].(string); ok {
		p.Title = v
	}
	if v, ok := fields["description"].(string); ok {
		p.Description = v
	}
	if v, ok := fields["imageUrl"].(string); ok {
		p.ImageURL = v
	}
	if v, ok := fields["updatedAt"].(time.Time); ok {
		p.UpdatedAt = v
	}
	r.docs[id] = p
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failDelete != nil {
		return r.failDelete
	}
	delete(r.docs, id)
	return nil
}

func (r *fakeRepo) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

type fakeCDN struct {
	uploadURL string
	uploadErr error
	deleteErr error
	uploads   int
	deleted   chan string
}

func newFakeCDN() *fakeCDN {
	return &fakeCDN{
		uploadURL: "https://res.example.com/folder/img.jpg",
		deleted:   make(chan string, 8),
	}
}

func (c *fakeCDN) Upload(ctx context.Context, f media.File) (string, error) {
	c.uploads++
	if c.uploadErr != nil {
		return "", c.uploadErr
	}
	return c.uploadURL, nil
}

func (c *fakeCDN) Delete(ctx context.Context, imageURL string) error {
	c.deleted <- imageURL
	return c.deleteErr
}

func newTestStore(t *testing.T) (*Store, *fakeRepo, *fakeCDN) {
	t.Helper()
	repo := newFakeRepo()
	cdn := newFakeCDN()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewStore(repo, cdn, log), repo, cdn
}

func validFields(title string) domain.Fields {
	return domain.Fields{
		Title:       title,
		Description: "a description",
		Category:    "Web Design",
		Tags:        []string{"go", "design"},
		Year:        "2026",
		Role:        "UI/UX Designer",
	}
}

func awaitDelete(t *testing.T, cdn *fakeCDN) string {
	t.Helper()
	select {
	case url := <-cdn.deleted:
		return url
	case <-time.After(2 * time.Second):
		t.Fatal("expected a CDN delete")
		return ""
	}
}

func TestAddPopulatesServerFields(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	id, err := store.Add(ctx, validFields("First"), nil)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, store.Fetch(ctx))
	items, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	got := items[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "First", got.Title)
	assert.Equal(t, "a description", got.Description)
	assert.Equal(t, []string{"go", "design"}, got.Tags)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestAddPrependsToCache(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Fetch(ctx))
	_, err := store.Add(ctx, validFields("older"), nil)
	require.NoError(t, err)
	newest, err := store.Add(ctx, validFields("newest"), nil)
	require.NoError(t, err)

	items, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, newest, items[0].ID)
}

func TestFetchSortsFeaturedFirstThenNewest(t *testing.T) {
	store, repo, _ := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.docs["a"] = domain.Project{Title: "old plain", CreatedAt: base}
	repo.docs["b"] = domain.Project{Title: "new plain", CreatedAt: base.Add(48 * time.Hour)}
	repo.docs["c"] = domain.Project{Title: "old featured", Featured: true, CreatedAt: base.Add(time.Hour)}
	repo.docs["d"] = domain.Project{Title: "new featured", Featured: true, CreatedAt: base.Add(24 * time.Hour)}

	require.NoError(t, store.Fetch(ctx))
	items, err := store.List(ctx)
	require.NoError(t, err)

	ids := make([]string, len(items))
	for i, p := range items {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"d", "c", "b", "a"}, ids)
}

func TestFetchFailureKeepsStaleList(t *testing.T) {
	store, repo, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Fetch(ctx))
	_, err := store.Add(ctx, validFields("keep me"), nil)
	require.NoError(t, err)

	repo.failGetAll = errors.New("collection unreachable")
	require.Error(t, store.Fetch(ctx))

	items, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "keep me", items[0].Title)
}

func TestUpdatePreservesIDAndCreatedAt(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	id, err := store.Add(ctx, validFields("before"), nil)
	require.NoError(t, err)
	created, err := store.Get(id)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	fields := validFields("after")
	require.NoError(t, store.Update(ctx, id, fields, nil))

	updated, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, id, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "updatedAt must strictly advance")
	assert.Equal(t, "after", updated.Title)
}

func TestUpdateUnknownID(t *testing.T) {
	store, repo, _ := newTestStore(t)

	err := store.Update(context.Background(), "missing", validFields("x"), nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, repo.updateCalls)
}

func TestDeleteRemovesAndSecondDeleteFails(t *testing.T) {
	store, repo, _ := newTestStore(t)
	ctx := context.Background()

	id, err := store.Add(ctx, validFields("doomed"), nil)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, id))
	assert.Zero(t, repo.size())

	items, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.ErrorIs(t, store.Delete(ctx, id), domain.ErrNotFound)
}

func TestAddUploadFailureCreatesNoDocument(t *testing.T) {
	store, repo, cdn := newTestStore(t)
	cdn.uploadErr = errors.New("Failed to upload image to Cloudinary: status 500")

	image := &media.File{Name: "x.png", ContentType: "image/png", Size: 100, Reader: strings.NewReader("png")}
	_, err := store.Add(context.Background(), validFields("with image"), image)

	require.Error(t, err)
	assert.Equal(t, cdn.uploadErr.Error(), err.Error())
	assert.Zero(t, repo.createCalls, "no document may be created after a failed upload")
	assert.Zero(t, repo.size())
}

func TestAddWithImageSetsImageURL(t *testing.T) {
	store, _, cdn := newTestStore(t)
	ctx := context.Background()

	image := &media.File{Name: "x.png", ContentType: "image/png", Size: 100, Reader: strings.NewReader("png")}
	id, err := store.Add(ctx, validFields("with image"), image)
	require.NoError(t, err)

	p, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, cdn.uploadURL, p.ImageURL)
}

func TestUpdateUploadFailureSkipsRemoteWrite(t *testing.T) {
	store, repo, cdn := newTestStore(t)
	ctx := context.Background()

	id, err := store.Add(ctx, validFields("stable"), nil)
	require.NoError(t, err)
	repo.mu.Lock()
	repo.updateCalls = 0
	repo.mu.Unlock()

	cdn.uploadErr = errors.New("upload exploded")
	image := &media.File{Name: "x.png", ContentType: "image/png", Size: 100, Reader: strings.NewReader("png")}

	err = store.Update(ctx, id, validFields("never lands"), image)
	require.Error(t, err)
	assert.Equal(t, "upload exploded", err.Error())
	assert.Zero(t, repo.updateCalls)

	p, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "stable", p.Title)
}

func TestUpdateWithNewImageDeletesOldBestEffort(t *testing.T) {
	store, _, cdn := newTestStore(t)
	ctx := context.Background()

	image := &media.File{Name: "old.png", ContentType: "image/png", Size: 100, Reader: strings.NewReader("png")}
	id, err := store.Add(ctx, validFields("has image"), image)
	require.NoError(t, err)
	oldURL := cdn.uploadURL

	cdn.uploadURL = "https://res.example.com/folder/replacement.jpg"
	cdn.deleteErr = errors.New("cdn said no") // must not fail the update

	newImage := &media.File{Name: "new.png", ContentType: "image/png", Size: 100, Reader: strings.NewReader("png")}
	require.NoError(t, store.Update(ctx, id, validFields("has image"), newImage))

	assert.Equal(t, oldURL, awaitDelete(t, cdn))

	p, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "https://res.example.com/folder/replacement.jpg", p.ImageURL)
}

func TestDeleteCleansUpImageBestEffort(t *testing.T) {
	store, _, cdn := newTestStore(t)
	ctx := context.Background()

	image := &media.File{Name: "x.png", ContentType: "image/png", Size: 100, Reader: strings.NewReader("png")}
	id, err := store.Add(ctx, validFields("with image"), image)
	require.NoError(t, err)

	cdn.deleteErr = errors.New("cdn unreachable")
	require.NoError(t, store.Delete(ctx, id))
	assert.Equal(t, cdn.uploadURL, awaitDelete(t, cdn))
}

func TestDeleteRemoteFailureKeepsCache(t *testing.T) {
	store, repo, _ := newTestStore(t)
	ctx := context.Background()

	id, err := store.Add(ctx, validFields("survivor"), nil)
	require.NoError(t, err)

	repo.failDelete = errors.New("store unreachable")
	require.Error(t, store.Delete(ctx, id))

	_, err = store.Get(id)
	assert.NoError(t, err, "record stays cached when the remote delete fails")
}

func TestValidationRejectsBeforeAnyNetworkCall(t *testing.T) {
	store, repo, cdn := newTestStore(t)

	_, err := store.Add(context.Background(), domain.Fields{Title: "", Description: "ok"}, nil)
	require.Error(t, err)

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, domain.ValidationErrors{"title": "Title is required"}, verrs)
	assert.Zero(t, repo.createCalls)
	assert.Zero(t, cdn.uploads)
}

func TestOversizedImageRejected(t *testing.T) {
	store, repo, cdn := newTestStore(t)

	image := &media.File{Name: "big.png", ContentType: "image/png", Size: 12 * 1024 * 1024, Reader: strings.NewReader("")}
	_, err := store.Add(context.Background(), validFields("big"), image)

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "image")
	assert.Zero(t, repo.createCalls)
	assert.Zero(t, cdn.uploads)
}

func TestOnSyncFiresAfterMutations(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	var syncs int
	store.OnSync(func() { syncs++ })

	id, err := store.Add(ctx, validFields("x"), nil)
	require.NoError(t, err)
	require.NoError(t, store.Update(ctx, id, validFields("y"), nil))
	require.NoError(t, store.Delete(ctx, id))
	require.NoError(t, store.Fetch(ctx))

	assert.Equal(t, 4, syncs)
}
