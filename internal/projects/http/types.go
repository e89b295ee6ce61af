package http

import (
	"mime/multipart"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/studiofolio/portfolio-backend/internal/cache"
	"github.com/studiofolio/portfolio-backend/internal/media"
	"github.com/studiofolio/portfolio-backend/internal/projects/domain"
	"github.com/studiofolio/portfolio-backend/internal/projects/service"
)

// Handler bundles the dependencies for project HTTP endpoints. The listing
// cache is optional and may be nil.
type Handler struct {
	store *service.Store
	cache *cache.ListingCache
	log   *logrus.Logger
}

func New(store *service.Store, listingCache *cache.ListingCache, log *logrus.Logger) *Handler {
	return &Handler{store: store, cache: listingCache, log: log}
}

// fieldsFromForm maps the multipart form values onto the caller-settable
// project fields. Tags arrive as one comma-separated value.
func fieldsFromForm(form *multipart.Form) domain.Fields {
	value := func(key string) string {
		if v, ok := form.Value[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	var tags []string
	for _, t := range strings.Split(value("tags"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return domain.Fields{
		Title:       strings.TrimSpace(value("title")),
		Description: value("description"),
		Category:    value("category"),
		Tags:        tags,
		Link:        strings.TrimSpace(value("link")),
		Client:      value("client"),
		Year:        value("year"),
		Role:        value("role"),
		Challenge:   value("challenge"),
		Solution:    value("solution"),
		Featured:    value("featured") == "true",
	}
}

// imageFromForm opens the optional "image" part. A nil return with nil error
// means no image was attached.
func imageFromForm(form *multipart.Form) (*media.File, func(), error) {
	headers, ok := form.File["image"]
	if !ok || len(headers) == 0 {
		return nil, func() {}, nil
	}

	fh := headers[0]
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}

	file := &media.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	}
	return file, func() { f.Close() }, nil
}
