package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/studiofolio/portfolio-backend/config"
	"github.com/studiofolio/portfolio-backend/internal/bootstrap"
	"github.com/studiofolio/portfolio-backend/internal/projects/domain"
	"github.com/studiofolio/portfolio-backend/internal/projects/repository"
)

// seed loads projects from a JSON file into the remote collection, for
// bootstrapping a fresh deployment.
//
// usage: seed <projects.json>
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if len(os.Args) < 2 {
		logger.Fatal("usage: seed <projects.json>")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		logger.Fatalf("read seed file: %v", err)
	}

	var fields []domain.Fields
	if err := json.Unmarshal(data, &fields); err != nil {
		logger.Fatalf("parse seed file: %v", err)
	}

	ctx := context.Background()
	fb, err := bootstrap.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		logger.Fatalf("initialize firebase: %v", err)
	}
	defer fb.Firestore.Close()

	repo := repository.NewProjectRepository(fb.Firestore)
	now := time.Now().UTC()

	for _, f := range fields {
		if errs := domain.Validate(f); errs != nil {
			logger.Fatalf("invalid seed project %q: %v", f.Title, errs)
		}

		id, err := repo.Create(ctx, domain.Project{
			Title:       f.Title,
			Description: f.Description,
			Category:    f.Category,
			Tags:        f.Tags,
			Link:        f.Link,
			Client:      f.Client,
			Year:        f.Year,
			Role:        f.Role,
			Challenge:   f.Challenge,
			Solution:    f.Solution,
			Featured:    f.Featured,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			logger.Fatalf("create project %q: %v", f.Title, err)
		}
		logger.Infof("created %s (%s)", f.Title, id)
	}

	logger.Infof("seeded %d projects", len(fields))
}
