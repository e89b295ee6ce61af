package cronjob

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/studiofolio/portfolio-backend/internal/projects/service"
)

// Refresher periodically re-reads the remote collection into the store. It
// heals the window where a crash between a remote write and the matching
// cache update left the two inconsistent.
type Refresher struct {
	store    *service.Store
	schedule string
	log      *logrus.Logger
	cron     *cron.Cron
}

func NewRefresher(store *service.Store, schedule string, log *logrus.Logger) *Refresher {
	return &Refresher{store: store, schedule: schedule, log: log}
}

// Start registers the refresh job and starts the scheduler.
func (r *Refresher) Start() error {
	c := cron.New()

	_, err := c.AddFunc(r.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := r.store.Fetch(ctx); err != nil {
			r.log.Warnf("scheduled project refresh failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	r.log.Infof("project refresher started (schedule %q)", r.schedule)
	c.Start()
	r.cron = c
	return nil
}

// Stop halts the scheduler, waiting for a running refresh to finish.
func (r *Refresher) Stop() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
}
