package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"weather-companion/internal/app"
)

// Scheduler periodically re-fetches the forecast for every stored weather
// request so records do not go stale between user visits.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *app.Service
	interval  time.Duration
}

// New creates a new Scheduler.
func New(service *app.Service, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running forecast refresh job")

		recs, err := s.service.Store().List()
		if err != nil {
			log.Printf("scheduler: failed to list stored requests: %v", err)
			return
		}

		for i := range recs {
			rec := &recs[i]

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := s.service.RefreshRequest(ctx, rec); err != nil {
				log.Printf("scheduler: refresh failed for %s (%s): %v", rec.ID, rec.ResolvedName, err)
			}
			cancel()
		}
		log.Println("scheduler: completed forecast refresh job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
