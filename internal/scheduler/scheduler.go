package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-feed-service/internal/pipeline"
	"github.com/i474232898/weather-feed-service/internal/store"
)

// Scheduler periodically refreshes weather reports for configured places and
// saves them into the store, so the latest/history endpoints have data even
// when nobody queried recently.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pipe      *pipeline.Pipeline
	store     *store.MemoryStore
	places    []string
	interval  time.Duration
}

// New creates a new Scheduler.
func New(places []string, interval time.Duration, pipe *pipeline.Pipeline, st *store.MemoryStore) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		pipe:      pipe,
		store:     st,
		places:    places,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.places) == 0 {
		log.Println("scheduler: no places configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running weather refresh job")

		var wg sync.WaitGroup
		for _, place := range s.places {
			place := place
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
				defer cancel()

				report, err := s.pipe.QueryByPlaceName(ctx, place)
				if err != nil {
					log.Printf("scheduler: refresh failed for %q: %v", place, err)
					return
				}
				if report == nil {
					log.Printf("scheduler: no weather for %q; keeping last good report if any", place)
					return
				}

				s.store.SaveSnapshot(place, store.Snapshot{
					Place:     place,
					FetchedAt: time.Now().UTC(),
					Report:    report,
				})
			}()
		}
		wg.Wait()
		log.Println("scheduler: completed weather refresh job")
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
