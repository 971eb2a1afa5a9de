package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"

	"github.com/keante032/SB-Capstone1/internal/weather"
)

// LocationLister lists the locations worth keeping warm.
type LocationLister interface {
	Locations(ctx context.Context) ([]weather.Location, error)
}

// Refresher re-fetches the forecast for one location.
type Refresher interface {
	Refresh(ctx context.Context, loc weather.Location) error
}

// Scheduler periodically refreshes cached forecasts for favorited locations.
type Scheduler struct {
	scheduler *gocron.Scheduler
	lister    LocationLister
	refresher Refresher
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler.
func New(lister LocationLister, refresher Refresher, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		lister:    lister,
		refresher: refresher,
		interval:  interval,
		timeout:   30 * time.Second,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// A non-positive interval leaves the scheduler idle.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Info().Msg("scheduler: refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Info().Dur("interval", s.interval).Msg("scheduler: started")
	return nil
}

// RunOnce refreshes every favorited location concurrently and waits for
// all of them. It returns the number of failed refreshes.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	locs, err := s.lister.Locations(ctx)
	if err != nil {
		log.Error().Err(err).Msg("scheduler: list locations failed")
		return 0
	}
	if len(locs) == 0 {
		return 0
	}

	log.Debug().Int("locations", len(locs)).Msg("scheduler: running forecast refresh")

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed int
	)
	for _, loc := range locs {
		loc := loc
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			if err := s.refresher.Refresh(ctx, loc); err != nil {
				log.Warn().Err(err).Int64("location_id", loc.ID).Msg("scheduler: refresh failed")
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	log.Debug().Int("failed", failed).Msg("scheduler: completed forecast refresh")
	return failed
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
