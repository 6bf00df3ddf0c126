package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/i474232898/waybar-weather/internal/render"
	"github.com/i474232898/waybar-weather/internal/weather"
)

// Refresher produces the outcome of one cycle.
type Refresher interface {
	Refresh(ctx context.Context) (weather.Snapshot, error)
}

// Emitter receives the rendered output of one cycle.
type Emitter interface {
	Write(out render.Output) error
}

// Scheduler runs refresh, render and write cycles, one at a time.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	renderer  *render.Renderer
	emitter   Emitter
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. An interval of zero runs a single cycle.
// timeout bounds each cycle; zero leaves it to the client.
func New(service Refresher, renderer *render.Renderer, emitter Emitter, interval, timeout time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		service:   service,
		renderer:  renderer,
		emitter:   emitter,
		interval:  interval,
		timeout:   timeout,
	}
}

// Run executes cycles until ctx is cancelled, or exactly once when the
// interval is zero. Cancellation is observed between cycles only; a
// cancelled context is not an error.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.interval <= 0 {
		return s.RunOnce(ctx)
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(func() {
		if ctx.Err() != nil {
			return
		}
		// RunOnce logs its own failures with the cycle id.
		_ = s.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	log.Debugf("scheduler: refreshing every %s", s.interval)
	s.scheduler.StartAsync()
	defer s.scheduler.Stop()

	<-ctx.Done()
	log.Info("scheduler: interrupted, exiting")
	return nil
}

// RunOnce performs one refresh, render and write cycle. Fetch and
// normalization failures are rendered, not returned; only a failed write
// is an error.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	id := uuid.New()
	entry := log.WithField("cycle", id.String())
	start := time.Now()

	// The cycle outlives cancellation of ctx so a result is always written.
	cycleCtx := context.WithoutCancel(ctx)
	if s.timeout > 0 {
		var cancel context.CancelFunc
		cycleCtx, cancel = context.WithTimeout(cycleCtx, s.timeout)
		defer cancel()
	}

	snap, err := s.service.Refresh(cycleCtx)
	var es *weather.ErrorState
	if errors.As(err, &es) {
		entry = entry.WithField("error", es.Kind.String())
		entry.Warnf("scheduler: cycle rendered an error: %s", es.Detail)
	}

	if werr := s.emitter.Write(s.renderer.Result(snap, err)); werr != nil {
		entry.Errorf("scheduler: cycle failed: %v", werr)
		return werr
	}
	entry.WithField("took", time.Since(start).Round(time.Millisecond)).Debug("scheduler: cycle completed")
	return nil
}
