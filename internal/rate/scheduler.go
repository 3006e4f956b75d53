package rate

import (
	"context"
	"sync"
	"time"

	"cryptoexchange/internal/adapters"
	"cryptoexchange/internal/domain"
	"cryptoexchange/internal/metrics"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

const (
	defaultRefreshInterval       = 60 * time.Second
	defaultBroadcastInterval     = 15 * time.Minute
	defaultCatalogReloadInterval = 5 * time.Minute
)

type CatalogReloader interface {
	Reload(ctx context.Context) error
}

type Resolving interface {
	RateResolver
	Refresher
}

type Intervals struct {
	Refresh       time.Duration
	Broadcast     time.Duration
	CatalogReload time.Duration
}

type Scheduler struct {
	resolver    Resolving
	catalog     CatalogReloader
	broadcaster adapters.RateBroadcaster
	pairs       []domain.CurrencyPair
	intervals   Intervals
	clock       clockwork.Clock
	metrics     *metrics.Metrics
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler(gocron.WithClock(s.clock))
	if err != nil {
		return err
	}

	if err = s.registerJobs(scheduler); err != nil {
		_ = scheduler.Shutdown()
		return err
	}

	scheduler.Start()
	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) registerJobs(scheduler gocron.Scheduler) error {
	if len(s.pairs) > 0 {
		if err := s.addJob(scheduler, s.intervals.Refresh, s.refreshJob); err != nil {
			return err
		}
		if s.broadcaster != nil {
			if err := s.addJob(scheduler, s.intervals.Broadcast, s.broadcastJob); err != nil {
				return err
			}
		}
	}
	if s.catalog != nil {
		if err := s.addJob(scheduler, s.intervals.CatalogReload, s.catalogReloadJob); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

func (s *Scheduler) addJob(scheduler gocron.Scheduler, every time.Duration, task func(context.Context)) error {
	_, err := scheduler.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(task),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

func (s *Scheduler) refreshJob(jobCtx context.Context) {
	RefreshRates(jobCtx, uuid.NewString(), s.resolver, s.pairs)
}

func (s *Scheduler) broadcastJob(jobCtx context.Context) {
	reached := BroadcastRates(jobCtx, uuid.NewString(), s.resolver, s.broadcaster, s.pairs)
	s.metrics.BroadcastRecipientsLast.Set(float64(reached))
}

func (s *Scheduler) catalogReloadJob(jobCtx context.Context) {
	if err := s.catalog.Reload(jobCtx); err != nil {
		logrus.WithError(err).Error("Currency catalog reload failed, keeping previous snapshot")
	}
}

func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

func NewScheduler(
	resolver Resolving,
	catalog CatalogReloader,
	broadcaster adapters.RateBroadcaster,
	pairs []domain.CurrencyPair,
	intervals Intervals,
	clock clockwork.Clock,
	m *metrics.Metrics,
) *Scheduler {
	if intervals.Refresh <= 0 {
		intervals.Refresh = defaultRefreshInterval
	}
	if intervals.Broadcast <= 0 {
		intervals.Broadcast = defaultBroadcastInterval
	}
	if intervals.CatalogReload <= 0 {
		intervals.CatalogReload = defaultCatalogReloadInterval
	}
	return &Scheduler{
		resolver:    resolver,
		catalog:     catalog,
		broadcaster: broadcaster,
		pairs:       pairs,
		intervals:   intervals,
		clock:       clock,
		metrics:     m,
	}
}
