package rate

import (
	"context"
	"sync"

	"cryptoexchange/internal/adapters"
	"cryptoexchange/internal/domain"

	"github.com/sirupsen/logrus"
)

const numWorkers = 5

type Refresher interface {
	Refresh(ctx context.Context, from, to string) (domain.ResolvedRate, error)
}

type RateResolver interface {
	Resolve(ctx context.Context, from, to string) (domain.ResolvedRate, error)
}

// RefreshRates re-resolves every watched pair with the cache bypassed, using a bounded worker pool.
// Returns the number of pairs refreshed with a non-degraded rate.
func RefreshRates(ctx context.Context, execID string, refresher Refresher, pairs []domain.CurrencyPair) int {
	if len(pairs) == 0 {
		logrus.Infof("Nothing to refresh this time; execID: %s", execID)
		return 0
	}

	// STEP 1: queue all pairs, workers drain the queue
	workQueue := make(chan domain.CurrencyPair, len(pairs))
	for _, p := range pairs {
		workQueue <- p
	}
	close(workQueue)

	// STEP 2: each worker reports the resolved rate or nothing
	resultsCh := make(chan domain.ResolvedRate, len(pairs))

	workers := min(numWorkers, len(pairs))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			runRefreshWorker(ctx, workerID, workQueue, refresher, resultsCh)
		}(i)
	}

	wg.Wait()
	close(resultsCh)

	// STEP 3: count what came back healthy
	refreshed := 0
	for r := range resultsCh {
		if !r.Degraded() {
			refreshed++
		}
	}
	logrus.Infof("%d of %d watched pairs refreshed; execID: %s", refreshed, len(pairs), execID)
	return refreshed
}

func runRefreshWorker(ctx context.Context, workerID int, workQueue <-chan domain.CurrencyPair, refresher Refresher, resultsCh chan<- domain.ResolvedRate) {
	for {
		select {
		case <-ctx.Done():
			return
		case pair, ok := <-workQueue:
			if !ok {
				return
			}
			rate, err := refresher.Refresh(ctx, pair.From, pair.To)
			if err != nil {
				logrus.Warnf("Pair '%s' wasn't refreshed by Worker %d: %s", pair.Key(), workerID, err)
				continue
			}
			resultsCh <- rate
		}
	}
}

// BroadcastRates resolves the watched pairs through the cache and pushes their views to subscribers.
// Returns the number of clients reached.
func BroadcastRates(ctx context.Context, execID string, resolver RateResolver, broadcaster adapters.RateBroadcaster, pairs []domain.CurrencyPair) int {
	views := make([]View, 0, len(pairs))
	for _, pair := range pairs {
		rate, err := resolver.Resolve(ctx, pair.From, pair.To)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{"pair": pair.Key(), "execID": execID}).Warn("Skipping pair in broadcast")
			continue
		}
		views = append(views, NewView(rate))
	}
	if len(views) == 0 {
		return 0
	}
	return broadcaster.Broadcast(ctx, views)
}
