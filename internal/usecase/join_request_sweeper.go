package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/pitchside/leagueday/internal/domain/joinrequest"
	"github.com/pitchside/leagueday/internal/platform/logging"
)

const defaultSweepWorkers = 4

// SweepResult summarizes one expiry sweep run.
type SweepResult struct {
	LeagueCount  int
	ExpiredCount int
	FailedCount  int
}

// JoinRequestSweeper flips stored pending requests past their expiry to
// expired, fanning out over leagues with a worker pool. The sweep is
// hygiene: read paths already treat overdue requests as expired, so a
// missed run never changes behavior.
type JoinRequestSweeper struct {
	requests joinrequest.Repository
	logger   *logging.Logger
	workers  int
	now      func() time.Time
}

func NewJoinRequestSweeper(requests joinrequest.Repository, logger *logging.Logger, workers int) *JoinRequestSweeper {
	if logger == nil {
		logger = logging.Default()
	}
	if workers < 1 {
		workers = defaultSweepWorkers
	}

	return &JoinRequestSweeper{
		requests: requests,
		logger:   logger,
		workers:  workers,
		now:      time.Now,
	}
}

// SweepOnce expires every due pending request across all leagues.
func (s *JoinRequestSweeper) SweepOnce(ctx context.Context) (SweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "JoinRequestSweeper.SweepOnce")
	defer span.End()

	now := s.now()
	leagueIDs, err := s.requests.ListLeagueIDsWithDuePending(ctx, now)
	if err != nil {
		return SweepResult{}, fmt.Errorf("list leagues with due requests: %w", err)
	}

	result := SweepResult{LeagueCount: len(leagueIDs)}
	if len(leagueIDs) == 0 {
		return result, nil
	}

	workerCount := s.workers
	if workerCount > len(leagueIDs) {
		workerCount = len(leagueIDs)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SweepResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var expiredCount atomic.Int64
	var failedCount atomic.Int64

	var workers sync.WaitGroup
	for _, leagueID := range leagueIDs {
		leagueID := leagueID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			expired, err := s.requests.ExpireDue(ctx, leagueID, now)
			if err != nil {
				failedCount.Add(1)
				s.logger.ErrorContext(ctx, "expire due join requests", "league_id", leagueID, "error", err)
				return
			}
			expiredCount.Add(int64(expired))
		}); err != nil {
			workers.Done()
			return SweepResult{}, fmt.Errorf("submit sweep task: %w", err)
		}
	}
	workers.Wait()

	result.ExpiredCount = int(expiredCount.Load())
	result.FailedCount = int(failedCount.Load())

	if result.ExpiredCount > 0 || result.FailedCount > 0 {
		s.logger.InfoContext(ctx, "join request sweep finished",
			"leagues", result.LeagueCount,
			"expired", result.ExpiredCount,
			"failed", result.FailedCount,
		)
	}
	return result, nil
}

// Run sweeps on the given interval until the context is cancelled.
func (s *JoinRequestSweeper) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				s.logger.ErrorContext(ctx, "join request sweep", "error", err)
			}
		}
	}
}
