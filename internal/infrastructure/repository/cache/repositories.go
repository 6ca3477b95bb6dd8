package cache

import (
	"context"
	"time"

	"github.com/pitchside/leagueday/internal/domain/league"
	"github.com/pitchside/leagueday/internal/domain/season"
	"github.com/pitchside/leagueday/internal/domain/standings"
	basecache "github.com/pitchside/leagueday/internal/platform/cache"
)

// LeagueRepository caches league reads. Leagues change rarely, so entries
// simply age out on TTL.
type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	v, err := r.cache.GetOrLoad(ctx, "league:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	key := "league:id:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeagueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeagueByID)
	return cached.value, cached.exists, nil
}

type cachedLeagueByID struct {
	value  league.League
	exists bool
}

// SeasonRepository caches season reads and drops the affected entries on
// every write, since stale status columns would defeat the CAS guards built
// on top of them.
type SeasonRepository struct {
	next  season.Repository
	cache *basecache.Store
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, seasonByIDKey(seasonID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return cachedSeasonByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Season{}, false, err
	}

	cached, _ := v.(cachedSeasonByID)
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) ListByLeague(ctx context.Context, leagueID string) ([]season.Season, error) {
	key := seasonListByLeaguePrefix + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]season.Season(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]season.Season)
	return append([]season.Season(nil), items...), nil
}

func (r *SeasonRepository) CompareAndSetStatus(ctx context.Context, seasonID string, from, to season.Status) (bool, error) {
	swapped, err := r.next.CompareAndSetStatus(ctx, seasonID, from, to)
	if err == nil {
		r.invalidateSeason(ctx, seasonID)
	}
	return swapped, err
}

func (r *SeasonRepository) CompareAndSetFixturesStatus(ctx context.Context, seasonID string, from, to season.FixturesStatus) (bool, error) {
	swapped, err := r.next.CompareAndSetFixturesStatus(ctx, seasonID, from, to)
	if err == nil {
		r.invalidateSeason(ctx, seasonID)
	}
	return swapped, err
}

func (r *SeasonRepository) MarkFixturesGenerated(ctx context.Context, seasonID string, generatedAt time.Time, totalMatches int) error {
	if err := r.next.MarkFixturesGenerated(ctx, seasonID, generatedAt, totalMatches); err != nil {
		return err
	}
	r.invalidateSeason(ctx, seasonID)
	return nil
}

func (r *SeasonRepository) SetRegisteredTeamsCount(ctx context.Context, seasonID string, count int) error {
	if err := r.next.SetRegisteredTeamsCount(ctx, seasonID, count); err != nil {
		return err
	}
	r.invalidateSeason(ctx, seasonID)
	return nil
}

func (r *SeasonRepository) invalidateSeason(ctx context.Context, seasonID string) {
	r.cache.Invalidate(ctx, seasonByIDKey(seasonID))
	r.cache.InvalidatePrefix(ctx, seasonListByLeaguePrefix)
}

type cachedSeasonByID struct {
	value  season.Season
	exists bool
}

const seasonListByLeaguePrefix = "season:list:league:"

func seasonByIDKey(seasonID string) string {
	return "season:id:" + seasonID
}

// StandingsRepository caches the ranking table per season. A replace drops
// the entry so readers never see the previous computation after a recompute.
type StandingsRepository struct {
	next  standings.Repository
	cache *basecache.Store
}

func NewStandingsRepository(next standings.Repository, cache *basecache.Store) *StandingsRepository {
	return &StandingsRepository{next: next, cache: cache}
}

func (r *StandingsRepository) ListBySeason(ctx context.Context, seasonID string) ([]standings.Row, error) {
	v, err := r.cache.GetOrLoad(ctx, standingsKey(seasonID), func(ctx context.Context) (any, error) {
		rows, err := r.next.ListBySeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]standings.Row(nil), rows...), nil
	})
	if err != nil {
		return nil, err
	}

	rows, _ := v.([]standings.Row)
	return append([]standings.Row(nil), rows...), nil
}

func (r *StandingsRepository) ReplaceBySeason(ctx context.Context, seasonID string, rows []standings.Row) error {
	if err := r.next.ReplaceBySeason(ctx, seasonID, rows); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, standingsKey(seasonID))
	return nil
}

func standingsKey(seasonID string) string {
	return "standings:season:" + seasonID
}
