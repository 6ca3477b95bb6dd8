package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pitchside/leagueday/internal/config"
	"github.com/pitchside/leagueday/internal/domain/joinrequest"
	"github.com/pitchside/leagueday/internal/domain/league"
	"github.com/pitchside/leagueday/internal/domain/match"
	"github.com/pitchside/leagueday/internal/domain/registration"
	"github.com/pitchside/leagueday/internal/domain/season"
	"github.com/pitchside/leagueday/internal/domain/standings"
	"github.com/pitchside/leagueday/internal/fixtures/roundrobin"
	"github.com/pitchside/leagueday/internal/infrastructure/account/authhub"
	"github.com/pitchside/leagueday/internal/infrastructure/notify/webhook"
	cacherepo "github.com/pitchside/leagueday/internal/infrastructure/repository/cache"
	"github.com/pitchside/leagueday/internal/infrastructure/repository/memory"
	"github.com/pitchside/leagueday/internal/infrastructure/repository/postgres"
	"github.com/pitchside/leagueday/internal/interfaces/httpapi"
	basecache "github.com/pitchside/leagueday/internal/platform/cache"
	idgen "github.com/pitchside/leagueday/internal/platform/id"
	"github.com/pitchside/leagueday/internal/platform/logging"
	"github.com/pitchside/leagueday/internal/usecase"
)

// App bundles the HTTP server with the background sweeper and the storage
// handle it owns.
type App struct {
	Server *http.Server

	sweeper       *usecase.JoinRequestSweeper
	sweepInterval time.Duration
	db            *sqlx.DB
	logger        *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		db    *sqlx.DB
		repos repositories
		err   error
	)
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err = openDB(cfg)
		if err != nil {
			return nil, err
		}
		repos = postgresRepositories(db)
		logger.Info("storage ready", "driver", config.StoragePostgres, "db", dbNameFromURL(cfg.DBURL))
	default:
		repos = memoryRepositories()
		logger.Info("storage ready", "driver", config.StorageMemory)
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.leagues = cacherepo.NewLeagueRepository(repos.leagues, store)
		repos.seasons = cacherepo.NewSeasonRepository(repos.seasons, store)
		repos.standings = cacherepo.NewStandingsRepository(repos.standings, store)
	}

	var events usecase.EventPublisher
	if cfg.WebhookEnabled {
		events = webhook.NewPublisher(webhook.PublisherConfig{
			Endpoint:       cfg.WebhookEndpoint,
			Token:          cfg.WebhookToken,
			Timeout:        cfg.WebhookTimeout,
			CircuitBreaker: cfg.WebhookCircuit,
		}, logger)
	}

	ids := idgen.NewRandomGenerator()
	guard := usecase.NewEligibilityGuard(repos.requests, repos.registrations)

	leagueService := usecase.NewLeagueService(repos.leagues)
	joinRequestService := usecase.NewJoinRequestService(
		repos.leagues,
		repos.seasons,
		repos.requests,
		repos.registrations,
		guard,
		ids,
		events,
		logger,
		cfg.JoinRequestTTL,
	)
	seasonService := usecase.NewSeasonService(
		repos.leagues,
		repos.seasons,
		repos.registrations,
		repos.matches,
		roundrobin.NewGenerator(ids),
		events,
		logger,
	)
	standingsService := usecase.NewStandingsService(
		repos.leagues,
		repos.seasons,
		repos.registrations,
		repos.matches,
		repos.standings,
		logger,
	)
	matchService := usecase.NewMatchService(repos.leagues, repos.seasons, repos.matches, standingsService, events, logger)
	sweeper := usecase.NewJoinRequestSweeper(repos.requests, logger, cfg.SweepWorkers)

	var principalCache *basecache.Store
	if cfg.AuthHubCacheEnabled {
		principalCache = basecache.NewStore(cfg.AuthHubCacheTTL)
	}
	verifier := authhub.NewClient(
		&http.Client{Timeout: cfg.AuthHubTimeout},
		cfg.AuthHubBaseURL,
		cfg.AuthHubIntrospectPath,
		cfg.AuthHubAdminKey,
		principalCache,
		logger,
	)

	handler := httpapi.NewHandler(leagueService, seasonService, joinRequestService, matchService, standingsService, sweeper, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:        server,
		sweeper:       sweeper,
		sweepInterval: cfg.SweepInterval,
		db:            db,
		logger:        logger,
	}, nil
}

// StartBackground launches the join request expiry sweeper. The sweeper
// stops when ctx is cancelled.
func (a *App) StartBackground(ctx context.Context) {
	if a.sweepInterval <= 0 {
		a.logger.Info("join request sweeper disabled", "reason", "SWEEP_INTERVAL=0")
		return
	}

	go a.sweeper.Run(ctx, a.sweepInterval)
}

// Close releases resources the app owns. The HTTP server shuts down
// separately via Server.Shutdown.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

type repositories struct {
	leagues       league.Repository
	seasons       season.Repository
	requests      joinrequest.Repository
	registrations registration.Repository
	matches       match.Repository
	standings     standings.Repository
}

func postgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		leagues:       postgres.NewLeagueRepository(db),
		seasons:       postgres.NewSeasonRepository(db),
		requests:      postgres.NewJoinRequestRepository(db),
		registrations: postgres.NewRegistrationRepository(db),
		matches:       postgres.NewMatchRepository(db),
		standings:     postgres.NewStandingsRepository(db),
	}
}

func memoryRepositories() repositories {
	registrations := memory.NewRegistrationRepository(memory.SeedRegistrations())
	standingsRepo := memory.NewStandingsRepository()

	return repositories{
		leagues:       memory.NewLeagueRepository(memory.SeedLeagues()),
		seasons:       memory.NewSeasonRepository(memory.SeedSeasons()),
		requests:      memory.NewJoinRequestRepository(registrations),
		registrations: registrations,
		matches:       memory.NewMatchRepository(nil, standingsRepo),
		standings:     standingsRepo,
	}
}
