package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-fantasy/internal/config"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/league"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/performance"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/roster"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/season"
	cacherepo "github.com/riskibarqy/cricket-fantasy/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/cricket-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cricket-fantasy/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/cricket-fantasy/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/cricket-fantasy/internal/platform/cache"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/id"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
	"github.com/riskibarqy/cricket-fantasy/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

type repositories struct {
	matches      match.Repository
	performances performance.Repository
	seasons      season.Repository
	leagues      league.Repository
	rules        scoring.Repository
	teams        roster.TeamRepository
	instances    roster.InstanceRepository
	matchups     roster.MatchupRepository
}

// App owns the HTTP server and everything that must be released after it
// stops: the database handle and the scoring worker pool.
type App struct {
	Server  *http.Server
	closers []func() error
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	app := &App{}
	repos, err := app.openRepositories(ctx, cfg, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.rules = cacherepo.NewScoringRuleRepository(repos.rules, store)
		repos.leagues = cacherepo.NewLeagueRepository(repos.leagues, store)
	}

	idGen := id.NewUUIDGenerator()
	ruleSvc := usecase.NewScoringRuleService(repos.leagues, repos.rules, idGen, logger)
	resolver := usecase.NewRosterResolver(repos.leagues, repos.seasons, repos.matches, repos.performances)
	matchupSvc, err := usecase.NewMatchupService(
		repos.leagues,
		repos.teams,
		repos.instances,
		repos.matchups,
		ruleSvc,
		resolver,
		cfg.ScoringWorkers,
		logger,
	)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.closers = append(app.closers, func() error {
		matchupSvc.Close()
		return nil
	})

	handler := httpapi.NewHandler(
		usecase.NewMatchService(repos.matches, repos.performances, repos.seasons, idGen, logger),
		usecase.NewBallEventService(repos.matches, repos.performances, idGen, logger),
		ruleSvc,
		matchupSvc,
		usecase.NewRosterService(repos.leagues, repos.teams, repos.instances, resolver, logger),
		logger,
	)

	app.Server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	logger.Info("app wired",
		"store_driver", cfg.StoreDriver,
		"cache_enabled", cfg.CacheEnabled,
		"scoring_workers", cfg.ScoringWorkers,
	)
	return app, nil
}

func (a *App) openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("using in-memory demo store", "tournament_id", memory.DemoTournamentID)
		store := memory.NewDemoStore()
		return repositories{
			matches:      store.Matches(),
			performances: store.Performances(),
			seasons:      store.Seasons(),
			leagues:      store.Leagues(),
			rules:        store.ScoringRules(),
			teams:        store.Teams(),
			instances:    store.Instances(),
			matchups:     store.Matchups(),
		}, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}
	a.closers = append(a.closers, db.Close)

	return repositories{
		matches:      postgres.NewMatchRepository(db, cfg.DBLockTimeout),
		performances: postgres.NewPerformanceRepository(db),
		seasons:      postgres.NewSeasonRepository(db),
		leagues:      postgres.NewLeagueRepository(db),
		rules:        postgres.NewScoringRuleRepository(db),
		teams:        postgres.NewTeamRepository(db),
		instances:    postgres.NewInstanceRepository(db, cfg.DBLockTimeout),
		matchups:     postgres.NewMatchupRepository(db),
	}, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBBinaryParameters, cfg.ServiceName)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
