package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/recyclepay/internal/config"
	"github.com/GlebRadaev/recyclepay/internal/handlers"
	"github.com/GlebRadaev/recyclepay/internal/pg"
	"github.com/GlebRadaev/recyclepay/internal/repo"
	"github.com/GlebRadaev/recyclepay/internal/service"
	"github.com/GlebRadaev/recyclepay/internal/storage"
	"github.com/GlebRadaev/recyclepay/internal/tokenstore"
	"github.com/GlebRadaev/recyclepay/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg     *config.Config
	api     *handlers.Handlers
	srv     *service.Services
	storage *Storage
	closers []io.Closer

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}
	a.cfg = cfg

	a.storage, err = NewStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("can't init storage: %w", err)
	}

	tokens, err := a.newTokenStore(ctx)
	if err != nil {
		return fmt.Errorf("can't init token store: %w", err)
	}

	a.srv = service.New(a.storage.Backends, tokens, cfg)
	a.api = handlers.New(a.srv, handlers.Options{
		RequestTimeout: cfg.RequestTimeout,
		CORSOrigins:    cfg.CORSOrigins,
	})

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

// Storage is the pair of backends plus the selector choosing between them.
type Storage struct {
	Pool     *pgxpool.Pool
	Probe    *pg.Probe
	Repos    *repo.Repositories
	Backends *storage.Selector
}

// NewStorage opens the PostgreSQL pool when a DSN is configured. The pool
// connects lazily, so an unreachable database only makes the probe answer
// false and the flat files take over.
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	s := &Storage{}

	var conn pg.Database
	if cfg.Database != "" {
		pool, err := getPgxpool(ctx, cfg)
		if err != nil {
			zap.L().Error("build pgx pool failed: ", zap.Error(err))
			return nil, fmt.Errorf("can't build pgx pool: %w", err)
		}
		s.Pool = pool
		conn = pg.New(pool)
		s.Probe = pg.NewProbe(pool, cfg.DBTimeout, func(ctx context.Context) error {
			return pg.RunMigrations(pool)
		})
	} else {
		zap.L().Info("no database configured, using flat-file store only", zap.String("dir", cfg.DataDir))
		s.Probe = pg.NewProbe(nil, cfg.DBTimeout, nil)
	}

	s.Repos = repo.New(conn, cfg.DataDir)
	s.Backends = storage.NewSelector(s.Probe, s.Repos.Relational, s.Repos.FlatFile)
	return s, nil
}

func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	cfgpool.ConnConfig.ConnectTimeout = cfg.DBTimeout
	return pgxpool.NewWithConfig(ctx, cfgpool)
}

func (a *Application) newTokenStore(ctx context.Context) (tokenstore.Store, error) {
	if a.cfg.RedisAddr == "" {
		zap.L().Info("token store: in-memory")
		return tokenstore.NewMemory(), nil
	}
	client, err := tokenstore.Connect(ctx, a.cfg.RedisAddr)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client)
	zap.L().Info("token store: redis", zap.String("addr", a.cfg.RedisAddr))
	return tokenstore.NewRedis(client, ""), nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
		a.release()
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) release() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			zap.L().Warn("close failed", zap.Error(err))
		}
	}
	if a.storage != nil {
		a.storage.Close()
	}
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
