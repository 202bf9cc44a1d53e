package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/bloglist/bloglist-api/internal/api"
	"github.com/bloglist/bloglist-api/internal/api/handler"
	"github.com/bloglist/bloglist-api/internal/core/ports"
	"github.com/bloglist/bloglist-api/internal/core/security"
	"github.com/bloglist/bloglist-api/internal/core/service"
	"github.com/bloglist/bloglist-api/internal/infrastructure/db/memory"
	"github.com/bloglist/bloglist-api/internal/infrastructure/db/mongo"
	"github.com/bloglist/bloglist-api/internal/infrastructure/db/redis"
	"github.com/bloglist/bloglist-api/internal/pkg/config"
	"github.com/bloglist/bloglist-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "bloglist-api: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, args); err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "bloglist-api",
	})

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	hasher := security.NewPasswordHasher(cfg.BcryptCost)
	tokens, err := security.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.Dependencies{
		Users:    service.NewUserService(store.users, store.blogs, hasher, log),
		Auth:     service.NewAuthService(store.users, hasher, tokens, log),
		Blogs:    service.NewBlogService(store.blogs, store.users, store.cache, log),
		Identity: service.NewIdentityService(tokens, store.users),
		Pingers:  store.pingers,
		Logger:   log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("storage", cfg.Storage).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// storage groups the repositories selected by STORAGE_DRIVER with the
// optional cache and the readiness probes of whatever was connected.
type storage struct {
	users   ports.UserRepository
	blogs   ports.BlogRepository
	cache   ports.StatsCache
	pingers map[string]handler.Pinger
	closers []func(context.Context) error
}

func (s *storage) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, c := range s.closers {
		_ = c(ctx)
	}
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	s := &storage{pingers: make(map[string]handler.Pinger)}

	switch cfg.Storage {
	case config.StorageMemory:
		s.users = memory.NewUserRepository()
		s.blogs = memory.NewBlogRepository()
		log.Warn().Msg("using in-memory storage; data is lost on restart")
	default:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, client.Disconnect)

		users := mongo.NewUserRepository(db)
		blogs := mongo.NewBlogRepository(db)
		if err := mongo.EnsureIndexes(ctx, users, blogs); err != nil {
			s.close()
			return nil, err
		}
		s.users, s.blogs = users, blogs
		s.pingers["mongodb"] = mongo.NewPinger(client)
	}

	if cfg.Redis.Addr == "" {
		log.Info().Msg("REDIS_ADDR not set; stats cache disabled")
		return s, nil
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		s.close()
		return nil, err
	}
	s.closers = append(s.closers, func(context.Context) error { return rdb.Close() })
	s.cache = redis.NewStatsCache(rdb)
	s.pingers["redis"] = redis.NewPinger(rdb)
	return s, nil
}
