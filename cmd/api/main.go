package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/music-library/internal/api/http"
	"github.com/spec-kit/music-library/internal/api/http/handlers"
	"github.com/spec-kit/music-library/internal/auth"
	"github.com/spec-kit/music-library/internal/config"
	"github.com/spec-kit/music-library/internal/events"
	"github.com/spec-kit/music-library/internal/observability"
	"github.com/spec-kit/music-library/internal/persistence"
	"github.com/spec-kit/music-library/internal/repository"
	"github.com/spec-kit/music-library/internal/repository/memory"
	"github.com/spec-kit/music-library/internal/service"
	"github.com/spec-kit/music-library/internal/worker"
)

type stores struct {
	accounts  repository.AccountRepository
	artists   repository.ArtistRepository
	albums    repository.AlbumRepository
	tracks    repository.TrackRepository
	favorites repository.FavoriteRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	repos := buildStores(pg, logger)

	var (
		redis       *persistence.Redis
		revocations auth.RevocationStore
	)
	switch cfg.Auth.RevocationBackend {
	case "redis":
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		revocations = auth.NewRedisRevocationStore(redis.Client)
	default:
		store := auth.NewMemoryRevocationStore(cfg.Auth.RevocationSweepInterval())
		defer store.Close()
		revocations = store
	}

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, metrics, cfg.Notification))

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo: repos.accounts,
		Revocations: revocations,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	userService := service.NewUserService(*cfg, service.UserDependencies{
		AccountRepo: repos.accounts,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		ArtistRepo: repos.artists,
		AlbumRepo:  repos.albums,
		TrackRepo:  repos.tracks,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	favoriteService := service.NewFavoriteService(service.FavoriteDependencies{
		FavoriteRepo: repos.favorites,
		ArtistRepo:   repos.artists,
		AlbumRepo:    repos.albums,
		TrackRepo:    repos.tracks,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService, authService),
		Artists:        handlers.NewArtistsHandler(catalogService),
		Albums:         handlers.NewAlbumsHandler(catalogService),
		Tracks:         handlers.NewTracksHandler(catalogService),
		Favorites:      handlers.NewFavoritesHandler(favoriteService),
		AuthMiddleware: auth.NewMiddleware(authService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func buildStores(pg *persistence.Postgres, logger *zap.Logger) stores {
	if !pg.Enabled() {
		logger.Info("using in-memory stores")
		return stores{
			accounts:  memory.NewAccountStore(),
			artists:   memory.NewArtistStore(),
			albums:    memory.NewAlbumStore(),
			tracks:    memory.NewTrackStore(),
			favorites: memory.NewFavoriteStore(),
		}
	}
	pool := pg.PoolHandle()
	return stores{
		accounts:  repository.NewAccountRepository(pool),
		artists:   repository.NewArtistRepository(pool),
		albums:    repository.NewAlbumRepository(pool),
		tracks:    repository.NewTrackRepository(pool),
		favorites: repository.NewFavoriteRepository(pool),
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
