package rentalledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/rental-ledger/internal/cache"
	"github.com/magabrotheeeer/rental-ledger/internal/config"
	"github.com/magabrotheeeer/rental-ledger/internal/lib/jwt"
	"github.com/magabrotheeeer/rental-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/rental-ledger/internal/migrations"
	authservice "github.com/magabrotheeeer/rental-ledger/internal/services/auth"
	paymentservice "github.com/magabrotheeeer/rental-ledger/internal/services/payment"
	rentalservice "github.com/magabrotheeeer/rental-ledger/internal/services/rental"
	"github.com/magabrotheeeer/rental-ledger/internal/storage/repository"
)

// App HTTP-приложение учёта аренды.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New подключает хранилище и кеш, применяет миграции и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "rentalledger.New"

	loc, err := cfg.App.Location()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)
	services := Services{
		Auth: authservice.NewService(db, jwtMaker),
		Rental: rentalservice.NewService(db, cacheRedis, logger, rentalservice.Options{
			Location:              loc,
			CacheTTL:              cfg.RedisConnection.CacheTTL,
			DefaultPenaltyPercent: decimal.NewFromFloat(cfg.App.DefaultPenaltyPercent),
		}),
		Payment: paymentservice.New(db, cacheRedis, logger, loc, nil),
		DB:      db.DB,
	}

	router := chi.NewRouter()
	limiter := rate.NewLimiter(rate.Limit(cfg.HTTPServer.RateLimit), cfg.HTTPServer.RateBurst)
	RegisterRoutes(router, logger, services, limiter)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.TimeoutHTTP,
		WriteTimeout: cfg.HTTPServer.TimeoutHTTP,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close redis", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
