// Package rentalledger собирает HTTP-приложение учёта аренды: хранилище, кеш, сервисы и маршруты.
package rentalledger

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/rental-ledger/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/rental-ledger/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/rental-ledger/internal/http/handlers/payment/paymentcreate"
	"github.com/magabrotheeeer/rental-ledger/internal/http/handlers/payment/paymentlist"
	"github.com/magabrotheeeer/rental-ledger/internal/http/handlers/payment/paymentremove"
	"github.com/magabrotheeeer/rental-ledger/internal/http/handlers/payment/penalty"
	"github.com/magabrotheeeer/rental-ledger/internal/http/handlers/rental/alerts"
	"github.com/magabrotheeeer/rental-ledger/internal/http/handlers/rental/create"
	"github.com/magabrotheeeer/rental-ledger/internal/http/handlers/rental/health"
	"github.com/magabrotheeeer/rental-ledger/internal/http/handlers/rental/list"
	"github.com/magabrotheeeer/rental-ledger/internal/http/handlers/rental/read"
	"github.com/magabrotheeeer/rental-ledger/internal/http/handlers/rental/remove"
	"github.com/magabrotheeeer/rental-ledger/internal/http/handlers/rental/update"
	"github.com/magabrotheeeer/rental-ledger/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/rental-ledger/internal/services/auth"
	paymentservice "github.com/magabrotheeeer/rental-ledger/internal/services/payment"
	rentalservice "github.com/magabrotheeeer/rental-ledger/internal/services/rental"
)

// Services набор сервисов, которые обслуживают маршруты.
type Services struct {
	Auth    *authservice.Service
	Rental  *rentalservice.Service
	Payment *paymentservice.Service
	DB      health.Pinger
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc Services, limiter *rate.Limiter) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, svc.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, svc.Auth).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))

			r.Route("/clientealuguel", func(r chi.Router) {
				r.Get("/", list.New(logger, svc.Rental).ServeHTTP)
				r.Post("/", create.New(logger, svc.Rental).ServeHTTP)
				r.Get("/alertas", alerts.New(logger, svc.Rental).ServeHTTP)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", read.New(logger, svc.Rental).ServeHTTP)
					r.Put("/", update.New(logger, svc.Rental).ServeHTTP)
					r.Delete("/", remove.New(logger, svc.Rental).ServeHTTP)

					r.Get("/pagamentos", paymentlist.New(logger, svc.Payment).ServeHTTP)
					r.Post("/pagamentos", paymentcreate.New(logger, svc.Payment).ServeHTTP)
					r.Delete("/pagamentos/{index}", paymentremove.New(logger, svc.Payment).ServeHTTP)
					r.Get("/multa", penalty.New(logger, svc.Payment).ServeHTTP)
				})
			})
		})
	})

	r.Get("/health", health.New(logger, svc.DB).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
