// Package alerts реализует HTTP-обработчик списка арендаторов,
// у которых платёж ровно через три дня.
package alerts

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rental-ledger/internal/http/response"
	"github.com/magabrotheeeer/rental-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/rental-ledger/internal/models"
)

// Handler обрабатывает запросы на получение напоминаний.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает бизнес-логику напоминаний.
type Service interface {
	Alerts(ctx context.Context) ([]*models.RentalClient, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Напоминания о платеже
// @Description Возвращает арендаторов, у которых дата платежа наступает ровно через три дня.
// @Tags ClienteAluguel
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Арендаторы с близкой датой платежа"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /clientealuguel/alertas [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.alerts"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Alerts(r.Context())
	if err != nil {
		log.Error("failed to collect alerts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to collect alerts"))
		return
	}

	ids := make([]int, 0, len(res))
	for _, c := range res {
		ids = append(ids, c.ID)
	}

	log.Info("alerts collected", slog.Int("count", len(res)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"alertas":  ids,
		"clientes": res,
	}))
}
