// Package penalty реализует HTTP-обработчик запроса штрафа арендатора за месяц.
package penalty

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rental-ledger/internal/http/response"
	"github.com/magabrotheeeer/rental-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/rental-ledger/internal/models"
	"github.com/magabrotheeeer/rental-ledger/internal/services/payment"
)

// Handler отвечает статусом оплаты и штрафом за период.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает бизнес-логику расчёта штрафа за период.
type Service interface {
	PenaltyFor(ctx context.Context, clientID int, period string) (*models.PenaltyStatus, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Штраф за месяц
// @Description Статус оплаты и штраф арендатора за период. Без параметра используется текущий месяц.
// @Tags Pagamentos
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID арендатора"
// @Param periodo query string false "Период в формате YYYY-MM"
// @Success 200 {object} response.Response "Статус и штраф"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Арендатор не найден"
// @Failure 422 {object} response.ErrorResponse "Некорректный период"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /clientealuguel/{id}/multa [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.penalty"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	clientID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}
	period := r.URL.Query().Get("periodo")

	res, err := h.service.PenaltyFor(r.Context(), clientID, period)
	switch {
	case errors.Is(err, payment.ErrInvalidPeriod):
		log.Warn("invalid period", slog.String("periodo", period))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("periodo must be in format YYYY-MM"))
		return
	case errors.Is(err, payment.ErrNotFound):
		log.Warn("rental client not found", slog.Int("id", clientID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("rental client not found"))
		return
	case err != nil:
		log.Error("failed to compute penalty", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to compute penalty"))
		return
	}

	log.Info("penalty computed", slog.Int("client_id", clientID), slog.String("periodo", res.Period))
	render.JSON(w, r, response.StatusOKWithData(res))
}
