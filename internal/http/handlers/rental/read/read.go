// Package read реализует HTTP-обработчик получения арендатора по ID.
//
// Ответ содержит историю платежей и вычисленные признаки оплаты за текущий месяц
// и платежа через три дня.
package read

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
	"github.com/magabrotheeeer/rental-ledger/internal/services/rental"
)

// Handler обрабатывает запросы на чтение арендатора.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает бизнес-логику чтения арендатора.
type Service interface {
	Read(ctx context.Context, id int) (*models.RentalClient, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить арендатора
// @Tags ClienteAluguel
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID арендатора"
// @Success 200 {object} response.Response "Арендатор с историей платежей"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Арендатор не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /clientealuguel/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	res, err := h.service.Read(r.Context(), id)
	if errors.Is(err, rental.ErrNotFound) {
		log.Warn("rental client not found", slog.Int("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("rental client not found"))
		return
	}
	if err != nil {
		log.Error("failed to read rental client", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read rental client"))
		return
	}

	log.Info("success to read rental client", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"cliente": res,
	}))
}
