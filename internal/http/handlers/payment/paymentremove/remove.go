// Package paymentremove реализует HTTP-обработчик удаления записи истории платежей по позиции.
//
// Позиция вне диапазона не считается ошибкой: ответ содержит deleted_count = 0.
package paymentremove

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
	"github.com/magabrotheeeer/rental-ledger/internal/services/payment"
)

// Handler удаляет запись истории платежей по позиции.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает бизнес-логику удаления записи истории.
type Service interface {
	DeleteAt(ctx context.Context, clientID, index int) (int, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить запись истории платежей
// @Tags Pagamentos
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID арендатора"
// @Param index path int true "Позиция записи в истории, с нуля"
// @Success 200 {object} response.Response "Количество удалённых записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или позиция"
// @Failure 404 {object} response.ErrorResponse "Арендатор не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /clientealuguel/{id}/pagamentos/{index} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.remove"

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
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		log.Error("failed to decode index from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode index from url"))
		return
	}

	count, err := h.service.DeleteAt(r.Context(), clientID, index)
	if errors.Is(err, payment.ErrNotFound) {
		log.Warn("rental client not found", slog.Int("id", clientID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("rental client not found"))
		return
	}
	if err != nil {
		log.Error("failed to remove payment entry", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to remove payment entry"))
		return
	}

	log.Info("payment entry removed", slog.Int("client_id", clientID), slog.Int("index", index), slog.Int("count", count))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deleted_count": count,
	}))
}
