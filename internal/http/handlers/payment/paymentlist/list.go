// Package paymentlist реализует HTTP-обработчик истории платежей арендатора.
package paymentlist

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

// Handler выдаёт историю платежей арендатора.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает бизнес-логику чтения истории платежей.
type Service interface {
	History(ctx context.Context, clientID int) ([]models.PaymentEntry, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary История платежей арендатора
// @Tags Pagamentos
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID арендатора"
// @Success 200 {object} response.Response "История платежей"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Арендатор не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /clientealuguel/{id}/pagamentos [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.list"

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

	history, err := h.service.History(r.Context(), clientID)
	if errors.Is(err, payment.ErrNotFound) {
		log.Warn("rental client not found", slog.Int("id", clientID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("rental client not found"))
		return
	}
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list payments"))
		return
	}

	log.Info("list payments", slog.Int("client_id", clientID), slog.Int("count", len(history)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count":           len(history),
		"historico_pagamentos": history,
	}))
}
