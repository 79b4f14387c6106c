// Package paymentcreate реализует HTTP-обработчик добавления записи в историю платежей арендатора.
//
// Ненулевая сумма фиксируется как оплата, нулевая как неоплата со штрафом.
package paymentcreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/rental-ledger/internal/http/response"
	"github.com/magabrotheeeer/rental-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/rental-ledger/internal/models"
	"github.com/magabrotheeeer/rental-ledger/internal/services/payment"
)

// Handler обрабатывает запросы на регистрацию платежа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает бизнес-логику регистрации платежа.
type Service interface {
	Record(ctx context.Context, clientID int, req models.DummyPaymentEntry) (*models.PaymentEntry, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Зарегистрировать платёж
// @Description Добавляет запись в историю платежей. Сумма 0 означает неоплату, начисляется штраф.
// @Tags Pagamentos
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID арендатора"
// @Param request body models.DummyPaymentEntry true "Данные платежа"
// @Success 201 {object} response.Response "Созданная запись"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или JSON"
// @Failure 404 {object} response.ErrorResponse "Арендатор не найден"
// @Failure 409 {object} response.ErrorResponse "Оплата за этот месяц уже зарегистрирована"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /clientealuguel/{id}/pagamentos [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.create"

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

	var req models.DummyPaymentEntry
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	entry, err := h.service.Record(r.Context(), clientID, req)
	switch {
	case errors.Is(err, payment.ErrInvalidDate):
		log.Warn("invalid payment date", slog.String("data_pagamento", req.PaidAt))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("data_pagamento must be in format YYYY-MM-DD"))
		return
	case errors.Is(err, payment.ErrInvalidAmount):
		log.Warn("invalid payment amount", slog.String("valor_pago", req.Amount.String()))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("valor_pago must not be negative"))
		return
	case errors.Is(err, payment.ErrNotFound):
		log.Warn("rental client not found", slog.Int("id", clientID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("rental client not found"))
		return
	case errors.Is(err, payment.ErrAlreadyPaid):
		log.Warn("payment already recorded for month", slog.Int("id", clientID))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("payment already recorded for this month"))
		return
	case err != nil:
		log.Error("failed to record payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to record payment"))
		return
	}

	log.Info("payment recorded", slog.Int("client_id", clientID), slog.Int("entry_id", entry.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"pagamento": entry,
	}))
}
