// Package list реализует HTTP-обработчик постраничного списка арендаторов.
//
// Вместе со страницей возвращаются ID арендаторов, у которых платёж ровно через три дня.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rental-ledger/internal/http/response"
	"github.com/magabrotheeeer/rental-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/rental-ledger/internal/services/rental"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Handler обрабатывает запросы на получение списка арендаторов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает бизнес-логику получения списка.
type Service interface {
	List(ctx context.Context, limit, offset int) (*rental.ListResult, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список арендаторов
// @Tags ClienteAluguel
// @Produce  json
// @Security BearerAuth
// @Param limit query int false "Размер страницы (по умолчанию 10)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} response.Response "Арендаторы и список напоминаний"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /clientealuguel [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	res, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list rental clients", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list"))
		return
	}

	log.Info("list rental clients", slog.Int("count", len(res.Clients)), slog.Int("alerts", len(res.Alerts)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(res.Clients),
		"clientes":   res.Clients,
		"alertas":    res.Alerts,
	}))
}
