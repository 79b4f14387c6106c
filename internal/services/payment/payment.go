// Package payment содержит бизнес-логику истории платежей арендатора:
// запись платежа, удаление записи по позиции и расчёт штрафа за период.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/rental-ledger/internal/cache"
	"github.com/magabrotheeeer/rental-ledger/internal/lib/month"
	"github.com/magabrotheeeer/rental-ledger/internal/lib/rent"
	"github.com/magabrotheeeer/rental-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/rental-ledger/internal/metrics"
	"github.com/magabrotheeeer/rental-ledger/internal/models"
	"github.com/magabrotheeeer/rental-ledger/internal/storage/repository"
)

var (
	// ErrInvalidDate дата платежа не в формате YYYY-MM-DD.
	ErrInvalidDate = errors.New("data_pagamento must be in YYYY-MM-DD format")
	// ErrInvalidPeriod период не в формате YYYY-MM.
	ErrInvalidPeriod = errors.New("periodo must be in YYYY-MM format")
	// ErrInvalidAmount сумма платежа не может быть отрицательной.
	ErrInvalidAmount = errors.New("valor_pago must not be negative")
	// ErrAlreadyPaid за этот месяц уже есть оплаченная запись.
	ErrAlreadyPaid = repository.ErrPaymentAlreadyRecorded
	// ErrNotFound арендатор не найден.
	ErrNotFound = repository.ErrNotFound
)

// Repository определяет методы хранилища для истории платежей.
type Repository interface {
	ReadClient(ctx context.Context, id int) (*models.RentalClient, error)
	ListEntries(ctx context.Context, clientID int) ([]models.PaymentEntry, error)
	RecordPayment(ctx context.Context, entry models.PaymentEntry, currentPeriod string) (int, error)
	DeleteEntry(ctx context.Context, clientID, entryID int, currentPeriod string) (int, error)
}

// Cache нужен только для сброса карточки арендатора после изменения истории.
type Cache interface {
	Invalidate(ctx context.Context, key string) error
}

// Service реализует запись платежей и расчёт штрафов.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	loc   *time.Location
	now   func() time.Time
}

// New создает новый экземпляр Service. now может быть nil, тогда используется time.Now.
func New(repo Repository, cache Cache, log *slog.Logger, loc *time.Location, now func() time.Time) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
		loc:   loc,
		now:   now,
	}
}

// Record добавляет запись в историю платежей арендатора.
// Ненулевая сумма даёт статус "pago" без штрафа, нулевая даёт "nao_pago"
// со штрафом от суммы аренды по проценту арендатора.
func (s *Service) Record(ctx context.Context, clientID int, req models.DummyPaymentEntry) (*models.PaymentEntry, error) {
	const op = "payment.Record"

	paidAt, err := time.ParseInLocation(month.DateLayout, req.PaidAt, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidDate)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidAmount)
	}

	client, err := s.repo.ReadClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	status := rent.StatusFor(req.Amount)
	entry := models.PaymentEntry{
		ClientID: clientID,
		Month:    req.Month,
		PaidAt:   paidAt,
		Amount:   req.Amount,
		Method:   models.PaymentMethod(req.Method),
		Status:   status,
		Penalty:  rent.PenaltyFor(status, client.RentAmount, client.PenaltyPercent),
		Period:   month.Period(paidAt),
	}

	id, err := s.repo.RecordPayment(ctx, entry, s.currentPeriod())
	if err != nil {
		return nil, err
	}
	entry.ID = id

	s.invalidate(ctx, clientID)
	metrics.PaymentsRecorded.WithLabelValues(string(status)).Inc()
	s.log.Info("payment entry recorded",
		slog.Int("client_id", clientID),
		slog.Int("entry_id", id),
		slog.String("status", string(status)),
		slog.String("periodo", entry.Period))
	return &entry, nil
}

// History возвращает историю платежей арендатора. Пустая история это пустой срез.
func (s *Service) History(ctx context.Context, clientID int) ([]models.PaymentEntry, error) {
	if _, err := s.repo.ReadClient(ctx, clientID); err != nil {
		return nil, err
	}
	history, err := s.repo.ListEntries(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []models.PaymentEntry{}
	}
	return history, nil
}

// DeleteAt удаляет запись истории по позиции (с нуля) и возвращает количество удалённых записей.
// Пустая история или позиция вне диапазона ничего не меняют.
func (s *Service) DeleteAt(ctx context.Context, clientID, index int) (int, error) {
	history, err := s.History(ctx, clientID)
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= len(history) {
		s.log.Debug("payment entry index out of range",
			slog.Int("client_id", clientID), slog.Int("index", index), slog.Int("len", len(history)))
		return 0, nil
	}

	deleted, err := s.repo.DeleteEntry(ctx, clientID, history[index].ID, s.currentPeriod())
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.invalidate(ctx, clientID)
	}
	return deleted, nil
}

// PenaltyFor возвращает статус оплаты и штраф арендатора за период YYYY-MM.
// Пустой период означает текущий месяц.
func (s *Service) PenaltyFor(ctx context.Context, clientID int, period string) (*models.PenaltyStatus, error) {
	const op = "payment.PenaltyFor"

	if period == "" {
		period = s.currentPeriod()
	}
	if _, err := month.ParsePeriod(period, s.loc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidPeriod)
	}

	client, err := s.repo.ReadClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.ListEntries(ctx, clientID)
	if err != nil {
		return nil, err
	}

	result := &models.PenaltyStatus{
		ClientID: clientID,
		Period:   period,
		Status:   models.StatusPaid,
		Penalty:  decimal.Zero,
	}
	if !rent.IsPaidIn(history, period, s.loc) {
		result.Status = models.StatusNotPaid
		result.Penalty = rent.ComputePenalty(client.RentAmount, client.PenaltyPercent)
	}
	return result, nil
}

func (s *Service) currentPeriod() string {
	return month.Period(s.now().In(s.loc))
}

func (s *Service) invalidate(ctx context.Context, clientID int) {
	cacheKey := cache.ClientKey(clientID)
	if err := s.cache.Invalidate(ctx, cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), sl.Err(err))
	}
}
