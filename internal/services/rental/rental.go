// Package rental содержит бизнес-логику учёта арендаторов: карточки, кеширование,
// вычисляемые признаки оплаты за месяц и напоминания о дате платежа.
package rental

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/rental-ledger/internal/cache"
	"github.com/magabrotheeeer/rental-ledger/internal/lib/rent"
	"github.com/magabrotheeeer/rental-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/rental-ledger/internal/models"
	"github.com/magabrotheeeer/rental-ledger/internal/storage/repository"
)

var (
	// ErrNotFound арендатор не найден.
	ErrNotFound = repository.ErrNotFound
	// ErrInvalidRent сумма аренды должна быть больше нуля.
	ErrInvalidRent = errors.New("valor_aluguel must be greater than zero")
	// ErrInvalidPenaltyPercent процент штрафа не может быть отрицательным.
	ErrInvalidPenaltyPercent = errors.New("multa_percentual must not be negative")
)

// Repository определяет методы хранилища, нужные сервису арендаторов.
type Repository interface {
	// CreateClient добавляет арендатора и возвращает его ID.
	CreateClient(ctx context.Context, c models.RentalClient) (int, error)
	// ReadClient возвращает арендатора по ID.
	ReadClient(ctx context.Context, id int) (*models.RentalClient, error)
	// UpdateClient заменяет данные арендатора.
	UpdateClient(ctx context.Context, c models.RentalClient, id int) (int, error)
	// RemoveClient удаляет арендатора вместе с историей.
	RemoveClient(ctx context.Context, id int) (int, error)
	// ListClients возвращает страницу арендаторов.
	ListClients(ctx context.Context, limit, offset int) ([]*models.RentalClient, error)
	// ListAllClients возвращает всех арендаторов.
	ListAllClients(ctx context.Context) ([]*models.RentalClient, error)
	// ListEntries возвращает историю платежей арендатора.
	ListEntries(ctx context.Context, clientID int) ([]models.PaymentEntry, error)
	// ListEntriesForClients возвращает истории нескольких арендаторов.
	ListEntriesForClients(ctx context.Context, clientIDs []int) (map[int][]models.PaymentEntry, error)
}

// Cache описывает методы для кеширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Options параметры сервиса, приходящие из конфигурации.
type Options struct {
	Location              *time.Location
	CacheTTL              time.Duration
	DefaultPenaltyPercent decimal.Decimal
	// Now источник текущего времени. По умолчанию time.Now.
	Now func() time.Time
}

// ListResult страница арендаторов и ID тех, у кого платёж ровно через три дня.
type ListResult struct {
	Clients []*models.RentalClient `json:"clientes"`
	Alerts  []int                  `json:"alertas"`
}

// Service реализует бизнес-логику работы с арендаторами, включая кеширование.
type Service struct {
	repo           Repository
	cache          Cache
	log            *slog.Logger
	loc            *time.Location
	cacheTTL       time.Duration
	defaultPenalty decimal.Decimal
	now            func() time.Time
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, cache Cache, log *slog.Logger, opts Options) *Service {
	s := &Service{
		repo:           repo,
		cache:          cache,
		log:            log,
		loc:            opts.Location,
		cacheTTL:       opts.CacheTTL,
		defaultPenalty: opts.DefaultPenaltyPercent,
		now:            opts.Now,
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.cacheTTL <= 0 {
		s.cacheTTL = time.Hour
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Create проверяет данные арендатора, сохраняет его и возвращает ID.
// Если процент штрафа не передан, используется значение по умолчанию из конфигурации.
func (s *Service) Create(ctx context.Context, req models.DummyRentalClient) (int, error) {
	client, err := s.fromRequest(req)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.CreateClient(ctx, client)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new rental client", slog.Int("id", id))
	return id, nil
}

// Read возвращает арендатора с историей платежей, используя кеш или хранилище.
// Признаки оплаты за месяц и близкой даты платежа пересчитываются при каждом чтении.
func (s *Service) Read(ctx context.Context, id int) (*models.RentalClient, error) {
	var result *models.RentalClient
	cacheKey := cache.ClientKey(id)
	found, err := s.cache.Get(ctx, cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), sl.Err(err))
		found = false
	}
	if !found || result == nil {
		result, err = s.repo.ReadClient(ctx, id)
		if err != nil {
			return nil, err
		}
		history, err := s.repo.ListEntries(ctx, id)
		if err != nil {
			return nil, err
		}
		result.History = history
		if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
		}
	}

	s.annotate(result, s.now())
	return result, nil
}

// Update заменяет данные арендатора и сбрасывает его кеш.
// Флаг оплаты и история платежей не меняются.
func (s *Service) Update(ctx context.Context, req models.DummyRentalClient, id int) (int, error) {
	client, err := s.fromRequest(req)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.UpdateClient(ctx, client, id)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, fmt.Errorf("rental.Update: %w", ErrNotFound)
	}
	s.invalidate(ctx, id)
	s.log.Info("updated rental client", slog.Int("id", id))
	return count, nil
}

// Remove удаляет арендатора и сбрасывает его кеш.
func (s *Service) Remove(ctx context.Context, id int) (int, error) {
	s.invalidate(ctx, id)

	count, err := s.repo.RemoveClient(ctx, id)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, fmt.Errorf("rental.Remove: %w", ErrNotFound)
	}
	return count, nil
}

// List возвращает страницу арендаторов с историями платежей.
// Признаки и список напоминаний вычисляются один раз на загрузку страницы.
func (s *Service) List(ctx context.Context, limit, offset int) (*ListResult, error) {
	clients, err := s.repo.ListClients(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.attachHistory(ctx, clients); err != nil {
		return nil, err
	}

	now := s.now()
	result := &ListResult{Clients: clients, Alerts: []int{}}
	if result.Clients == nil {
		result.Clients = []*models.RentalClient{}
	}
	for _, c := range clients {
		s.annotate(c, now)
		if c.DueInThreeDays {
			result.Alerts = append(result.Alerts, c.ID)
		}
	}
	return result, nil
}

// Alerts возвращает всех арендаторов, у которых платёж ровно через три дня.
func (s *Service) Alerts(ctx context.Context) ([]*models.RentalClient, error) {
	clients, err := s.repo.ListAllClients(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	due := rent.DueSoon(clients, now, s.loc)
	if err := s.attachHistory(ctx, due); err != nil {
		return nil, err
	}
	for _, c := range due {
		s.annotate(c, now)
	}
	if due == nil {
		due = []*models.RentalClient{}
	}
	return due, nil
}

func (s *Service) attachHistory(ctx context.Context, clients []*models.RentalClient) error {
	if len(clients) == 0 {
		return nil
	}
	ids := make([]int, 0, len(clients))
	for _, c := range clients {
		ids = append(ids, c.ID)
	}
	byClient, err := s.repo.ListEntriesForClients(ctx, ids)
	if err != nil {
		return err
	}
	for _, c := range clients {
		c.History = byClient[c.ID]
		if c.History == nil {
			c.History = []models.PaymentEntry{}
		}
	}
	return nil
}

func (s *Service) annotate(c *models.RentalClient, now time.Time) {
	if c.History == nil {
		c.History = []models.PaymentEntry{}
	}
	c.PaidThisMonth = rent.IsPaidThisMonth(c.History, now, s.loc)
	c.DueInThreeDays = rent.DueInThreeDays(now, c.DueDay, s.loc)
}

func (s *Service) fromRequest(req models.DummyRentalClient) (models.RentalClient, error) {
	if !req.RentAmount.IsPositive() {
		return models.RentalClient{}, ErrInvalidRent
	}
	pct := s.defaultPenalty
	if req.PenaltyPercent != nil {
		pct = *req.PenaltyPercent
	}
	if pct.IsNegative() {
		return models.RentalClient{}, ErrInvalidPenaltyPercent
	}
	return models.RentalClient{
		Name:           req.Name,
		CPF:            req.CPF,
		Email:          req.Email,
		Phone:          req.Phone,
		RentAmount:     req.RentAmount,
		DueDay:         req.DueDay,
		PenaltyPercent: pct,
	}, nil
}

func (s *Service) invalidate(ctx context.Context, id int) {
	cacheKey := cache.ClientKey(id)
	if err := s.cache.Invalidate(ctx, cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), sl.Err(err))
	}
}
