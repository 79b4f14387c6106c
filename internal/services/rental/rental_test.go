package rental

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/rental-ledger/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateClient(ctx context.Context, c models.RentalClient) (int, error) {
	args := m.Called(ctx, c)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ReadClient(ctx context.Context, id int) (*models.RentalClient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RentalClient), args.Error(1)
}
func (m *RepoMock) UpdateClient(ctx context.Context, c models.RentalClient, id int) (int, error) {
	args := m.Called(ctx, c, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) RemoveClient(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListClients(ctx context.Context, limit, offset int) ([]*models.RentalClient, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RentalClient), args.Error(1)
}
func (m *RepoMock) ListAllClients(ctx context.Context) ([]*models.RentalClient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RentalClient), args.Error(1)
}
func (m *RepoMock) ListEntries(ctx context.Context, clientID int) ([]models.PaymentEntry, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PaymentEntry), args.Error(1)
}
func (m *RepoMock) ListEntriesForClients(ctx context.Context, ids []int) (map[int][]models.PaymentEntry, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int][]models.PaymentEntry), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// 7 марта 2024: платёж 10-го числа ровно через три дня.
var fixedNow = time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)

func newService(r *RepoMock, c *CacheMock, defaultPct decimal.Decimal) *Service {
	return NewService(r, c, newNoopLogger(), Options{
		Location:              time.UTC,
		CacheTTL:              time.Hour,
		DefaultPenaltyPercent: defaultPct,
		Now:                   func() time.Time { return fixedNow },
	})
}

func validRequest() models.DummyRentalClient {
	return models.DummyRentalClient{
		Name:       "Ana Lima",
		CPF:        "123.456.789-00",
		Email:      "ana@example.com",
		Phone:      "+55 11 99999-0000",
		RentAmount: decimal.NewFromInt(1000),
		DueDay:     10,
	}
}

func TestService_Create(t *testing.T) {
	ten := decimal.NewFromInt(10)
	negative := decimal.NewFromInt(-1)

	tests := []struct {
		name       string
		req        func() models.DummyRentalClient
		defaultPct decimal.Decimal
		setupMocks func(r *RepoMock)
		wantID     int
		wantErr    error
	}{
		{
			name:       "default penalty percent applied",
			req:        validRequest,
			defaultPct: decimal.NewFromInt(2),
			setupMocks: func(r *RepoMock) {
				r.On("CreateClient", mock.Anything, mock.MatchedBy(func(c models.RentalClient) bool {
					return c.PenaltyPercent.Equal(decimal.NewFromInt(2)) && !c.Paid && c.DueDay == 10
				})).Return(42, nil).Once()
			},
			wantID: 42,
		},
		{
			name: "explicit penalty percent wins",
			req: func() models.DummyRentalClient {
				r := validRequest()
				r.PenaltyPercent = &ten
				return r
			},
			defaultPct: decimal.Zero,
			setupMocks: func(r *RepoMock) {
				r.On("CreateClient", mock.Anything, mock.MatchedBy(func(c models.RentalClient) bool {
					return c.PenaltyPercent.Equal(ten)
				})).Return(7, nil).Once()
			},
			wantID: 7,
		},
		{
			name: "zero rent rejected",
			req: func() models.DummyRentalClient {
				r := validRequest()
				r.RentAmount = decimal.Zero
				return r
			},
			setupMocks: func(_ *RepoMock) {},
			wantErr:    ErrInvalidRent,
		},
		{
			name: "negative penalty rejected",
			req: func() models.DummyRentalClient {
				r := validRequest()
				r.PenaltyPercent = &negative
				return r
			},
			setupMocks: func(_ *RepoMock) {},
			wantErr:    ErrInvalidPenaltyPercent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := new(RepoMock)
			c := new(CacheMock)
			tt.setupMocks(r)

			id, err := newService(r, c, tt.defaultPct).Create(context.Background(), tt.req())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				r.AssertNotCalled(t, "CreateClient", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			r.AssertExpectations(t)
		})
	}
}

func TestService_Read_MissThenCache(t *testing.T) {
	r := new(RepoMock)
	c := new(CacheMock)
	client := &models.RentalClient{ID: 5, Name: "Ana", DueDay: 10, RentAmount: decimal.NewFromInt(1000)}
	history := []models.PaymentEntry{
		{ID: 1, Status: models.StatusPaid, PaidAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
	}

	c.On("Get", mock.Anything, "rental_client:5", mock.Anything).Return(false, nil).Once()
	r.On("ReadClient", mock.Anything, 5).Return(client, nil).Once()
	r.On("ListEntries", mock.Anything, 5).Return(history, nil).Once()
	c.On("Set", mock.Anything, "rental_client:5", mock.Anything, time.Hour).Return(nil).Once()

	s := newService(r, c, decimal.Zero)
	got, err := s.Read(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, got.PaidThisMonth)
	assert.True(t, got.DueInThreeDays)
	assert.Len(t, got.History, 1)

	cached := &models.RentalClient{ID: 5, DueDay: 20}
	c.On("Get", mock.Anything, "rental_client:5", mock.Anything).Run(func(args mock.Arguments) {
		p := args.Get(2).(**models.RentalClient)
		*p = cached
	}).Return(true, nil).Once()

	got, err = s.Read(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 20, got.DueDay)
	assert.False(t, got.PaidThisMonth)
	assert.NotNil(t, got.History)

	r.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestService_Read_CacheErrorFallsBackToRepo(t *testing.T) {
	r := new(RepoMock)
	c := new(CacheMock)
	c.On("Get", mock.Anything, "rental_client:9", mock.Anything).Return(false, errors.New("redis down")).Once()
	r.On("ReadClient", mock.Anything, 9).Return(nil, ErrNotFound).Once()

	_, err := newService(r, c, decimal.Zero).Read(context.Background(), 9)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdateAndRemove(t *testing.T) {
	tests := []struct {
		name    string
		call    func(s *Service) (int, error)
		setup   func(r *RepoMock, c *CacheMock)
		wantErr error
	}{
		{
			name: "update invalidates cache",
			call: func(s *Service) (int, error) { return s.Update(context.Background(), validRequest(), 3) },
			setup: func(r *RepoMock, c *CacheMock) {
				r.On("UpdateClient", mock.Anything, mock.Anything, 3).Return(1, nil).Once()
				c.On("Invalidate", mock.Anything, "rental_client:3").Return(nil).Once()
			},
		},
		{
			name: "update missing client",
			call: func(s *Service) (int, error) { return s.Update(context.Background(), validRequest(), 3) },
			setup: func(r *RepoMock, _ *CacheMock) {
				r.On("UpdateClient", mock.Anything, mock.Anything, 3).Return(0, nil).Once()
			},
			wantErr: ErrNotFound,
		},
		{
			name: "remove ignores cache failure",
			call: func(s *Service) (int, error) { return s.Remove(context.Background(), 4) },
			setup: func(r *RepoMock, c *CacheMock) {
				c.On("Invalidate", mock.Anything, "rental_client:4").Return(errors.New("redis down")).Once()
				r.On("RemoveClient", mock.Anything, 4).Return(1, nil).Once()
			},
		},
		{
			name: "remove missing client",
			call: func(s *Service) (int, error) { return s.Remove(context.Background(), 4) },
			setup: func(r *RepoMock, c *CacheMock) {
				c.On("Invalidate", mock.Anything, "rental_client:4").Return(nil).Once()
				r.On("RemoveClient", mock.Anything, 4).Return(0, nil).Once()
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := new(RepoMock)
			c := new(CacheMock)
			tt.setup(r, c)

			count, err := tt.call(newService(r, c, decimal.Zero))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, count)
			r.AssertExpectations(t)
			c.AssertExpectations(t)
		})
	}
}

func TestService_List(t *testing.T) {
	r := new(RepoMock)
	c := new(CacheMock)
	clients := []*models.RentalClient{
		{ID: 1, DueDay: 10},
		{ID: 2, DueDay: 15},
	}
	r.On("ListClients", mock.Anything, 10, 0).Return(clients, nil).Once()
	r.On("ListEntriesForClients", mock.Anything, []int{1, 2}).Return(map[int][]models.PaymentEntry{
		2: {{ID: 8, Status: models.StatusPaid, PaidAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}},
	}, nil).Once()

	got, err := newService(r, c, decimal.Zero).List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got.Alerts)
	require.Len(t, got.Clients, 2)
	assert.True(t, got.Clients[0].DueInThreeDays)
	assert.NotNil(t, got.Clients[0].History)
	assert.False(t, got.Clients[0].PaidThisMonth)
	assert.True(t, got.Clients[1].PaidThisMonth)
}

func TestService_List_Empty(t *testing.T) {
	r := new(RepoMock)
	r.On("ListClients", mock.Anything, 10, 20).Return(nil, nil).Once()

	got, err := newService(r, new(CacheMock), decimal.Zero).List(context.Background(), 10, 20)
	require.NoError(t, err)
	assert.Empty(t, got.Clients)
	assert.NotNil(t, got.Alerts)
	r.AssertNotCalled(t, "ListEntriesForClients", mock.Anything, mock.Anything)
}

func TestService_Alerts(t *testing.T) {
	r := new(RepoMock)
	all := []*models.RentalClient{
		{ID: 1, DueDay: 9},
		{ID: 2, DueDay: 10},
		{ID: 3, DueDay: 11},
	}
	r.On("ListAllClients", mock.Anything).Return(all, nil).Once()
	r.On("ListEntriesForClients", mock.Anything, []int{2}).Return(map[int][]models.PaymentEntry{}, nil).Once()

	got, err := newService(r, new(CacheMock), decimal.Zero).Alerts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)
	assert.True(t, got[0].DueInThreeDays)
}

func TestService_Read_PaidOnFirstInSaoPaulo(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	r := new(RepoMock)
	c := new(CacheMock)
	client := &models.RentalClient{ID: 7, DueDay: 10, RentAmount: decimal.NewFromInt(1000), Paid: true}
	// DATE из Postgres: полночь UTC, в Сан-Паулу это ещё 31 мая
	history := []models.PaymentEntry{
		{ID: 1, Status: models.StatusPaid, PaidAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Period: "2024-06"},
	}

	c.On("Get", mock.Anything, "rental_client:7", mock.Anything).Return(false, nil).Once()
	r.On("ReadClient", mock.Anything, 7).Return(client, nil).Once()
	r.On("ListEntries", mock.Anything, 7).Return(history, nil).Once()
	c.On("Set", mock.Anything, "rental_client:7", mock.Anything, time.Hour).Return(nil).Once()

	s := NewService(r, c, newNoopLogger(), Options{
		Location: loc,
		CacheTTL: time.Hour,
		Now:      func() time.Time { return time.Date(2024, 6, 20, 10, 0, 0, 0, loc) },
	})
	got, err := s.Read(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, got.PaidThisMonth)
}
