package paymentcreate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/rental-ledger/internal/models"
	"github.com/magabrotheeeer/rental-ledger/internal/services/payment"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Record(ctx context.Context, clientID int, req models.DummyPaymentEntry) (*models.PaymentEntry, error) {
	args := m.Called(ctx, clientID, req)
	if res := args.Get(0); res != nil {
		return res.(*models.PaymentEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreatePaymentHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	valid := `{"mes":"março/2024","data_pagamento":"2024-03-08","valor_pago":0,"forma_pagamento":"pix"}`

	tests := []struct {
		name           string
		id             string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "неоплата со штрафом",
			id:   "1",
			body: valid,
			setupMock: func(m *MockService) {
				m.On("Record", mock.Anything, 1, mock.MatchedBy(func(req models.DummyPaymentEntry) bool {
					return req.Amount.IsZero() && req.Method == "pix"
				})).Return(&models.PaymentEntry{
					ID: 10, ClientID: 1, Status: models.StatusNotPaid, Penalty: decimal.NewFromInt(100),
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"status":"nao_pago"`,
		},
		{
			name:           "некорректный id",
			id:             "abc",
			body:           valid,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "failed to decode id from url",
		},
		{
			name:           "неизвестный способ оплаты",
			id:             "1",
			body:           `{"mes":"março","data_pagamento":"2024-03-08","valor_pago":10,"forma_pagamento":"bitcoin"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Method must be one of",
		},
		{
			name: "некорректная дата",
			id:   "1",
			body: valid,
			setupMock: func(m *MockService) {
				m.On("Record", mock.Anything, 1, mock.Anything).Return(nil, fmt.Errorf("payment.Record: %w", payment.ErrInvalidDate))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "data_pagamento must be in format YYYY-MM-DD",
		},
		{
			name: "отрицательная сумма",
			id:   "1",
			body: valid,
			setupMock: func(m *MockService) {
				m.On("Record", mock.Anything, 1, mock.Anything).Return(nil, fmt.Errorf("payment.Record: %w", payment.ErrInvalidAmount))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "valor_pago must not be negative",
		},
		{
			name: "арендатор не найден",
			id:   "2",
			body: valid,
			setupMock: func(m *MockService) {
				m.On("Record", mock.Anything, 2, mock.Anything).Return(nil, fmt.Errorf("storage.ReadClient: %w", payment.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "rental client not found",
		},
		{
			name: "повторная оплата за месяц",
			id:   "1",
			body: valid,
			setupMock: func(m *MockService) {
				m.On("Record", mock.Anything, 1, mock.Anything).Return(nil, fmt.Errorf("storage.RecordPayment: %w", payment.ErrAlreadyPaid))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   "payment already recorded for this month",
		},
		{
			name: "ошибка хранилища",
			id:   "1",
			body: valid,
			setupMock: func(m *MockService) {
				m.On("Record", mock.Anything, 1, mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "failed to record payment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodPost, "/clientealuguel/"+tt.id+"/pagamentos", bytes.NewBufferString(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			New(logger, mockService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
