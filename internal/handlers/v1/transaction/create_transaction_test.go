package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-ledger/internal/service"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, transaction service.Transaction) (uuid.UUID, error) {
	args := m.Called(ctx, transaction)
	if args.Get(0) == nil {
		return uuid.Nil, args.Error(1)
	}
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// newTestAPI registers the handler against a humatest API and returns it.
func newTestAPI(t *testing.T, svc transactionCreator) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateTransactionHandler(svc).Register(api)
	return api
}

// -- parseCreateTransactionInput unit tests --

func TestParseCreateTransactionInput_ValidInput(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	transactionDate := "2025-01-15T10:30:00Z"

	input := &CreateTransactionInput{
		Body: CreateTransactionBody{
			AccountID:       accountID.String(),
			CategoryID:      categoryID.String(),
			Amount:          "123.45",
			Type:            "income",
			TransactionName: "Test Transaction",
			TransactionDate: transactionDate,
		},
	}

	tx, err := parseCreateTransactionInput(input)
	assert.NoError(t, err)
	assert.Equal(t, accountID, tx.AccountID)
	assert.Equal(t, categoryID, tx.CategoryID.GetOrZero())
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("123.45")))
	assert.Equal(t, transaction.TypeIncome, tx.Type)
	assert.Equal(t, "Test Transaction", tx.TransactionName)
	expectedDate, _ := time.Parse(time.RFC3339, transactionDate)
	assert.True(t, tx.TransactionDate.Equal(expectedDate))
}

func TestParseCreateTransactionInput_OptionalFieldsOmitted(t *testing.T) {
	input := &CreateTransactionInput{
		Body: CreateTransactionBody{
			AccountID:       uuid.Must(uuid.NewV4()).String(),
			Amount:          "-99.99",
			TransactionName: "Refund",
		},
	}

	tx, err := parseCreateTransactionInput(input)
	assert.NoError(t, err)
	assert.True(t, tx.CategoryID.IsNull())
	assert.Empty(t, tx.Type)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("-99.99")))
	assert.True(t, tx.TransactionDate.IsZero())
}

func TestParseCreateTransactionInput_CivilDate(t *testing.T) {
	input := &CreateTransactionInput{
		Body: CreateTransactionBody{
			AccountID:       uuid.Must(uuid.NewV4()).String(),
			Amount:          "5",
			TransactionName: "Lunch",
			TransactionDate: "2024-02-29",
		},
	}

	tx, err := parseCreateTransactionInput(input)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), tx.TransactionDate)
}

// -- HTTP integration tests (full Huma stack via humatest) --

func TestHTTP_CreateTransaction_Success(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	txID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockTransactionService)
	mockSvc.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx service.Transaction) bool {
		return tx.AccountID == accountID &&
			tx.CategoryID.GetOrZero() == categoryID &&
			tx.Amount.Equal(decimal.RequireFromString("-12.50")) &&
			tx.TransactionName == "Coffee"
	})).Return(txID, nil)

	resp := newTestAPI(t, mockSvc).Post("/v1/transaction", CreateTransactionBody{
		AccountID:       accountID.String(),
		CategoryID:      categoryID.String(),
		Amount:          "-12.50",
		TransactionName: "Coffee",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateTransactionResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, txID.String(), body.ID)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_WithDate_Success(t *testing.T) {
	txDate := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mockSvc := new(mockTransactionService)
	mockSvc.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx service.Transaction) bool {
		return tx.TransactionDate.Equal(txDate)
	})).Return(uuid.Must(uuid.NewV4()), nil)

	resp := newTestAPI(t, mockSvc).Post("/v1/transaction", CreateTransactionBody{
		AccountID:       uuid.Must(uuid.NewV4()).String(),
		Amount:          "5.00",
		TransactionName: "Lunch",
		TransactionDate: txDate.Format(time.RFC3339),
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_MissingRequiredFields(t *testing.T) {
	mockSvc := new(mockTransactionService)

	// Huma schema validation rejects the request before the handler runs.
	resp := newTestAPI(t, mockSvc).Post("/v1/transaction", map[string]any{
		"accountID": uuid.Must(uuid.NewV4()).String(),
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreateTransaction_TransactionNameTooShort(t *testing.T) {
	mockSvc := new(mockTransactionService)

	resp := newTestAPI(t, mockSvc).Post("/v1/transaction", CreateTransactionBody{
		AccountID:       uuid.Must(uuid.NewV4()).String(),
		Amount:          "10.00",
		TransactionName: "",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreateTransaction_InvalidAccountID(t *testing.T) {
	mockSvc := new(mockTransactionService)

	// format:"uuid" is enforced by the schema.
	resp := newTestAPI(t, mockSvc).Post("/v1/transaction", CreateTransactionBody{
		AccountID:       "not-a-uuid",
		Amount:          "10.00",
		TransactionName: "Test",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreateTransaction_InvalidType(t *testing.T) {
	mockSvc := new(mockTransactionService)

	resp := newTestAPI(t, mockSvc).Post("/v1/transaction", CreateTransactionBody{
		AccountID:       uuid.Must(uuid.NewV4()).String(),
		Amount:          "10.00",
		Type:            "GIFT",
		TransactionName: "Test",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreateTransaction_BadRequestFields(t *testing.T) {
	for _, tc := range []struct {
		name string
		body CreateTransactionBody
	}{
		{"category", CreateTransactionBody{CategoryID: "not-a-uuid", Amount: "10.00"}},
		{"amount", CreateTransactionBody{Amount: "not-a-decimal"}},
		{"date", CreateTransactionBody{Amount: "10.00", TransactionDate: "15/01/2025"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := new(mockTransactionService)
			tc.body.AccountID = uuid.Must(uuid.NewV4()).String()
			tc.body.TransactionName = "Test"

			resp := newTestAPI(t, mockSvc).Post("/v1/transaction", tc.body)

			assert.Equal(t, http.StatusBadRequest, resp.Code)
			mockSvc.AssertNotCalled(t, "CreateTransaction")
		})
	}
}

func TestHTTP_CreateTransaction_ServiceErrors(t *testing.T) {
	for _, tc := range []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: account does not exist", service.ErrInvalid), http.StatusBadRequest},
		{errors.New("database unavailable"), http.StatusInternalServerError},
	} {
		mockSvc := new(mockTransactionService)
		mockSvc.On("CreateTransaction", mock.Anything, mock.Anything).Return(uuid.Nil, tc.err)

		resp := newTestAPI(t, mockSvc).Post("/v1/transaction", CreateTransactionBody{
			AccountID:       uuid.Must(uuid.NewV4()).String(),
			Amount:          "10.00",
			TransactionName: "Test",
		})

		assert.Equal(t, tc.code, resp.Code, tc.err.Error())
		mockSvc.AssertExpectations(t)
	}
}
