package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-ledger/internal/service"
)

type mockAccountService struct {
	mock.Mock
}

func (m *mockAccountService) CreateAccount(ctx context.Context, account service.Account) (uuid.UUID, error) {
	args := m.Called(ctx, account)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}

func (m *mockAccountService) ListAccounts(ctx context.Context, cursor *service.AccountCursor) ([]service.Account, *service.AccountCursor, error) {
	args := m.Called(ctx, cursor)
	accounts, _ := args.Get(0).([]service.Account)
	next, _ := args.Get(1).(*service.AccountCursor)
	return accounts, next, args.Error(2)
}

func newTestAPI(t *testing.T, svc *mockAccountService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateAccountHandler(svc).Register(api)
	NewListAccountsHandler(svc).Register(api)
	return api
}

func TestParseCreateAccountInput_Defaults(t *testing.T) {
	account, err := parseCreateAccountInput(&CreateAccountInput{Body: CreateAccountBody{
		Name:            "Savings",
		Type:            2,
		StartingBalance: "250.00",
	}})

	require.NoError(t, err)
	assert.Equal(t, service.AccountTypeInvestments, account.Type)
	assert.True(t, account.StartingBalance.Equal(decimal.RequireFromString("250")))
	assert.True(t, account.Balance.Equal(account.StartingBalance), "balance defaults to starting balance")
}

func TestParseCreateAccountInput_InvalidBalance(t *testing.T) {
	_, err := parseCreateAccountInput(&CreateAccountInput{Body: CreateAccountBody{
		Name:    "Savings",
		Balance: "lots",
	}})

	assert.Error(t, err)
}

func TestParseCreateAccountInput_Balances(t *testing.T) {
	tests := []struct {
		name    string
		body    CreateAccountBody
		balance string
		wantErr bool
	}{
		{name: "both default to zero", body: CreateAccountBody{Name: "Cash"}, balance: "0"},
		{name: "explicit balance wins", body: CreateAccountBody{Name: "Cash", StartingBalance: "10", Balance: "12.50"}, balance: "12.5"},
		{name: "sub-cent starting balance", body: CreateAccountBody{Name: "Cash", StartingBalance: "10.005"}, wantErr: true},
		{name: "sub-cent balance", body: CreateAccountBody{Name: "Cash", Balance: "0.001"}, wantErr: true},
		{name: "unparsable starting balance", body: CreateAccountBody{Name: "Cash", StartingBalance: "ten"}, wantErr: true},
		{name: "type outside the enum", body: CreateAccountBody{Name: "Cash", Type: 5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, err := parseCreateAccountInput(&CreateAccountInput{Body: tt.body})
			if tt.wantErr {
				var se huma.StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, http.StatusBadRequest, se.GetStatus())
				return
			}
			require.NoError(t, err)
			assert.True(t, account.Balance.Equal(decimal.RequireFromString(tt.balance)), "balance %s", account.Balance)
		})
	}
}

func TestHTTP_CreateAccount_SubCentBalance(t *testing.T) {
	svc := new(mockAccountService)

	resp := newTestAPI(t, svc).Post("/v1/account", CreateAccountBody{Name: "Checking", StartingBalance: "1.999"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	svc.AssertNotCalled(t, "CreateAccount")
}

func TestHTTP_CreateAccount_Success(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockAccountService)
	svc.On("CreateAccount", mock.Anything, mock.MatchedBy(func(a service.Account) bool {
		return a.Name == "Checking" && a.Type == service.AccountTypeCash
	})).Return(id, nil)

	resp := newTestAPI(t, svc).Post("/v1/account", CreateAccountBody{Name: "Checking", Type: 0})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, id.String(), body.ID)
	svc.AssertExpectations(t)
}

func TestHTTP_CreateAccount_TypeOutOfRange(t *testing.T) {
	svc := new(mockAccountService)

	resp := newTestAPI(t, svc).Post("/v1/account", CreateAccountBody{Name: "Checking", Type: 7})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "CreateAccount")
}

func TestHTTP_CreateAccount_ServiceError(t *testing.T) {
	svc := new(mockAccountService)
	svc.On("CreateAccount", mock.Anything, mock.Anything).Return(uuid.Nil, errors.New("db down"))

	resp := newTestAPI(t, svc).Post("/v1/account", CreateAccountBody{Name: "Checking"})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestHTTP_ListAccounts_WithNextCursor(t *testing.T) {
	svc := new(mockAccountService)
	accounts := []service.Account{{
		ID:              uuid.Must(uuid.NewV4()),
		Name:            "Checking",
		Balance:         decimal.RequireFromString("10.50"),
		StartingBalance: decimal.Zero,
		CreatedAt:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
	svc.On("ListAccounts", mock.Anything, &service.AccountCursor{Position: 0, Limit: 1}).
		Return(accounts, &service.AccountCursor{Position: 1, Limit: 1}, nil)

	resp := newTestAPI(t, svc).Post("/v1/account/list", ListAccountsBody{
		Cursor: &ListAccountsCursor{Position: 0, Limit: 1},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListAccountsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Accounts, 1)
	assert.Equal(t, "10.5", body.Accounts[0].Balance)
	assert.Equal(t, &ListAccountsCursor{Position: 1, Limit: 1}, body.NextCursor)
}

func TestHTTP_ListAccounts_Empty(t *testing.T) {
	svc := new(mockAccountService)
	svc.On("ListAccounts", mock.Anything, (*service.AccountCursor)(nil)).Return(nil, nil, nil)

	resp := newTestAPI(t, svc).Post("/v1/account/list", ListAccountsBody{})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListAccountsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Accounts)
	assert.Nil(t, body.NextCursor)
}
