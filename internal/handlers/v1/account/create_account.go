package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/service"
	"github.com/carson-networks/finance-ledger/internal/storage/account"
)

type CreateAccountInput struct {
	Body CreateAccountBody
}

type CreateAccountBody struct {
	Name            string `json:"name" minLength:"1" doc:"Account name"`
	Type            int    `json:"type" minimum:"0" maximum:"4" doc:"0=Cash, 1=Credit Cards, 2=Investments, 3=Loans, 4=Assets"`
	SubType         string `json:"subType,omitempty" doc:"Free-form sub-type"`
	StartingBalance string `json:"startingBalance,omitempty" doc:"Opening balance, at most two decimals, defaults to 0"`
	Balance         string `json:"balance,omitempty" doc:"Current balance, defaults to startingBalance"`
}

type CreateAccountOutput struct {
	Status int
	Body   struct {
		ID string `json:"id" doc:"Created account UUID"`
	}
}

type accountCreator interface {
	CreateAccount(ctx context.Context, account service.Account) (uuid.UUID, error)
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	AccountService accountCreator
}

func NewCreateAccountHandler(svc accountCreator) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc}
}

func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-account",
		Method:        http.MethodPost,
		Path:          "/v1/account",
		Summary:       "Create an account",
		Description:   "Opens an account. Recurring rules and transactions post against its balance.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (service.Account, error) {
	body := input.Body
	if !account.AccountType(body.Type).Valid() {
		return service.Account{}, huma.NewError(http.StatusBadRequest, "type must be 0-4")
	}

	startingBalance := decimal.Zero
	if body.StartingBalance != "" {
		var err error
		if startingBalance, err = parseBalance("startingBalance", body.StartingBalance); err != nil {
			return service.Account{}, err
		}
	}

	balance := startingBalance
	if body.Balance != "" {
		var err error
		if balance, err = parseBalance("balance", body.Balance); err != nil {
			return service.Account{}, err
		}
	}

	return service.Account{
		Name:            body.Name,
		Type:            service.AccountType(body.Type),
		SubType:         body.SubType,
		Balance:         balance,
		StartingBalance: startingBalance,
	}, nil
}

// parseBalance rejects sub-cent amounts, which the balance columns would round.
func parseBalance(field, value string) (decimal.Decimal, error) {
	d, err := apierr.ParseAmount(field, value)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.Equal(d.Round(2)) {
		return decimal.Zero, huma.NewError(http.StatusBadRequest, field+" must have at most two decimals")
	}
	return d, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	acct, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createAccountMs")
	}
	id, err := h.AccountService.CreateAccount(ctx, acct)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierr.FromService(err, "failed to create account")
	}

	if logData != nil {
		logData.AddData("accountID", id.String())
	}

	out := &CreateAccountOutput{Status: http.StatusCreated}
	out.Body.ID = id.String()
	return out, nil
}
