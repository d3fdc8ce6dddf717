package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/service"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	AccountID       string `json:"accountID" required:"true" format:"uuid" doc:"Account UUID"`
	CategoryID      string `json:"categoryID,omitempty" doc:"Category UUID"`
	Amount          string `json:"amount" required:"true" doc:"Signed decimal amount, negative for outflows"`
	Type            string `json:"type,omitempty" enum:"INCOME,FIXED_COST,VARIABLE_EXPENSE" doc:"Entry type, defaults to VARIABLE_EXPENSE"`
	TransactionName string `json:"transactionName" required:"true" minLength:"1" doc:"Name of the transaction"`
	TransactionDate string `json:"transactionDate,omitempty" doc:"YYYY-MM-DD or RFC3339 transaction date, defaults to today"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionResponse is the response body for creating a transaction.
type CreateTransactionResponse struct {
	ID string `json:"id" doc:"Created transaction UUID"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponse
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, transaction service.Transaction) (uuid.UUID, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transaction",
		Summary:       "Create transaction",
		Description:   "Records a manual entry and updates the account balance.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

// parseCreateTransactionInput parses and validates the API input.
func parseCreateTransactionInput(input *CreateTransactionInput) (service.Transaction, error) {
	accountID, err := uuid.FromString(input.Body.AccountID)
	if err != nil {
		return service.Transaction{}, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
	}

	var categoryID null.Val[uuid.UUID]
	if input.Body.CategoryID != "" {
		id, err := uuid.FromString(input.Body.CategoryID)
		if err != nil {
			return service.Transaction{}, huma.NewError(http.StatusBadRequest, "invalid categoryID", err)
		}
		categoryID = null.From(id)
	}

	amount, err := apierr.ParseAmount("amount", input.Body.Amount)
	if err != nil {
		return service.Transaction{}, err
	}

	var txType transaction.TransactionType
	if input.Body.Type != "" {
		if txType, err = transaction.ParseTransactionType(input.Body.Type); err != nil {
			return service.Transaction{}, huma.NewError(http.StatusBadRequest, "invalid type", err)
		}
	}

	transactionDate, err := parseTransactionDate(input.Body.TransactionDate)
	if err != nil {
		return service.Transaction{}, err
	}

	return service.Transaction{
		AccountID:       accountID,
		CategoryID:      categoryID,
		Amount:          amount,
		Type:            txType,
		TransactionName: input.Body.TransactionName,
		TransactionDate: transactionDate,
	}, nil
}

// parseTransactionDate accepts a civil date or a full RFC3339 timestamp.
// An empty value leaves the date zero so the service uses today.
func parseTransactionDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return apierr.ParseDate("transactionDate", value)
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	tx, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	id, err := h.TransactionService.CreateTransaction(ctx, tx)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierr.FromService(err, "failed to create transaction")
	}

	if logData != nil {
		logData.AddData("transactionID", id.String())
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   CreateTransactionResponse{ID: id.String()},
	}, nil
}
