package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/service"
)

// ListTransactionsCursor represents a pagination cursor in request and response bodies.
// It bundles position, limit, and maxCreationTime so subsequent pages use consistent parameters.
type ListTransactionsCursor struct {
	Position        int    `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit           int    `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
	MaxCreationTime string `json:"maxCreationTime" format:"date-time" doc:"Upper bound on created_at locked in from the first page"`
}

// ListTransactionsFilter narrows the listing. Every field is optional.
type ListTransactionsFilter struct {
	AccountID       string `json:"accountID,omitempty" doc:"Only entries of this account"`
	CategoryID      string `json:"categoryID,omitempty" doc:"Only entries in this category"`
	RecurringRuleID string `json:"recurringRuleID,omitempty" doc:"Only entries generated by this rule"`
	From            string `json:"from,omitempty" doc:"Earliest transaction date (YYYY-MM-DD), inclusive"`
	To              string `json:"to,omitempty" doc:"Latest transaction date (YYYY-MM-DD), inclusive"`
}

// ListTransactionsBody is the request body for listing transactions.
type ListTransactionsBody struct {
	Filter *ListTransactionsFilter `json:"filter,omitempty" doc:"Optional filters"`
	Cursor *ListTransactionsCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	Body ListTransactionsBody
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction           `json:"transactions" doc:"Page of transactions"`
	NextCursor   *ListTransactionsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, query *service.TransactionQuery, cursor *service.TransactionCursor) ([]service.Transaction, *service.TransactionCursor, error)
}

// ListTransactionsHandler handles POST /v1/transaction/list.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/list",
		Summary:     "List transactions",
		Description: "Returns a filtered, paginated list of transactions using cursor-based pagination.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseListTransactionsInput parses and validates the API input.
// When a cursor is provided, limit and maxCreationTime come from it.
// Without a cursor, the service uses its default limit.
func parseListTransactionsInput(input *ListTransactionsInput) (*service.TransactionQuery, *service.TransactionCursor, error) {
	query, err := parseFilter(input.Body.Filter)
	if err != nil {
		return nil, nil, err
	}

	if input.Body.Cursor == nil {
		return query, nil, nil
	}

	if input.Body.Cursor.Position < 0 {
		return nil, nil, huma.NewError(http.StatusBadRequest, "cursor position must be non-negative")
	}

	maxCreationTime, err := time.Parse(time.RFC3339, input.Body.Cursor.MaxCreationTime)
	if err != nil {
		return nil, nil, huma.NewError(http.StatusBadRequest, "invalid cursor maxCreationTime", err)
	}

	return query, &service.TransactionCursor{
		Position:        input.Body.Cursor.Position,
		Limit:           input.Body.Cursor.Limit,
		MaxCreationTime: maxCreationTime,
	}, nil
}

func parseFilter(filter *ListTransactionsFilter) (*service.TransactionQuery, error) {
	if filter == nil {
		return nil, nil
	}

	query := &service.TransactionQuery{}
	var err error
	if query.AccountID, err = optionalID("accountID", filter.AccountID); err != nil {
		return nil, err
	}
	if query.CategoryID, err = optionalID("categoryID", filter.CategoryID); err != nil {
		return nil, err
	}
	if query.RecurringRuleID, err = optionalID("recurringRuleID", filter.RecurringRuleID); err != nil {
		return nil, err
	}
	if query.From, err = optionalDate("from", filter.From); err != nil {
		return nil, err
	}
	if query.To, err = optionalDate("to", filter.To); err != nil {
		return nil, err
	}
	return query, nil
}

func optionalID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.FromString(value)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return &id, nil
}

func optionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := apierr.ParseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)
	query, requestCursor, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	transactions, nextCursor, err := h.TransactionService.ListTransactions(ctx, query, requestCursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierr.FromService(err, "failed to list transactions")
	}

	if logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(transactions)),
	}
	for i, tx := range transactions {
		resp.Transactions[i] = FromService(tx)
	}

	if nextCursor != nil {
		resp.NextCursor = &ListTransactionsCursor{
			Position:        nextCursor.Position,
			Limit:           nextCursor.Limit,
			MaxCreationTime: nextCursor.MaxCreationTime.Format(time.RFC3339),
		}
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
