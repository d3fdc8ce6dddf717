package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/service"
)

// ListAccountsCursor represents a pagination cursor in request and response bodies.
type ListAccountsCursor struct {
	Position int `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit    int `json:"limit" minimum:"1" maximum:"100" doc:"Page size"`
}

// ListAccountsBody is the request body for listing accounts.
type ListAccountsBody struct {
	Cursor *ListAccountsCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

// ListAccountsInput is the Huma input for listing accounts.
type ListAccountsInput struct {
	Body ListAccountsBody
}

// ListAccountsResponseBody is the response body for listing accounts.
type ListAccountsResponseBody struct {
	Accounts   []Account           `json:"accounts" doc:"Page of accounts"`
	NextCursor *ListAccountsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListAccountsOutput is the Huma output for listing accounts.
type ListAccountsOutput struct {
	Body ListAccountsResponseBody
}

// accountLister is the interface for listing accounts.
type accountLister interface {
	ListAccounts(ctx context.Context, cursor *service.AccountCursor) ([]service.Account, *service.AccountCursor, error)
}

// ListAccountsHandler handles POST /v1/account/list.
type ListAccountsHandler struct {
	AccountService accountLister
}

// NewListAccountsHandler creates a new ListAccountsHandler.
func NewListAccountsHandler(svc accountLister) *ListAccountsHandler {
	return &ListAccountsHandler{AccountService: svc}
}

// Register registers the list accounts endpoint with the Huma API.
func (h *ListAccountsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodPost,
		Path:        "/v1/account/list",
		Summary:     "List accounts",
		Description: "Returns a paginated list of accounts ordered by name.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *ListAccountsHandler) handle(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	logData := logging.GetLogData(ctx)

	var cursor *service.AccountCursor
	if input.Body.Cursor != nil {
		cursor = &service.AccountCursor{
			Position: input.Body.Cursor.Position,
			Limit:    input.Body.Cursor.Limit,
		}
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listAccountsMs")
	}
	accounts, nextCursor, err := h.AccountService.ListAccounts(ctx, cursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierr.FromService(err, "failed to list accounts")
	}

	if logData != nil {
		logData.AddData("accountCount", len(accounts))
	}

	resp := ListAccountsResponseBody{
		Accounts: make([]Account, len(accounts)),
	}
	for i, acc := range accounts {
		resp.Accounts[i] = fromService(acc)
	}

	if nextCursor != nil {
		resp.NextCursor = &ListAccountsCursor{
			Position: nextCursor.Position,
			Limit:    nextCursor.Limit,
		}
	}

	return &ListAccountsOutput{Body: resp}, nil
}
