package rule

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/null"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/schedule"
	"github.com/carson-networks/finance-ledger/internal/storage/rule"
)

// CreateRuleBody is the request body for creating a recurring rule.
type CreateRuleBody struct {
	AccountID  string `json:"accountID" format:"uuid" doc:"Account the rule posts to"`
	CategoryID string `json:"categoryID,omitempty" doc:"Category of posted entries"`
	Amount     string `json:"amount" doc:"Decimal amount, the sign is taken from direction"`
	Direction  string `json:"direction" enum:"INCOME,EXPENSE" doc:"INCOME or EXPENSE"`
	Period     string `json:"period" enum:"DAILY,WEEKLY,MONTHLY,YEARLY" doc:"Recurrence period"`
	StartDate  string `json:"startDate" doc:"First occurrence (YYYY-MM-DD)"`
	EndDate    string `json:"endDate,omitempty" doc:"Last possible occurrence (YYYY-MM-DD)"`
	AutoPost   bool   `json:"autoPost,omitempty" doc:"Post due occurrences automatically"`
	Note       string `json:"note,omitempty" maxLength:"500" doc:"Free text, used as the name of posted entries"`
}

type CreateRuleInput struct {
	Body CreateRuleBody
}

type CreateRuleOutput struct {
	Status int
	Body   struct {
		ID string `json:"id" doc:"Created rule UUID"`
	}
}

type ruleCreator interface {
	CreateRule(ctx context.Context, create rule.RuleCreate) (uuid.UUID, error)
}

// CreateRuleHandler handles POST /v1/rule.
type CreateRuleHandler struct {
	RuleService ruleCreator
}

func NewCreateRuleHandler(svc ruleCreator) *CreateRuleHandler {
	return &CreateRuleHandler{RuleService: svc}
}

func (h *CreateRuleHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-rule",
		Method:        http.MethodPost,
		Path:          "/v1/rule",
		Summary:       "Create a recurring rule",
		Tags:          []string{"Rules"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func parseCreateRuleInput(input *CreateRuleInput) (rule.RuleCreate, error) {
	accountID, err := uuid.FromString(input.Body.AccountID)
	if err != nil {
		return rule.RuleCreate{}, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
	}
	amount, err := apierr.ParseAmount("amount", input.Body.Amount)
	if err != nil {
		return rule.RuleCreate{}, err
	}
	start, err := apierr.ParseDate("startDate", input.Body.StartDate)
	if err != nil {
		return rule.RuleCreate{}, err
	}

	create := rule.RuleCreate{
		AccountID: accountID,
		Amount:    amount,
		Direction: rule.Direction(input.Body.Direction),
		Period:    schedule.Period(input.Body.Period),
		StartDate: start,
		AutoPost:  input.Body.AutoPost,
	}
	if input.Body.CategoryID != "" {
		categoryID, err := uuid.FromString(input.Body.CategoryID)
		if err != nil {
			return rule.RuleCreate{}, huma.NewError(http.StatusBadRequest, "invalid categoryID", err)
		}
		create.CategoryID = null.From(categoryID)
	}
	if input.Body.EndDate != "" {
		end, err := apierr.ParseDate("endDate", input.Body.EndDate)
		if err != nil {
			return rule.RuleCreate{}, err
		}
		create.EndDate = null.From(end)
	}
	if input.Body.Note != "" {
		create.Note = null.From(input.Body.Note)
	}
	return create, nil
}

func (h *CreateRuleHandler) handle(ctx context.Context, input *CreateRuleInput) (*CreateRuleOutput, error) {
	create, err := parseCreateRuleInput(input)
	if err != nil {
		return nil, err
	}

	id, err := h.RuleService.CreateRule(ctx, create)
	if err != nil {
		return nil, apierr.FromService(err, "failed to create rule")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("ruleID", id.String())
	}

	out := &CreateRuleOutput{Status: http.StatusCreated}
	out.Body.ID = id.String()
	return out, nil
}
