package rule

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-ledger/internal/schedule"
	"github.com/carson-networks/finance-ledger/internal/storage/rule"
)

// UpdateRuleBody carries a partial edit. Absent fields are left as they are; for the
// nullable fields categoryID, endDate and note an empty string clears the value.
type UpdateRuleBody struct {
	AccountID  *string `json:"accountID,omitempty" format:"uuid" doc:"Account the rule posts to"`
	CategoryID *string `json:"categoryID,omitempty" doc:"Category of posted entries, empty to clear"`
	Amount     *string `json:"amount,omitempty" doc:"Decimal amount"`
	Direction  *string `json:"direction,omitempty" enum:"INCOME,EXPENSE" doc:"INCOME or EXPENSE"`
	Period     *string `json:"period,omitempty" enum:"DAILY,WEEKLY,MONTHLY,YEARLY" doc:"Recurrence period"`
	StartDate  *string `json:"startDate,omitempty" doc:"First occurrence (YYYY-MM-DD)"`
	EndDate    *string `json:"endDate,omitempty" doc:"Last possible occurrence (YYYY-MM-DD), empty to clear"`
	AutoPost   *bool   `json:"autoPost,omitempty" doc:"Post due occurrences automatically"`
	Note       *string `json:"note,omitempty" maxLength:"500" doc:"Free text, empty to clear"`
}

type UpdateRuleInput struct {
	ID   string `path:"id" format:"uuid" doc:"Rule UUID"`
	Body UpdateRuleBody
}

type ruleUpdater interface {
	UpdateRule(ctx context.Context, id uuid.UUID, update rule.RuleUpdate) (*rule.Rule, error)
}

// UpdateRuleHandler handles PATCH /v1/rule/{id}.
type UpdateRuleHandler struct {
	RuleService ruleUpdater
}

func NewUpdateRuleHandler(svc ruleUpdater) *UpdateRuleHandler {
	return &UpdateRuleHandler{RuleService: svc}
}

func (h *UpdateRuleHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-rule",
		Method:      http.MethodPatch,
		Path:        "/v1/rule/{id}",
		Summary:     "Update a recurring rule",
		Description: "Applies a partial edit and returns the updated rule. Entries already posted are not changed.",
		Tags:        []string{"Rules"},
	}, h.handle)
}

func parseUpdateRuleBody(body *UpdateRuleBody) (rule.RuleUpdate, error) {
	var update rule.RuleUpdate

	if body.AccountID != nil {
		id, err := uuid.FromString(*body.AccountID)
		if err != nil {
			return update, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
		}
		update.AccountID.Set(id)
	}
	if body.CategoryID != nil {
		if *body.CategoryID == "" {
			update.CategoryID.Null()
		} else {
			id, err := uuid.FromString(*body.CategoryID)
			if err != nil {
				return update, huma.NewError(http.StatusBadRequest, "invalid categoryID", err)
			}
			update.CategoryID.Set(id)
		}
	}
	if body.Amount != nil {
		amount, err := apierr.ParseAmount("amount", *body.Amount)
		if err != nil {
			return update, err
		}
		update.Amount.Set(amount)
	}
	if body.Direction != nil {
		update.Direction.Set(rule.Direction(*body.Direction))
	}
	if body.Period != nil {
		update.Period.Set(schedule.Period(*body.Period))
	}
	if body.StartDate != nil {
		start, err := apierr.ParseDate("startDate", *body.StartDate)
		if err != nil {
			return update, err
		}
		update.StartDate.Set(start)
	}
	if body.EndDate != nil {
		if *body.EndDate == "" {
			update.EndDate.Null()
		} else {
			end, err := apierr.ParseDate("endDate", *body.EndDate)
			if err != nil {
				return update, err
			}
			update.EndDate.Set(end)
		}
	}
	if body.AutoPost != nil {
		update.AutoPost.Set(*body.AutoPost)
	}
	if body.Note != nil {
		if *body.Note == "" {
			update.Note.Null()
		} else {
			update.Note.Set(*body.Note)
		}
	}
	return update, nil
}

func (h *UpdateRuleHandler) handle(ctx context.Context, input *UpdateRuleInput) (*RuleOutput, error) {
	id, err := pathID(input.ID)
	if err != nil {
		return nil, err
	}
	update, err := parseUpdateRuleBody(&input.Body)
	if err != nil {
		return nil, err
	}

	r, err := h.RuleService.UpdateRule(ctx, id, update)
	if err != nil {
		return nil, apierr.FromService(err, "failed to update rule")
	}
	return &RuleOutput{Body: fromStorage(r)}, nil
}
