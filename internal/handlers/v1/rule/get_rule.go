package rule

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-ledger/internal/storage/rule"
)

type RuleIDInput struct {
	ID string `path:"id" format:"uuid" doc:"Rule UUID"`
}

type RuleOutput struct {
	Body Rule
}

type ListRulesOutput struct {
	Body struct {
		Rules []Rule `json:"rules" doc:"All recurring rules"`
	}
}

type ruleReader interface {
	GetRule(ctx context.Context, id uuid.UUID) (*rule.Rule, error)
	ListRules(ctx context.Context) ([]*rule.Rule, error)
	DeleteRule(ctx context.Context, id uuid.UUID) error
}

// RuleHandler serves reads and deletes of recurring rules.
type RuleHandler struct {
	RuleService ruleReader
}

func NewRuleHandler(svc ruleReader) *RuleHandler {
	return &RuleHandler{RuleService: svc}
}

func (h *RuleHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-rules",
		Method:      http.MethodGet,
		Path:        "/v1/rule",
		Summary:     "List recurring rules",
		Tags:        []string{"Rules"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "get-rule",
		Method:      http.MethodGet,
		Path:        "/v1/rule/{id}",
		Summary:     "Get a recurring rule",
		Tags:        []string{"Rules"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-rule",
		Method:        http.MethodDelete,
		Path:          "/v1/rule/{id}",
		Summary:       "Delete a recurring rule",
		Description:   "Deletes the rule. Entries it already posted are kept.",
		Tags:          []string{"Rules"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
}

func pathID(value string) (uuid.UUID, error) {
	id, err := uuid.FromString(value)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}
	return id, nil
}

func (h *RuleHandler) list(ctx context.Context, _ *struct{}) (*ListRulesOutput, error) {
	rules, err := h.RuleService.ListRules(ctx)
	if err != nil {
		return nil, apierr.FromService(err, "failed to list rules")
	}

	out := &ListRulesOutput{}
	out.Body.Rules = make([]Rule, len(rules))
	for i, r := range rules {
		out.Body.Rules[i] = fromStorage(r)
	}
	return out, nil
}

func (h *RuleHandler) get(ctx context.Context, input *RuleIDInput) (*RuleOutput, error) {
	id, err := pathID(input.ID)
	if err != nil {
		return nil, err
	}
	r, err := h.RuleService.GetRule(ctx, id)
	if err != nil {
		return nil, apierr.FromService(err, "failed to get rule")
	}
	return &RuleOutput{Body: fromStorage(r)}, nil
}

func (h *RuleHandler) delete(ctx context.Context, input *RuleIDInput) (*struct{}, error) {
	id, err := pathID(input.ID)
	if err != nil {
		return nil, err
	}
	if err = h.RuleService.DeleteRule(ctx, id); err != nil {
		return nil, apierr.FromService(err, "failed to delete rule")
	}
	return &struct{}{}, nil
}
