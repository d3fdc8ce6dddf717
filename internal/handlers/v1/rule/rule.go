// Package rule exposes the recurring-rule endpoints.
package rule

import (
	"time"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-ledger/internal/storage/rule"
)

// Rule is the API response model for a recurring rule.
type Rule struct {
	ID         string `json:"id" doc:"Rule UUID"`
	AccountID  string `json:"accountID" doc:"Account the rule posts to"`
	CategoryID string `json:"categoryID,omitempty" doc:"Category of posted entries"`
	Amount     string `json:"amount,omitempty" doc:"Decimal magnitude of each occurrence"`
	Direction  string `json:"direction" doc:"INCOME or EXPENSE"`
	Period     string `json:"period,omitempty" doc:"DAILY, WEEKLY, MONTHLY or YEARLY"`
	StartDate  string `json:"startDate,omitempty" doc:"First occurrence (YYYY-MM-DD)"`
	EndDate    string `json:"endDate,omitempty" doc:"Last possible occurrence (YYYY-MM-DD), open-ended when absent"`
	AutoPost   bool   `json:"autoPost" doc:"Whether due occurrences are posted automatically"`
	Note       string `json:"note,omitempty" doc:"Free text, used as the name of posted entries"`
	CreatedAt  string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromStorage(r *rule.Rule) Rule {
	out := Rule{
		ID:        r.ID.String(),
		AccountID: r.AccountID.String(),
		Direction: string(r.Direction),
		AutoPost:  r.AutoPost,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
	if v, ok := r.CategoryID.Get(); ok {
		out.CategoryID = v.String()
	}
	if v, ok := r.Amount.Get(); ok {
		out.Amount = v.String()
	}
	if v, ok := r.Period.Get(); ok {
		out.Period = string(v)
	}
	if v, ok := r.StartDate.Get(); ok {
		out.StartDate = apierr.FormatDate(v)
	}
	if v, ok := r.EndDate.Get(); ok {
		out.EndDate = apierr.FormatDate(v)
	}
	if v, ok := r.Note.Get(); ok {
		out.Note = v
	}
	return out
}
