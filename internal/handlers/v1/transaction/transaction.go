package transaction

import (
	"time"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-ledger/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID              string `json:"id" doc:"Transaction UUID"`
	AccountID       string `json:"accountID" doc:"Account UUID"`
	CategoryID      string `json:"categoryID,omitempty" doc:"Category UUID, absent when uncategorised"`
	Amount          string `json:"amount" doc:"Signed decimal amount"`
	Type            string `json:"type" doc:"INCOME, FIXED_COST or VARIABLE_EXPENSE"`
	TransactionName string `json:"transactionName" doc:"Name of the transaction"`
	TransactionDate string `json:"transactionDate" doc:"Transaction date (YYYY-MM-DD)"`
	RecurringRuleID string `json:"recurringRuleID,omitempty" doc:"Rule that generated this entry"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}

// FromService converts a service transaction to its API model.
func FromService(tx service.Transaction) Transaction {
	out := Transaction{
		ID:              tx.ID.String(),
		AccountID:       tx.AccountID.String(),
		Amount:          tx.Amount.String(),
		Type:            string(tx.Type),
		TransactionName: tx.TransactionName,
		TransactionDate: apierr.FormatDate(tx.TransactionDate),
		CreatedAt:       tx.CreatedAt.Format(time.RFC3339),
	}
	if id, ok := tx.CategoryID.Get(); ok {
		out.CategoryID = id.String()
	}
	if id, ok := tx.RecurringRuleID.Get(); ok {
		out.RecurringRuleID = id.String()
	}
	return out
}
