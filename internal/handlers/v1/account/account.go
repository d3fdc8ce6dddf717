package account

import (
	"time"

	"github.com/carson-networks/finance-ledger/internal/service"
)

// Account is the API response model for an account.
type Account struct {
	ID              string `json:"id" doc:"Account UUID"`
	Name            string `json:"name" doc:"Account name"`
	Type            int    `json:"type" doc:"Account type: 0=Cash, 1=Credit Cards, 2=Investments, 3=Loans, 4=Assets"`
	SubType         string `json:"subType" doc:"Account sub-type"`
	Balance         string `json:"balance" doc:"Decimal balance"`
	StartingBalance string `json:"startingBalance" doc:"Decimal balance when the account was opened"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(acc service.Account) Account {
	return Account{
		ID:              acc.ID.String(),
		Name:            acc.Name,
		Type:            int(acc.Type),
		SubType:         acc.SubType,
		Balance:         acc.Balance.String(),
		StartingBalance: acc.StartingBalance.String(),
		CreatedAt:       acc.CreatedAt.Format(time.RFC3339),
	}
}
