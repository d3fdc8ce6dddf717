package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-ledger/internal/operator/actions"
	"github.com/carson-networks/finance-ledger/internal/storage/account"
)

const defaultAccountLimit = 20

type accountReader interface {
	List(ctx context.Context, filter *account.AccountFilter) (*account.AccountListResult, error)
	FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error)
}

// AccountService handles account business logic.
type AccountService struct {
	reader    accountReader
	processor Processor
}

func NewAccountService(reader accountReader, proc Processor) *AccountService {
	return &AccountService{reader: reader, processor: proc}
}

// CreateAccount creates a new account and returns its ID.
func (s *AccountService) CreateAccount(ctx context.Context, acct Account) (uuid.UUID, error) {
	accountType := accountTypeToStorage(acct.Type)
	if !accountType.Valid() {
		return uuid.Nil, invalid("unknown account type %d", acct.Type)
	}

	action := &actions.CreateAccount{
		Name:            acct.Name,
		Type:            accountType,
		SubType:         acct.SubType,
		Balance:         acct.Balance,
		StartingBalance: acct.StartingBalance,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return uuid.Nil, classify(err)
	}
	return action.ID, nil
}

// GetAccount retrieves an account by ID.
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	row, err := s.reader.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	acct := accountFromStorage(row)
	return &acct, nil
}

// ListAccounts returns a page of accounts using cursor pagination.
func (s *AccountService) ListAccounts(ctx context.Context, cursor *AccountCursor) ([]Account, *AccountCursor, error) {
	filter := &account.AccountFilter{Limit: defaultAccountLimit}
	if cursor != nil {
		filter.Limit = cursor.Limit
		filter.Offset = cursor.Position
	}

	result, err := s.reader.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	if len(result.Accounts) == 0 {
		return nil, nil, nil
	}

	accounts := make([]Account, len(result.Accounts))
	for i, row := range result.Accounts {
		accounts[i] = accountFromStorage(row)
	}

	var next *AccountCursor
	if result.NextCursor != nil {
		next = &AccountCursor{
			Position: result.NextCursor.Position,
			Limit:    result.NextCursor.Limit,
		}
	}
	return accounts, next, nil
}
