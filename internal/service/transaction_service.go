package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-ledger/internal/operator/actions"
	"github.com/carson-networks/finance-ledger/internal/schedule"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

const defaultLimit = 20

type transactionReader interface {
	List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error)
}

// TransactionService handles transaction business logic.
type TransactionService struct {
	reader    transactionReader
	processor Processor
}

func NewTransactionService(reader transactionReader, proc Processor) *TransactionService {
	return &TransactionService{reader: reader, processor: proc}
}

// CreateTransaction records a manual entry, updates the account balance and returns the
// new entry's ID. A zero TransactionDate means today.
func (s *TransactionService) CreateTransaction(ctx context.Context, tx Transaction) (uuid.UUID, error) {
	if tx.Type == "" {
		tx.Type = transaction.TypeVariableExpense
	}
	if _, err := transaction.ParseTransactionType(string(tx.Type)); err != nil {
		return uuid.Nil, invalid("%v", err)
	}

	action := &actions.CreateTransaction{
		AccountID:       tx.AccountID,
		CategoryID:      tx.CategoryID,
		Amount:          tx.Amount,
		Type:            tx.Type,
		TransactionName: tx.TransactionName,
	}
	if !tx.TransactionDate.IsZero() {
		action.TransactionDate = schedule.DateOf(tx.TransactionDate)
	}

	if err := s.processor.Process(ctx, action); err != nil {
		return uuid.Nil, classify(err)
	}
	return action.ID, nil
}

// ListTransactions returns a page of transactions using cursor-based pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, query *TransactionQuery, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}

	filter := &transaction.TransactionFilter{
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}
	if query != nil {
		filter.AccountID = query.AccountID
		filter.CategoryID = query.CategoryID
		filter.RecurringRuleID = query.RecurringRuleID
		filter.From = query.From
		filter.To = query.To
	}

	rows, err := s.reader.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = transactionFromStorage(row)
	}

	return convertedTransactions, nextCursor, nil
}
