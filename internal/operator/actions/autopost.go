package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-ledger/internal/autopost"
	"github.com/carson-networks/finance-ledger/internal/storage"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

// AutoPost runs one auto-post pass. The whole pass commits or rolls back together, and
// concurrent passes wait on each other through the auto-post lock.
type AutoPost struct {
	Engine        *autopost.Engine
	ReferenceDate time.Time

	Created int
}

func (a *AutoPost) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := writer.LockAutoPost(ctx); err != nil {
		return err
	}

	created, err := a.Engine.AutoPostDue(ctx, writer, a.ReferenceDate)
	if err != nil {
		return err
	}

	a.Created = created
	return nil
}

// GenerateNext posts a single entry for one rule regardless of its auto-post flag.
type GenerateNext struct {
	Engine *autopost.Engine
	RuleID uuid.UUID

	Transaction *transaction.Transaction
}

func (g *GenerateNext) Perform(ctx context.Context, writer *storage.Writer) error {
	tx, err := g.Engine.GenerateNext(ctx, writer, g.RuleID)
	if err != nil {
		return err
	}

	g.Transaction = tx
	return nil
}
