package operator

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-ledger/internal/operator/actions"
	"github.com/carson-networks/finance-ledger/internal/storage"
)

// Operator is the worker that runs queued actions, each inside its own database transaction.
type Operator struct {
	storage *storage.Storage
	queue   chan ActionItem
	logger  *logrus.Logger
}

func NewOperator(s *storage.Storage, queue chan ActionItem, logger *logrus.Logger) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		logger:  logger,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		item.response <- ActionItemResponse{err: o.processItem(item)}
	}
}

func (o *Operator) processItem(item ActionItem) error {
	// The caller gave up while the item was queued.
	if err := item.ctx.Err(); err != nil {
		return err
	}

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		return err
	}

	if err = item.action.Perform(item.ctx, writer); err != nil {
		if rbErr := writer.Rollback(); rbErr != nil {
			o.logger.WithError(rbErr).WithField("action", actionName(item.action)).Error("Operator.Rollback.Error")
		}
		return err
	}

	return writer.Commit()
}

func actionName(action actions.IAction) string {
	return fmt.Sprintf("%T", action)
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
