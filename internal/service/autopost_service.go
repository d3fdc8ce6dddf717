package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-ledger/internal/autopost"
	"github.com/carson-networks/finance-ledger/internal/operator/actions"
)

// Auto-post trigger sources, used in log lines.
const (
	SourceStartup = "startup"
	SourceDaily   = "daily"
	SourceManual  = "manual"
	SourceCLI     = "cli"
)

// AutoPostService runs auto-post passes through the write queue for every trigger.
type AutoPostService struct {
	processor Processor
	engine    *autopost.Engine
	logger    *logrus.Logger
}

func NewAutoPostService(proc Processor, engine *autopost.Engine, logger *logrus.Logger) *AutoPostService {
	return &AutoPostService{processor: proc, engine: engine, logger: logger}
}

// Run performs one pass up to referenceDate (today when zero) and returns the number of
// entries created. source only labels the log output.
func (s *AutoPostService) Run(ctx context.Context, referenceDate time.Time, source string) (int, error) {
	action := &actions.AutoPost{Engine: s.engine, ReferenceDate: referenceDate}
	if err := s.processor.Process(ctx, action); err != nil {
		s.logger.WithError(err).WithField("source", source).Error("AutoPost.Run.Error")
		return 0, err
	}

	if action.Created > 0 {
		s.logger.WithFields(logrus.Fields{
			"source":  source,
			"created": action.Created,
		}).Infof("Auto-posted %d recurring transactions (%s)", action.Created, source)
	}
	return action.Created, nil
}
