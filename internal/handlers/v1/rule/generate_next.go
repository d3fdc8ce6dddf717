package rule

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-ledger/internal/handlers/v1/transaction"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/service"
)

type GenerateNextOutput struct {
	Status int
	Body   transaction.Transaction
}

type nextGenerator interface {
	GenerateNext(ctx context.Context, id uuid.UUID) (*service.Transaction, error)
}

// GenerateNextHandler handles POST /v1/rule/{id}/generate-next.
type GenerateNextHandler struct {
	RuleService nextGenerator
}

func NewGenerateNextHandler(svc nextGenerator) *GenerateNextHandler {
	return &GenerateNextHandler{RuleService: svc}
}

func (h *GenerateNextHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "generate-next-occurrence",
		Method:      http.MethodPost,
		Path:        "/v1/rule/{id}/generate-next",
		Summary:     "Post the rule's next occurrence",
		Description: "Posts one entry dated at the rule's first occurrence after today, " +
			"whether or not that date was already posted.",
		Tags:          []string{"Rules"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *GenerateNextHandler) handle(ctx context.Context, input *RuleIDInput) (*GenerateNextOutput, error) {
	logData := logging.GetLogData(ctx)
	id, err := pathID(input.ID)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("generateNextMs")
	}
	tx, err := h.RuleService.GenerateNext(ctx, id)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierr.FromService(err, "failed to generate next occurrence")
	}

	if logData != nil {
		logData.AddData("transactionID", tx.ID.String())
	}
	return &GenerateNextOutput{Status: http.StatusCreated, Body: transaction.FromService(*tx)}, nil
}
