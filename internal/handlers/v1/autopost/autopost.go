// Package autopost exposes the manual auto-post trigger.
package autopost

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/service"
)

type RunAutoPostBody struct {
	ReferenceDate string `json:"referenceDate,omitempty" doc:"Post occurrences due up to this date (YYYY-MM-DD), defaults to today"`
}

type RunAutoPostInput struct {
	Body *RunAutoPostBody `required:"false"`
}

type RunAutoPostOutput struct {
	Body struct {
		Created int `json:"created" doc:"Number of entries posted"`
	}
}

type autoPostRunner interface {
	Run(ctx context.Context, referenceDate time.Time, source string) (int, error)
}

// Handler handles POST /v1/autopost.
type Handler struct {
	AutoPostService autoPostRunner
}

func NewHandler(svc autoPostRunner) *Handler {
	return &Handler{AutoPostService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "run-autopost",
		Method:      http.MethodPost,
		Path:        "/v1/autopost",
		Summary:     "Post due recurring transactions",
		Description: "Runs one auto-post pass. Every due occurrence of every auto-post rule that has " +
			"not been posted yet is posted; running it again posts nothing new.",
		Tags: []string{"Rules"},
	}, h.handle)
}

func (h *Handler) handle(ctx context.Context, input *RunAutoPostInput) (*RunAutoPostOutput, error) {
	logData := logging.GetLogData(ctx)

	var referenceDate time.Time
	if input.Body != nil && input.Body.ReferenceDate != "" {
		var err error
		if referenceDate, err = apierr.ParseDate("referenceDate", input.Body.ReferenceDate); err != nil {
			return nil, err
		}
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("autoPostMs")
	}
	created, err := h.AutoPostService.Run(ctx, referenceDate, service.SourceManual)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierr.FromService(err, "auto-post failed")
	}

	if logData != nil {
		logData.AddData("created", created)
	}

	out := &RunAutoPostOutput{}
	out.Body.Created = created
	return out, nil
}
