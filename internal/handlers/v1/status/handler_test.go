package status

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/finance-ledger/internal/logging"
)

type fakeDB struct {
	err error
}

func (f fakeDB) Ping(context.Context) error {
	return f.err
}

func createTestLogData() *logging.LogData {
	logger := logging.SetupLogging("error")
	return logging.NewLogData(logger)
}

func TestHandler_GoodMethod(t *testing.T) {
	statusHandler := NewHandler(fakeDB{})
	req := httptest.NewRequest(http.MethodGet, "/status", nil)

	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.NoError(t, err)

	res := w.Result()
	assert.Equal(t, 200, res.StatusCode)
}

func TestHandler_BadMethod(t *testing.T) {
	statusHandler := NewHandler(fakeDB{})
	req := httptest.NewRequest(http.MethodPost, "/status", nil)
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.Error(t, err)

	res := w.Result()
	assert.Equal(t, 400, res.StatusCode)
}

func TestHandler_DatabaseDown(t *testing.T) {
	statusHandler := NewHandler(fakeDB{err: errors.New("connection refused")})
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.ErrorContains(t, err, "connection refused")

	res := w.Result()
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
}
