package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger() (*logrus.Logger, *bytes.Buffer) {
	logger := SetupLogging("debug")
	buf := &bytes.Buffer{}
	logger.Out = buf
	return logger, buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestSetupLogging_Level(t *testing.T) {
	assert.Equal(t, logrus.WarnLevel, SetupLogging("warn").Level)
	assert.Equal(t, logrus.InfoLevel, SetupLogging("nonsense").Level)
}

func TestLogData_FieldsAndTimings(t *testing.T) {
	logger, buf := newBufferedLogger()
	logData := NewLogData(logger)

	stop := logData.AddTiming("queryMs")
	stop()
	logData.AddData("ruleID", "abc")
	logData.Log().Info("done")

	entry := lastLine(t, buf)
	assert.Equal(t, "info", entry["loglevel"])
	assert.Equal(t, "abc", entry["ruleID"])
	assert.Contains(t, entry, "queryMs")
}

func TestGetLogData(t *testing.T) {
	logger, _ := newBufferedLogger()
	logData := NewLogData(logger)

	assert.Nil(t, GetLogData(context.Background()))
	assert.Same(t, logData, GetLogData(WithLogData(context.Background(), logData)))
}

func TestLoggingWrapper_Error(t *testing.T) {
	logger, buf := newBufferedLogger()
	handler := LoggingWrapper("Status", logger, func(w http.ResponseWriter, _ *http.Request, _ *LogData) error {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("bad method")
	})

	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/status", nil))

	entry := lastLine(t, buf)
	assert.Equal(t, "Handler.Status.Error", entry["msg"])
	assert.Equal(t, "bad method", entry["error"])
}

func TestLoggingWrapper_Complete(t *testing.T) {
	logger, buf := newBufferedLogger()
	handler := LoggingWrapper("Status", logger, func(w http.ResponseWriter, _ *http.Request, _ *LogData) error {
		w.WriteHeader(http.StatusOK)
		return nil
	})

	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status", nil))

	entry := lastLine(t, buf)
	assert.Equal(t, "Handler.Status.Complete", entry["msg"])
	assert.Contains(t, entry, "duration")
}
