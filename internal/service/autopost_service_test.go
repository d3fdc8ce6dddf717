package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-ledger/internal/autopost"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/operator/actions"
	"github.com/carson-networks/finance-ledger/internal/schedule"
)

func TestAutoPostRun_LogsCreatedCount(t *testing.T) {
	logger := logging.SetupLogging("info")
	buf := &bytes.Buffer{}
	logger.Out = buf
	proc := &mockProcessor{}
	ref := schedule.Date(2024, 3, 15)

	proc.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.AutoPost) bool {
		return a.ReferenceDate.Equal(ref)
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.AutoPost).Created = 3
	}).Return(nil)

	svc := NewAutoPostService(proc, autopost.NewEngine(autopost.Config{}, logger), logger)
	created, err := svc.Run(context.Background(), ref, SourceDaily)

	require.NoError(t, err)
	assert.Equal(t, 3, created)
	assert.Contains(t, buf.String(), "Auto-posted 3 recurring transactions (daily)")
	proc.AssertExpectations(t)
}

func TestAutoPostRun_NothingDueIsQuiet(t *testing.T) {
	logger := logging.SetupLogging("info")
	buf := &bytes.Buffer{}
	logger.Out = buf
	proc := &mockProcessor{}
	proc.On("Process", mock.Anything, mock.Anything).Return(nil)

	svc := NewAutoPostService(proc, autopost.NewEngine(autopost.Config{}, logger), logger)
	created, err := svc.Run(context.Background(), time.Time{}, SourceStartup)

	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Empty(t, buf.String())
}

func TestAutoPostRun_Error(t *testing.T) {
	logger := logging.SetupLogging("info")
	buf := &bytes.Buffer{}
	logger.Out = buf
	proc := &mockProcessor{}
	proc.On("Process", mock.Anything, mock.Anything).Return(errors.New("lock timeout"))

	svc := NewAutoPostService(proc, autopost.NewEngine(autopost.Config{}, logger), logger)
	created, err := svc.Run(context.Background(), time.Time{}, SourceManual)

	assert.EqualError(t, err, "lock timeout")
	assert.Zero(t, created)
	assert.Contains(t, buf.String(), "AutoPost.Run.Error")
}
