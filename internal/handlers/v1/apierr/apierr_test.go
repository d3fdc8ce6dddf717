package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-ledger/internal/service"
)

func TestFromService(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: fmt.Errorf("%w: rule", service.ErrNotFound), status: http.StatusNotFound},
		{name: "invalid", err: fmt.Errorf("%w: bad period", service.ErrInvalid), status: http.StatusBadRequest},
		{name: "other", err: errors.New("connection reset"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var se huma.StatusError
			require.ErrorAs(t, FromService(tt.err, "failed"), &se)
			assert.Equal(t, tt.status, se.GetStatus())
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("startDate", "2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatDate(d))

	_, err = ParseDate("startDate", "29/02/2024")
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("amount", "-12.50")
	require.NoError(t, err)
	assert.Equal(t, "-12.5", d.String())

	_, err = ParseAmount("amount", "12,50")
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.GetStatus())
	assert.Contains(t, se.Error(), "invalid amount")
}
