// Package apierr turns service errors into huma status errors.
package apierr

import (
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-ledger/internal/service"
)

// FromService maps ErrNotFound to 404 and ErrInvalid to 400. Anything else is a 500 with
// msg as the detail.
func FromService(err error, msg string) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return huma.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalid):
		return huma.NewError(http.StatusBadRequest, err.Error())
	}
	return huma.NewError(http.StatusInternalServerError, msg, err)
}

// ParseDate reads a YYYY-MM-DD calendar date. field names the input in the error.
func ParseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return d, nil
}

// ParseAmount reads a decimal money amount. field names the input in the error.
func ParseAmount(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return d, nil
}

// FormatDate is the inverse of ParseDate.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
