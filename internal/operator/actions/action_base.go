package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-ledger/internal/storage"
)

var (
	// ErrNotFound means the record the action targets does not exist.
	ErrNotFound = errors.New("not found")
	// ErrMissingReference means the action points another record at one that does not exist.
	ErrMissingReference = errors.New("referenced record does not exist")
)

// IAction is a unit of write work. Perform runs inside a single database transaction that
// is committed when it returns nil and rolled back otherwise.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

func notFound(kind string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

func missingReference(kind string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrMissingReference)
}
