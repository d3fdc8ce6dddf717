package category

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

const tableName = "categories"

var columns = []any{"id", "name", "kind", "fixed_cost", "created_at"}

// Kind says whether a category collects inflows or outflows.
type Kind string

const (
	KindIncome  Kind = "INCOME"
	KindExpense Kind = "EXPENSE"
)

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	if k != KindIncome && k != KindExpense {
		return "", fmt.Errorf("invalid category kind %q", s)
	}
	return k, nil
}

// Category represents a category record.
type Category struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Kind      Kind      `db:"kind"`
	FixedCost bool      `db:"fixed_cost"`
	CreatedAt time.Time `db:"created_at"`
}

// CategoryCreate is the input for creating a new category.
type CategoryCreate struct {
	Name      string
	Kind      Kind
	FixedCost bool
}
