package contracts

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"spaarpot/internal/core"
)

// ErrNotFound is returned when a contract id does not resolve.
var ErrNotFound = errors.New("contract not found")

// Repository is the port for contract persistence. List returns
// contracts sorted by name under Dutch collation. Update merges the
// input into the stored contract: payment rate history is append-only,
// obligations are matched by id and never removed.
type Repository interface {
	Add(ctx context.Context, in core.NewContractInput) (core.Contract, error)
	List(ctx context.Context) ([]core.Contract, error)
	Get(ctx context.Context, id string) (core.Contract, error)
	Update(ctx context.Context, id string, in core.NewContractInput) (core.Contract, error)
}

// SortByName orders contracts by name using Dutch collation rules.
// A fresh collator per call; collate.Collator is not safe for
// concurrent use.
func SortByName(list []core.Contract) {
	c := collate.New(language.Dutch, collate.IgnoreCase)
	sort.SliceStable(list, func(i, j int) bool {
		return c.CompareString(list[i].Name, list[j].Name) < 0
	})
}
