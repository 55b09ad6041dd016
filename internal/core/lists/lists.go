// Package lists registers every storefront list with the core registry.
// Import this package to ensure all lists are registered.
package lists

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/storefront/internal/core"
	"github.com/JonMunkholm/storefront/internal/datatable"
)

// Each file uses init() to register the lists of one dashboard group.

// ErrInvalidTransition is returned by status actions that do not apply to
// the record's current status.
var ErrInvalidTransition = errors.New("invalid status change")

// ErrNothingToRestock is returned when an item already holds its target
// stock.
var ErrNothingToRestock = errors.New("nothing to restock")

// withSort returns the default table config sorted by s.
func withSort(s datatable.SortState) datatable.Config {
	cfg := datatable.DefaultConfig()
	cfg.DefaultSort = s
	return cfg
}

// ownedBy keeps records whose owner matches the account in ctx. Without an
// account nothing is shown.
func ownedBy[R any](owner func(R) string) func(context.Context, R) bool {
	return func(ctx context.Context, r R) bool {
		account := core.GetAccountFromContext(ctx)
		return account != "" && owner(r) == account
	}
}

// transition returns an Apply function moving a status field from one of
// from to to.
func transition[R any](status func(*R) *string, to string, from ...string) func(*R) error {
	return func(r *R) error {
		s := status(r)
		for _, f := range from {
			if *s == f {
				*s = to
				return nil
			}
		}
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, *s, to)
	}
}
