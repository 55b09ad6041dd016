package datatable

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/storefront/internal/i18n"
)

// Action is a per-row operation shown next to every record. OnClick receives
// the full record; its error is returned to the caller unchanged.
type Action[R any] struct {
	Name    string    // Stable identifier used for dispatch
	Label   i18n.Text // Tooltip / accessible label
	Icon    string
	Color   string    // Renderer hint, e.g. "danger"
	Confirm i18n.Text // Optional confirmation prompt
	OnClick func(ctx context.Context, record R) error
}

func indexActions[R any](actions []Action[R]) (map[string]int, error) {
	byName := make(map[string]int, len(actions))
	for i, a := range actions {
		if strings.TrimSpace(a.Name) == "" {
			return nil, fmt.Errorf("%w: action %d has no name", ErrInvalidAction, i)
		}
		if a.OnClick == nil {
			return nil, fmt.Errorf("%w: action %q has no callback", ErrInvalidAction, a.Name)
		}
		if _, dup := byName[a.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate action %q", ErrInvalidAction, a.Name)
		}
		byName[a.Name] = i
	}
	return byName, nil
}
