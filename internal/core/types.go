package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/JonMunkholm/storefront/internal/datatable"
	"github.com/JonMunkholm/storefront/internal/i18n"
)

var (
	ErrUnknownList    = errors.New("unknown list")
	ErrUnknownPortal  = errors.New("unknown portal")
	ErrRecordNotFound = errors.New("record not found")
	ErrInvalidScope   = errors.New("invalid selection scope")
)

// Portal is one of the three back-office surfaces.
type Portal string

const (
	PortalAdmin    Portal = "admin"
	PortalSeller   Portal = "seller"
	PortalCustomer Portal = "customer"
)

// portalOrder lists portals in display order.
var portalOrder = []Portal{PortalAdmin, PortalSeller, PortalCustomer}

// ParsePortal validates a portal name.
func ParsePortal(s string) (Portal, error) {
	for _, p := range portalOrder {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPortal, s)
}

// Label returns the localized portal name.
func (p Portal) Label() i18n.Text {
	return i18n.T(
		i18n.Lookup(i18n.English, "portal."+string(p)),
		i18n.Lookup(i18n.Arabic, "portal."+string(p)),
	)
}

// ListInfo contains display information about a list.
type ListInfo struct {
	Key    string    `json:"key"`    // Unique identifier: "discounts"
	Kind   string    `json:"kind"`   // Backend document kind: "discounts"
	Portal Portal    `json:"portal"` // Owning portal
	Group  i18n.Text `json:"group"`  // Dashboard section: "Marketing"
	Label  i18n.Text `json:"label"`  // Display name: "Discounts"
}

// List is a registered list page. Open loads the list's records from a
// backend and returns a table with state restored.
type List interface {
	Info() ListInfo
	Open(ctx context.Context, backend Backend, st *datatable.State, locale i18n.Locale) (datatable.Grid, error)
}

// Document is one stored record in its JSON form.
type Document struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

// Backend stores documents grouped by kind. List returns documents in their
// stored order.
type Backend interface {
	List(ctx context.Context, kind string) ([]Document, error)
	Put(ctx context.Context, kind string, doc Document) error
	Delete(ctx context.Context, kind, id string) error
}

// Scope selects which records SelectAll adds to the selection.
type Scope string

const (
	ScopePage Scope = "page" // Records on the current page
	ScopeAll  Scope = "all"  // Every record passing the active filters
)

// ParseScope validates a selection scope. Empty means ScopePage.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopePage:
		return ScopePage, nil
	case ScopeAll:
		return ScopeAll, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidScope, s)
}
