package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/JonMunkholm/storefront/internal/datatable"
	"github.com/JonMunkholm/storefront/internal/i18n"
	"github.com/JonMunkholm/storefront/internal/logging"
)

// ActionTimeout is the maximum duration for a row action.
var ActionTimeout = 30 * time.Second

// Service opens registered lists against a backend and applies user
// interactions to their state. It holds no per-user state itself: every
// call takes the caller's last State and returns the next one.
type Service struct {
	backend    Backend
	accounts   map[Portal]string
	maxPerPage int
	actions    *ActionLimiter
	audit      bool
}

// Option configures a Service.
type Option func(*Service)

// WithAccount sets the account whose records the lists of portal p show.
func WithAccount(p Portal, account string) Option {
	return func(s *Service) {
		s.accounts[p] = account
	}
}

// WithMaxPerPage caps the page size a request may ask for.
func WithMaxPerPage(n int) Option {
	return func(s *Service) {
		s.maxPerPage = n
	}
}

// WithActionLimiter bounds how many row actions run at once.
func WithActionLimiter(l *ActionLimiter) Option {
	return func(s *Service) {
		s.actions = l
	}
}

// WithAuditLog records every dispatched row action in the backend under
// AuditKind.
func WithAuditLog() Option {
	return func(s *Service) {
		s.audit = true
	}
}

// NewService creates a new Service instance.
func NewService(backend Backend, opts ...Option) *Service {
	s := &Service{
		backend:  backend,
		accounts: make(map[Portal]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request identifies a list and the caller's current view of it.
type Request struct {
	List   string
	State  *datatable.State // nil for a fresh table
	Locale i18n.Locale
}

// Result is a rendered list and the state to keep for the next request.
type Result struct {
	Info  ListInfo        `json:"list"`
	View  datatable.View  `json:"view"`
	State datatable.State `json:"state"`
}

// ListLists returns information about all registered lists.
func (s *Service) ListLists() []ListInfo {
	return infos(All())
}

// ListsByPortal returns the lists of one portal.
func (s *Service) ListsByPortal(p Portal) []ListInfo {
	return infos(ByPortal(p))
}

func infos(lists []List) []ListInfo {
	out := make([]ListInfo, len(lists))
	for i, l := range lists {
		out[i] = l.Info()
	}
	return out
}

// Info returns the info of list key.
func (s *Service) Info(key string) (ListInfo, error) {
	l, ok := Get(key)
	if !ok {
		return ListInfo{}, fmt.Errorf("%w: %s", ErrUnknownList, key)
	}
	return l.Info(), nil
}

// Page applies q and renders the resulting page.
func (s *Service) Page(ctx context.Context, req Request, q Query) (Result, error) {
	return s.apply(ctx, req, func(g datatable.Grid) error {
		return q.Apply(g, s.maxPerPage)
	})
}

// Toggle flips selection of one row.
func (s *Service) Toggle(ctx context.Context, req Request, rowKey string) (Result, error) {
	return s.apply(ctx, req, func(g datatable.Grid) error {
		return g.ToggleKey(rowKey)
	})
}

// SelectAll adds the rows in scope to the selection.
func (s *Service) SelectAll(ctx context.Context, req Request, scope Scope) (Result, error) {
	return s.apply(ctx, req, func(g datatable.Grid) error {
		switch scope {
		case ScopePage:
			return g.SelectVisible()
		case ScopeAll:
			return g.SelectFiltered()
		}
		return fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	})
}

// DeselectPage removes the rows on the current page from the selection.
func (s *Service) DeselectPage(ctx context.Context, req Request) (Result, error) {
	return s.apply(ctx, req, func(g datatable.Grid) error {
		return g.DeselectVisible()
	})
}

// ClearSelection empties the selection.
func (s *Service) ClearSelection(ctx context.Context, req Request) (Result, error) {
	return s.apply(ctx, req, func(g datatable.Grid) error {
		g.ClearSelection()
		return nil
	})
}

// Dispatch runs a row action and returns the list reloaded afterwards, so
// deleted or edited records show their new state.
func (s *Service) Dispatch(ctx context.Context, req Request, action, rowKey string) (Result, error) {
	l, ctx, err := s.open(ctx, req.List)
	if err != nil {
		return Result{}, err
	}

	log := logging.WithFields(ctx, "list", req.List, "action", action, "row", rowKey)

	g, err := l.Open(ctx, s.backend, req.State, req.Locale)
	if err != nil {
		return Result{}, err
	}

	if s.actions != nil {
		if err := s.actions.Acquire(ctx); err != nil {
			log.Warn("row action rejected", slog.Any("error", err))
			return Result{}, err
		}
		defer s.actions.Release()
	}

	actx, cancel := context.WithTimeout(ctx, ActionTimeout)
	defer cancel()

	start := time.Now()
	err = g.DispatchKey(actx, action, rowKey)
	took := time.Since(start)
	if s.audit {
		s.recordAudit(ctx, newAuditEntry(ctx, req.List, action, rowKey, took, err))
	}
	if err != nil {
		log.Warn("row action failed", slog.Any("error", err))
		return Result{}, err
	}
	log.Info("row action completed",
		slog.Duration("duration", took),
		slog.String("ip", GetIPAddressFromContext(ctx)),
	)

	st := g.State()
	return s.render(ctx, l, Request{List: req.List, State: &st, Locale: req.Locale})
}

// Export writes every filtered row of the list as CSV.
func (s *Service) Export(ctx context.Context, req Request, w io.Writer) error {
	l, ctx, err := s.open(ctx, req.List)
	if err != nil {
		return err
	}
	g, err := l.Open(ctx, s.backend, req.State, req.Locale)
	if err != nil {
		return err
	}
	return g.WriteCSV(w)
}

// WaitForActions blocks until running row actions finish or ctx ends.
// Without an action limiter it returns immediately.
func (s *Service) WaitForActions(ctx context.Context) error {
	if s.actions == nil {
		return nil
	}
	return s.actions.Drain(ctx)
}

func (s *Service) apply(ctx context.Context, req Request, fn func(datatable.Grid) error) (Result, error) {
	l, ctx, err := s.open(ctx, req.List)
	if err != nil {
		return Result{}, err
	}

	g, err := l.Open(ctx, s.backend, req.State, req.Locale)
	if err != nil {
		return Result{}, err
	}
	if err := fn(g); err != nil {
		return Result{}, err
	}
	return Result{Info: l.Info(), View: g.View(), State: g.State()}, nil
}

func (s *Service) render(ctx context.Context, l List, req Request) (Result, error) {
	g, err := l.Open(ctx, s.backend, req.State, req.Locale)
	if err != nil {
		return Result{}, err
	}
	return Result{Info: l.Info(), View: g.View(), State: g.State()}, nil
}

// open resolves a list and scopes ctx to its portal's account.
func (s *Service) open(ctx context.Context, key string) (List, context.Context, error) {
	l, ok := Get(key)
	if !ok {
		return nil, ctx, fmt.Errorf("%w: %s", ErrUnknownList, key)
	}
	if account, ok := s.accounts[l.Info().Portal]; ok {
		ctx = ContextWithAccount(ctx, account)
	}
	return l, ctx, nil
}
