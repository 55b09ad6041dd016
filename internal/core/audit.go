package core

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/storefront/internal/logging"
)

// AuditKind is the backend kind audit entries are stored under.
const AuditKind = "audit_log"

// AuditSeverity ranks how much an audited action changed.
type AuditSeverity string

const (
	SeverityLow    AuditSeverity = "low"
	SeverityMedium AuditSeverity = "medium"
	SeverityHigh   AuditSeverity = "high"
)

// AuditEntry records one dispatched row action.
type AuditEntry struct {
	ID         string        `json:"id"`
	List       string        `json:"list"`
	Action     string        `json:"action"`
	RowKey     string        `json:"rowKey"`
	Severity   AuditSeverity `json:"severity"`
	Outcome    string        `json:"outcome"`         // "ok" or "error"
	Error      string        `json:"error,omitempty"` // Support code of a failure
	Account    string        `json:"account,omitempty"`
	IPAddress  string        `json:"ipAddress,omitempty"`
	UserAgent  string        `json:"userAgent,omitempty"`
	DurationMS int64         `json:"durationMs"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// determineSeverity returns the severity of an action. Deletes cannot be
// undone from the UI, failures changed nothing.
func determineSeverity(action string, err error) AuditSeverity {
	switch {
	case err != nil:
		return SeverityLow
	case action == "delete":
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// newAuditEntry builds the entry for an action on list, taking client
// details from ctx.
func newAuditEntry(ctx context.Context, list, action, rowKey string, took time.Duration, err error) AuditEntry {
	e := AuditEntry{
		ID:         uuid.NewString(),
		List:       list,
		Action:     action,
		RowKey:     rowKey,
		Severity:   determineSeverity(action, err),
		Outcome:    "ok",
		Account:    GetAccountFromContext(ctx),
		IPAddress:  GetIPAddressFromContext(ctx),
		UserAgent:  GetUserAgentFromContext(ctx),
		DurationMS: took.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	if err != nil {
		e.Outcome = "error"
		e.Error = MapError(err).Code
	}
	return e
}

// recordAudit stores e. The action already happened, so a failed write is
// logged and otherwise ignored.
func (s *Service) recordAudit(ctx context.Context, e AuditEntry) {
	data, err := json.Marshal(e)
	if err == nil {
		err = s.backend.Put(ctx, AuditKind, Document{ID: e.ID, Data: data})
	}
	if err != nil {
		logging.FromContext(ctx).Error("failed to record audit entry",
			slog.String("list", e.List),
			slog.String("action", e.Action),
			slog.Any("error", err),
		)
	}
}

// AuditLog returns the most recent audit entries of list, newest first. An
// empty list returns entries of every list. limit <= 0 means no limit.
func (s *Service) AuditLog(ctx context.Context, list string, limit int) ([]AuditEntry, error) {
	if list != "" {
		if _, ok := Get(list); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownList, list)
		}
	}

	docs, err := s.backend.List(ctx, AuditKind)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", AuditKind, err)
	}

	entries := make([]AuditEntry, 0, len(docs))
	for _, d := range docs {
		e, err := DecodeDocument[AuditEntry](d)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", AuditKind, err)
		}
		if list == "" || e.List == list {
			entries = append(entries, e)
		}
	}

	// Backends list in insertion order; reversing keeps ties newest first.
	slices.Reverse(entries)
	slices.SortStableFunc(entries, func(a, b AuditEntry) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
