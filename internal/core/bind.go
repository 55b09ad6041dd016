package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JonMunkholm/storefront/internal/datatable"
	"github.com/JonMunkholm/storefront/internal/i18n"
)

// ActionFactory builds a row action bound to the backend a list was opened
// against.
type ActionFactory[R any] func(backend Backend, kind string) datatable.Action[R]

// Definition describes a list over records of type R.
type Definition[R datatable.Record[ID], ID comparable] struct {
	Info    ListInfo
	Columns []datatable.Column[R]
	Config  datatable.Config
	Actions []ActionFactory[R]

	// Where keeps only matching records, e.g. the orders of one seller.
	// The account from ContextWithAccount is available through ctx.
	Where func(ctx context.Context, r R) bool
}

type boundList[R datatable.Record[ID], ID comparable] struct {
	def Definition[R, ID]
}

// Bind validates def and returns it as a List.
func Bind[R datatable.Record[ID], ID comparable](def Definition[R, ID]) (List, error) {
	if strings.TrimSpace(def.Info.Key) == "" {
		return nil, fmt.Errorf("%w: list has no key", datatable.ErrInvalidConfig)
	}
	if def.Info.Kind == "" {
		def.Info.Kind = def.Info.Key
	}
	if _, err := ParsePortal(string(def.Info.Portal)); err != nil {
		return nil, fmt.Errorf("list %s: %w", def.Info.Key, err)
	}

	// Building an empty table runs every column and action check up front.
	actions := make([]datatable.Action[R], len(def.Actions))
	for i, f := range def.Actions {
		actions[i] = f(nil, def.Info.Kind)
	}
	if _, err := datatable.New[R, ID](nil, def.Columns, def.Config, actions...); err != nil {
		return nil, fmt.Errorf("list %s: %w", def.Info.Key, err)
	}

	return &boundList[R, ID]{def: def}, nil
}

// MustBind is like Bind but panics on an invalid definition. It is meant
// for init-time registration.
func MustBind[R datatable.Record[ID], ID comparable](def Definition[R, ID]) List {
	l, err := Bind(def)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *boundList[R, ID]) Info() ListInfo {
	return l.def.Info
}

func (l *boundList[R, ID]) Open(ctx context.Context, backend Backend, st *datatable.State, locale i18n.Locale) (datatable.Grid, error) {
	kind := l.def.Info.Kind

	docs, err := backend.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kind, err)
	}

	records := make([]R, 0, len(docs))
	for _, doc := range docs {
		r, err := DecodeDocument[R](doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		if l.def.Where != nil && !l.def.Where(ctx, r) {
			continue
		}
		records = append(records, r)
	}

	actions := make([]datatable.Action[R], len(l.def.Actions))
	for i, f := range l.def.Actions {
		actions[i] = f(backend, kind)
	}

	cfg := l.def.Config
	cfg.Locale = locale

	tbl, err := datatable.New[R, ID](records, l.def.Columns, cfg, actions...)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.def.Info.Key, err)
	}
	if st != nil {
		tbl.Restore(*st)
	}
	return tbl, nil
}

// DecodeDocument unmarshals a document into a record.
func DecodeDocument[R any](doc Document) (R, error) {
	var r R
	if err := json.Unmarshal(doc.Data, &r); err != nil {
		return r, fmt.Errorf("decode document %s: %w", doc.ID, err)
	}
	return r, nil
}

// EncodeDocument marshals a record into a document keyed by its id.
func EncodeDocument[R datatable.Record[ID], ID comparable](r R) (Document, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return Document{}, fmt.Errorf("encode document %s: %w", datatable.KeyOf(r.RecordID()), err)
	}
	return Document{ID: datatable.KeyOf(r.RecordID()), Data: data}, nil
}

// DeleteAction removes the record's document from the backend.
func DeleteAction[R datatable.Record[ID], ID comparable]() ActionFactory[R] {
	return func(backend Backend, kind string) datatable.Action[R] {
		return datatable.Action[R]{
			Name:    "delete",
			Label:   i18n.T("Delete", "حذف"),
			Icon:    "trash",
			Color:   "danger",
			Confirm: i18n.T("Delete this record? This cannot be undone.", "هل تريد حذف هذا السجل؟ لا يمكن التراجع عن ذلك."),
			OnClick: func(ctx context.Context, r R) error {
				return backend.Delete(ctx, kind, datatable.KeyOf(r.RecordID()))
			},
		}
	}
}

// Update describes an action that edits a record in place.
type Update[R any] struct {
	Name    string
	Label   i18n.Text
	Icon    string
	Color   string
	Confirm i18n.Text

	// Apply edits the copy of the record that is written back.
	Apply func(r *R) error
}

// UpdateAction applies u to a copy of the record and stores the result.
func UpdateAction[R datatable.Record[ID], ID comparable](u Update[R]) ActionFactory[R] {
	return func(backend Backend, kind string) datatable.Action[R] {
		return datatable.Action[R]{
			Name:    u.Name,
			Label:   u.Label,
			Icon:    u.Icon,
			Color:   u.Color,
			Confirm: u.Confirm,
			OnClick: func(ctx context.Context, r R) error {
				if err := u.Apply(&r); err != nil {
					return err
				}
				doc, err := EncodeDocument[R, ID](r)
				if err != nil {
					return err
				}
				return backend.Put(ctx, kind, doc)
			},
		}
	}
}
