package store

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/JonMunkholm/storefront/internal/core"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func expectationsMet(t *testing.T, mock pgxmock.PgxPoolIface) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// =============================================================================
// Backend Tests
// =============================================================================

func TestPostgres_List(t *testing.T) {
	mock := newMock(t)
	rows := mock.NewRows([]string{"id", "data"}).
		AddRow("1", []byte(`{"id":1,"name":"sale"}`)).
		AddRow("2", []byte(`{"id":2,"name":"new"}`))
	mock.ExpectQuery(regexp.QuoteMeta(listDocumentsSQL)).
		WithArgs("tags").
		WillReturnRows(rows)

	docs, err := NewPostgres(mock).List(context.Background(), "tags")
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []core.Document{
		{ID: "1", Data: json.RawMessage(`{"id":1,"name":"sale"}`)},
		{ID: "2", Data: json.RawMessage(`{"id":2,"name":"new"}`)},
	}
	if diff := cmp.Diff(want, docs); diff != "" {
		t.Errorf("List (-want +got):\n%s", diff)
	}
	expectationsMet(t, mock)
}

func TestPostgres_ListError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(listDocumentsSQL)).
		WithArgs("tags").
		WillReturnError(errors.New("connection reset"))

	_, err := NewPostgres(mock).List(context.Background(), "tags")
	if err == nil {
		t.Fatal("expected error")
	}
	expectationsMet(t, mock)
}

func TestPostgres_Put(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta(upsertDocumentSQL)).
		WithArgs("tags", "3", `{"id":3}`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := NewPostgres(mock).Put(context.Background(), "tags", core.Document{ID: "3", Data: json.RawMessage(`{"id":3}`)})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	expectationsMet(t, mock)
}

func TestPostgres_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{"existing document", 1, nil},
		{"missing document", 0, core.ErrRecordNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			mock.ExpectExec(regexp.QuoteMeta(deleteDocumentSQL)).
				WithArgs("tags", "9").
				WillReturnResult(pgxmock.NewResult("DELETE", tt.affected))

			err := NewPostgres(mock).Delete(context.Background(), "tags", "9")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Delete error = %v, want %v", err, tt.wantErr)
			}
			expectationsMet(t, mock)
		})
	}
}

// =============================================================================
// Seed Tests
// =============================================================================

func seedSource() *core.MemoryBackend {
	src := core.NewMemoryBackend()
	src.Load("tags", []core.Document{
		{ID: "1", Data: json.RawMessage(`{"id":1}`)},
		{ID: "2", Data: json.RawMessage(`{"id":2}`)},
	})
	src.Load("faqs", []core.Document{
		{ID: "7", Data: json.RawMessage(`{"id":7}`)},
	})
	return src
}

func TestSeed(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	// Kinds are seeded in sorted order.
	mock.ExpectExec(regexp.QuoteMeta(clearKindSQL)).WithArgs("faqs").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(regexp.QuoteMeta(insertDocumentSQL)).WithArgs("faqs", "7", 1, `{"id":7}`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta(clearKindSQL)).WithArgs("tags").
		WillReturnResult(pgxmock.NewResult("DELETE", 4))
	mock.ExpectExec(regexp.QuoteMeta(insertDocumentSQL)).WithArgs("tags", "1", 1, `{"id":1}`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta(insertDocumentSQL)).WithArgs("tags", "2", 2, `{"id":2}`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	n, err := Seed(context.Background(), mock, seedSource())
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 documents seeded, got %d", n)
	}
	expectationsMet(t, mock)
}

func TestSeed_RollsBackOnError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(clearKindSQL)).WithArgs("faqs").
		WillReturnError(errors.New("relation does not exist"))
	mock.ExpectRollback()

	if _, err := Seed(context.Background(), mock, seedSource()); err == nil {
		t.Fatal("expected error")
	}
	expectationsMet(t, mock)
}
