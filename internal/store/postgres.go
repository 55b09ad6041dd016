package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JonMunkholm/storefront/internal/core"
)

const (
	listDocumentsSQL = `SELECT id, data FROM catalog_records WHERE kind = $1 ORDER BY position, id`

	upsertDocumentSQL = `INSERT INTO catalog_records (kind, id, position, data)
VALUES ($1, $2, (SELECT COALESCE(MAX(position), 0) + 1 FROM catalog_records WHERE kind = $1), $3)
ON CONFLICT (kind, id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`

	deleteDocumentSQL = `DELETE FROM catalog_records WHERE kind = $1 AND id = $2`

	clearKindSQL = `DELETE FROM catalog_records WHERE kind = $1`

	insertDocumentSQL = `INSERT INTO catalog_records (kind, id, position, data) VALUES ($1, $2, $3, $4)`
)

var _ core.Backend = (*Postgres)(nil)

// Postgres is a core.Backend over the catalog_records table. Documents of a
// kind keep the order they were first written in.
type Postgres struct {
	db DBTX
}

// NewPostgres returns a backend that runs its statements on db.
func NewPostgres(db DBTX) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) List(ctx context.Context, kind string) ([]core.Document, error) {
	rows, err := p.db.Query(ctx, listDocumentsSQL, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()

	var docs []core.Document
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		docs = append(docs, core.Document{ID: id, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	return docs, nil
}

// Put inserts doc at the end of its kind or replaces the stored data in place.
func (p *Postgres) Put(ctx context.Context, kind string, doc core.Document) error {
	if _, err := p.db.Exec(ctx, upsertDocumentSQL, kind, doc.ID, string(doc.Data)); err != nil {
		return fmt.Errorf("put %s/%s: %w", kind, doc.ID, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, kind, id string) error {
	tag, err := p.db.Exec(ctx, deleteDocumentSQL, kind, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", kind, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s/%s", core.ErrRecordNotFound, kind, id)
	}
	return nil
}

// Seed replaces the stored documents of every kind in src, in one
// transaction. It returns the number of documents written.
func Seed(ctx context.Context, db DB, src *core.MemoryBackend) (int, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}

	n, err := seedKinds(ctx, tx, src)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			slog.Warn("seed rollback failed", "error", rbErr)
		}
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return n, nil
}

func seedKinds(ctx context.Context, tx DBTX, src *core.MemoryBackend) (int, error) {
	total := 0
	for _, kind := range src.Kinds() {
		docs, err := src.List(ctx, kind)
		if err != nil {
			return 0, err
		}
		if _, err := tx.Exec(ctx, clearKindSQL, kind); err != nil {
			return 0, fmt.Errorf("clear %s: %w", kind, err)
		}
		for i, doc := range docs {
			if _, err := tx.Exec(ctx, insertDocumentSQL, kind, doc.ID, i+1, string(doc.Data)); err != nil {
				return 0, fmt.Errorf("seed %s/%s: %w", kind, doc.ID, err)
			}
		}
		slog.Debug("seeded kind", "kind", kind, "documents", len(docs))
		total += len(docs)
	}
	return total, nil
}
