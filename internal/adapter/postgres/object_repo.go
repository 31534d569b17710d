package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mehmetymw/notion-go/internal/port"
	"github.com/mehmetymw/notion-go/pkg/circuitbreaker"
	"github.com/mehmetymw/notion-go/pkg/notion"
)

var _ port.ObjectStore = (*ObjectRepo)(nil)

// ObjectRepo stores workspace objects as JSONB rows. Writes go through a
// circuit breaker so a dead database fails requests fast.
type ObjectRepo struct {
	db      *sqlx.DB
	breaker *circuitbreaker.Breaker
}

func NewObjectRepo(db *sqlx.DB) *ObjectRepo {
	return &ObjectRepo{
		db:      db,
		breaker: circuitbreaker.New("workspace_objects", 5, 30*time.Second),
	}
}

// BreakerState reports the write breaker's state.
func (r *ObjectRepo) BreakerState() string {
	return r.breaker.State()
}

type objectRow struct {
	ID         string `db:"id"`
	ObjectType string `db:"object_type"`
	Data       []byte `db:"data"`
}

// Save upserts recs in one transaction. An update keeps the row's original
// position.
func (r *ObjectRepo) Save(ctx context.Context, recs ...port.ObjectRecord) error {
	if len(recs) == 0 {
		return nil
	}

	return r.breaker.Do(func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		for _, rec := range recs {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO workspace_objects (id, object_type, data)
				VALUES ($1, $2, $3)
				ON CONFLICT (id) DO UPDATE SET object_type = EXCLUDED.object_type, data = EXCLUDED.data, updated_at = NOW()`,
				rec.ID, string(rec.Type), string(rec.Data),
			)
			if err != nil {
				return fmt.Errorf("save %s %s: %w", rec.Type, rec.ID, err)
			}
		}
		return tx.Commit()
	})
}

func (r *ObjectRepo) LoadAll(ctx context.Context) ([]port.ObjectRecord, error) {
	var rows []objectRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, object_type, data FROM workspace_objects ORDER BY seq`)
	if err != nil {
		return nil, err
	}

	recs := make([]port.ObjectRecord, len(rows))
	for i, row := range rows {
		recs[i] = port.ObjectRecord{
			ID:   row.ID,
			Type: notion.ObjectType(row.ObjectType),
			Data: row.Data,
		}
	}
	return recs, nil
}
