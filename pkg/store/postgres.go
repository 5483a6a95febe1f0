package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"chatpoker-server/pkg/table"
	"github.com/lib/pq"
)

const pqUndefinedTableErrorCode pq.ErrorCode = "42P01"

// ErrNotMigrated happens when the tables table does not exist
var ErrNotMigrated = errors.New("the database has not been migrated")

// Postgres keeps snapshots as JSONB in the `tables` table
type Postgres struct {
	db *sql.DB
}

var _ table.Store = (*Postgres)(nil)

// NewPostgres returns a store backed by the database
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Load implements table.Store
func (p *Postgres) Load(ctx context.Context, id string) (*table.Snapshot, error) {
	const query = `SELECT data FROM tables WHERE id = $1`

	var data []byte
	if err := p.db.QueryRowContext(ctx, query, id).Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, table.ErrSnapshotNotFound
		}

		return nil, wrapError(err)
	}

	return decode(data)
}

// CreateOrLoad implements table.Store
func (p *Postgres) CreateOrLoad(ctx context.Context, id string) (*table.Snapshot, error) {
	const query = `
INSERT INTO tables (id, data)
VALUES ($1, $2)
ON CONFLICT (id) DO NOTHING`

	data, err := json.Marshal(table.NewSnapshot(id))
	if err != nil {
		return nil, err
	}

	if _, err := p.db.ExecContext(ctx, query, id, data); err != nil {
		return nil, wrapError(err)
	}

	return p.Load(ctx, id)
}

// Save implements table.Store
func (p *Postgres) Save(ctx context.Context, snapshot *table.Snapshot) error {
	const query = `
INSERT INTO tables (id, data, deals_count)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE
SET data = excluded.data,
    deals_count = excluded.deals_count,
    updated = NOW()`

	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	_, err = p.db.ExecContext(ctx, query, snapshot.ID, data, snapshot.DealsCount)
	return wrapError(err)
}

// Delete implements table.Store
func (p *Postgres) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tables WHERE id = $1`

	_, err := p.db.ExecContext(ctx, query, id)
	return wrapError(err)
}

// List returns the ids of every stored table, most recently updated first
func (p *Postgres) List(ctx context.Context) ([]string, error) {
	const query = `SELECT id FROM tables ORDER BY updated DESC, id`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapError(err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func wrapError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUndefinedTableErrorCode {
		return ErrNotMigrated
	}

	return err
}
