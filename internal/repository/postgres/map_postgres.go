package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"mapapi/internal/model"
	"mapapi/internal/repository"
)

// MapPostgres is a PostgreSQL implementation of repository.MapRepository that
// keeps the payload in the maps table itself (BYTEA column). It uses
// database/sql with parameterized queries and contains no business logic.
type MapPostgres struct {
	db *sql.DB
}

// NewMapPostgres creates a new MapPostgres repository.
func NewMapPostgres(db *sql.DB) *MapPostgres {
	return &MapPostgres{db: db}
}

var _ repository.MapRepository = (*MapPostgres)(nil)

// Save inserts a new map row in a single statement and returns the
// database-assigned id. One INSERT means the record is never partially written.
func (r *MapPostgres) Save(ctx context.Context, rec *model.MapRecord) (int64, error) {
	const q = `
		INSERT INTO maps (filename, content_type, size, data, upload_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		rec.FileName,
		rec.ContentType,
		int64(len(rec.Data)),
		rec.Data,
		rec.UploadDate,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// FindByID fetches a single map record, payload included. The maps table is
// shared with the object-storage backend, whose rows keep data NULL and point
// at the bucket via storage_key; such a row must never be served from here as
// an empty payload.
func (r *MapPostgres) FindByID(ctx context.Context, id int64) (*model.MapRecord, error) {
	const q = `
		SELECT id, filename, content_type, data, storage_key, upload_date
		FROM maps
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var rec model.MapRecord
	var storageKey sql.NullString
	if err := row.Scan(
		&rec.ID,
		&rec.FileName,
		&rec.ContentType,
		&rec.Data,
		&storageKey,
		&rec.UploadDate,
	); err != nil {
		return nil, err
	}
	if rec.Data == nil {
		if storageKey.Valid {
			return nil, fmt.Errorf("map %d payload is in object storage under %q, not inline", id, storageKey.String)
		}
		return nil, fmt.Errorf("map %d has no payload", id)
	}
	return &rec, nil
}

// List returns map metadata using LIMIT/OFFSET pagination and a total count.
// The data column is never selected here.
func (r *MapPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.MapInfo], error) {
	const qCount = `SELECT COUNT(*) FROM maps`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, filename, content_type, size, upload_date
		FROM maps
		ORDER BY upload_date DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.MapInfo, 0)
	for rows.Next() {
		var m model.MapInfo
		if err := rows.Scan(
			&m.ID,
			&m.FileName,
			&m.ContentType,
			&m.Size,
			&m.UploadDate,
		); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.MapInfo]{
		Items: items,
		Total: total,
	}, nil
}
