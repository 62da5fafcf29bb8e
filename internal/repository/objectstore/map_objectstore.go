// Package objectstore implements repository.MapRepository with map metadata
// in Postgres and payload bytes in an S3-compatible bucket.
package objectstore

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/google/uuid"

	"mapapi/internal/model"
	"mapapi/internal/repository"
	"mapapi/internal/repository/postgres"
	"mapapi/internal/storage"
)

// MapObjectStore splits a map record between the maps table (metadata) and an
// object store (payload). The object is written first; a failed metadata
// insert rolls the object back, so a record is never observable half-written.
type MapObjectStore struct {
	db    *sql.DB
	meta  *postgres.MapPostgres
	store storage.Storage
}

// NewMapObjectStore creates a repository backed by Postgres metadata and the
// given object storage.
func NewMapObjectStore(db *sql.DB, store storage.Storage) *MapObjectStore {
	return &MapObjectStore{db: db, meta: postgres.NewMapPostgres(db), store: store}
}

var _ repository.MapRepository = (*MapObjectStore)(nil)

// Save uploads the payload under a fresh object key, then inserts the metadata
// row. Distinct uuid keys keep concurrent saves from ever colliding.
func (r *MapObjectStore) Save(ctx context.Context, rec *model.MapRecord) (int64, error) {
	key := "maps/" + uuid.NewString()

	_, err := r.store.Put(ctx, key, bytes.NewReader(rec.Data), storage.PutObjectOptions{
		Size:        int64(len(rec.Data)),
		ContentType: rec.ContentType,
		Metadata: map[string]string{
			"original-filename": rec.FileName,
		},
	})
	if err != nil {
		return 0, fmt.Errorf("put payload: %w", err)
	}

	const q = `
		INSERT INTO maps (filename, content_type, size, storage_key, upload_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err = r.db.QueryRowContext(ctx, q,
		rec.FileName,
		rec.ContentType,
		int64(len(rec.Data)),
		key,
		rec.UploadDate,
	).Scan(&id)
	if err != nil {
		if delErr := r.store.Delete(ctx, key); delErr != nil {
			return 0, fmt.Errorf("insert metadata: %v; rollback delete failed: %v", err, delErr)
		}
		return 0, fmt.Errorf("insert metadata: %w", err)
	}
	return id, nil
}

// FindByID loads the metadata row, then reads the object fully into memory so
// the caller always sees the complete payload.
func (r *MapObjectStore) FindByID(ctx context.Context, id int64) (*model.MapRecord, error) {
	const q = `
		SELECT id, filename, content_type, storage_key, upload_date
		FROM maps
		WHERE id = $1
	`
	var rec model.MapRecord
	var key sql.NullString
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rec.ID,
		&rec.FileName,
		&rec.ContentType,
		&key,
		&rec.UploadDate,
	); err != nil {
		return nil, err
	}
	// Rows written by the inline-payload backend carry no storage key.
	if !key.Valid {
		return nil, fmt.Errorf("map %d payload is stored inline, not in object storage", id)
	}

	obj, _, err := r.store.Get(ctx, key.String)
	if err != nil {
		return nil, fmt.Errorf("get payload: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	rec.Data = data
	return &rec, nil
}

// List is metadata-only, so it delegates to the Postgres repository.
func (r *MapObjectStore) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.MapInfo], error) {
	return r.meta.List(ctx, pq)
}
