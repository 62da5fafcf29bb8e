// Package repository contains data access for stored maps.
// Implementations live in subpackages (postgres, objectstore); no business
// logic belongs here, strictly persistence operations.
package repository

import (
	"context"

	"mapapi/internal/model"
)

// MapRepository defines keyed storage for map records.
//
// A record is either fully present or absent: Save persists metadata and
// payload atomically (or rolls back), and FindByID always returns the complete
// payload, never a truncated one.
type MapRepository interface {
	// Save stores a new map record and returns the assigned id.
	// The id on the passed record is ignored; the store generates it.
	Save(ctx context.Context, rec *model.MapRecord) (int64, error)

	// FindByID returns the record with its full payload.
	// Absent ids surface as sql.ErrNoRows.
	FindByID(ctx context.Context, id int64) (*model.MapRecord, error)

	// List returns a metadata page (no payload bytes) and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.MapInfo], error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
