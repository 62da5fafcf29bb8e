package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"mapapi/internal/model"
	"mapapi/internal/repository"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("map not found")
	ErrReaderNil  = errors.New("reader is nil")
)

// MapListResult is the service-level DTO for paginated map metadata.
type MapListResult struct {
	Items []model.MapInfo `json:"data"`
	Total int             `json:"total"`
}

// MapService defines the use cases for handling stored maps.
type MapService interface {
	// SaveMap reads the payload fully, stamps the upload date with the server
	// clock, and persists the record. Returns the assigned id.
	SaveMap(ctx context.Context, fileName, contentType string, r io.Reader) (int64, error)

	// FindMap returns a stored map by id, payload included.
	FindMap(ctx context.Context, id int64) (*model.MapRecord, error)

	// ListMaps returns map metadata using limit/offset and a total count.
	ListMaps(ctx context.Context, limit, offset int) (*MapListResult, error)
}

// mapService is a concrete implementation of MapService.
// The clock is a field so tests can pin the upload date.
type mapService struct {
	repo repository.MapRepository
	now  func() time.Time
}

// NewMapService constructs a new MapService.
func NewMapService(repo repository.MapRepository) MapService {
	return &mapService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// SaveMap never trusts a client-supplied timestamp: UploadDate is always the
// server's current time at the moment of persistence. A failure to read the
// incoming stream surfaces before anything is written.
func (s *mapService) SaveMap(ctx context.Context, fileName, contentType string, r io.Reader) (int64, error) {
	if r == nil {
		return 0, ErrReaderNil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read upload: %w", err)
	}

	rec := &model.MapRecord{
		FileName:    fileName,
		ContentType: contentType,
		Data:        data,
		UploadDate:  s.now(),
	}
	id, err := s.repo.Save(ctx, rec)
	if err != nil {
		return 0, fmt.Errorf("save map: %w", err)
	}
	return id, nil
}

// FindMap is pure delegation; the repository's "no rows" is translated to the
// service-level ErrNotFound so callers never see database/sql.
func (s *mapService) FindMap(ctx context.Context, id int64) (*model.MapRecord, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// ListMaps returns paginated metadata without exposing repository types.
func (s *mapService) ListMaps(ctx context.Context, limit, offset int) (*MapListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &MapListResult{Items: res.Items, Total: res.Total}, nil
}
