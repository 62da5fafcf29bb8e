package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"mapapi/internal/model"
	"mapapi/internal/repository"
	repoMocks "mapapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("stream broken") }

func TestMapService_SaveMap(t *testing.T) {
	ctx := context.Background()
	fixedNow := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name        string
		fileName    string
		contentType string
		reader      io.Reader
		setupMocks  func(mRepo *repoMocks.MockMapRepository)
		wantID      int64
		wantErr     error
		wantErrMsg  string
	}{
		{
			name:        "happy path stamps server time",
			fileName:    "city.png",
			contentType: "image/png",
			reader:      strings.NewReader("map payload"),
			setupMocks: func(mRepo *repoMocks.MockMapRepository) {
				mRepo.On("Save", ctx, mock.MatchedBy(func(rec *model.MapRecord) bool {
					return rec.FileName == "city.png" &&
						rec.ContentType == "image/png" &&
						string(rec.Data) == "map payload" &&
						rec.UploadDate.Equal(fixedNow)
				})).Return(int64(17), nil)
			},
			wantID: 17,
		},
		{
			name:       "nil reader",
			fileName:   "city.png",
			reader:     nil,
			setupMocks: func(mRepo *repoMocks.MockMapRepository) {},
			wantErr:    ErrReaderNil,
		},
		{
			name:       "reader failure surfaces before persistence",
			fileName:   "city.png",
			reader:     failingReader{},
			setupMocks: func(mRepo *repoMocks.MockMapRepository) {},
			wantErrMsg: "read upload: stream broken",
		},
		{
			name:        "repository failure",
			fileName:    "city.png",
			contentType: "image/png",
			reader:      strings.NewReader("bytes"),
			setupMocks: func(mRepo *repoMocks.MockMapRepository) {
				mRepo.On("Save", ctx, mock.Anything).Return(int64(0), errors.New("disk full"))
			},
			wantErrMsg: "save map: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockMapRepository)
			svc := &mapService{repo: mRepo, now: func() time.Time { return fixedNow }}

			tt.setupMocks(mRepo)

			id, err := svc.SaveMap(ctx, tt.fileName, tt.contentType, tt.reader)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestMapService_SaveThenFindRoundTrip(t *testing.T) {
	// Uses a mock that stores the saved record, so the round trip checks the
	// service preserves filename, content type and payload byte-for-byte.
	ctx := context.Background()
	mRepo := new(repoMocks.MockMapRepository)
	svc := NewMapService(mRepo)

	var stored *model.MapRecord
	mRepo.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*model.MapRecord)
	}).Return(int64(1), nil)
	mRepo.On("FindByID", ctx, int64(1)).Return(func(context.Context, int64) *model.MapRecord {
		out := *stored
		out.ID = 1
		return &out
	}, nil)

	payload := []byte{0x89, 0x50, 0x4e, 0x47, 0x00, 0xff}
	id, err := svc.SaveMap(ctx, "region.png", "image/png", strings.NewReader(string(payload)))
	assert.NoError(t, err)

	rec, err := svc.FindMap(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "region.png", rec.FileName)
	assert.Equal(t, "image/png", rec.ContentType)
	assert.Equal(t, payload, rec.Data)
	assert.False(t, rec.UploadDate.IsZero())
}

func TestMapService_FindMap(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         int64
		setupMocks func(mRepo *repoMocks.MockMapRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			id:   8,
			setupMocks: func(mRepo *repoMocks.MockMapRepository) {
				mRepo.On("FindByID", ctx, int64(8)).Return(&model.MapRecord{ID: 8}, nil)
			},
		},
		{
			name:       "validation - non-positive id",
			id:         0,
			setupMocks: func(mRepo *repoMocks.MockMapRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found - mapping sql.ErrNoRows",
			id:   999,
			setupMocks: func(mRepo *repoMocks.MockMapRepository) {
				mRepo.On("FindByID", ctx, int64(999)).Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "generic repository error",
			id:   13,
			setupMocks: func(mRepo *repoMocks.MockMapRepository) {
				mRepo.On("FindByID", ctx, int64(13)).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockMapRepository)
			svc := NewMapService(mRepo)

			tt.setupMocks(mRepo)

			rec, err := svc.FindMap(ctx, tt.id)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrIDRequired) || errors.Is(tt.wantErr, ErrNotFound) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Error(t, err)
				}
				assert.Nil(t, rec)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, rec)
				assert.Equal(t, tt.id, rec.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestMapService_ListMaps(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		limit      int
		offset     int
		setupMocks func(mRepo *repoMocks.MockMapRepository)
		wantErr    bool
		checkRes   func(t *testing.T, res *MapListResult)
	}{
		{
			name:   "happy path",
			limit:  10,
			offset: 0,
			setupMocks: func(mRepo *repoMocks.MockMapRepository) {
				mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.MapInfo]{
						Items: []model.MapInfo{{ID: 1}, {ID: 2}},
						Total: 2,
					}, nil)
			},
			checkRes: func(t *testing.T, res *MapListResult) {
				assert.Len(t, res.Items, 2)
				assert.Equal(t, 2, res.Total)
			},
		},
		{
			name:   "pagination boundary - zero limit uses default",
			limit:  0,
			offset: -1,
			setupMocks: func(mRepo *repoMocks.MockMapRepository) {
				mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.MapInfo]{Items: []model.MapInfo{}, Total: 0}, nil)
			},
		},
		{
			name:  "repository error",
			limit: 10,
			setupMocks: func(mRepo *repoMocks.MockMapRepository) {
				mRepo.On("List", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockMapRepository)
			svc := NewMapService(mRepo)

			tt.setupMocks(mRepo)

			res, err := svc.ListMaps(ctx, tt.limit, tt.offset)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.checkRes != nil {
					tt.checkRes(t, res)
				}
			}
			mRepo.AssertExpectations(t)
		})
	}
}
