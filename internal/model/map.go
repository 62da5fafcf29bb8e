package model

import "time"

// MapRecord is a stored map file together with its metadata.
// Pure domain model with no database-specific dependencies or tags, so it can
// move between the HTTP, service, and repository layers freely.
//
// ID is assigned by the repository on first save and never changes afterwards.
// Data and the metadata fields are immutable once stored: the system has no
// update or delete path for maps.
type MapRecord struct {
	ID          int64     `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Data        []byte    `json:"-"`
	UploadDate  time.Time `json:"upload_date"`
}

// MapInfo is the metadata-only view of a stored map used by list endpoints.
// The payload is deliberately absent so listing never pulls blobs out of storage.
type MapInfo struct {
	ID          int64     `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadDate  time.Time `json:"upload_date"`
}
