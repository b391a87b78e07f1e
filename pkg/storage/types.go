package storage

import (
	"fmt"
	"strconv"
)

// Bucket represents a storage bucket. Timestamps are opaque server-assigned
// strings; entities are never mutated after parsing.
type Bucket struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Owner            string   `json:"owner,omitempty"`
	Public           bool     `json:"public"`
	FileSizeLimit    int64    `json:"file_size_limit,omitempty"`
	AllowedMimeTypes []string `json:"allowed_mime_types,omitempty"`
	CreatedAt        string   `json:"created_at,omitempty"`
	UpdatedAt        string   `json:"updated_at,omitempty"`
}

// Object represents a stored item addressed by a path within a bucket.
type Object struct {
	ID           string                 `json:"id,omitempty"`
	Bucket       string                 `json:"bucket_id,omitempty"`
	Name         string                 `json:"name"`
	Size         int64                  `json:"size,omitempty"`
	ContentType  string                 `json:"content_type,omitempty"`
	LastModified string                 `json:"last_modified,omitempty"`
	CreatedAt    string                 `json:"created_at,omitempty"`
	UpdatedAt    string                 `json:"updated_at,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// BucketOptions are the attributes accepted when creating a bucket.
// ID is required; Name defaults to ID when empty. A zero FileSizeLimit means
// no limit, and an empty AllowedMimeTypes list means all types are allowed.
type BucketOptions struct {
	ID               string   `json:"id" validate:"required"`
	Name             string   `json:"name"`
	Public           bool     `json:"public"`
	FileSizeLimit    int64    `json:"file_size_limit,omitempty" validate:"gte=0"`
	AllowedMimeTypes []string `json:"allowed_mime_types,omitempty"`
}

// BucketUpdateOptions are the attributes accepted when updating a bucket.
// The bucket id and name are immutable and deliberately not part of this
// type, so an update request can never carry them.
type BucketUpdateOptions struct {
	Public           *bool    `json:"public,omitempty"`
	FileSizeLimit    *int64   `json:"file_size_limit,omitempty" validate:"omitempty,gte=0"`
	AllowedMimeTypes []string `json:"allowed_mime_types,omitempty"`
}

// Defaults applied to uploads when the corresponding option is unset.
const (
	DefaultCacheControl = 3600
	DefaultContentType  = "text/plain;charset=UTF-8"
)

// UploadOptions control the headers sent with an object upload.
type UploadOptions struct {
	// CacheControl is the max-age in seconds. Zero means DefaultCacheControl.
	CacheControl int

	// ContentType of the uploaded body. Empty means DefaultContentType.
	ContentType string

	// Upsert overwrites an existing object at the same path instead of
	// failing the upload.
	Upsert bool
}

// headers renders the options as request headers with defaults applied.
func (o *UploadOptions) headers() map[string]string {
	opts := UploadOptions{}
	if o != nil {
		opts = *o
	}
	if opts.CacheControl == 0 {
		opts.CacheControl = DefaultCacheControl
	}
	if opts.ContentType == "" {
		opts.ContentType = DefaultContentType
	}

	return map[string]string{
		"cache-control": fmt.Sprintf("max-age=%d", opts.CacheControl),
		"content-type":  opts.ContentType,
		"x-upsert":      strconv.FormatBool(opts.Upsert),
	}
}

// SortBy specifies the column and direction used to order object listings.
type SortBy struct {
	Column string `json:"column"`
	Order  string `json:"order"`
}

// SearchOptions control pagination and ordering for ListObjects. Zero Limit
// and Offset are omitted from the request body.
type SearchOptions struct {
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
	SortBy SortBy `json:"sortBy"`
}

// withDefaults fills in the default sort specification, newest first.
func (o *SearchOptions) withDefaults() SearchOptions {
	opts := SearchOptions{}
	if o != nil {
		opts = *o
	}
	if opts.SortBy.Column == "" {
		opts.SortBy.Column = "created_at"
	}
	if opts.SortBy.Order == "" {
		opts.SortBy.Order = "desc"
	}
	return opts
}
