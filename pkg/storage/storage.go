// Package storage is a client for the strata object-storage HTTP API. It
// exposes bucket and object management operations: create, list, update and
// delete buckets; upload, download, move, copy, list and delete objects; and
// signed URL generation.
//
// Every operation maps one function call to one HTTP request. The client
// holds no state between calls, performs no retries, and surfaces every
// failure as a kind-tagged *Error.
package storage

import (
	"context"
	"io"
)

// BucketAPI enumerates the bucket operations provided by Client.
type BucketAPI interface {
	ListBuckets(ctx context.Context) ([]Bucket, error)
	GetBucket(ctx context.Context, id string) (*Bucket, error)
	CreateBucket(ctx context.Context, opts BucketOptions) (*Bucket, error)
	UpdateBucket(ctx context.Context, id string, opts BucketUpdateOptions) error
	EmptyBucket(ctx context.Context, id string) error
	DeleteBucket(ctx context.Context, id string) error
}

// ObjectAPI enumerates the object operations provided by Client.
type ObjectAPI interface {
	UploadObject(ctx context.Context, bucket, path, filePath string, opts *UploadOptions) (*Object, error)
	MoveObject(ctx context.Context, bucket, src, dst string) error
	CopyObject(ctx context.Context, bucket, src, dst string) error
	GetObjectInfo(ctx context.Context, bucket, path string) (*Object, error)
	ListObjects(ctx context.Context, bucket, prefix string, opts *SearchOptions) ([]Object, error)
	RemoveObject(ctx context.Context, bucket, path string) error
	RemoveObjects(ctx context.Context, bucket string, paths []string) error
	CreateSignedURL(ctx context.Context, bucket, path string, expiresIn int) (string, error)
	CreateSignedUploadURL(ctx context.Context, bucket, path string) (string, error)
	DownloadObject(ctx context.Context, bucket, path string) ([]byte, error)
	DownloadObjectLazy(ctx context.Context, bucket, path string) io.ReadCloser
}

var (
	_ BucketAPI = (*Client)(nil)
	_ ObjectAPI = (*Client)(nil)
)
