package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
)

// ErrReaderClosed is returned when reading from a lazy download after it has
// been closed.
var ErrReaderClosed = errors.New("storage: read from closed download reader")

// UploadObject uploads a local file to the given path inside a bucket. The
// file is streamed to the transport rather than buffered in memory. Header
// defaults are applied when opts is nil or leaves a field unset.
func (c *Client) UploadObject(ctx context.Context, bucket, path, filePath string, opts *UploadOptions) (*Object, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, wrapError(KindFileNotFound, "could not open "+filePath, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			c.logger.Debug().Str("file", filePath).Err(err).Msg("error closing upload source")
		}
	}()

	headers := c.headers(opts.headers())
	resp, err := c.transport.Do(ctx, http.MethodPost, c.BaseURL+objectEndpoint(bucket, path), f, headers)
	if err != nil {
		return nil, err
	}

	var uploaded struct {
		Key string `json:"Key"`
	}
	if err := json.Unmarshal(resp, &uploaded); err != nil {
		return nil, wrapError(KindParse, "error decoding upload response", err)
	}
	if uploaded.Key == "" {
		return nil, newError(KindParse, "upload response missing Key field")
	}

	return objectFromKey(bucket, uploaded.Key), nil
}

// objectFromKey builds the parsed entity for an upload response key of the
// form "bucket/path".
func objectFromKey(bucket, key string) *Object {
	name := strings.TrimPrefix(key, bucket+"/")
	return &Object{Bucket: bucket, Name: name}
}

// moveCopyBody is the request body shared by MoveObject and CopyObject.
type moveCopyBody struct {
	SourceBucket    string `json:"source_bucket"`
	SourcePath      string `json:"source_path"`
	DestinationPath string `json:"destination_path"`
}

// MoveObject relocates an object within a bucket. The object's content is
// unchanged; only its path changes.
func (c *Client) MoveObject(ctx context.Context, bucket, src, dst string) error {
	body := moveCopyBody{SourceBucket: bucket, SourcePath: src, DestinationPath: dst}
	_, err := c.request(ctx, http.MethodPost, objectMoveEndpoint(), body)
	return err
}

// CopyObject duplicates an object to a new path, leaving the original
// untouched.
func (c *Client) CopyObject(ctx context.Context, bucket, src, dst string) error {
	body := moveCopyBody{SourceBucket: bucket, SourcePath: src, DestinationPath: dst}
	_, err := c.request(ctx, http.MethodPost, objectCopyEndpoint(), body)
	return err
}

// GetObjectInfo fetches the metadata of a single object. The path may
// include nested segments.
func (c *Client) GetObjectInfo(ctx context.Context, bucket, path string) (*Object, error) {
	var object Object
	if err := c.requestJSON(ctx, http.MethodGet, objectInfoEndpoint(bucket, path), nil, &object); err != nil {
		return nil, err
	}
	return &object, nil
}

// ListObjects lists the objects under a prefix within a bucket, ordered by
// the given search options. The default order is most recently created
// first.
func (c *Client) ListObjects(ctx context.Context, bucket, prefix string, opts *SearchOptions) ([]Object, error) {
	body := struct {
		Prefix string `json:"prefix"`
		SearchOptions
	}{
		Prefix:        prefix,
		SearchOptions: opts.withDefaults(),
	}

	var objects []Object
	if err := c.requestJSON(ctx, http.MethodPost, objectListEndpoint(bucket), body, &objects); err != nil {
		return nil, err
	}
	return objects, nil
}

// RemoveObject deletes a single object from a bucket.
func (c *Client) RemoveObject(ctx context.Context, bucket, path string) error {
	return c.RemoveObjects(ctx, bucket, []string{path})
}

// RemoveObjects deletes a set of objects from a bucket. The server reports a
// single success marker for the whole batch; callers cannot tell from this
// call alone which of the requested paths existed.
func (c *Client) RemoveObjects(ctx context.Context, bucket string, paths []string) error {
	body := struct {
		Prefixes []string `json:"prefixes"`
	}{Prefixes: paths}

	_, err := c.request(ctx, http.MethodDelete, objectsEndpoint(bucket), body)
	return err
}

// CreateSignedURL creates a time-limited URL granting access to an object
// without separate credentials. The returned URL is relative to the client's
// base URL; expiresIn is in seconds.
func (c *Client) CreateSignedURL(ctx context.Context, bucket, path string, expiresIn int) (string, error) {
	body := struct {
		ExpiresIn int `json:"expiresIn"`
	}{ExpiresIn: expiresIn}

	var signed struct {
		SignedURL *string `json:"signedURL"`
	}
	if err := c.requestJSON(ctx, http.MethodPost, objectSignEndpoint(bucket, path), body, &signed); err != nil {
		return "", err
	}
	if signed.SignedURL == nil {
		return "", newError(KindParse, "sign response missing signedURL field")
	}

	return *signed.SignedURL, nil
}

// CreateSignedUploadURL creates a pre-authorized URL that allows uploading
// to the given path without the client's credentials.
func (c *Client) CreateSignedUploadURL(ctx context.Context, bucket, path string) (string, error) {
	var signed struct {
		URL *string `json:"url"`
	}
	if err := c.requestJSON(ctx, http.MethodPost, objectUploadSignEndpoint(bucket, path), nil, &signed); err != nil {
		return "", err
	}
	if signed.URL == nil {
		return "", newError(KindParse, "upload sign response missing url field")
	}

	return *signed.URL, nil
}

// DownloadObject downloads an object's content fully buffered.
func (c *Client) DownloadObject(ctx context.Context, bucket, path string) ([]byte, error) {
	rc, err := c.transport.Stream(ctx, http.MethodGet, c.BaseURL+objectDownloadEndpoint(bucket, path), c.headers(nil))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rc.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("error closing download stream")
		}
	}()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, wrapError(KindTransport, "error reading download stream", err)
	}

	return data, nil
}

// DownloadObjectLazy returns the object's content as a lazy, single-pass
// stream. No request is made until the first Read; reading after Close
// returns ErrReaderClosed. A second pass requires a new call.
func (c *Client) DownloadObjectLazy(ctx context.Context, bucket, path string) io.ReadCloser {
	return &lazyReader{
		fetch: func() (io.ReadCloser, error) {
			return c.transport.Stream(ctx, http.MethodGet, c.BaseURL+objectDownloadEndpoint(bucket, path), c.headers(nil))
		},
	}
}

// lazyReader defers the download request to the first Read.
type lazyReader struct {
	mu     sync.Mutex
	fetch  func() (io.ReadCloser, error)
	rc     io.ReadCloser
	closed bool
}

func (r *lazyReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, ErrReaderClosed
	}

	if r.rc == nil {
		rc, err := r.fetch()
		if err != nil {
			return 0, err
		}
		r.rc = rc
	}

	return r.rc.Read(p)
}

func (r *lazyReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if r.rc == nil {
		return nil
	}
	return r.rc.Close()
}
