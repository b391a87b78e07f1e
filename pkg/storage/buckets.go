package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateOptions runs struct-tag validation and maps failures into the
// validation error kind so no request is issued for bad attributes.
func validateOptions(opts interface{}) error {
	err := validate.Struct(opts)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return wrapError(KindValidation, fmt.Sprintf("invalid field %q: failed %q constraint", fe.Field(), fe.Tag()), err)
	}

	return wrapError(KindValidation, "invalid attributes", err)
}

// ListBuckets retrieves all storage buckets.
func (c *Client) ListBuckets(ctx context.Context) ([]Bucket, error) {
	var buckets []Bucket
	if err := c.requestJSON(ctx, http.MethodGet, bucketsEndpoint(), nil, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// GetBucket retrieves details about a specific bucket.
func (c *Client) GetBucket(ctx context.Context, id string) (*Bucket, error) {
	var bucket Bucket
	if err := c.requestJSON(ctx, http.MethodGet, bucketEndpoint(id), nil, &bucket); err != nil {
		return nil, err
	}
	return &bucket, nil
}

// CreateBucket creates a new storage bucket from the given attributes. The
// attributes are validated and coerced before any request is made: the id is
// required, the name defaults to the id, and a negative file size limit is
// rejected.
func (c *Client) CreateBucket(ctx context.Context, opts BucketOptions) (*Bucket, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	if opts.Name == "" {
		opts.Name = opts.ID
	}

	var bucket Bucket
	if err := c.requestJSON(ctx, http.MethodPost, bucketsEndpoint(), opts, &bucket); err != nil {
		return nil, err
	}
	return &bucket, nil
}

// UpdateBucket updates the mutable settings of a bucket: visibility, file
// size limit, and allowed MIME types. The id and name cannot be changed.
// Updated state is observed through a fresh GetBucket.
func (c *Client) UpdateBucket(ctx context.Context, id string, opts BucketUpdateOptions) error {
	if err := validateOptions(opts); err != nil {
		return err
	}

	_, err := c.request(ctx, http.MethodPut, bucketEndpoint(id), opts)
	return err
}

// EmptyBucket removes all objects from a bucket but keeps the bucket.
func (c *Client) EmptyBucket(ctx context.Context, id string) error {
	_, err := c.request(ctx, http.MethodPost, bucketEmptyEndpoint(id), nil)
	return err
}

// DeleteBucket deletes a bucket along with its contents.
func (c *Client) DeleteBucket(ctx context.Context, id string) error {
	_, err := c.request(ctx, http.MethodDelete, bucketEndpoint(id), nil)
	return err
}
