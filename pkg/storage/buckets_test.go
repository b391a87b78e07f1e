package storage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBucket(t *testing.T) {
	var reqBody map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bucket", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		w.Write([]byte(`{"id":"avatars","name":"avatars","public":false}`))
	})

	bucket, err := client.CreateBucket(context.Background(), BucketOptions{ID: "avatars"})
	require.NoError(t, err)

	assert.Equal(t, "avatars", bucket.ID)
	assert.Equal(t, "avatars", bucket.Name)
	assert.False(t, bucket.Public)

	// The name is coerced to the id before the request goes out.
	assert.Equal(t, "avatars", reqBody["name"])
}

func TestCreateBucketKeepsExplicitName(t *testing.T) {
	var reqBody map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		w.Write([]byte(`{"id":"avatars","name":"Avatars"}`))
	})

	_, err := client.CreateBucket(context.Background(), BucketOptions{ID: "avatars", Name: "Avatars"})
	require.NoError(t, err)
	assert.Equal(t, "Avatars", reqBody["name"])
}

func TestCreateBucketValidation(t *testing.T) {
	tests := []struct {
		name string
		opts BucketOptions
	}{
		{"missing id", BucketOptions{}},
		{"negative file size limit", BucketOptions{ID: "avatars", FileSizeLimit: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &countingTransport{}
			client := New("http://localhost", "key", WithTransport(transport))

			_, err := client.CreateBucket(context.Background(), tt.opts)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Zero(t, transport.calls, "no request may be issued for invalid attributes")
		})
	}
}

func TestUpdateBucketBodyOmitsImmutableFields(t *testing.T) {
	var rawBody map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/bucket/avatars", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rawBody))
		w.Write([]byte(`{"message":"Successfully updated"}`))
	})

	public := true
	limit := int64(1024)
	err := client.UpdateBucket(context.Background(), "avatars", BucketUpdateOptions{
		Public:        &public,
		FileSizeLimit: &limit,
	})
	require.NoError(t, err)

	assert.NotContains(t, rawBody, "id")
	assert.NotContains(t, rawBody, "name")
	assert.Equal(t, true, rawBody["public"])
	assert.Equal(t, float64(1024), rawBody["file_size_limit"])
}

func TestUpdateBucketValidation(t *testing.T) {
	transport := &countingTransport{}
	client := New("http://localhost", "key", WithTransport(transport))

	limit := int64(-5)
	err := client.UpdateBucket(context.Background(), "avatars", BucketUpdateOptions{FileSizeLimit: &limit})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Zero(t, transport.calls)
}

func TestListBuckets(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/bucket", r.URL.Path)
		w.Write([]byte(`[{"id":"avatars","name":"avatars"},{"id":"docs","name":"docs","public":true}]`))
	})

	buckets, err := client.ListBuckets(context.Background())
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, "avatars", buckets[0].ID)
	assert.True(t, buckets[1].Public)
}

func TestGetBucket(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bucket/avatars", r.URL.Path)
		w.Write([]byte(`{"id":"avatars","name":"avatars","file_size_limit":1024,"allowed_mime_types":["image/png"]}`))
	})

	bucket, err := client.GetBucket(context.Background(), "avatars")
	require.NoError(t, err)
	assert.Equal(t, int64(1024), bucket.FileSizeLimit)
	assert.Equal(t, []string{"image/png"}, bucket.AllowedMimeTypes)
}

func TestEmptyBucket(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bucket/avatars/empty", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.Empty(t, body)
		w.Write([]byte(`{"message":"Successfully emptied"}`))
	})

	require.NoError(t, client.EmptyBucket(context.Background(), "avatars"))
}

func TestDeleteBucket(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/bucket/avatars", r.URL.Path)
		w.Write([]byte(`{"message":"Successfully deleted"}`))
	})

	require.NoError(t, client.DeleteBucket(context.Background(), "avatars"))
}
