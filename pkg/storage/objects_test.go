package storage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestUploadObjectDefaultHeaders(t *testing.T) {
	var gotBody []byte
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/object/avatars/a.png", r.URL.Path)
		assert.Equal(t, "max-age=3600", r.Header.Get("cache-control"))
		assert.Equal(t, "text/plain;charset=UTF-8", r.Header.Get("content-type"))
		assert.Equal(t, "false", r.Header.Get("x-upsert"))
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"Key":"avatars/a.png"}`))
	})

	src := writeTempFile(t, "a.png", "png bytes")
	object, err := client.UploadObject(context.Background(), "avatars", "a.png", src, nil)
	require.NoError(t, err)

	assert.Equal(t, "avatars", object.Bucket)
	assert.Equal(t, "a.png", object.Name)
	assert.Equal(t, "png bytes", string(gotBody), "file contents are streamed as the request body")
}

func TestUploadObjectCustomOptions(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "max-age=60", r.Header.Get("cache-control"))
		assert.Equal(t, "image/png", r.Header.Get("content-type"))
		assert.Equal(t, "true", r.Header.Get("x-upsert"))
		w.Write([]byte(`{"Key":"avatars/a.png"}`))
	})

	src := writeTempFile(t, "a.png", "png bytes")
	_, err := client.UploadObject(context.Background(), "avatars", "a.png", src, &UploadOptions{
		CacheControl: 60,
		ContentType:  "image/png",
		Upsert:       true,
	})
	require.NoError(t, err)
}

func TestUploadObjectMissingFile(t *testing.T) {
	transport := &countingTransport{}
	client := New("http://localhost", "key", WithTransport(transport))

	_, err := client.UploadObject(context.Background(), "avatars", "a.png", "/no/such/file", nil)
	require.Error(t, err)
	assert.True(t, IsFileNotFound(err))
	assert.Zero(t, transport.calls, "no request may be issued when the source cannot be opened")
}

func TestUploadObjectMissingKeyIsParseError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	src := writeTempFile(t, "a.png", "png bytes")
	_, err := client.UploadObject(context.Background(), "avatars", "a.png", src, nil)
	require.Error(t, err)
	assert.True(t, IsParse(err))
}

// Uploading then fetching info at the same path yields matching metadata.
func TestUploadGetInfoRoundTrip(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			w.Write([]byte(`{"Key":"avatars/users/42/a.png"}`))
		default:
			assert.Equal(t, "/object/info/authenticated/avatars/users/42/a.png", r.URL.Path)
			w.Write([]byte(`{"name":"users/42/a.png","bucket_id":"avatars","size":9}`))
		}
	})

	src := writeTempFile(t, "a.png", "png bytes")
	uploaded, err := client.UploadObject(context.Background(), "avatars", "users/42/a.png", src, nil)
	require.NoError(t, err)

	info, err := client.GetObjectInfo(context.Background(), "avatars", uploaded.Name)
	require.NoError(t, err)
	assert.Equal(t, uploaded.Name, info.Name)
}

func TestMoveObjectBody(t *testing.T) {
	var reqBody map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/object/move", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		w.Write([]byte(`{"message":"Successfully moved"}`))
	})

	err := client.MoveObject(context.Background(), "avatars", "a.png", "archive/a.png")
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		"source_bucket":    "avatars",
		"source_path":      "a.png",
		"destination_path": "archive/a.png",
	}, reqBody)
}

func TestCopyObjectBody(t *testing.T) {
	var reqBody map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/object/copy", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		w.Write([]byte(`{"message":"Successfully copied"}`))
	})

	require.NoError(t, client.CopyObject(context.Background(), "avatars", "a.png", "b.png"))
	assert.Equal(t, "a.png", reqBody["source_path"])
	assert.Equal(t, "b.png", reqBody["destination_path"])
}

func TestListObjectsDefaultSearchOptions(t *testing.T) {
	var rawBody map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/object/list/avatars", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rawBody))
		w.Write([]byte(`[{"name":"a.png"},{"name":"b.png"}]`))
	})

	objects, err := client.ListObjects(context.Background(), "avatars", "avatars/", nil)
	require.NoError(t, err)
	require.Len(t, objects, 2)

	assert.Equal(t, "avatars/", rawBody["prefix"])
	assert.Equal(t, map[string]interface{}{"column": "created_at", "order": "desc"}, rawBody["sortBy"])
	assert.NotContains(t, rawBody, "limit")
	assert.NotContains(t, rawBody, "offset")
}

func TestListObjectsExplicitOptions(t *testing.T) {
	var rawBody map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rawBody))
		w.Write([]byte(`[]`))
	})

	_, err := client.ListObjects(context.Background(), "avatars", "", &SearchOptions{
		Limit:  10,
		Offset: 20,
		SortBy: SortBy{Column: "name", Order: "asc"},
	})
	require.NoError(t, err)

	assert.Equal(t, float64(10), rawBody["limit"])
	assert.Equal(t, float64(20), rawBody["offset"])
	assert.Equal(t, map[string]interface{}{"column": "name", "order": "asc"}, rawBody["sortBy"])
}

// RemoveObject and RemoveObjects with a single path must produce the same
// request body.
func TestRemoveObjectMatchesRemoveObjects(t *testing.T) {
	var bodies []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/object/avatars", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(body))
		w.Write([]byte(`{"message":"Successfully deleted"}`))
	})

	require.NoError(t, client.RemoveObject(context.Background(), "avatars", "a.png"))
	require.NoError(t, client.RemoveObjects(context.Background(), "avatars", []string{"a.png"}))

	require.Len(t, bodies, 2)
	assert.JSONEq(t, `{"prefixes":["a.png"]}`, bodies[0])
	assert.JSONEq(t, bodies[0], bodies[1])
}

// The batch removal contract is deliberately ambiguous: the server replies
// with one success marker no matter how many of the requested paths existed,
// so a nil error here does not mean every path was deleted.
func TestRemoveObjectsBatchReportsSingleMarker(t *testing.T) {
	var reqBody map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		w.Write([]byte(`{"message":"Successfully deleted"}`))
	})

	err := client.RemoveObjects(context.Background(), "avatars", []string{"a.png", "does-not-exist.png"})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a.png", "does-not-exist.png"}, reqBody["prefixes"])
}

func TestCreateSignedURL(t *testing.T) {
	var reqBody map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/object/sign/avatars/a.png", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		w.Write([]byte(`{"signedURL":"/object/sign/avatars/a.png?token=abc"}`))
	})

	signed, err := client.CreateSignedURL(context.Background(), "avatars", "a.png", 3600)
	require.NoError(t, err)
	assert.Equal(t, "/object/sign/avatars/a.png?token=abc", signed)
	assert.Equal(t, float64(3600), reqBody["expiresIn"])
}

func TestCreateSignedURLMissingFieldIsParseError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"somethingElse":"x"}`))
	})

	_, err := client.CreateSignedURL(context.Background(), "avatars", "a.png", 3600)
	require.Error(t, err)
	assert.True(t, IsParse(err))
}

func TestCreateSignedUploadURL(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/object/upload/sign/avatars/a.png", r.URL.Path)
		w.Write([]byte(`{"url":"/object/upload/sign/avatars/a.png?token=abc"}`))
	})

	signed, err := client.CreateSignedUploadURL(context.Background(), "avatars", "a.png")
	require.NoError(t, err)
	assert.Equal(t, "/object/upload/sign/avatars/a.png?token=abc", signed)
}

func TestDownloadObject(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/object/authenticated/avatars/a.png", r.URL.Path)
		w.Write([]byte("png bytes"))
	})

	data, err := client.DownloadObject(context.Background(), "avatars", "a.png")
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(data))
}

func TestDownloadObjectLazyDefersRequest(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte("png bytes"))
	})

	rc := client.DownloadObjectLazy(context.Background(), "avatars", "a.png")
	assert.Zero(t, requests, "no request until the stream is first read")

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(data))
	assert.Equal(t, 1, requests)

	require.NoError(t, rc.Close())

	_, err = rc.Read(make([]byte, 1))
	assert.ErrorIs(t, err, ErrReaderClosed)
}

func TestDownloadObjectLazyCloseWithoutRead(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	rc := client.DownloadObjectLazy(context.Background(), "avatars", "a.png")
	require.NoError(t, rc.Close())
	assert.Zero(t, requests, "closing an unread stream issues no request")
}
