package storage

import (
	"net/url"
	"strings"
)

// Endpoint templates, relative to the configured base URL. These are pure
// string builders; identifiers are expected to already be validated by the
// calling handler.

func bucketsEndpoint() string {
	return "/bucket"
}

func bucketEndpoint(id string) string {
	return "/bucket/" + url.PathEscape(id)
}

func bucketEmptyEndpoint(id string) string {
	return "/bucket/" + url.PathEscape(id) + "/empty"
}

func objectsEndpoint(bucket string) string {
	return "/object/" + url.PathEscape(bucket)
}

func objectEndpoint(bucket, path string) string {
	return "/object/" + url.PathEscape(bucket) + "/" + escapePath(path)
}

func objectInfoEndpoint(bucket, wildcard string) string {
	return "/object/info/authenticated/" + url.PathEscape(bucket) + "/" + escapePath(wildcard)
}

func objectListEndpoint(bucket string) string {
	return "/object/list/" + url.PathEscape(bucket)
}

func objectMoveEndpoint() string {
	return "/object/move"
}

func objectCopyEndpoint() string {
	return "/object/copy"
}

func objectSignEndpoint(bucket, path string) string {
	return "/object/sign/" + url.PathEscape(bucket) + "/" + escapePath(path)
}

func objectUploadSignEndpoint(bucket, path string) string {
	return "/object/upload/sign/" + url.PathEscape(bucket) + "/" + escapePath(path)
}

func objectDownloadEndpoint(bucket, wildcard string) string {
	return "/object/authenticated/" + url.PathEscape(bucket) + "/" + escapePath(wildcard)
}

// escapePath escapes each segment of an object path individually so that
// nested keys keep their "/" separators on the wire.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
