package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/minio/minio-go/v7"
)

func TestIsNoSuchKey(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"minio no such key", minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}, true},
		{"minio not found", minio.ErrorResponse{Code: "NotFound"}, true},
		{"wrapped", fmt.Errorf("remove object: %w", minio.ErrorResponse{Code: "NoSuchKey"}), true},
		{"gateway string", errors.New("proxy: NoSuchKey"), true},
		{"access denied", minio.ErrorResponse{Code: "AccessDenied"}, false},
		{"unrelated", errors.New("connection refused"), false},
	}

	for _, tc := range cases {
		if got := IsNoSuchKey(tc.err); got != tc.want {
			t.Errorf("%s: IsNoSuchKey = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsNoSuchBucket(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"minio no such bucket", minio.ErrorResponse{Code: "NoSuchBucket", Message: "The specified bucket does not exist"}, true},
		{"wrapped", fmt.Errorf("put object: %w", minio.ErrorResponse{Code: "NoSuchBucket"}), true},
		{"no such key is not bucket", minio.ErrorResponse{Code: "NoSuchKey"}, false},
		{"unrelated", errors.New("timeout"), false},
	}

	for _, tc := range cases {
		if got := IsNoSuchBucket(tc.err); got != tc.want {
			t.Errorf("%s: IsNoSuchBucket = %v, want %v", tc.name, got, tc.want)
		}
	}
}
