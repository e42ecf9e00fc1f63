package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSiteErrorIs(t *testing.T) {
	nf := NewNotFound("get project", "acme")
	wrapped := fmt.Errorf("loading view: %w", nf)

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsFetchFailed(wrapped))
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

func TestFetchFailedUnwrap(t *testing.T) {
	err := NewFetchFailed("list projects", 0, io.ErrUnexpectedEOF)

	assert.True(t, IsFetchFailed(err))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestSiteErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *SiteError
		want string
	}{
		{
			name: "not found",
			err:  NewNotFound("get blog", "hello-world"),
			want: "get blog slug=hello-world not found",
		},
		{
			name: "fetch failed with status",
			err:  NewFetchFailed("get project", 500, nil),
			want: "get project status=500 fetch failed",
		},
		{
			name: "config",
			err:  NewConfig("source", "unknown source \"ftp\""),
			want: "config source unknown source \"ftp\"",
		},
		{
			name: "type only",
			err:  &SiteError{Type: TypeImageLoad},
			want: "image_load_failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
