package fetch

import (
	"context"
	"io"

	"unsplashdl/pkg/unsplash"
)

// SearchClient defines the remote operations the pipeline needs
type SearchClient interface {
	SearchPhotos(ctx context.Context, query string, perPage int) (*unsplash.SearchResponse, error)
	OpenImage(ctx context.Context, url string) (io.ReadCloser, int64, error)
}
