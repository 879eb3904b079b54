// Package fetcher downloads and parses upstream data over HTTP and FTP, and
// extracts tabular content from HTML, CSV, and XLSX payloads.
package fetcher

import (
	"context"
	"io"
)

// Fetcher defines the interface for downloading remote data.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}
