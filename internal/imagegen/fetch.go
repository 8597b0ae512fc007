package imagegen

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"relay/internal/domain"
)

// FetcherOptions configures the remote image fetcher.
type FetcherOptions struct {
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Fetcher retrieves a remote source image into memory for one enhancement
// traversal. It performs unconditional retrieval: URL acceptance and the size
// cap are policy checks owned by the caller.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher constructs a fetcher with sane transport defaults.
func NewFetcher(opts FetcherOptions) *Fetcher {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Fetcher{httpClient: client}
}

// Fetch downloads the image at rawURL and captures its declared content type,
// defaulting to application/octet-stream when the header is absent. Transport
// failures and non-success statuses yield download-category errors.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchedImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, domain.WrapDownload(fmt.Sprintf("Failed to download image: %v", err), err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapDownload(fmt.Sprintf("Failed to download image: %v", err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.Downloadf("Failed to download image: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.WrapDownload(fmt.Sprintf("Failed to download image: %v", err), err)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &FetchedImage{Data: data, ContentType: contentType, SourceURL: rawURL}, nil
}
