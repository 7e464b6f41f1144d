package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "tag-extractor/1.0 (+https://github.com/dtnitsch/tag-extractor)"

// maxBodyBytes is the largest response body GetBytes accepts.
const maxBodyBytes = 16 << 20

// ErrBodyTooLarge is returned instead of a truncated body.
var ErrBodyTooLarge = errors.New("response body exceeds limit")

type Fetcher struct {
	client  *http.Client
	maxBody int64
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: 30 * time.Second},
		maxBody: maxBodyBytes,
	}
}

// GetBytes downloads url and returns the body. Any status other than 200 is
// an error.
func (f *Fetcher) GetBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s, status code: %d", url, resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(bodyBytes)) > f.maxBody {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrBodyTooLarge, url, f.maxBody)
	}
	return bodyBytes, nil
}
