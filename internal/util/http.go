package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DownloadTimeout bounds remote fetches that carry no deadline of their own.
const DownloadTimeout = 12 * time.Second

// GetBytes fetches url and returns the body. Non-2xx responses are errors.
// limit caps the body size; zero means no cap.
func GetBytes(ctx context.Context, url string, limit int64) ([]byte, error) {
	client := http.Client{Timeout: DownloadTimeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	var body io.Reader = resp.Body
	if limit > 0 {
		body = io.LimitReader(resp.Body, limit+1)
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if limit > 0 && int64(len(b)) > limit {
		return nil, fmt.Errorf("GET %s: body exceeds %d bytes", url, limit)
	}
	return b, nil
}
