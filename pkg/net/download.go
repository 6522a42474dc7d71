package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// maxBodyBytes caps remote documents; profiles and input batches are small.
const maxBodyBytes = 10 << 20

var ErrorURLNotFound = errors.New("URL not found")

// IsURL reports whether src should be fetched over HTTP.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Fetch downloads the content at url.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating HTTP Get request: %w", err)
	}
	req.Header.Set("User-Agent", clientAgent)

	resp, err := GetHTTPClient().Do(req) //nolint:gosec // URL supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("error executing HTTP Get request: %w", err)
	}
	defer resp.Body.Close()
	PrintHTTPResponse(resp)

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrorURLNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading (status: %d - %s): %s", resp.StatusCode, resp.Status, url)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}
	return b, nil
}

// ReadSource returns the content of a local file path or an http(s) URL.
// A "-" source reads standard input.
func ReadSource(ctx context.Context, src string) ([]byte, error) {
	switch {
	case src == "":
		return nil, errors.New("source required")
	case src == "-":
		b, err := io.ReadAll(io.LimitReader(os.Stdin, maxBodyBytes))
		if err != nil {
			return nil, fmt.Errorf("error reading stdin: %w", err)
		}
		return b, nil
	case IsURL(src):
		return Fetch(ctx, src)
	default:
		b, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("error reading file %s: %w", src, err)
		}
		return b, nil
	}
}
