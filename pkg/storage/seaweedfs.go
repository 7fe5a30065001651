package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// FilerSource streams files from a SeaweedFS filer over its HTTP API.
// Paths are interpreted relative to the filer root.
type FilerSource struct {
	filerURL string
	client   *http.Client
}

// NewFilerSource creates a read-only SeaweedFS filer client
func NewFilerSource(filerURL string) (*FilerSource, error) {
	if filerURL == "" {
		return nil, fmt.Errorf("filer url is required")
	}
	if !strings.HasPrefix(filerURL, "http://") && !strings.HasPrefix(filerURL, "https://") {
		filerURL = "http://" + filerURL
	}
	if _, err := url.Parse(filerURL); err != nil {
		return nil, fmt.Errorf("invalid filer url: %w", err)
	}

	// No overall client timeout: large files stream for as long as they need.
	// Cancellation comes from the request context.
	client := &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			ResponseHeaderTimeout: 30 * time.Second,
		},
	}

	return &FilerSource{
		filerURL: strings.TrimSuffix(filerURL, "/"),
		client:   client,
	}, nil
}

func (s *FilerSource) fileURL(name string) string {
	return s.filerURL + path.Clean("/"+name)
}

// Open streams a file from the filer. The caller must close the body.
func (s *FilerSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.fileURL(name), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, fmt.Errorf("file not found on filer: %s: %w", name, fs.ErrNotExist)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to get file: status %d", resp.StatusCode)
	}

	return resp.Body, nil
}
