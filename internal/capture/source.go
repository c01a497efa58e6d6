package capture

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Source produces one encoded image. Camera, local file, and remote URL
// sources all normalize to the same representation so the rest of the
// pipeline does not care where a photo came from.
type Source interface {
	// Acquire returns the encoded image bytes.
	Acquire(ctx context.Context) ([]byte, error)
	// Description names the source for logs and UI.
	Description() string
}

// FileSource reads an image from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Acquire(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return data, nil
}

func (s FileSource) Description() string {
	return "file " + s.Path
}

// URLSource fetches an image from a remote URL.
type URLSource struct {
	URL    string
	Client *http.Client
}

func (s URLSource) Acquire(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image URL: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read fetched image: %w", err)
	}
	return data, nil
}

func (s URLSource) Description() string {
	return "url " + s.URL
}

// BytesSource wraps an already-acquired image, e.g. a frame handed over
// by the camera view.
type BytesSource struct {
	Name string
	Data []byte
}

func (s BytesSource) Acquire(ctx context.Context) ([]byte, error) {
	if len(s.Data) == 0 {
		return nil, fmt.Errorf("no image data")
	}
	return s.Data, nil
}

func (s BytesSource) Description() string {
	if s.Name == "" {
		return "bytes"
	}
	return s.Name
}
