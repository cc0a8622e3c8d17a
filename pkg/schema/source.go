package schema

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// Source identifies where a schema document originates so loaders can work
// with files, raw payloads, or URLs without leaking implementation details.
type Source interface {
	// Load fetches the raw descriptor payload.
	Load(ctx context.Context) ([]byte, error)
	// Location describes the source for diagnostics.
	Location() string
}

type bytesSource struct {
	payload []byte
}

func (s bytesSource) Load(context.Context) ([]byte, error) {
	return s.payload, nil
}

func (s bytesSource) Location() string {
	return "(inline)"
}

// SourceFromBytes wraps an already fetched payload.
func SourceFromBytes(payload []byte) Source {
	return bytesSource{payload: payload}
}

type fileSource struct {
	path string
}

func (s fileSource) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", s.path, err)
	}
	return raw, nil
}

func (s fileSource) Location() string {
	return s.path
}

// SourceFromFile returns a Source pointing at a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type urlSource struct {
	raw    string
	client *http.Client
}

func (s urlSource) Load(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.raw, nil)
	if err != nil {
		return nil, fmt.Errorf("schema: request %s: %w", s.raw, err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("schema: fetch %s: %w", s.raw, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("schema: fetch %s: unexpected status %d", s.raw, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (s urlSource) Location() string {
	return s.raw
}

// SourceFromURL returns a Source backed by an HTTP endpoint. It panics on an
// invalid URL to surface configuration mistakes early.
func SourceFromURL(raw string, client *http.Client) Source {
	if raw == "" {
		panic("schema: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("schema: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw, client: client}
}

// Load fetches, decodes and normalizes a schema from the source in one step.
func Load(ctx context.Context, src Source, opts ...NormalizeOption) (Schema, error) {
	raw, err := src.Load(ctx)
	if err != nil {
		return Schema{}, err
	}
	descriptors, err := DecodeDescriptors(raw)
	if err != nil {
		return Schema{}, fmt.Errorf("schema: %s: %w", src.Location(), err)
	}
	return Normalize(descriptors, opts...)
}
