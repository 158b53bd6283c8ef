package shaderbox

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// maxSourceSize bounds a single shader source, from disk or over HTTP.
const maxSourceSize = 4 << 20

// Loader fetches shader source text from the filesystem or over HTTP.
// Every call makes exactly one attempt; nothing is cached.
type Loader struct {
	// Root resolves relative filesystem paths. Empty means the working directory.
	Root string
	// Client is used for http:// and https:// paths. Nil means http.DefaultClient.
	Client *http.Client
}

// Load returns the source text at path. Failures are reported as *IOError.
func (l *Loader) Load(ctx context.Context, path string) (string, error) {
	var (
		text string
		err  error
	)
	if isURL(path) {
		text, err = l.fetch(ctx, path)
	} else {
		text, err = l.read(path)
	}
	if err != nil {
		return "", &IOError{Path: path, Err: err}
	}
	defaultLogger.Debug("shader source loaded", "path", path, "bytes", len(text))
	return text, nil
}

// LoadPair fetches the vertex and fragment sources concurrently and blocks
// until both are available or one fails.
func (l *Loader) LoadPair(ctx context.Context, vertexPath, fragmentPath string) (vertex, fragment string, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		vertex, err = l.Load(gctx, vertexPath)
		return err
	})
	g.Go(func() error {
		var err error
		fragment, err = l.Load(gctx, fragmentPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return vertex, fragment, nil
}

func (l *Loader) read(path string) (string, error) {
	if l.Root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(l.Root, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return readSource(f)
}

func (l *Loader) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	return readSource(resp.Body)
}

// readSource reads r in full, failing rather than truncating when it holds
// more than maxSourceSize bytes.
func readSource(r io.Reader) (string, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxSourceSize+1))
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	if len(b) > maxSourceSize {
		return "", fmt.Errorf("source exceeds %d bytes", maxSourceSize)
	}
	return string(b), nil
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
