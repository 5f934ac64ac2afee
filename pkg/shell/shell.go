// Package shell keeps remote documentation reachable offline. It is a
// cache-first fetch layer over a versioned on-disk namespace: hits are
// served from disk, misses fall back to the network and fill the cache,
// and namespaces from older versions are purged.
package shell

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// Version tags the cache namespace directory. Bumping it invalidates
// every cached resource on the next Purge. It must not contain dashes;
// the dash separates the namespace from the resource key.
const Version = "v1"

// Cache is the offline shell store. Create with New.
type Cache struct {
	d        *diskv.Diskv
	basePath string
	version  string
	client   *http.Client
}

// New returns a cache rooted at basePath. A nil client gets a default
// with a conservative timeout; flying-club hardware is often on slow
// links.
func New(basePath string, client *http.Client) *Cache {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Cache{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: versionTransform,
			InverseTransform:  versionInverse,
			CacheSizeMax:      1024 * 1024,
		}),
		basePath: basePath,
		version:  Version,
		client:   client,
	}
}

// Get serves the resource cache-first: a cached copy wins, otherwise the
// network is tried and a successful response is cached for next time.
func (c *Cache) Get(ctx context.Context, url string) ([]byte, error) {
	key := c.key(url)
	if data, err := c.d.Read(key); err == nil {
		return data, nil
	}
	data, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := c.d.Write(key, data); err != nil {
		// A failed cache fill is not fatal; the caller still gets the
		// fresh copy.
		fmt.Fprintf(os.Stderr, "shell: cache %s: %v\n", url, err)
	}
	return data, nil
}

// Fill prefetches every URL in the manifest, skipping ones already
// cached. The first network failure aborts so a dead link is noticed.
func (c *Cache) Fill(ctx context.Context, urls []string) error {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if c.d.Has(c.key(url)) {
			continue
		}
		data, err := c.fetch(ctx, url)
		if err != nil {
			return fmt.Errorf("shell: fill %s: %w", url, err)
		}
		if err := c.d.Write(c.key(url), data); err != nil {
			return fmt.Errorf("shell: cache %s: %w", url, err)
		}
	}
	return nil
}

// Purge removes every cache namespace whose version tag differs from the
// running build's.
func (c *Cache) Purge() error {
	entries, err := os.ReadDir(c.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("shell: read cache root: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() || e.Name() == c.version {
			continue
		}
		if err := os.RemoveAll(filepath.Join(c.basePath, e.Name())); err != nil {
			return fmt.Errorf("shell: purge %s: %w", e.Name(), err)
		}
	}
	return nil
}

func (c *Cache) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("shell: build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shell: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shell: fetch %s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (c *Cache) key(url string) string {
	sum := md5.Sum([]byte(url))
	return fmt.Sprintf("%s-%x", c.version, sum[:8])
}

func versionTransform(key string) *diskv.PathKey {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) == 1 {
		return &diskv.PathKey{Path: []string{}, FileName: parts[0]}
	}
	return &diskv.PathKey{Path: []string{parts[0]}, FileName: parts[1]}
}

func versionInverse(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
