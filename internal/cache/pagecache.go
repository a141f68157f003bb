package cache

import (
    "context"
    "crypto/sha256"
    "encoding/hex"
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "time"
)

// Entry captures enough metadata to support conditional revalidation and to
// return a page without hitting the network when still valid.
type Entry struct {
    URL          string    `json:"url"`
    ContentType  string    `json:"content_type"`
    ETag         string    `json:"etag"`
    LastModified string    `json:"last_modified"`
    SavedAt      time.Time `json:"saved_at"`
}

// PageCache stores fetched report pages on disk as <key>.meta.json and
// <key>.body where key is sha256(url). The 1999 archive never changes, so a
// warm cache makes reruns fully offline. No eviction policy is included;
// see PurgeByAge for age-based invalidation.
type PageCache struct {
    Dir string
}

func (c *PageCache) ensureDir() error {
    if c == nil || c.Dir == "" {
        return errors.New("cache dir not configured")
    }
    return os.MkdirAll(c.Dir, 0o755)
}

func (c *PageCache) key(url string) string {
    h := sha256.Sum256([]byte(url))
    return hex.EncodeToString(h[:])
}

func (c *PageCache) metaPath(key string) string { return filepath.Join(c.Dir, key+".meta.json") }
func (c *PageCache) bodyPath(key string) string { return filepath.Join(c.Dir, key+".body") }

// LoadMeta returns entry metadata if present.
func (c *PageCache) LoadMeta(_ context.Context, url string) (*Entry, error) {
    if err := c.ensureDir(); err != nil {
        return nil, err
    }
    f, err := os.Open(c.metaPath(c.key(url)))
    if err != nil {
        return nil, err
    }
    defer f.Close()
    var e Entry
    if err := json.NewDecoder(f).Decode(&e); err != nil {
        return nil, err
    }
    return &e, nil
}

// LoadBody returns the cached page body if present.
func (c *PageCache) LoadBody(_ context.Context, url string) ([]byte, error) {
    if err := c.ensureDir(); err != nil {
        return nil, err
    }
    return os.ReadFile(c.bodyPath(c.key(url)))
}

// Save stores a new cache entry to disk. The body lands first and the meta
// file is renamed into place so a crash never leaves meta without body.
func (c *PageCache) Save(_ context.Context, url string, contentType string, etag string, lastModified string, body []byte) error {
    if err := c.ensureDir(); err != nil {
        return err
    }
    key := c.key(url)
    if err := os.WriteFile(c.bodyPath(key), body, 0o644); err != nil {
        return fmt.Errorf("write body: %w", err)
    }
    meta := Entry{
        URL:          url,
        ContentType:  contentType,
        ETag:         etag,
        LastModified: lastModified,
        SavedAt:      time.Now().UTC(),
    }
    tmp := c.metaPath(key) + ".tmp"
    f, err := os.Create(tmp)
    if err != nil {
        return fmt.Errorf("create meta: %w", err)
    }
    if err := json.NewEncoder(f).Encode(&meta); err != nil {
        f.Close()
        return fmt.Errorf("encode meta: %w", err)
    }
    if err := f.Close(); err != nil {
        return err
    }
    return os.Rename(tmp, c.metaPath(key))
}
