package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/models"
)

// Granter authorizes writes to the catalog document. It is asked for a
// concrete file path scoped to the expected catalog filename; returning an
// error means the user declined.
type Granter interface {
	RequestWrite(ctx context.Context, expectedName string) (string, error)
}

// StaticGranter approves writes to a fixed path without prompting. It is
// the default granter for server deployments, where the catalog file is
// chosen by configuration rather than a picker dialog.
type StaticGranter struct {
	Path string
}

// RequestWrite returns the configured path.
func (g StaticGranter) RequestWrite(ctx context.Context, expectedName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(g.Path) == "" {
		return "", ErrGrantDenied
	}
	return g.Path, nil
}

// catalogDocument is the on-disk shape of the catalog: an object wrapping
// the product list. Bare arrays are also accepted on read.
type catalogDocument struct {
	Products []models.Product `json:"products"`
}

// CatalogChannel is the durable persistence channel for the catalog.
// Reads come from a file path or an HTTP URL; writes go to a file whose
// handle is obtained through a one-time, session-cached write grant. When
// the grant is denied or the write fails, the channel degrades to a full
// snapshot in the key-value store and reports the failure as a boolean.
type CatalogChannel struct {
	source       string
	expectedName string
	granter      Granter
	client       *http.Client
	kv           *KV
	logger       *slog.Logger

	mu        sync.Mutex
	grantPath string
}

// NewCatalogChannel creates a catalog channel reading from source (file
// path or http/https URL) and writing through the given granter.
func NewCatalogChannel(source string, granter Granter, kv *KV, logger *slog.Logger) *CatalogChannel {
	return &CatalogChannel{
		source:       source,
		expectedName: filepath.Base(source),
		granter:      granter,
		client:       &http.Client{Timeout: 10 * time.Second},
		kv:           kv,
		logger:       logger,
	}
}

// Load reads the catalog, degrading from the durable document to the
// key-value snapshot to an empty catalog. Load never fails: read errors
// are logged and absorbed.
func (c *CatalogChannel) Load(ctx context.Context) []models.Product {
	products, err := c.readDocument(ctx)
	if err == nil {
		c.logger.Info("catalog loaded from document", "source", c.source, "count", len(products))
		return products
	}
	c.logger.Warn("catalog document unavailable, trying local snapshot", "source", c.source, "error", err)

	products, err = c.kv.LoadCatalogSnapshot(ctx)
	if err == nil {
		c.logger.Info("catalog loaded from local snapshot", "count", len(products))
		return products
	}
	if err != ErrNotFound {
		c.logger.Warn("local catalog snapshot unreadable", "error", err)
	}

	c.logger.Info("initialized empty catalog")
	return []models.Product{}
}

// Write persists the full catalog to the durable document, falling back to
// a key-value snapshot on grant denial or write failure. The return value
// reports whether the durable write succeeded; it is false whenever the
// channel degraded to local-only persistence.
func (c *CatalogChannel) Write(ctx context.Context, products []models.Product) bool {
	path, err := c.acquireGrant(ctx)
	if err != nil {
		c.logger.Warn("catalog write grant unavailable", "error", err)
		c.snapshot(ctx, products)
		return false
	}

	payload, err := json.MarshalIndent(catalogDocument{Products: products}, "", "  ")
	if err != nil {
		c.logger.Error("marshal catalog document", "error", err)
		c.snapshot(ctx, products)
		return false
	}

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		c.logger.Warn("catalog document write failed", "path", path, "error", err)
		c.snapshot(ctx, products)
		return false
	}

	c.logger.Info("catalog document updated", "path", path, "count", len(products))
	return true
}

// acquireGrant returns the session-cached write path, requesting the grant
// on first use. A grant naming a file other than the expected catalog
// filename is rejected and not cached, so a later attempt re-prompts.
func (c *CatalogChannel) acquireGrant(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.grantPath != "" {
		return c.grantPath, nil
	}

	path, err := c.granter.RequestWrite(ctx, c.expectedName)
	if err != nil {
		return "", err
	}
	if filepath.Base(path) != c.expectedName {
		return "", fmt.Errorf("%w: want %s, got %s", ErrGrantRejected, c.expectedName, filepath.Base(path))
	}

	c.grantPath = path
	return path, nil
}

func (c *CatalogChannel) snapshot(ctx context.Context, products []models.Product) {
	if err := c.kv.SaveCatalogSnapshot(ctx, products); err != nil {
		c.logger.Error("catalog snapshot write failed", "error", err)
		return
	}
	c.logger.Info("catalog saved to local snapshot", "count", len(products))
}

func (c *CatalogChannel) readDocument(ctx context.Context) ([]models.Product, error) {
	var raw []byte
	var err error

	if strings.HasPrefix(c.source, "http://") || strings.HasPrefix(c.source, "https://") {
		raw, err = c.fetch(ctx)
	} else {
		raw, err = os.ReadFile(c.source)
	}
	if err != nil {
		return nil, err
	}

	return parseCatalog(raw)
}

// fetch retrieves the catalog document over HTTP with a cache-defeating
// timestamp parameter, so a stale cached copy is never served.
func (c *CatalogChannel) fetch(ctx context.Context) ([]byte, error) {
	u, err := url.Parse(c.source)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	q := u.Query()
	q.Set("t", fmt.Sprintf("%d", time.Now().UnixNano()))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create catalog request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// parseCatalog accepts both {"products": [...]} and a bare product array.
func parseCatalog(raw []byte) ([]models.Product, error) {
	var doc catalogDocument
	if err := json.Unmarshal(raw, &doc); err == nil && doc.Products != nil {
		return doc.Products, nil
	}

	var bare []models.Product
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, fmt.Errorf("parse catalog document: %w", err)
	}
	return bare, nil
}
