package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/models"
	"go.etcd.io/bbolt"
)

// Bucket and key names for the key-value channels.
const (
	storeBucket = "store"
	cartKey     = "cart"
	snapshotKey = "admin-products"
)

// KV is the embedded key-value store backing the cart channel and the
// catalog fallback channel.
type KV struct {
	db *bbolt.DB
}

// OpenKV opens the key-value store at the provided path.
func OpenKV(path string) (*KV, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("key-value store path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open key-value store: %w", err)
	}

	kv := &KV{db: db}
	if err := kv.ensureBucket(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return kv, nil
}

// Close closes the underlying database.
func (kv *KV) Close() error {
	if kv == nil || kv.db == nil {
		return nil
	}
	return kv.db.Close()
}

// SaveCart persists the full cart under the cart key.
func (kv *KV) SaveCart(ctx context.Context, lines []models.CartLine) error {
	return kv.put(ctx, cartKey, lines)
}

// LoadCart fetches the persisted cart. An absent key yields an empty cart,
// not an error.
func (kv *KV) LoadCart(ctx context.Context) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := kv.get(ctx, cartKey, &lines)
	if err == ErrNotFound {
		return []models.CartLine{}, nil
	}
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// SaveCatalogSnapshot persists a full catalog snapshot under the fallback key.
func (kv *KV) SaveCatalogSnapshot(ctx context.Context, products []models.Product) error {
	return kv.put(ctx, snapshotKey, products)
}

// LoadCatalogSnapshot fetches the fallback catalog snapshot. Returns
// ErrNotFound when no snapshot has been written.
func (kv *KV) LoadCatalogSnapshot(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := kv.get(ctx, snapshotKey, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (kv *KV) put(ctx context.Context, key string, value interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if kv == nil || kv.db == nil {
		return fmt.Errorf("key-value store is not configured")
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	return kv.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(storeBucket))
		if bucket == nil {
			return fmt.Errorf("store bucket is missing")
		}
		return bucket.Put([]byte(key), payload)
	})
}

func (kv *KV) get(ctx context.Context, key string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if kv == nil || kv.db == nil {
		return fmt.Errorf("key-value store is not configured")
	}

	return kv.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(storeBucket))
		if bucket == nil {
			return fmt.Errorf("store bucket is missing")
		}
		payload := bucket.Get([]byte(key))
		if payload == nil {
			return ErrNotFound
		}
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("unmarshal %s: %w", key, err)
		}
		return nil
	})
}

func (kv *KV) ensureBucket() error {
	return kv.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(storeBucket))
		if err != nil {
			return fmt.Errorf("create store bucket: %w", err)
		}
		return nil
	})
}
