package markdown

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

var renderedBucket = []byte("rendered")

var ErrCachePathEmpty = errors.New("cache path is empty")

// Cache stores rendered HTML in a bbolt file.
type Cache struct {
	db *bolt.DB
}

func OpenCache(path string) (*Cache, error) {
	if path == "" {
		return nil, ErrCachePathEmpty
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("error creating cache dir: %w", err)
	}

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("error opening render cache: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(renderedBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating render cache bucket: %w", err)
	}

	return &Cache{db: db}, nil
}

func cacheKey(key uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, key)
	return b
}

func (c *Cache) Get(key uint64) (string, bool) {
	var (
		out   string
		found bool
	)
	_ = c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(renderedBucket).Get(cacheKey(key))
		if v != nil {
			out, found = string(v), true
		}
		return nil
	})

	return out, found
}

func (c *Cache) Put(key uint64, rendered string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(renderedBucket).Put(cacheKey(key), []byte(rendered))
	})
}

func (c *Cache) Close() error {
	return c.db.Close()
}
