package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/ppiankov/salesight/internal/model"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key hashes the parts that determine an assistant answer. The dispatcher
// passes the provider name, the model that will answer, the system
// instruction and the full prompt. Parts are NUL-separated so ("ab","c") != ("a","bc").
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "salesight:v1:" + hex.EncodeToString(hash[:])
}

// New builds the cache described by cfg: layered memory+disk, memory only
// when no directory is set, or nil when caching is disabled
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}

	memoryTTL := time.Duration(cfg.MemoryTTL) * time.Second
	if cfg.DiskDir == "" {
		return NewMemoryCache(memoryTTL, 10*time.Minute)
	}
	return NewLayeredCache(memoryTTL, cfg.DiskDir, time.Duration(cfg.DiskTTL)*time.Second)
}
