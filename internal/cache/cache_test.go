package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/salesight/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	a := Key("openai", "gpt-4o-mini", "prompt")
	b := Key("openai", "gpt-4o-mini", "prompt")
	c := Key("openai", "gpt-4o-mini", "other prompt")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
	assert.Contains(t, a, "salesight:v1:")
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_, found := c.Get("missing")
	assert.False(t, found)

	require.NoError(t, c.Set("k", []byte("v"), 0))
	val, found := c.Get("k")
	require.True(t, found)
	assert.Equal(t, []byte("v"), val)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Delete("k"))
	_, found = c.Get("k")
	assert.False(t, found)

	require.NoError(t, c.Set("a", []byte("1"), 0))
	require.NoError(t, c.Clear())
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	require.NoError(t, c.Set("k", []byte("v"), 10*time.Millisecond))

	time.Sleep(30 * time.Millisecond)

	_, found := c.Get("k")
	assert.False(t, found)
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	require.NoError(t, c.Set("k", []byte("answer"), 0))
	val, found := c.Get("k")
	require.True(t, found)
	assert.Equal(t, []byte("answer"), val)

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, c.Delete("k"))
	require.NoError(t, c.Delete("k"), "deleting a missing entry is not an error")
}

func TestDiskCache_ExpiredAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	require.NoError(t, c.Set("old", []byte("v"), time.Millisecond))
	time.Sleep(10 * time.Millisecond)
	_, found := c.Get("old")
	assert.False(t, found)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.cache"), []byte("{"), 0644))
	_, found = c.Get("bad")
	assert.False(t, found)
	_, err := os.Stat(filepath.Join(dir, "bad.cache"))
	assert.True(t, os.IsNotExist(err), "corrupt entry should be removed")
}

func TestLayeredCache_PromotesFromDisk(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)
	require.NoError(t, c.Set("k", []byte("v"), 0))

	// A fresh layered cache over the same dir only has the disk copy
	fresh := NewLayeredCache(time.Minute, dir, time.Hour)
	val, found := fresh.Get("k")
	require.True(t, found)
	assert.Equal(t, []byte("v"), val)

	memVal, found := fresh.memory.Get("k")
	require.True(t, found, "disk hit should be promoted to memory")
	assert.Equal(t, []byte("v"), memVal)

	require.NoError(t, fresh.Delete("k"))
	_, found = fresh.Get("k")
	assert.False(t, found)
}

func TestNew(t *testing.T) {
	assert.Nil(t, New(model.CacheConfig{Enabled: false}))

	_, isMemory := New(model.CacheConfig{Enabled: true, MemoryTTL: 60}).(*MemoryCache)
	assert.True(t, isMemory)

	_, isLayered := New(model.CacheConfig{Enabled: true, MemoryTTL: 60, DiskDir: t.TempDir(), DiskTTL: 60}).(*LayeredCache)
	assert.True(t, isLayered)
}
