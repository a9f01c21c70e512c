package data

import (
	"sync"

	"energy-mix-sim/internal/model"
)

// ProjectCache keeps parsed project documents in memory so the API server
// does not re-read and re-validate the same input tensors on every request.
// Projects are immutable after load, so entries never expire; a changed file
// path is a new entry.
type ProjectCache struct {
	mu    sync.RWMutex
	store map[string]*model.Project
}

var globalCache = &ProjectCache{store: make(map[string]*model.Project)}

// GetCache returns the process-wide project cache.
func GetCache() *ProjectCache {
	return globalCache
}

// Load returns the cached project for path, reading it on first use.
func (c *ProjectCache) Load(path string) (*model.Project, error) {
	c.mu.RLock()
	p, ok := c.store[path]
	c.mu.RUnlock()
	if ok {
		return p, nil
	}

	p, err := LoadProjectJSON(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.store[path] = p
	c.mu.Unlock()
	return p, nil
}

// Invalidate drops a cached entry, forcing a re-read on next use.
func (c *ProjectCache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.store, path)
	c.mu.Unlock()
}
