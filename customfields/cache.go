package customfields

import (
	"slices"
	"sync"
)

// Cache holds field descriptors keyed by id. It is safe for concurrent use.
// Each paperless client owns one cache; it is never shared implicitly.
type Cache struct {
	mu     sync.RWMutex
	fields map[int]Field
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{fields: make(map[int]Field)}
}

// Upsert stores each field, replacing any descriptor with the same id.
func (c *Cache) Upsert(fields ...Field) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range fields {
		c.fields[f.ID] = f
	}
}

// Get returns the descriptor for id.
func (c *Cache) Get(id int) (Field, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.fields[id]
	return f, ok
}

// ByName returns the descriptor named name. When several share a name the lowest id wins.
func (c *Cache) ByName(name string) (Field, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var (
		match Field
		found bool
	)
	for _, f := range c.fields {
		if f.Name != name {
			continue
		}
		if !found || f.ID < match.ID {
			match = f
			found = true
		}
	}
	return match, found
}

// Len returns the number of cached descriptors.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.fields)
}

// All returns every descriptor ordered by id.
func (c *Cache) All() []Field {
	c.mu.RLock()
	fields := make([]Field, 0, len(c.fields))
	for _, f := range c.fields {
		fields = append(fields, f)
	}
	c.mu.RUnlock()

	slices.SortFunc(fields, func(a, b Field) int { return a.ID - b.ID })
	return fields
}
