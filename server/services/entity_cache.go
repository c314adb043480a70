package services

// EntityCache maps a normalized entity name to its database id for the
// duration of a single import run. It is owned by the run that created it
// and is never shared across requests, so no locking is needed.
type EntityCache struct {
	ids map[string]int64
}

// NewEntityCache returns an empty cache.
func NewEntityCache() *EntityCache {
	return &EntityCache{ids: make(map[string]int64)}
}

// Get returns the cached id for a normalized name.
func (c *EntityCache) Get(normalized string) (int64, bool) {
	id, ok := c.ids[normalized]
	return id, ok
}

// Put records the id for a normalized name.
func (c *EntityCache) Put(normalized string, id int64) {
	c.ids[normalized] = id
}

// Len returns the number of cached entries.
func (c *EntityCache) Len() int {
	return len(c.ids)
}
