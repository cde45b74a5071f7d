package azure

// clientKind identifies which management client family a cache entry holds.
type clientKind string

const (
	kindResource clientKind = "resource"
	kindNetwork  clientKind = "network"
	kindCompute  clientKind = "compute"
	kindStorage  clientKind = "storage"
	kindDatabase clientKind = "database"
)

type cacheKey struct {
	kind           clientKind
	subscriptionID string
}

// clientCache memoizes management client factories per (kind, subscription)
// for the lifetime of the current tenant scope. Switching tenant invalidates
// the whole cache, nothing is evicted piecemeal.
type clientCache struct {
	entries map[cacheKey]any
}

func newClientCache() *clientCache {
	return &clientCache{entries: make(map[cacheKey]any)}
}

// Get returns the cached value for (kind, subscriptionID), building and
// storing it on first use.
func (c *clientCache) Get(kind clientKind, subscriptionID string, build func() (any, error)) (any, error) {
	key := cacheKey{kind: kind, subscriptionID: subscriptionID}
	if v, ok := c.entries[key]; ok {
		return v, nil
	}

	v, err := build()
	if err != nil {
		return nil, err
	}
	c.entries[key] = v
	return v, nil
}

// InvalidateAll drops every cached client. Called when the tenant changes and
// the credential is re-derived.
func (c *clientCache) InvalidateAll() {
	c.entries = make(map[cacheKey]any)
}

func (c *clientCache) Len() int {
	return len(c.entries)
}
