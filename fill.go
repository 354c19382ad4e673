package cachekit

// FillFunc loads the value of a key that is not in the cache.
type FillFunc[V any] func(key string) (V, error)

// GetOrFill returns the value of key, counting the access like Get. On a miss
// it calls fill with no lock held and adds the result. Concurrent misses on
// the same key share one fill call. A failed fill is returned to every waiter
// and nothing is cached.
func (c *Cache[V]) GetOrFill(key string, fill FillFunc[V]) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	res, err, _ := c.fills.Do(key, func() (any, error) {
		// Another caller may have filled key between our Get and this call.
		if v, ok := c.Peek(key); ok {
			return v, nil
		}
		v, err := fill(key)
		if err != nil {
			return nil, err
		}
		c.Add(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	v, _ := res.(V)
	return v, nil
}
