// Package cache provides a generic LRU cache.
//
//	c := cache.New[string, int](100)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// A Cache is safe for concurrent use and must not be copied after creation.
package cache
