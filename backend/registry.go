// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/compositor/gpu"
)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Preferred order for Default.
	priority = []string{Software}
)

// Register makes a backend available under name. A later registration with
// the same name replaces the earlier one.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = f
}

// Unregister removes a backend. It is intended for tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// New creates a context from the backend registered under name.
func New(name string, cfg Config) (gpu.Context, error) {
	registryMu.RLock()
	f, ok := factories[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return f(cfg)
}

// Default creates a context from the preferred registered backend, falling
// back to any registered one.
func Default(cfg Config) (gpu.Context, error) {
	registryMu.RLock()
	var f Factory
	for _, name := range priority {
		if g, ok := factories[name]; ok {
			f = g
			break
		}
	}
	if f == nil {
		names := make([]string, 0, len(factories))
		for name := range factories {
			names = append(names, name)
		}
		sort.Strings(names)
		if len(names) > 0 {
			f = factories[names[0]]
		}
	}
	registryMu.RUnlock()

	if f == nil {
		return nil, ErrBackendNotAvailable
	}
	return f(cfg)
}
