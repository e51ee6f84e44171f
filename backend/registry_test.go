// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"testing"

	"github.com/gogpu/compositor/gpu"
)

type stubContext struct {
	gpu.Context
	cfg Config
}

func TestRegistry(t *testing.T) {
	const name = "stub-test"
	Register(name, func(cfg Config) (gpu.Context, error) {
		return &stubContext{cfg: cfg}, nil
	})
	defer Unregister(name)

	if !IsRegistered(name) {
		t.Fatalf("IsRegistered(%q) = false", name)
	}
	found := false
	for _, n := range Available() {
		if n == name {
			found = true
		}
	}
	if !found {
		t.Errorf("Available() = %v, missing %q", Available(), name)
	}

	ctx, err := New(name, Config{MSAA: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if s, ok := ctx.(*stubContext); !ok || !s.cfg.MSAA {
		t.Errorf("New() = %#v, want stub with MSAA config", ctx)
	}
}

func TestNewUnknown(t *testing.T) {
	_, err := New("does-not-exist", Config{})
	if !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("New(unknown) error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestDefaultFallback(t *testing.T) {
	registryMu.Lock()
	saved := factories
	factories = map[string]Factory{
		"zeta": func(Config) (gpu.Context, error) { return &stubContext{}, nil },
	}
	registryMu.Unlock()
	defer func() {
		registryMu.Lock()
		factories = saved
		registryMu.Unlock()
	}()

	if _, err := Default(Config{}); err != nil {
		t.Errorf("Default() error = %v, want fallback to zeta", err)
	}

	registryMu.Lock()
	factories = map[string]Factory{}
	registryMu.Unlock()
	if _, err := Default(Config{}); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Default() on empty registry error = %v", err)
	}
}
