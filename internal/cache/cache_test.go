package cache

import "testing"

func TestCacheLRU(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("Get(a) missing")
	}
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("Get(b) found, want evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("Get(%s) missing", k)
		}
	}
	if got := c.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestCacheUpdate(t *testing.T) {
	c := New[int, string](0)
	c.Set(1, "x")
	c.Set(1, "y")
	if v, _ := c.Get(1); v != "y" {
		t.Errorf("Get(1) = %q, want %q", v, "y")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[int, int](4)
	calls := 0
	create := func() int { calls++; return 7 }
	for i := 0; i < 3; i++ {
		if v := c.GetOrCreate(1, create); v != 7 {
			t.Errorf("GetOrCreate() = %d, want 7", v)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 {
		t.Errorf("Stats() = %+v, want 2 hits 1 miss", s)
	}
	if got, want := s.HitRate(), 2.0/3.0; got != want {
		t.Errorf("HitRate() = %v, want %v", got, want)
	}
}

func TestCacheDeleteClear(t *testing.T) {
	c := New[int, int](0)
	c.Set(1, 1)
	c.Set(2, 2)
	c.Set(3, 3)
	if !c.Delete(2) {
		t.Error("Delete(2) = false, want true")
	}
	if c.Delete(2) {
		t.Error("second Delete(2) = true, want false")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	c.Set(4, 4)
	if v, ok := c.Get(4); !ok || v != 4 {
		t.Errorf("Get(4) = %d, %v after Clear", v, ok)
	}
}
