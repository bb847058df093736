package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestInMemoryCache_GetSet(t *testing.T) {
	c := NewInMemoryCache(3600)

	if err := c.Set("abc:en:fr", "Bonjour"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	val, ok := c.Get("abc:en:fr")
	if !ok {
		t.Error("Get returned false for an existing key")
	}
	if val != "Bonjour" {
		t.Errorf("Get returned %q, want %q", val, "Bonjour")
	}

	val, ok = c.Get("missing")
	if ok || val != "" {
		t.Errorf("missing key returned %q, %v", val, ok)
	}
}

func TestInMemoryCache_TTL(t *testing.T) {
	c := NewInMemoryCache(1)

	c.Set("k", "v")
	if _, ok := c.Get("k"); !ok {
		t.Error("value unavailable immediately after set")
	}

	time.Sleep(1100 * time.Millisecond)

	if val, ok := c.Get("k"); ok {
		t.Errorf("value survived past its TTL: %q", val)
	}
}

func TestInMemoryCache_NoTTL(t *testing.T) {
	c := NewInMemoryCache(0)

	c.Set("k", "v")
	if val, ok := c.Get("k"); !ok || val != "v" {
		t.Errorf("Get = %q, %v", val, ok)
	}
}

func TestInMemoryCache_Overwrite(t *testing.T) {
	c := NewInMemoryCache(3600)

	c.Set("k", "first")
	c.Set("k", "second")

	if val, _ := c.Get("k"); val != "second" {
		t.Errorf("Get = %q, want %q", val, "second")
	}
}

func TestInMemoryCache_LenAndClear(t *testing.T) {
	c := NewInMemoryCache(3600)

	if c.Len() != 0 {
		t.Errorf("empty cache Len = %d", c.Len())
	}

	c.Set("a", "1")
	c.Set("b", "2")
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("entry survived Clear")
	}
}

func TestInMemoryCache_Concurrent(t *testing.T) {
	c := NewInMemoryCache(3600)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n)
			c.Set(key, "v")
			c.Get(key)
			c.Len()
		}(i)
	}
	wg.Wait()

	if c.Len() != 10 {
		t.Errorf("Len = %d, want 10", c.Len())
	}
}
