package cache

import (
	"testing"
	"time"
)

func TestGetReturnsLiveValue(t *testing.T) {
	s := New(time.Minute)
	s.Set("k", "v", 0)

	got, ok := s.Get("k")
	if !ok {
		t.Fatal("expected hit, got miss")
	}
	if got != "v" {
		t.Errorf("got %v, want v", got)
	}
}

func TestExpiredEntryIsMissAndEvicted(t *testing.T) {
	now := time.Now()
	s := New(time.Minute)
	s.now = func() time.Time { return now }

	s.Set("k", 42, 10*time.Second)

	// Just before expiry: still a hit.
	now = now.Add(9 * time.Second)
	if _, ok := s.Get("k"); !ok {
		t.Fatal("expected hit before expiry")
	}

	// Past expiry: miss, and the entry must be gone afterwards.
	now = now.Add(2 * time.Second)
	if _, ok := s.Get("k"); ok {
		t.Fatal("expected miss after expiry")
	}
	if s.Len() != 0 {
		t.Errorf("expected entry evicted, store has %d entries", s.Len())
	}
}

func TestSetDefaultTTL(t *testing.T) {
	now := time.Now()
	s := New(time.Minute)
	s.now = func() time.Time { return now }

	s.Set("k", "v", 0)

	now = now.Add(59 * time.Second)
	if _, ok := s.Get("k"); !ok {
		t.Fatal("expected hit inside default TTL")
	}
	now = now.Add(2 * time.Second)
	if _, ok := s.Get("k"); ok {
		t.Fatal("expected miss past default TTL")
	}
}

func TestOverwriteIsLastWriteWins(t *testing.T) {
	s := New(time.Minute)
	s.Set("k", "first", 0)
	s.Set("k", "second", 0)

	got, _ := s.Get("k")
	if got != "second" {
		t.Errorf("got %v, want second", got)
	}
}

func TestDelete(t *testing.T) {
	s := New(time.Minute)
	s.Set("k", "v", 0)

	if !s.Delete("k") {
		t.Error("expected Delete to report true for present key")
	}
	if s.Delete("k") {
		t.Error("expected Delete to report false for absent key")
	}
	if _, ok := s.Get("k"); ok {
		t.Error("expected miss after delete")
	}
}

func TestGetAsTypeMismatchIsMiss(t *testing.T) {
	s := New(time.Minute)
	s.Set("k", "a string", 0)

	if _, ok := GetAs[[]int](s, "k"); ok {
		t.Error("expected type mismatch to behave as a miss")
	}
	if v, ok := GetAs[string](s, "k"); !ok || v != "a string" {
		t.Errorf("GetAs[string] = %q, %v; want a string, true", v, ok)
	}
}

func TestObserveCallbacks(t *testing.T) {
	s := New(time.Minute)
	var hits, misses int
	s.Observe(func() { hits++ }, func() { misses++ })

	s.Get("absent")
	s.Set("k", 1, 0)
	s.Get("k")
	s.Get("k")

	if hits != 2 || misses != 1 {
		t.Errorf("hits=%d misses=%d, want 2 and 1", hits, misses)
	}
}
