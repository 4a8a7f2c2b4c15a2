package cache

import (
	"testing"
	"time"
)

func TestLocalSetGet(t *testing.T) {
	l := NewLocal(15 * time.Minute)

	if _, ok := l.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}

	l.Set("trending_1", []byte(`{"success":true}`))

	got, ok := l.Get("trending_1")
	if !ok {
		t.Fatal("expected hit")
	}
	if string(got) != `{"success":true}` {
		t.Errorf("value = %s", got)
	}
}

func TestLocalExpiryEvicts(t *testing.T) {
	l := NewLocal(15 * time.Minute)

	base := time.Now()
	l.now = func() time.Time { return base }
	l.Set("trending_1", []byte("v"))

	// Just inside the window.
	l.now = func() time.Time { return base.Add(14 * time.Minute) }
	if _, ok := l.Get("trending_1"); !ok {
		t.Fatal("expected hit inside TTL window")
	}

	// Past expiry: miss, and the entry must be gone afterwards.
	l.now = func() time.Time { return base.Add(16 * time.Minute) }
	if _, ok := l.Get("trending_1"); ok {
		t.Fatal("expected miss past TTL")
	}
	if l.Len() != 0 {
		t.Errorf("expired entry not evicted, %d entries remain", l.Len())
	}
}

func TestLocalSetRefreshesTTL(t *testing.T) {
	l := NewLocal(15 * time.Minute)

	base := time.Now()
	l.now = func() time.Time { return base }
	l.Set("k", []byte("old"))

	l.now = func() time.Time { return base.Add(10 * time.Minute) }
	l.Set("k", []byte("new"))

	l.now = func() time.Time { return base.Add(20 * time.Minute) }
	got, ok := l.Get("k")
	if !ok {
		t.Fatal("expected hit, second Set should have refreshed the TTL")
	}
	if string(got) != "new" {
		t.Errorf("value = %s, want new", got)
	}
}
