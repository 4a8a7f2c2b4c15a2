package cache

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestShared(t *testing.T) *Shared {
	t.Helper()
	s, err := OpenShared(filepath.Join(t.TempDir(), "cache.db"), 4*time.Hour)
	if err != nil {
		t.Fatalf("OpenShared: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSharedSetGet(t *testing.T) {
	s := openTestShared(t)

	if _, ok := s.Get(NSCategories, "trending_1"); ok {
		t.Error("expected miss on empty store")
	}

	out := s.Set(NSCategories, "trending_1", []byte(`{"success":true}`))
	if !out.Written {
		t.Fatalf("write skipped: %s", out.Reason)
	}

	got, ok := s.Get(NSCategories, "trending_1")
	if !ok {
		t.Fatal("expected hit")
	}
	if string(got) != `{"success":true}` {
		t.Errorf("value = %s", got)
	}

	// Same key in another namespace is a distinct document.
	if _, ok := s.Get(NSDetails, "trending_1"); ok {
		t.Error("namespaces must not share keys")
	}
}

func TestSharedExpiredReadsAsMissButRowRemains(t *testing.T) {
	s := openTestShared(t)

	base := time.Now()
	s.now = func() time.Time { return base }
	s.Set(NSDetails, "detail_abc", []byte("v"))

	s.now = func() time.Time { return base.Add(5 * time.Hour) }
	if _, ok := s.Get(NSDetails, "detail_abc"); ok {
		t.Fatal("expected miss past TTL")
	}

	// The stale row is not deleted, only superseded by the next write.
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM cache_documents`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("row count = %d, want stale row retained", n)
	}

	// A fresh write overwrites it and reads again.
	s.Set(NSDetails, "detail_abc", []byte("v2"))
	got, ok := s.Get(NSDetails, "detail_abc")
	if !ok || string(got) != "v2" {
		t.Errorf("after rewrite: ok=%v value=%s", ok, got)
	}
}

func TestSharedUpdatedAtMarker(t *testing.T) {
	s := openTestShared(t)

	s.Set(NSCategories, "k", []byte("v"))

	var updatedAt string
	err := s.db.QueryRow(`SELECT updated_at FROM cache_documents WHERE namespace = ? AND key = ?`,
		NSCategories, "k").Scan(&updatedAt)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := time.Parse(time.RFC3339, updatedAt); err != nil {
		t.Errorf("updated_at %q is not RFC 3339: %v", updatedAt, err)
	}
}

func TestSharedFailuresDegrade(t *testing.T) {
	s, err := OpenShared(filepath.Join(t.TempDir(), "cache.db"), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reads on a closed store are misses, never errors.
	if _, ok := s.Get(NSCategories, "k"); ok {
		t.Error("expected miss on closed store")
	}

	// Writes report a skipped outcome instead of failing the request.
	out := s.Set(NSCategories, "k", []byte("v"))
	if out.Written {
		t.Error("expected skipped write on closed store")
	}
	if out.Reason == "" {
		t.Error("skipped outcome should carry a reason")
	}
}
