package cache

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Namespaces used by the facade. Search results are deliberately kept
// out of the shared tier.
const (
	NSCategories = "categories"
	NSDetails    = "details"
)

// WriteOutcome reports whether a shared-tier write landed. Writes are
// fire-and-forget on the read path, so failures surface here instead
// of as errors.
type WriteOutcome struct {
	Written bool
	Reason  string
}

func written() WriteOutcome { return WriteOutcome{Written: true} }

func skipped(reason string) WriteOutcome { return WriteOutcome{Reason: reason} }

// Shared is the cross-client cache tier, backed by a SQLite document
// table addressed by (namespace, key). Each row carries the payload,
// an absolute expiry, and a human-readable update marker. Expired rows
// read as misses but stay in place until the next write overwrites
// them. Read failures of any kind also read as misses.
type Shared struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

const sharedSchema = `
CREATE TABLE IF NOT EXISTS cache_documents (
	namespace  TEXT NOT NULL,
	key        TEXT NOT NULL,
	content    BLOB NOT NULL,
	expiry     INTEGER NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (namespace, key)
);`

// OpenShared opens (creating if needed) the shared cache store at path.
func OpenShared(path string, ttl time.Duration) (*Shared, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache store: %w", err)
	}
	if _, err := db.Exec(sharedSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing cache schema: %w", err)
	}
	return &Shared{db: db, ttl: ttl, now: time.Now}, nil
}

// Get returns the stored value for (namespace, key), or false on a
// miss. Store errors degrade to misses; the caller falls through to
// the origin.
func (s *Shared) Get(namespace, key string) ([]byte, bool) {
	var content []byte
	var expiry int64
	err := s.db.QueryRow(
		`SELECT content, expiry FROM cache_documents WHERE namespace = ? AND key = ?`,
		namespace, key,
	).Scan(&content, &expiry)
	if err != nil {
		return nil, false
	}
	if s.now().Unix() > expiry {
		// Stale rows are left for the next Set to overwrite.
		return nil, false
	}
	return content, true
}

// Set stores value under (namespace, key) with a fresh TTL,
// overwriting any previous row.
func (s *Shared) Set(namespace, key string, value []byte) WriteOutcome {
	now := s.now()
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO cache_documents (namespace, key, content, expiry, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		namespace, key, value, now.Add(s.ttl).Unix(), now.Format(time.RFC3339),
	)
	if err != nil {
		return skipped(err.Error())
	}
	return written()
}

// Close releases the underlying store handle.
func (s *Shared) Close() error {
	return s.db.Close()
}
