package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/loupe-labs/loupe-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driven"
)

// Cache is a SQLite-backed fetch cache.
type Cache struct {
	db   *sql.DB
	path string
}

var _ driven.FetchCache = (*Cache)(nil)

// NewCache creates a new SQLite fetch cache at the specified data directory.
// If dataDir is empty, defaults to ~/.loupe/data/fetchcache.db.
func NewCache(dataDir string) (*Cache, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".loupe", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "fetchcache.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	c := &Cache{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := c.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.path
}

// Get returns the cached entry for a URL. Entries older than the TTL are
// treated as absent.
func (c *Cache) Get(ctx context.Context, url string, ttl time.Duration) (*driven.CachedFetch, error) {
	var (
		entry     driven.CachedFetch
		fetchedAt int64
	)
	row := c.db.QueryRowContext(ctx, `
		SELECT url, status_code, content_type, body, fetched_at
		FROM fetch_cache WHERE url = ?
	`, url)
	err := row.Scan(&entry.URL, &entry.StatusCode, &entry.ContentType, &entry.Body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no cached fetch for %s", domain.ErrNotFound, url)
	}
	if err != nil {
		return nil, fmt.Errorf("querying fetch cache: %w", err)
	}

	entry.FetchedAt = time.Unix(fetchedAt, 0).UTC()
	if ttl > 0 && time.Since(entry.FetchedAt) > ttl {
		return nil, fmt.Errorf("%w: cached fetch for %s is stale", domain.ErrNotFound, url)
	}
	return &entry, nil
}

// Put stores or replaces the cached entry for a URL.
func (c *Cache) Put(ctx context.Context, entry *driven.CachedFetch) error {
	fetchedAt := entry.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO fetch_cache (url, status_code, content_type, body, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			status_code = excluded.status_code,
			content_type = excluded.content_type,
			body = excluded.body,
			fetched_at = excluded.fetched_at
	`, entry.URL, entry.StatusCode, entry.ContentType, entry.Body, fetchedAt.Unix())
	if err != nil {
		return fmt.Errorf("storing fetch cache entry: %w", err)
	}
	return nil
}

// Purge removes entries older than the TTL and returns the number removed.
func (c *Cache) Purge(ctx context.Context, ttl time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-ttl).Unix()
	res, err := c.db.ExecContext(ctx, "DELETE FROM fetch_cache WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging fetch cache: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting purged rows: %w", err)
	}
	return removed, nil
}

// migrate runs all pending migrations.
func (c *Cache) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := c.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_fetch_cache.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := c.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}
