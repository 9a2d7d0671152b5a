package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	sqlitedriver "modernc.org/sqlite"

	"github.com/custodia-labs/docshelf/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/ports/driven"
)

// foldFunc is the SQL name of the Unicode lower-casing function used by
// FilterContains. SQLite's built-in lower() folds ASCII only.
const foldFunc = "docshelf_fold"

func init() {
	if err := sqlitedriver.RegisterDeterministicScalarFunction(foldFunc, 1, fold); err != nil {
		panic(fmt.Sprintf("registering %s: %v", foldFunc, err))
	}
}

// fold lower-cases text the same way strings.ToLower does.
func fold(_ *sqlitedriver.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return strings.ToLower(fmt.Sprint(v)), nil
	}
}

// Store owns the SQLite connection and exposes the record store.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.docshelf/data/docshelf.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docshelf", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "docshelf.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		now:  func() time.Time { return time.Now().UTC() },
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// RecordStore returns a RecordStore interface backed by this store.
func (s *Store) RecordStore() driven.RecordStore {
	return &recordStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
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
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion() (int, error) {
	var v int
	err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v)
	return v, err
}

// ==================== Record Store ====================

// recordStore implements driven.RecordStore.
type recordStore struct {
	store *Store
}

var _ driven.RecordStore = (*recordStore)(nil)

const documentColumns = "id, title, file_key, content, tags, file_type, created_at"

// Create inserts a new record and assigns its ID and CreatedAt.
func (r *recordStore) Create(ctx context.Context, doc *domain.Document) error {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = r.store.now()
	}
	if doc.FileType == "" {
		doc.FileType = domain.CategoryOther
	}

	res, err := r.store.db.ExecContext(ctx, `
		INSERT INTO documents (title, file_key, content, tags, file_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, doc.Title, doc.FileKey, doc.Content, doc.Tags, string(doc.FileType), doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading document id: %w", err)
	}
	doc.ID = id
	return nil
}

// Save updates an existing record.
func (r *recordStore) Save(ctx context.Context, doc *domain.Document) error {
	res, err := r.store.db.ExecContext(ctx, `
		UPDATE documents
		SET title = ?, file_key = ?, content = ?, tags = ?, file_type = ?
		WHERE id = ?
	`, doc.Title, doc.FileKey, doc.Content, doc.Tags, string(doc.FileType), doc.ID)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Get retrieves a record by ID.
func (r *recordStore) Get(ctx context.Context, id int64) (*domain.Document, error) {
	row := r.store.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE id = ?", id)
	return scanDocument(row)
}

// Delete removes a record.
func (r *recordStore) Delete(ctx context.Context, id int64) error {
	res, err := r.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns all records, newest first.
func (r *recordStore) List(ctx context.Context) ([]domain.Document, error) {
	rows, err := r.store.db.QueryContext(ctx,
		"SELECT "+documentColumns+" FROM documents ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()
	return collectDocuments(rows)
}

// FilterContains returns records whose title, content or tags contain needle.
// Both sides are folded with strings.ToLower, so matching ignores case
// for any script.
func (r *recordStore) FilterContains(ctx context.Context, needle string, limit int) ([]domain.Document, error) {
	if limit <= 0 {
		limit = domain.DefaultFallbackLimit
	}
	n := strings.ToLower(needle)

	rows, err := r.store.db.QueryContext(ctx, "SELECT "+documentColumns+` FROM documents
		WHERE instr(`+foldFunc+`(title), ?) > 0
		   OR instr(`+foldFunc+`(content), ?) > 0
		   OR instr(`+foldFunc+`(tags), ?) > 0
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, n, n, n, limit)
	if err != nil {
		return nil, fmt.Errorf("filtering documents: %w", err)
	}
	defer rows.Close()
	return collectDocuments(rows)
}

// Latest returns the newest record.
func (r *recordStore) Latest(ctx context.Context) (*domain.Document, error) {
	row := r.store.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents ORDER BY created_at DESC, id DESC LIMIT 1")
	return scanDocument(row)
}

// Count returns the number of records.
func (r *recordStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// Close closes the underlying store.
func (r *recordStore) Close() error {
	return r.store.Close()
}

// ==================== Helpers ====================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInto(sc rowScanner) (*domain.Document, error) {
	var doc domain.Document
	var fileType string
	if err := sc.Scan(&doc.ID, &doc.Title, &doc.FileKey, &doc.Content,
		&doc.Tags, &fileType, &doc.CreatedAt); err != nil {
		return nil, err
	}
	doc.FileType = domain.FileCategory(fileType)
	return &doc, nil
}

// scanDocument scans a document from *sql.Row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	doc, err := scanInto(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return doc, nil
}

func collectDocuments(rows *sql.Rows) ([]domain.Document, error) {
	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanInto(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}
