package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-assist/internal/logger"
)

// IndexFormatVersion is written to every index file. Files with another
// version are ignored and must be rebuilt.
const IndexFormatVersion = 1

const indexSchema = `
	CREATE TABLE meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE TABLE chunks (
		row         INTEGER PRIMARY KEY,
		text        TEXT NOT NULL,
		position    INTEGER NOT NULL,
		document_id TEXT NOT NULL,
		source      TEXT NOT NULL,
		kind        TEXT NOT NULL,
		title       TEXT NOT NULL
	);
	CREATE TABLE embeddings (
		row    INTEGER PRIMARY KEY,
		vector BLOB NOT NULL
	);
	CREATE TABLE ann (
		id   INTEGER PRIMARY KEY CHECK (id = 1),
		data BLOB NOT NULL
	);
`

// IndexFile persists index snapshots as self-contained SQLite files.
type IndexFile struct{}

var _ driven.IndexStore = IndexFile{}

// NewIndexFile creates an index file store.
func NewIndexFile() IndexFile {
	return IndexFile{}
}

// Save writes snap to a temporary file beside path and renames it over path.
func (IndexFile) Save(ctx context.Context, path string, snap *driven.IndexSnapshot) error {
	if snap == nil {
		return errors.New("nil snapshot")
	}
	if len(snap.Chunks) != len(snap.Embeddings) {
		return fmt.Errorf("%w: %d chunks but %d embeddings", domain.ErrInvalidInput, len(snap.Chunks), len(snap.Embeddings))
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := writeIndex(ctx, tmpPath, snap); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing index file: %w", err)
	}
	return nil
}

func writeIndex(ctx context.Context, path string, snap *driven.IndexSnapshot) (err error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening index file: %w", err)
	}
	defer func() {
		if cerr := db.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing index file: %w", cerr)
		}
	}()

	if _, err := db.ExecContext(ctx, indexSchema); err != nil {
		return fmt.Errorf("creating index schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	createdAt := snap.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	meta := map[string]string{
		"format_version": strconv.Itoa(IndexFormatVersion),
		"dimensions":     strconv.Itoa(snap.Dimensions),
		"model":          snap.Model,
		"created_at":     createdAt.UTC().Format(time.RFC3339Nano),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, "INSERT INTO meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return fmt.Errorf("writing meta %s: %w", k, err)
		}
	}

	chunkStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (row, text, position, document_id, source, kind, title)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer chunkStmt.Close()

	embStmt, err := tx.PrepareContext(ctx, "INSERT INTO embeddings (row, vector) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing embedding insert: %w", err)
	}
	defer embStmt.Close()

	for i, c := range snap.Chunks {
		if _, err := chunkStmt.ExecContext(ctx, i, c.Text, c.Position, c.DocumentID, c.Source, string(c.Kind), c.Title); err != nil {
			return fmt.Errorf("writing chunk %d: %w", i, err)
		}
		if _, err := embStmt.ExecContext(ctx, i, float32SliceToBytes(snap.Embeddings[i])); err != nil {
			return fmt.Errorf("writing embedding %d: %w", i, err)
		}
	}

	if snap.ANN != nil {
		if _, err := tx.ExecContext(ctx, "INSERT INTO ann (id, data) VALUES (1, ?)", snap.ANN); err != nil {
			return fmt.Errorf("writing ann: %w", err)
		}
	}

	return tx.Commit()
}

// Load reads the snapshot at path. Any problem yields ok=false; the reason
// is logged at debug level.
func (IndexFile) Load(ctx context.Context, path string) (*driven.IndexSnapshot, bool) {
	if _, err := os.Stat(path); err != nil {
		logger.Debug("Index file %s not available: %v", path, err)
		return nil, false
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		logger.Debug("Opening index file %s: %v", path, err)
		return nil, false
	}
	defer db.Close()

	snap, err := readIndex(ctx, db)
	if err != nil {
		logger.Debug("Reading index file %s: %v", path, err)
		return nil, false
	}
	return snap, true
}

func readIndex(ctx context.Context, db *sql.DB) (*driven.IndexSnapshot, error) {
	meta, err := readMeta(ctx, db)
	if err != nil {
		return nil, err
	}
	if v := meta["format_version"]; v != strconv.Itoa(IndexFormatVersion) {
		return nil, fmt.Errorf("unsupported format version %q", v)
	}
	dims, err := strconv.Atoi(meta["dimensions"])
	if err != nil || dims <= 0 {
		return nil, fmt.Errorf("invalid dimensions %q", meta["dimensions"])
	}

	snap := &driven.IndexSnapshot{
		Dimensions: dims,
		Model:      meta["model"],
	}
	if t, err := time.Parse(time.RFC3339Nano, meta["created_at"]); err == nil {
		snap.CreatedAt = t
	}

	rows, err := db.QueryContext(ctx, "SELECT text, position, document_id, source, kind, title FROM chunks ORDER BY row")
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	for rows.Next() {
		var (
			c    domain.Chunk
			kind string
		)
		if err := rows.Scan(&c.Text, &c.Position, &c.DocumentID, &c.Source, &kind, &c.Title); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		c.Kind = domain.DocumentKind(kind)
		snap.Chunks = append(snap.Chunks, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.QueryContext(ctx, "SELECT vector FROM embeddings ORDER BY row")
	if err != nil {
		return nil, fmt.Errorf("querying embeddings: %w", err)
	}
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning embedding: %w", err)
		}
		vec, ok := bytesToFloat32Slice(blob)
		if !ok || len(vec) != dims {
			rows.Close()
			return nil, fmt.Errorf("embedding %d: %w", len(snap.Embeddings), domain.ErrDimensionMismatch)
		}
		snap.Embeddings = append(snap.Embeddings, vec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(snap.Chunks) != len(snap.Embeddings) {
		return nil, fmt.Errorf("%d chunks but %d embeddings", len(snap.Chunks), len(snap.Embeddings))
	}

	err = db.QueryRowContext(ctx, "SELECT data FROM ann WHERE id = 1").Scan(&snap.ANN)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reading ann: %w", err)
	}

	return snap, nil
}

func readMeta(ctx context.Context, db *sql.DB) (map[string]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT key, value FROM meta")
	if err != nil {
		return nil, fmt.Errorf("querying meta: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scanning meta: %w", err)
		}
		meta[k] = v
	}
	return meta, rows.Err()
}
