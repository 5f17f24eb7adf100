// Package vectorxsql persists vectorx collections in a SQL database through
// sqlx. Postgres (lib/pq) and SQLite (modernc) share one schema; vectors are
// stored as JSON arrays and ranked in process after metadata filters have
// been applied in SQL.
package vectorxsql

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/vectorx"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/logx"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

type Backend struct {
	db      *sqlx.DB
	dialect Dialect
	ownsDB  bool
}

var _ vectorx.Backend = (*Backend)(nil)

// OpenSQLite opens (creating if needed) a SQLite database file and migrates it.
func OpenSQLite(ctx context.Context, path string) (*Backend, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	b, err := New(ctx, db, DialectSQLite)
	if err != nil {
		db.Close()
		return nil, err
	}
	b.ownsDB = true
	return b, nil
}

// New wraps an open database and applies the schema migrations.
func New(ctx context.Context, db *sqlx.DB, dialect Dialect) (*Backend, error) {
	b := &Backend{db: db, dialect: dialect}
	if err := b.migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return b, nil
}

func (b *Backend) migrate(ctx context.Context) error {
	gooseDialect := "postgres"
	if b.dialect == DialectSQLite {
		gooseDialect = "sqlite3"
	}

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, b.db.DB, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}
	logx.WithField("dialect", b.dialect).Debugf("vector store schema up to date")
	return nil
}

type row struct {
	Collection string `db:"collection"`
	ID         string `db:"id"`
	Content    string `db:"content"`
	Metadata   string `db:"metadata"`
	Embedding  string `db:"embedding"`
	CreatedAt  int64  `db:"created_at"`
}

func (r row) record() (vectorx.Record, error) {
	rec := vectorx.Record{
		Document: vectorx.Document{
			ID:        r.ID,
			Text:      r.Content,
			CreatedAt: time.UnixMilli(r.CreatedAt).UTC(),
		},
	}
	if err := json.Unmarshal([]byte(r.Metadata), &rec.Metadata); err != nil {
		return rec, fmt.Errorf("decode metadata of %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.Embedding), &rec.Vector); err != nil {
		return rec, fmt.Errorf("decode embedding of %s: %w", r.ID, err)
	}
	return rec, nil
}

const upsertQuery = `
INSERT INTO vector_documents (collection, id, content, metadata, embedding, created_at)
VALUES (:collection, :id, :content, :metadata, :embedding, :created_at)
ON CONFLICT (collection, id) DO UPDATE SET
    content = excluded.content,
    metadata = excluded.metadata,
    embedding = excluded.embedding,
    created_at = excluded.created_at`

func (b *Backend) Upsert(ctx context.Context, collection string, records ...vectorx.Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range records {
		meta := r.Metadata
		if meta == nil {
			meta = map[string]string{}
		}
		metaJSON, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		vecJSON, err := json.Marshal(r.Vector)
		if err != nil {
			return err
		}
		_, err = tx.NamedExecContext(ctx, upsertQuery, row{
			Collection: collection,
			ID:         r.ID,
			Content:    r.Text,
			Metadata:   string(metaJSON),
			Embedding:  string(vecJSON),
			CreatedAt:  r.CreatedAt.UnixMilli(),
		})
		if err != nil {
			return fmt.Errorf("upsert %s/%s: %w", collection, r.ID, err)
		}
	}
	return tx.Commit()
}

func (b *Backend) Query(ctx context.Context, collection string, vector []float64, filter vectorx.Filter, limit int) ([]vectorx.Match, error) {
	rows, err := b.candidates(ctx, collection, filter)
	if err != nil {
		return nil, err
	}

	records := make([]vectorx.Record, 0, len(rows))
	for _, r := range rows {
		rec, err := r.record()
		if err != nil {
			logx.WithField("collection", collection).Warnf("skipping unreadable vector row: %v", err)
			continue
		}
		records = append(records, rec)
	}
	return vectorx.Rank(records, vector, filter, limit), nil
}

// candidates loads the rows of collection whose metadata satisfies filter.
// Only the ranking itself runs in process.
func (b *Backend) candidates(ctx context.Context, collection string, filter vectorx.Filter) ([]row, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT collection, id, content, metadata, embedding, created_at
		FROM vector_documents WHERE collection = ?`)
	args := []any{collection}

	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if b.dialect == DialectPostgres {
			sb.WriteString(` AND (metadata::jsonb ->> ?) = ?`)
			args = append(args, k, filter[k])
		} else {
			sb.WriteString(` AND json_extract(metadata, ?) = ?`)
			args = append(args, jsonPath(k), filter[k])
		}
	}
	sb.WriteString(` ORDER BY created_at, id`)

	var rows []row
	if err := b.db.SelectContext(ctx, &rows, b.db.Rebind(sb.String()), args...); err != nil {
		return nil, err
	}
	return rows, nil
}

// jsonPath quotes key as a single SQLite JSON path member.
func jsonPath(key string) string {
	return `$."` + strings.ReplaceAll(key, `"`, `\"`) + `"`
}

func (b *Backend) Count(ctx context.Context, collection string) (int, error) {
	var n int
	query := b.db.Rebind(`SELECT COUNT(*) FROM vector_documents WHERE collection = ?`)
	if err := b.db.GetContext(ctx, &n, query, collection); err != nil {
		return 0, err
	}
	return n, nil
}

func (b *Backend) DeleteBefore(ctx context.Context, collection string, t time.Time) (int, error) {
	query := b.db.Rebind(`DELETE FROM vector_documents WHERE collection = ? AND created_at < ?`)
	res, err := b.db.ExecContext(ctx, query, collection, t.UnixMilli())
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Close closes the database if the backend opened it.
func (b *Backend) Close() error {
	if b.ownsDB {
		return b.db.Close()
	}
	return nil
}
