package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	// postgres driver
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	// sqlite driver
	_ "modernc.org/sqlite"
)

const (
	table       = "local_storage"
	keyColumn   = "item_key"
	valueColumn = "item_value"

	dsnTemplate = "user=%s password=%s host=%s dbname=%s sslmode=disable"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS local_storage (
    item_key   TEXT PRIMARY KEY,
    item_value TEXT NOT NULL
)`

type postgresConfig interface {
	Host() string
	Username() string
	Password() string
	Database() string
}

// SQLStorage keeps every key as one row of a two-column table.
type SQLStorage struct {
	db   *sql.DB
	psql sq.StatementBuilderType
}

func NewPostgresStorage(config postgresConfig) (*SQLStorage, error) {
	db, err := sql.Open("postgres", fmt.Sprintf(dsnTemplate,
		config.Username(),
		config.Password(),
		config.Host(),
		config.Database()))
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = db.Ping(); err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	return newSQLStorage(db, sq.Dollar)
}

func NewSqliteStorage(path string) (*SQLStorage, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, errors.Wrap(err, "creating storage dir")
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite db")
	}
	// one writer keeps read-modify-write sequences of this process ordered
	db.SetMaxOpenConns(1)
	return newSQLStorage(db, sq.Question)
}

func newSQLStorage(db *sql.DB, format sq.PlaceholderFormat) (*SQLStorage, error) {
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}
	return &SQLStorage{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(format),
	}, nil
}

func (s *SQLStorage) Close() error {
	return s.db.Close()
}

func (s *SQLStorage) Read(ctx context.Context, key string) (string, bool, error) {
	query := s.psql.Select(valueColumn).
		From(table).
		Where(sq.Eq{keyColumn: key})

	var value string
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "read item")
	}
	return value, true, nil
}

func (s *SQLStorage) Write(ctx context.Context, key, value string) error {
	query := s.psql.Insert(table).
		Columns(keyColumn, valueColumn).
		Values(key, value).
		Suffix("ON CONFLICT(item_key) DO UPDATE SET item_value = excluded.item_value")

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "write item")
}

func (s *SQLStorage) Delete(ctx context.Context, key string) error {
	query := s.psql.Delete(table).
		Where(sq.Eq{keyColumn: key})

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "delete item")
}
