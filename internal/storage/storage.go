package storage

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-ledger/internal/config"
)

type Storage struct {
	DB  *sql.DB
	bdb bob.DB
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresURL())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return NewStorageFromDB(db), nil
}

// NewStorageFromDB wraps an already opened connection pool.
func NewStorageFromDB(db *sql.DB) *Storage {
	return &Storage{
		DB:  db,
		bdb: bob.NewDB(db),
	}
}

// Read returns readers that run outside any transaction.
func (s *Storage) Read() *Reader {
	return NewReader(s.bdb)
}

// Write opens a transaction. The caller must Commit or Rollback the returned Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bdb.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	writer := NewWriter(tx)
	return &writer, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
