package source

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rebeliceyang/filtergrid/internal/logging"
	"github.com/rebeliceyang/filtergrid/internal/models"
)

// Postgres runs a query against a PostgreSQL server
type Postgres struct {
	DSN    string
	Query  string
	logger logging.Logger
}

// NewPostgres creates a PostgreSQL source
func NewPostgres(dsn, query string, logger logging.Logger) *Postgres {
	return &Postgres{DSN: dsn, Query: query, logger: logger}
}

func (p *Postgres) Name() string {
	return "postgres"
}

// newPool creates a small connection pool and checks it is reachable
func newPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}

	poolConfig.MaxConns = 2
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

func (p *Postgres) Load(ctx context.Context) (*models.Table, error) {
	if p.Query == "" {
		return nil, fmt.Errorf("postgres source requires a query or table")
	}

	pool, err := newPool(ctx, p.DSN)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	p.logger.Debug("running postgres query", "query", p.Query)
	rows, err := pool.Query(ctx, p.Query)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	fieldDescriptions := rows.FieldDescriptions()
	columns := make([]string, len(fieldDescriptions))
	var boolColumns []int
	for i, fd := range fieldDescriptions {
		columns[i] = fd.Name
		if fd.DataTypeOID == pgtype.BoolOID {
			boolColumns = append(boolColumns, i)
		}
	}

	tbl := models.NewTable("postgres", columns)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = formatValue(v)
		}
		tbl.AppendTextRow(record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tbl.MarkCheckable(boolColumns...)
	return tbl, nil
}
