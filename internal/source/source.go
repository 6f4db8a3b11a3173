// Package source loads the grid shown by filtergrid from a demo generator,
// a CSV file, SQLite, PostgreSQL or Cassandra.
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rebeliceyang/filtergrid/internal/config"
	"github.com/rebeliceyang/filtergrid/internal/logging"
	"github.com/rebeliceyang/filtergrid/internal/models"
)

// ErrUnknownSource is returned for an unsupported data.source value
var ErrUnknownSource = errors.New("unknown data source")

// Source produces the table to display
type Source interface {
	Name() string
	Load(ctx context.Context) (*models.Table, error)
}

// New builds the source selected by cfg.Source
func New(cfg config.DataConfig, logger logging.Logger) (Source, error) {
	switch strings.ToLower(cfg.Source) {
	case "", "demo":
		return NewDemo(cfg.DemoRows, cfg.DemoColumns), nil
	case "csv":
		if cfg.Path == "" {
			return nil, fmt.Errorf("csv source requires a path")
		}
		return NewCSV(cfg.Path), nil
	case "sqlite":
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite source requires a path")
		}
		return NewSQLite(cfg.Path, buildQuery(cfg), logger), nil
	case "postgres", "postgresql":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres source requires a dsn")
		}
		return NewPostgres(cfg.DSN, buildQuery(cfg), logger), nil
	case "cassandra":
		if cfg.Keyspace == "" {
			return nil, fmt.Errorf("cassandra source requires a keyspace")
		}
		return NewCassandra(cfg.Hosts, cfg.Keyspace, buildQuery(cfg), logger), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, cfg.Source)
	}
}

// Load runs src with the configured timeout and marks the configured check
// columns
func Load(ctx context.Context, src Source, cfg config.Config) (*models.Table, error) {
	timeout := time.Duration(cfg.Data.LoadTimeout) * time.Second
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tbl, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", src.Name(), err)
	}
	tbl.MarkCheckable(cfg.Filter.CheckColumns...)
	return tbl, nil
}

// buildQuery returns the configured query, or a select over the configured
// table
func buildQuery(cfg config.DataConfig) string {
	if cfg.Query != "" {
		return cfg.Query
	}
	if cfg.Table == "" {
		return ""
	}
	if cfg.Limit > 0 {
		return fmt.Sprintf("SELECT * FROM %s LIMIT %d", cfg.Table, cfg.Limit)
	}
	return fmt.Sprintf("SELECT * FROM %s", cfg.Table)
}

// formatValue renders a driver value as display text
func formatValue(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339)
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", v)
	}
}
