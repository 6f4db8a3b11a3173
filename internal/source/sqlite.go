package source

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rebeliceyang/filtergrid/internal/logging"
	"github.com/rebeliceyang/filtergrid/internal/models"
)

// SQLite runs a query against a SQLite database file
type SQLite struct {
	Path   string
	Query  string
	logger logging.Logger
}

// NewSQLite creates a SQLite source. An empty query selects the first user
// table of the database.
func NewSQLite(path, query string, logger logging.Logger) *SQLite {
	return &SQLite{Path: path, Query: query, logger: logger}
}

func (s *SQLite) Name() string {
	return "sqlite:" + filepath.Base(s.Path)
}

func (s *SQLite) Load(ctx context.Context) (*models.Table, error) {
	db, err := sql.Open("sqlite3", "file:"+s.Path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	query := s.Query
	if query == "" {
		var table string
		err := db.QueryRowContext(ctx, `
			SELECT name FROM sqlite_master
			WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
			ORDER BY name LIMIT 1`).Scan(&table)
		if err != nil {
			return nil, fmt.Errorf("failed to find a table: %w", err)
		}
		query = fmt.Sprintf(`SELECT * FROM "%s"`, table)
	}
	s.logger.Debug("running sqlite query", "path", s.Path, "query", query)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	columns := make([]string, len(types))
	var boolColumns []int
	for i, ct := range types {
		columns[i] = ct.Name()
		if strings.EqualFold(ct.DatabaseTypeName(), "BOOLEAN") {
			boolColumns = append(boolColumns, i)
		}
	}

	tbl := models.NewTable(filepath.Base(s.Path), columns)
	values := make([]interface{}, len(columns))
	ptrs := make([]interface{}, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
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
