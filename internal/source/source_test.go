package source

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rebeliceyang/filtergrid/internal/config"
	"github.com/rebeliceyang/filtergrid/internal/logging"
	"github.com/rebeliceyang/filtergrid/internal/models"
)

func TestDemo_Load(t *testing.T) {
	tbl, err := NewDemo(6, 4).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if tbl.RowCount() != 6 || tbl.ColumnCount() != 4 {
		t.Fatalf("expected 6x4 grid, got %dx%d", tbl.RowCount(), tbl.ColumnCount())
	}
	if got := tbl.Cell(2, 1).Text; got != "4" {
		t.Errorf("expected cell (2,1) = 4, got %s", got)
	}
	if !tbl.IsCheckable(3) {
		t.Fatal("expected last column to be checkable")
	}
	if tbl.Cell(0, 3).State != models.Checked || tbl.Cell(1, 3).State != models.Unchecked {
		t.Error("expected alternating checked/unchecked states")
	}
}

func TestDemo_LoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewDemo(10, 2).Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCSV_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	content := "name,city,active\nalice,\"Berlin, DE\",yes\nbob,Paris,no\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write csv: %v", err)
	}

	cfg := *config.GetDefaults()
	cfg.Filter.CheckColumns = []int{2}

	tbl, err := Load(context.Background(), NewCSV(path), cfg)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tbl.RowCount() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.RowCount())
	}
	if tbl.Cell(0, 1).Text != "Berlin, DE" {
		t.Errorf("expected quoted field, got %q", tbl.Cell(0, 1).Text)
	}
	if tbl.Cell(0, 2).State != models.Checked || tbl.Cell(1, 2).State != models.Unchecked {
		t.Error("expected configured check column to be parsed")
	}
}

func TestCSV_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("failed to write csv: %v", err)
	}
	if _, err := NewCSV(path).Load(context.Background()); err == nil {
		t.Error("expected error for empty csv")
	}
}

func TestSQLite_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	_, err = db.Exec(`
		CREATE TABLE tasks (id INTEGER, title TEXT, done BOOLEAN);
		INSERT INTO tasks VALUES (1, 'write docs', 1), (2, 'ship', 0), (3, NULL, NULL);`)
	if err != nil {
		t.Fatalf("failed to seed db: %v", err)
	}
	_ = db.Close()

	tbl, err := NewSQLite(path, "", logging.Nop()).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if tbl.RowCount() != 3 {
		t.Fatalf("expected 3 rows, got %d", tbl.RowCount())
	}
	if tbl.Columns[1] != "title" {
		t.Errorf("expected column title, got %s", tbl.Columns[1])
	}
	if tbl.Cell(2, 1).Text != "NULL" {
		t.Errorf("expected NULL text, got %q", tbl.Cell(2, 1).Text)
	}
	if !tbl.IsCheckable(2) {
		t.Fatal("expected BOOLEAN column to be checkable")
	}
	if tbl.Cell(0, 2).State != models.Checked || tbl.Cell(1, 2).State != models.Unchecked {
		t.Error("unexpected boolean states")
	}
	if tbl.Cell(2, 2).State != models.Indeterminate {
		t.Error("NULL boolean should be indeterminate")
	}
}

func TestNew(t *testing.T) {
	cfg := config.GetDefaults().Data

	src, err := New(cfg, logging.Nop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if src.Name() != "demo" {
		t.Errorf("expected demo source, got %s", src.Name())
	}

	cfg.Source = "excel"
	if _, err := New(cfg, logging.Nop()); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("expected ErrUnknownSource, got %v", err)
	}

	cfg.Source = "postgres"
	if _, err := New(cfg, logging.Nop()); err == nil {
		t.Error("expected error for postgres without dsn")
	}
}

func TestBuildQuery(t *testing.T) {
	cfg := config.DataConfig{Table: "users", Limit: 50}
	if got := buildQuery(cfg); got != "SELECT * FROM users LIMIT 50" {
		t.Errorf("unexpected query: %s", got)
	}

	cfg.Query = "SELECT 1"
	if got := buildQuery(cfg); got != "SELECT 1" {
		t.Errorf("explicit query must win, got %s", got)
	}
}
