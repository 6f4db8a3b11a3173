package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rebeliceyang/filtergrid/internal/models"
	"gopkg.in/yaml.v3"
)

type testRows [][]models.Cell

func (r testRows) RowCount() int           { return len(r) }
func (r testRows) Row(i int) []models.Cell { return r[i] }

func newTestRows() testRows {
	tbl := models.NewTable("t", []string{"Name", "Note", "Done"})
	tbl.AppendTextRow([]string{"alpha", "has, comma", "true"})
	tbl.AppendTextRow([]string{"beta", "quote \"x\"", "false"})
	tbl.AppendTextRow([]string{"short"})
	tbl.MarkCheckable(2)
	return testRows(tbl.Rows)
}

func TestExportToCSV(t *testing.T) {
	rows := newTestRows()

	// Create temp file
	tmpDir := t.TempDir()
	csvPath := filepath.Join(tmpDir, "test.csv")

	// Only the Name and Done columns are visible
	err := ExportToCSV([]string{"Name", "Note", "Done"}, []int{0, 2}, rows, csvPath)
	if err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}

	file, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("Failed to open CSV: %v", err)
	}
	defer func() { _ = file.Close() }()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) != 4 { // header + 3 rows
		t.Fatalf("Expected 4 records, got %d", len(records))
	}
	if strings.Join(records[0], ",") != "Name,Done" {
		t.Errorf("Unexpected header %v", records[0])
	}
	if records[1][0] != "alpha" || records[1][1] != "true" {
		t.Errorf("Unexpected first row %v", records[1])
	}
	if records[3][0] != "short" || records[3][1] != "" {
		t.Errorf("Expected missing cell exported empty, got %v", records[3])
	}
}

func TestExportToCSV_QuotesSpecialCharacters(t *testing.T) {
	rows := newTestRows()
	csvPath := filepath.Join(t.TempDir(), "test.csv")

	if err := ExportToCSV([]string{"Name", "Note", "Done"}, []int{1}, rows, csvPath); err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}

	file, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("Failed to open CSV: %v", err)
	}
	defer func() { _ = file.Close() }()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}
	if records[1][0] != "has, comma" {
		t.Errorf("Expected comma preserved, got %q", records[1][0])
	}
	if records[2][0] != "quote \"x\"" {
		t.Errorf("Expected quotes preserved, got %q", records[2][0])
	}
}

func TestExportToJSON(t *testing.T) {
	rows := newTestRows()
	jsonPath := filepath.Join(t.TempDir(), "test.json")

	if err := ExportToJSON([]string{"Name", "Note", "Done"}, []int{0, 2}, rows, jsonPath); err != nil {
		t.Fatalf("ExportToJSON failed: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("Failed to read JSON: %v", err)
	}

	var records []map[string]string
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[0]["Name"] != "alpha" || records[0]["Done"] != "true" {
		t.Errorf("Unexpected first record %v", records[0])
	}
	if _, ok := records[0]["Note"]; ok {
		t.Error("Expected hidden column to be left out")
	}
}

func TestExportToYAML(t *testing.T) {
	rows := newTestRows()
	yamlPath := filepath.Join(t.TempDir(), "test.yaml")

	if err := ExportToYAML([]string{"Name", "Note", "Done"}, []int{0, 1}, rows, yamlPath); err != nil {
		t.Fatalf("ExportToYAML failed: %v", err)
	}

	data, err := os.ReadFile(yamlPath)
	if err != nil {
		t.Fatalf("Failed to read YAML: %v", err)
	}

	var records []map[string]string
	if err := yaml.Unmarshal(data, &records); err != nil {
		t.Fatalf("Failed to unmarshal YAML: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[1]["Note"] != "quote \"x\"" {
		t.Errorf("Expected quotes preserved, got %q", records[1]["Note"])
	}
	if records[2]["Note"] != "" {
		t.Errorf("Expected missing cell exported empty, got %q", records[2]["Note"])
	}
}

func TestExportToJSON_Empty(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "empty.json")

	if err := ExportToJSON([]string{"Name"}, []int{0}, testRows{}, jsonPath); err != nil {
		t.Fatalf("ExportToJSON failed: %v", err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("Failed to read JSON: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Expected empty array, got %s", data)
	}
}

func TestExport_FileName(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	path, err := Export("JSON", dir, "public.my table", []string{"Name"}, []int{0}, newTestRows(), now)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	want := filepath.Join(dir, "public.my_table-20240102-030405.json")
	if path != want {
		t.Errorf("Expected path %s, got %s", want, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected exported file: %v", err)
	}

	if _, err := Export("xml", dir, "t", nil, nil, newTestRows(), now); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestExportToCSV_InvalidPath(t *testing.T) {
	err := ExportToCSV([]string{"Name"}, []int{0}, newTestRows(), "/nonexistent/directory/test.csv")
	if err == nil {
		t.Error("Expected error for invalid path, got nil")
	}
}
