package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rebeliceyang/filtergrid/internal/models"
	"gopkg.in/yaml.v3"
)

// Rows is the filtered, sorted view being exported
type Rows interface {
	RowCount() int
	Row(row int) []models.Cell
}

// cellText returns the exported text of column in row. Missing cells
// export as empty strings.
func cellText(row []models.Cell, column int) string {
	if column < 0 || column >= len(row) {
		return ""
	}
	return row[column].Text
}

// ExportToCSV writes the given columns of every row to a CSV file
func ExportToCSV(titles []string, columns []int, rows Rows, path string) error {
	// Create the file
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)

	// Write header
	header := make([]string, len(columns))
	for i, col := range columns {
		if col >= 0 && col < len(titles) {
			header[i] = titles[col]
		}
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(columns))
	for r := 0; r < rows.RowCount(); r++ {
		row := rows.Row(r)
		for i, col := range columns {
			record[i] = cellText(row, col)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV file: %w", err)
	}
	return nil
}

// rowRecords turns every row into a map keyed by column title
func rowRecords(titles []string, columns []int, rows Rows) []map[string]string {
	out := make([]map[string]string, 0, rows.RowCount())
	for r := 0; r < rows.RowCount(); r++ {
		row := rows.Row(r)
		record := make(map[string]string, len(columns))
		for _, col := range columns {
			if col >= 0 && col < len(titles) {
				record[titles[col]] = cellText(row, col)
			}
		}
		out = append(out, record)
	}
	return out
}

// ExportToJSON writes every row as an object keyed by column title
func ExportToJSON(titles []string, columns []int, rows Rows, path string) error {
	records := rowRecords(titles, columns, rows)

	// Marshal to JSON with pretty printing
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rows to JSON: %w", err)
	}

	// Write to file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	return nil
}

// ExportToYAML writes every row as a mapping keyed by column title
func ExportToYAML(titles []string, columns []int, rows Rows, path string) error {
	data, err := yaml.Marshal(rowRecords(titles, columns, rows))
	if err != nil {
		return fmt.Errorf("failed to marshal rows to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}

	return nil
}

// Export writes rows in format ("csv", "json" or "yaml") to a timestamped file in
// dir named after table and returns its path
func Export(format, dir, table string, titles []string, columns []int, rows Rows, now time.Time) (string, error) {
	format = strings.ToLower(format)
	if format == "" {
		format = "csv"
	}
	if dir == "" {
		dir = "."
	}

	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', ':':
			return '_'
		}
		return r
	}, table)
	if name == "" {
		name = "table"
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.%s", name, now.Format("20060102-150405"), format))

	switch format {
	case "csv":
		return path, ExportToCSV(titles, columns, rows, path)
	case "json":
		return path, ExportToJSON(titles, columns, rows, path)
	case "yaml", "yml":
		return path, ExportToYAML(titles, columns, rows, path)
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
}
