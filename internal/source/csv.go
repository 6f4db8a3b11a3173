package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rebeliceyang/filtergrid/internal/models"
)

// CSV reads a comma separated file whose first record is the header
type CSV struct {
	Path string
}

// NewCSV creates a CSV source
func NewCSV(path string) *CSV {
	return &CSV{Path: path}
}

func (c *CSV) Name() string {
	return "csv:" + filepath.Base(c.Path)
}

func (c *CSV) Load(ctx context.Context) (*models.Table, error) {
	file, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv file is empty")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	tbl := models.NewTable(filepath.Base(c.Path), header)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}
		tbl.AppendTextRow(record)
	}
	return tbl, nil
}
