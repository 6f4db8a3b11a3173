package source

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rebeliceyang/filtergrid/internal/models"
)

// Demo generates a numeric grid whose last column is a checkbox alternating
// between checked and unchecked
type Demo struct {
	Rows    int
	Columns int
}

// NewDemo creates a demo source
func NewDemo(rows, columns int) *Demo {
	if columns < 1 {
		columns = 1
	}
	if rows < 0 {
		rows = 0
	}
	return &Demo{Rows: rows, Columns: columns}
}

func (d *Demo) Name() string {
	return "demo"
}

// Load builds the grid. Cell (i, j) of a text column holds i+1+j.
func (d *Demo) Load(ctx context.Context) (*models.Table, error) {
	columns := make([]string, d.Columns)
	for j := range columns {
		columns[j] = fmt.Sprintf("Column %d", j+1)
	}
	check := d.Columns - 1
	if d.Columns > 1 {
		columns[check] = "Done"
	}

	tbl := models.NewTable("demo", columns)
	tbl.Rows = make([][]models.Cell, d.Rows)
	for i := 0; i < d.Rows; i++ {
		if i%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		row := make([]models.Cell, d.Columns)
		for j := range row {
			if j == check && d.Columns > 1 {
				if i%2 == 1 {
					row[j] = models.Cell{Text: "false", State: models.Unchecked}
				} else {
					row[j] = models.Cell{Text: "true", State: models.Checked}
				}
				continue
			}
			row[j] = models.Cell{Text: strconv.Itoa(i + 1 + j)}
		}
		tbl.Rows[i] = row
	}
	if d.Columns > 1 {
		tbl.CheckColumns[check] = true
	}
	return tbl, nil
}
