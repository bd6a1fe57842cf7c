// Package csvdata turns uploaded CSV files into row maps keyed by header.
package csvdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/medregister-pl/asset-register/pkg/register/models"
)

var ErrEmptyFile = errors.New("csv file has no header row")

// Read parses the whole file. Short rows leave the missing columns empty,
// extra cells are dropped.
func Read(r io.Reader) (columns []string, rows []models.AssetRow, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrEmptyFile
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}
	columns = make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		row := make(models.AssetRow, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return columns, rows, nil
}
