package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// LoadCSV reads a comma-separated table with a header row and materializes
// it into typed records.
func LoadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}

	rows := make([][]string, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if errors.Is(err, csv.ErrFieldCount) {
			return nil, fmt.Errorf("row %d: %w", len(rows)+2, ErrRaggedTable)
		}
		if err != nil {
			return nil, fmt.Errorf("error reading row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, row)
	}

	return materialize(header, rows), nil
}

// LoadCSVFile opens and reads a CSV file.
func LoadCSVFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCSV(f)
}
