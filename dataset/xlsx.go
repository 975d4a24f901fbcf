package dataset

import (
	"fmt"

	"github.com/tealeg/xlsx/v3"
)

// LoadXLSX materializes the first sheet of a workbook. The first row is the
// header; rows shorter than the header are padded with empty cells so that
// presence tests treat trailing blanks as missing values. Rows carrying data
// past the last header column fail with ErrRaggedTable.
func LoadXLSX(file *xlsx.File) (*Dataset, error) {
	if len(file.Sheets) == 0 {
		return nil, ErrNoSheets
	}
	sheet := file.Sheets[0]

	var header []string
	rows := make([][]string, 0, sheet.MaxRow)
	err := sheet.ForEachRow(func(row *xlsx.Row) error {
		values := make([]string, 0)
		cellErr := row.ForEachCell(func(cell *xlsx.Cell) error {
			values = append(values, cell.String())
			return nil
		})
		if cellErr != nil {
			return cellErr
		}

		if header == nil {
			header = values
			return nil
		}
		// Trailing blank cells are formatting artifacts, not data.
		for len(values) > len(header) && values[len(values)-1] == "" {
			values = values[:len(values)-1]
		}
		if len(values) > len(header) {
			return fmt.Errorf("row %d: %w", len(rows)+2, ErrRaggedTable)
		}
		if len(values) < len(header) {
			padded := make([]string, len(header))
			copy(padded, values)
			values = padded
		}
		rows = append(rows, values)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, ErrNoHeader
	}

	return materialize(header, rows), nil
}

// LoadXLSXFile opens and materializes a workbook from disk.
func LoadXLSXFile(path string) (*Dataset, error) {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return LoadXLSX(file)
}
