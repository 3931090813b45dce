package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var ErrShape = errors.New("dataset shape invalid")

// Matrix is an immutable numeric table. The last column is the regression
// target; every preceding column is a feature. Rows are independent samples.
type Matrix struct {
	name string
	data [][]float64
	cols int
}

// New validates the raw table and wraps it. The slice is copied so later
// mutation of the argument cannot alias into the matrix.
func New(name string, data [][]float64) (Matrix, error) {
	if len(data) == 0 {
		return Matrix{}, fmt.Errorf("%w: no rows", ErrShape)
	}
	cols := len(data[0])
	if cols < 2 {
		return Matrix{}, fmt.Errorf("%w: need at least one feature and a target, got %d columns", ErrShape, cols)
	}
	copied := make([][]float64, len(data))
	for i, row := range data {
		if len(row) != cols {
			return Matrix{}, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrShape, i, len(row), cols)
		}
		copied[i] = append([]float64(nil), row...)
	}
	return Matrix{name: name, data: copied, cols: cols}, nil
}

func (m Matrix) Name() string { return m.name }

func (m Matrix) Rows() int { return len(m.data) }

func (m Matrix) Columns() int { return m.cols }

// Features is the number of predictor columns, excluding the target.
func (m Matrix) Features() int { return m.cols - 1 }

func (m Matrix) At(row, col int) float64 { return m.data[row][col] }

// Target returns the last column of a row.
func (m Matrix) Target(row int) float64 { return m.data[row][m.cols-1] }

// Load reads a comma-delimited dataset file. The first line is a header and
// the first column is a row label; both are dropped before use.
func Load(path string) (Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return Matrix{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	name := filepath.Base(path)
	return Parse(f, name)
}

// Parse decodes a delimited table from a reader. Blank records are skipped.
func Parse(in io.Reader, name string) (Matrix, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return Matrix{}, fmt.Errorf("%w: empty dataset %s", ErrShape, name)
		}
		return Matrix{}, fmt.Errorf("read dataset header: %w", err)
	}

	rows := make([][]float64, 0, 256)
	rowIndex := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Matrix{}, fmt.Errorf("read dataset row %d: %w", rowIndex, err)
		}
		if blankRecord(record) {
			continue
		}
		if len(record) < 3 {
			return Matrix{}, fmt.Errorf("%w: row %d has %d fields, need a label plus at least two values", ErrShape, rowIndex, len(record))
		}
		// Field 0 is the row label.
		row := make([]float64, 0, len(record)-1)
		for col, field := range record[1:] {
			value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return Matrix{}, fmt.Errorf("parse dataset row %d column %d: %w", rowIndex, col+1, err)
			}
			row = append(row, value)
		}
		rows = append(rows, row)
		rowIndex++
	}

	return New(name, rows)
}

func blankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
