package savings

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Table is an in-memory CSV table: named columns and rows of string cells.
//
// An empty cell is a missing value.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable returns an empty table with the given columns.
func NewTable(columns ...string) *Table {
	t := &Table{index: make(map[string]int)}
	for _, c := range columns {
		t.AddColumn(c)
	}
	return t
}

// Columns returns a copy of the column names, in order.
func (t *Table) Columns() []string { return slices.Clone(t.columns) }

// Has reports whether the table has column c.
func (t *Table) Has(c string) bool {
	_, ok := t.index[c]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// AddColumn adds an empty column if it does not exist yet.
func (t *Table) AddColumn(c string) {
	if t.Has(c) {
		return
	}
	t.index[c] = len(t.columns)
	t.columns = append(t.columns, c)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], "")
	}
}

// Append adds a row, cells in column order. Missing trailing cells are empty.
func (t *Table) Append(cells ...string) Row {
	if len(cells) > len(t.columns) {
		panic(fmt.Sprintf("row has %d cells for %d columns", len(cells), len(t.columns)))
	}
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
	return Row{t, len(t.rows) - 1}
}

// Row returns the i-th row.
func (t *Table) Row(i int) Row { return Row{t, i} }

// Rows returns an iterator over the rows.
func (t *Table) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for i := range t.rows {
			if !yield(Row{t, i}) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := NewTable(t.columns...)
	c.rows = make([][]string, len(t.rows))
	for i, r := range t.rows {
		c.rows[i] = slices.Clone(r)
	}
	return c
}

// Filter returns a new table with the rows for which keep returns true.
func (t *Table) Filter(keep func(Row) bool) *Table {
	c := NewTable(t.columns...)
	for r := range t.Rows() {
		if keep(r) {
			c.rows = append(c.rows, slices.Clone(t.rows[r.i]))
		}
	}
	return c
}

// Row is a row of a Table.
type Row struct {
	t *Table
	i int
}

// Get returns the cell of column c, empty if the column does not exist.
func (r Row) Get(c string) string {
	j, ok := r.t.index[c]
	if !ok {
		return ""
	}
	return r.t.rows[r.i][j]
}

// Set sets the cell of column c, adding the column if needed.
func (r Row) Set(c, v string) {
	r.t.AddColumn(c)
	r.t.rows[r.i][r.t.index[c]] = v
}

// IsMissing reports whether the cell of column c is missing.
func (r Row) IsMissing(c string) bool { return isMissing(r.Get(c)) }

// Int returns the cell of column c as an integer.
func (r Row) Int(c string) (int, bool) {
	v := r.Get(c)
	if isMissing(v) {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		// survey codes are sometimes written as floats ("5.0")
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, false
		}
		return int(f), true
	}
	return i, true
}

// Decimal returns the cell of column c as a decimal amount.
func (r Row) Decimal(c string) (decimal.Decimal, bool) {
	v := r.Get(c)
	if isMissing(v) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// SetDecimal sets a decimal amount.
func (r Row) SetDecimal(c string, d decimal.Decimal) { r.Set(c, d.String()) }

// SetBool sets a flag as "1" or "0".
func (r Row) SetBool(c string, b bool) {
	if b {
		r.Set(c, "1")
		return
	}
	r.Set(c, "0")
}

// Bool returns a flag written by SetBool.
func (r Row) Bool(c string) bool { return r.Get(c) == "1" }

func isMissing(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "NA", "NaN", "nan":
		return true
	}
	return false
}

// ReadTable reads a CSV table, header first.
func ReadTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty table")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	t := NewTable()
	for _, h := range header {
		if t.Has(h) {
			return nil, fmt.Errorf("duplicate column %q", h)
		}
		t.AddColumn(h)
	}
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		for i, v := range rec {
			if isMissing(v) {
				rec[i] = ""
			}
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

// ReadTableFile reads a CSV table from a file.
func ReadTableFile(filename string) (*Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("format error in %q: %w", filename, err)
	}
	return t, nil
}

// Encode writes the table as CSV.
func (t *Table) Encode(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.rows); err != nil {
		return err
	}
	return cw.Error()
}

// WriteTableFile writes the table into a file, replacing it atomically.
func WriteTableFile(filename string, t *Table) error {
	tmp := filename + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := t.Encode(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing %q: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, filename)
}
