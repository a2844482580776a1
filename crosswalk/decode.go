package crosswalk

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// The persisted crosswalk has one row per variable, a "name" column, an optional
// "label" column, one Y<year> column per year and C0..Cn category columns.

const (
	nameColumn  = "name"
	labelColumn = "label"
)

func yearColumn(year int) string { return "Y" + strconv.Itoa(year) }

// DecodeFile reads a crosswalk from a CSV file, or from the first sheet of an
// xlsx workbook when the file has the .xlsx extension.
func DecodeFile(filename string) (*Table, error) {
	if strings.EqualFold(fileExt(filename), ".xlsx") {
		return DecodeWorkbook(filename, "")
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("format error in %q: %w", filename, err)
	}
	return t, nil
}

func fileExt(filename string) string {
	if i := strings.LastIndexByte(filename, '.'); i >= 0 {
		return filename[i:]
	}
	return ""
}

// Decode reads a crosswalk table from CSV.
func Decode(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return decodeRecords(records)
}

// DecodeWorkbook reads a crosswalk table from an xlsx sheet. An empty sheet
// name selects the first sheet.
func DecodeWorkbook(filename, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %q: %w", filename, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %q has no sheet", filename)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %q: %w", sheet, filename, err)
	}
	t, err := decodeRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("format error in %q sheet %q: %w", filename, sheet, err)
	}
	return t, nil
}

// decodeRecords turns rows of cells, header first, into a Table.
func decodeRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("empty crosswalk")
	}

	nameCol, labelCol := -1, -1
	years := make(map[int]int)      // column -> year
	categories := make(map[int]int) // column -> level
	maxLevel := -1
	for i, h := range records[0] {
		h = strings.TrimSpace(h)
		switch {
		case strings.EqualFold(h, nameColumn):
			nameCol = i
		case strings.EqualFold(h, labelColumn):
			labelCol = i
		case len(h) > 1 && (h[0] == 'Y' || h[0] == 'y'):
			if y, err := strconv.Atoi(h[1:]); err == nil {
				years[i] = y
			}
		case len(h) > 1 && (h[0] == 'C' || h[0] == 'c'):
			if l, err := strconv.Atoi(h[1:]); err == nil {
				categories[i] = l
				maxLevel = max(maxLevel, l)
			}
		}
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("missing %q column", nameColumn)
	}

	var entries []Entry
	for _, rec := range records[1:] {
		name := strings.TrimSpace(cell(rec, nameCol))
		if name == "" {
			continue
		}
		e := Entry{
			Name:   name,
			Label:  strings.TrimSpace(cell(rec, labelCol)),
			Fields: make(map[int]string),
			Path:   make([]string, maxLevel+1),
		}
		for col, y := range years {
			if f := strings.TrimSpace(cell(rec, col)); f != "" {
				e.Fields[y] = f
			}
		}
		for col, l := range categories {
			e.Path[l] = strings.TrimSpace(cell(rec, col))
		}
		e.Path = trimPath(e.Path)
		entries = append(entries, e)
	}
	return New(entries...)
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// trimPath drops the trailing empty category levels.
func trimPath(path []string) []string {
	for len(path) > 0 && path[len(path)-1] == "" {
		path = path[:len(path)-1]
	}
	return path
}
