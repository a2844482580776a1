package crosswalk

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Variable is a requested stable name and the label to display for it.
type Variable struct {
	Name  string
	Label string
}

// Names turns a list of stable names into variables labelled by their name.
func Names(names ...string) []Variable {
	vars := make([]Variable, len(names))
	for i, n := range names {
		vars[i] = Variable{Name: n, Label: n}
	}
	return vars
}

// Series describes how one variable is observed over a sample of years.
type Series struct {
	Name        string
	Label       string
	SourceFile  string
	Category    string
	Subcategory string
	Fields      map[int]string // restricted to the requested years
	Count       int            // number of requested years with a field
}

// SeriesForSample returns one Series per requested variable, restricted to years.
func (t *Table) SeriesForSample(vars []Variable, years []int) ([]Series, error) {
	res := make([]Series, 0, len(vars))
	for _, v := range vars {
		e, err := t.Resolve(v.Name)
		if err != nil {
			return nil, err
		}
		s := Series{
			Name:        e.Name,
			Label:       v.Label,
			SourceFile:  pathAt(e.Path, 0),
			Category:    pathAt(e.Path, 1),
			Subcategory: pathAt(e.Path, 2),
			Fields:      make(map[int]string),
		}
		if s.Label == "" {
			s.Label = e.Label
		}
		for _, y := range years {
			if f, ok := e.FieldName(y); ok {
				s.Fields[y] = f
				s.Count++
			}
		}
		res = append(res, s)
	}
	return res, nil
}

func pathAt(path []string, i int) string {
	if i < len(path) {
		return path[i]
	}
	return ""
}

// WriteSeries writes series as CSV, one row per variable with a Y<year> column per year.
func WriteSeries(w io.Writer, series []Series, years []int) error {
	cw := csv.NewWriter(w)
	header := []string{"name", "label", "sourcefile", "category", "subcategory", "count"}
	for _, y := range years {
		header = append(header, yearColumn(y))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range series {
		rec := []string{s.Name, s.Label, s.SourceFile, s.Category, s.Subcategory, strconv.Itoa(s.Count)}
		for _, y := range years {
			rec = append(rec, s.Fields[y])
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing %q: %w", s.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
