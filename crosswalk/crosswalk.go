// Package crosswalk maps the stable name of a survey variable to the field name
// it carries in each wave, together with its category path.
//
// The survey renames or retires variables almost every wave, so every
// cross-year reference goes through a Table: no caller may assume a field name
// is the same from one year to the next.
package crosswalk

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrVariableNotFound is returned when a stable name is not in the table.
	ErrVariableNotFound = errors.New("variable not found")
	// ErrNoCategoryMatch is returned when a category prefix matches nothing.
	ErrNoCategoryMatch = errors.New("no variable matches category")
	// ErrDuplicateField is returned when a (year, field) pair maps to two variables.
	ErrDuplicateField = errors.New("duplicate field")
	// ErrDuplicateVariable is returned when a stable name is defined twice.
	ErrDuplicateVariable = errors.New("duplicate variable")
)

// Entry is one variable of the crosswalk.
type Entry struct {
	Name   string         // stable name, identical across years
	Label  string         // human label, optional
	Fields map[int]string // field name per year
	Path   []string       // category path: source file, major category, variable type, qualifiers...
}

// FieldName returns the field name of the variable in year.
func (e Entry) FieldName(year int) (string, bool) {
	f, ok := e.Fields[year]
	return f, ok && f != ""
}

// Years returns the years in which the variable exists, in order.
func (e Entry) Years() []int {
	var years []int
	for y, f := range e.Fields {
		if f != "" {
			years = append(years, y)
		}
	}
	slices.Sort(years)
	return years
}

// Table is an immutable crosswalk.
type Table struct {
	entries []Entry
	byName  map[string]int
}

// New builds a table and checks that no (year, field) pair belongs to two variables.
func New(entries ...Entry) (*Table, error) {
	t := &Table{byName: make(map[string]int, len(entries))}
	owner := make(map[string]string) // "year/field" -> name

	var errs error
	for _, e := range entries {
		if e.Name == "" {
			errs = errors.Join(errs, fmt.Errorf("variable with an empty name"))
			continue
		}
		if _, exists := t.byName[e.Name]; exists {
			errs = errors.Join(errs, fmt.Errorf("%w %q", ErrDuplicateVariable, e.Name))
			continue
		}
		for _, y := range e.Years() {
			key := fmt.Sprintf("%d/%s", y, e.Fields[y])
			if other, exists := owner[key]; exists {
				errs = errors.Join(errs, fmt.Errorf("%w %q in %d: used by %q and %q", ErrDuplicateField, e.Fields[y], y, other, e.Name))
				continue
			}
			owner[key] = e.Name
		}
		e.Fields = maps.Clone(e.Fields)
		e.Path = slices.Clone(e.Path)
		t.byName[e.Name] = len(t.entries)
		t.entries = append(t.entries, e)
	}
	if errs != nil {
		return nil, errs
	}
	return t, nil
}

// Len returns the number of variables.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns a copy of all entries, in table order.
func (t *Table) Entries() []Entry { return slices.Clone(t.entries) }

// Resolve returns the entry of a stable name.
func (t *Table) Resolve(name string) (Entry, error) {
	i, ok := t.byName[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrVariableNotFound, name)
	}
	return t.entries[i], nil
}

// FieldNameForYear returns the field name of a stable name in year. ok is false
// when the variable does not exist that year; err is non nil when the name is
// not in the table at all.
func (t *Table) FieldNameForYear(name string, year int) (field string, ok bool, err error) {
	e, err := t.Resolve(name)
	if err != nil {
		return "", false, err
	}
	field, ok = e.FieldName(year)
	return field, ok, nil
}

// MatchByCategoryPrefix returns the entries whose category path matches prefix
// level by level: prefix[i] must be a case-insensitive prefix of path[i].
//
// An empty result is a configuration error.
func (t *Table) MatchByCategoryPrefix(prefix ...string) ([]Entry, error) {
	var res []Entry
	for _, e := range t.entries {
		if matchPath(e.Path, prefix) {
			res = append(res, e)
		}
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("%w %q", ErrNoCategoryMatch, strings.Join(prefix, "/"))
	}
	return res, nil
}

func matchPath(path, prefix []string) bool {
	if len(prefix) > len(path) {
		return false
	}
	for i, p := range prefix {
		if !strings.HasPrefix(strings.ToLower(path[i]), strings.ToLower(p)) {
			return false
		}
	}
	return true
}
