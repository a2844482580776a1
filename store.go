package savings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/savings/wave"
)

// Store persists stage outputs as CSV files in a directory, one file per year
// or per timespan.
//
// A stage whose file already exists is read back instead of being recomputed,
// unless ForceReload is set. Stages are pure functions of their inputs, so
// recomputing is always safe.
type Store struct {
	Dir      string
	BaseName string // prefix of the data set, e.g. "psid_"
	// Sample names a restriction of the households, e.g. "original". It
	// suffixes the two-period and savings files, so restricted and full runs
	// do not share them.
	Sample      string
	ForceReload bool
}

func (s *Store) path(name string) string {
	if s == nil {
		return name
	}
	return filepath.Join(s.Dir, name)
}

func (s *Store) baseName() string {
	if s == nil {
		return ""
	}
	return s.BaseName
}

func (s *Store) sampleSuffix() string {
	if s == nil || s.Sample == "" {
		return ""
	}
	return "_" + s.Sample
}

func asSuffix(toYear int) string {
	if toYear == 0 {
		return ""
	}
	return fmt.Sprintf("_as_%d", toYear)
}

// YearDataFile returns the path of the cross-sectional table of year.
func (s *Store) YearDataFile(year, toYear int) string {
	return s.path(fmt.Sprintf("YearData_%s%d%s.csv", s.baseName(), year, asSuffix(toYear)))
}

// TwoPeriodFile returns the path of the two-period table of span.
func (s *Store) TwoPeriodFile(span wave.Span, toYear int) string {
	return s.path(fmt.Sprintf("TwoPeriod_%s%s%s%s.csv", s.baseName(), span, s.sampleSuffix(), asSuffix(toYear)))
}

// SavingsFile returns the path of the savings-annotated two-period table of span.
func (s *Store) SavingsFile(span wave.Span, toYear int) string {
	return s.path(fmt.Sprintf("Savings_%s%s%s%s.csv", s.baseName(), span, s.sampleSuffix(), asSuffix(toYear)))
}

// CleanFile returns the path of the rows of filename whose every cleaning status is Keep.
func CleanFile(filename string) string {
	return strings.TrimSuffix(filename, ".csv") + "_clean.csv"
}

// Load returns the table saved in filename, or builds and saves it.
// A nil Store always builds and saves nothing.
func (s *Store) Load(filename string, build func() (*Table, error)) (*Table, error) {
	if s == nil {
		return build()
	}
	if !s.ForceReload {
		t, err := ReadTableFile(filename)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	t, err := build()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, err
	}
	if err := WriteTableFile(filename, t); err != nil {
		return nil, err
	}
	return t, nil
}
