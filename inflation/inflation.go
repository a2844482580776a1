// Package inflation converts nominal dollar amounts between survey years using
// an annual price-level series (for instance the CPI-U annual average).
package inflation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/savings/wave"
	"github.com/shopspring/decimal"
)

var (
	// ErrAmbiguousPriceLevel is returned when a year has more than one price level.
	ErrAmbiguousPriceLevel = errors.New("ambiguous price level")
	// ErrNoPriceLevel is returned when a year has no price level.
	ErrNoPriceLevel = errors.New("no price level")
)

// Series holds one price level per year.
//
// It is read once and never modified afterwards.
type Series struct {
	levels *wave.History[float64]
	// rows counts how many input rows matched each year.
	rows map[int]int
}

// NewSeries builds a series from year/level pairs. Repeated years are kept as
// ambiguous and reported by Factor.
func NewSeries(years []int, levels []float64) *Series {
	s := &Series{levels: new(wave.History[float64]), rows: make(map[int]int)}
	for i, y := range years {
		s.levels.Append(y, levels[i])
		s.rows[y]++
	}
	return s
}

// Years returns the years having a price level.
func (s *Series) Years() []int { return s.levels.Years() }

// level returns the unique price level of a year.
func (s *Series) level(year int) (float64, error) {
	switch n := s.rows[year]; {
	case n == 0:
		return 0, fmt.Errorf("%w for year %d", ErrNoPriceLevel, year)
	case n > 1:
		return 0, fmt.Errorf("%w for year %d: %d rows match", ErrAmbiguousPriceLevel, year, n)
	}
	v, ok := s.levels.Get(year)
	if !ok {
		return 0, fmt.Errorf("%w for year %d: empty level", ErrNoPriceLevel, year)
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid price level %v for year %d", v, year)
	}
	return v, nil
}

// Factor returns the multiplier that converts startYear dollars into endYear
// dollars.
func (s *Series) Factor(startYear, endYear int) (float64, error) {
	if startYear == endYear {
		if _, err := s.level(startYear); err != nil {
			return 0, err
		}
		return 1, nil
	}
	from, err := s.level(startYear)
	if err != nil {
		return 0, err
	}
	to, err := s.level(endYear)
	if err != nil {
		return 0, err
	}
	return to / from, nil
}

// Adjust converts amount from fromYear dollars into toYear dollars, rounded to the cent.
func (s *Series) Adjust(amount decimal.Decimal, fromYear, toYear int) (decimal.Decimal, error) {
	f, err := s.Factor(fromYear, toYear)
	if err != nil {
		return decimal.Zero, err
	}
	if f == 1 {
		return amount, nil
	}
	return amount.Mul(decimal.NewFromFloat(f)).Round(2), nil
}

// DecodeFile reads a price-level series from a CSV file.
func DecodeFile(filename string) (*Series, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("format error in %q: %w", filename, err)
	}
	return s, nil
}

// Decode reads a CSV with a "year" and a "level" column. Header names are case
// insensitive and other columns are ignored.
func Decode(r io.Reader) (*Series, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty price-level series")
	}

	yearCol, levelCol := -1, -1
	for i, h := range records[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "year":
			yearCol = i
		case "level":
			levelCol = i
		}
	}
	if yearCol < 0 || levelCol < 0 {
		return nil, fmt.Errorf("missing \"year\" or \"level\" column in header %q", records[0])
	}

	var years, blank []int
	var levels []float64
	for i, rec := range records[1:] {
		if len(rec) <= yearCol || strings.TrimSpace(rec[yearCol]) == "" {
			continue
		}
		y, err := strconv.Atoi(strings.TrimSpace(rec[yearCol]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid year %q: %w", i+2, rec[yearCol], err)
		}
		if len(rec) <= levelCol || strings.TrimSpace(rec[levelCol]) == "" {
			// still a row of that year
			blank = append(blank, y)
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[levelCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid level %q for year %d: %w", i+2, rec[levelCol], y, err)
		}
		years = append(years, y)
		levels = append(levels, v)
	}
	s := NewSeries(years, levels)
	for _, y := range blank {
		s.rows[y]++
	}
	return s, nil
}
