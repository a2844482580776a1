// Package wave describes the survey calendar: which years have family data,
// which years carry the wealth supplement, and the timespans analysed between
// two waves.
package wave

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// First is the baseline year of the survey.
const First = 1968

const (
	lastAnnual    = 1997 // last year of the annual cadence
	firstBiennial = 1999
	firstWealthBi = 1999 // wealth supplement is biennial from this year on
	lastKnownWave = 2023
)

// wealthBefore1999 are the only wealth supplements of the annual period.
var wealthBefore1999 = [...]int{1984, 1989, 1994}

// familyYears and wealthYears are computed once and never modified.
var (
	familyYears = buildFamilyYears()
	wealthYears = buildWealthYears()
)

func buildFamilyYears() []int {
	var years []int
	for y := First; y <= lastAnnual; y++ {
		years = append(years, y)
	}
	for y := firstBiennial; y <= lastKnownWave; y += 2 {
		years = append(years, y)
	}
	return years
}

func buildWealthYears() []int {
	years := slices.Clone(wealthBefore1999[:])
	for y := firstWealthBi; y <= lastKnownWave; y += 2 {
		years = append(years, y)
	}
	return years
}

// FamilyYears returns every year with a family file, in order.
func FamilyYears() []int { return slices.Clone(familyYears) }

// WealthYears returns every year with wealth detail, in order.
func WealthYears() []int { return slices.Clone(wealthYears) }

// IsFamilyYear reports whether family data was collected in year.
func IsFamilyYear(year int) bool {
	_, found := slices.BinarySearch(familyYears, year)
	return found
}

// IsWealthYear reports whether the wealth supplement was collected in year.
func IsWealthYear(year int) bool {
	_, found := slices.BinarySearch(wealthYears, year)
	return found
}

// Between returns the family years in [from, to].
func Between(from, to int) []int { return within(familyYears, from, to, true) }

// FamilyAfter returns the family years in (from, to].
func FamilyAfter(from, to int) []int { return within(familyYears, from, to, false) }

// WealthAfter returns the wealth years in (from, to]. Those are the waves whose
// flow questions cover the timespan.
func WealthAfter(from, to int) []int { return within(wealthYears, from, to, false) }

func within(years []int, from, to int, inclusive bool) []int {
	var res []int
	for _, y := range years {
		if y > to {
			break
		}
		if y > from || (inclusive && y == from) {
			res = append(res, y)
		}
	}
	return res
}

// Span is the timespan between a start wave and an end wave.
type Span struct{ Start, End int }

// String returns "start_end", the suffix used for timespan columns and files.
func (s Span) String() string { return fmt.Sprintf("%d_%d", s.Start, s.End) }

// Years returns the number of calendar years covered.
func (s Span) Years() int { return s.End - s.Start }

// Validate checks that the span goes forward between two family years.
func (s Span) Validate() error {
	if s.Start >= s.End {
		return fmt.Errorf("span %v: start must be before end", s)
	}
	if !IsFamilyYear(s.Start) {
		return fmt.Errorf("span %v: no family data in %d", s, s.Start)
	}
	if !IsFamilyYear(s.End) {
		return fmt.Errorf("span %v: no family data in %d", s, s.End)
	}
	return nil
}

// Spans pairs consecutive years.
func Spans(years []int) []Span {
	var spans []Span
	for i := 1; i < len(years); i++ {
		spans = append(spans, Span{years[i-1], years[i]})
	}
	return spans
}

// ParseSpan parses "1989_1994" or "1989-1994".
func ParseSpan(s string) (Span, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' })
	if len(parts) != 2 {
		return Span{}, fmt.Errorf("invalid span %q want format \"start_end\"", s)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return Span{}, fmt.Errorf("invalid span start in %q: %w", s, err)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return Span{}, fmt.Errorf("invalid span end in %q: %w", s, err)
	}
	return Span{start, end}, nil
}

// ParseYears parses a comma separated list of years.
func ParseYears(s string) ([]int, error) {
	var years []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		y, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q: %w", f, err)
		}
		years = append(years, y)
	}
	return years, nil
}
