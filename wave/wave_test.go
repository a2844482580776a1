package wave

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCalendar(t *testing.T) {
	testCases := []struct {
		year           int
		family, wealth bool
	}{
		{1968, true, false},
		{1984, true, true},
		{1985, true, false},
		{1994, true, true},
		{1997, true, false},
		{1998, false, false},
		{1999, true, true},
		{2000, false, false},
		{2001, true, true},
	}
	for _, tc := range testCases {
		if got := IsFamilyYear(tc.year); got != tc.family {
			t.Errorf("IsFamilyYear(%d) = %v, want %v", tc.year, got, tc.family)
		}
		if got := IsWealthYear(tc.year); got != tc.wealth {
			t.Errorf("IsWealthYear(%d) = %v, want %v", tc.year, got, tc.wealth)
		}
	}
}

func TestCalendarIsImmutable(t *testing.T) {
	years := WealthYears()
	years[0] = 1900
	if got := WealthYears()[0]; got != 1984 {
		t.Errorf("WealthYears()[0] = %d after caller mutation, want 1984", got)
	}
}

func TestBetween(t *testing.T) {
	testCases := []struct {
		name     string
		got      []int
		expected []int
	}{
		{"annual", Between(1989, 1994), []int{1989, 1990, 1991, 1992, 1993, 1994}},
		{"across cadence change", Between(1996, 2001), []int{1996, 1997, 1999, 2001}},
		{"family after", FamilyAfter(1997, 2003), []int{1999, 2001, 2003}},
		{"wealth after", WealthAfter(1984, 1999), []int{1989, 1994, 1999}},
		{"wealth after biennial", WealthAfter(1999, 2005), []int{2001, 2003, 2005}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.expected, tc.got); diff != "" {
				t.Errorf("years mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSpans(t *testing.T) {
	got := Spans([]int{1984, 1989, 1994})
	want := []Span{{1984, 1989}, {1989, 1994}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Spans() mismatch (-want +got):\n%s", diff)
	}
	if got, want := got[1].String(), "1989_1994"; got != want {
		t.Errorf("Span.String() = %q, want %q", got, want)
	}
}

func TestSpan_Validate(t *testing.T) {
	if err := (Span{1994, 1989}).Validate(); err == nil {
		t.Error("Validate() of a backward span succeeded, want error")
	}
	if err := (Span{1998, 2001}).Validate(); err == nil {
		t.Error("Validate() of a span starting in a non-wave year succeeded, want error")
	}
	if err := (Span{1989, 1994}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestParseSpan(t *testing.T) {
	for _, s := range []string{"1989_1994", "1989-1994"} {
		got, err := ParseSpan(s)
		if err != nil {
			t.Fatalf("ParseSpan(%q) error = %v", s, err)
		}
		if want := (Span{1989, 1994}); got != want {
			t.Errorf("ParseSpan(%q) = %v, want %v", s, got, want)
		}
	}
	if _, err := ParseSpan("1989"); err == nil {
		t.Error("ParseSpan(\"1989\") succeeded, want error")
	}
}

func TestHistory_Append(t *testing.T) {
	h := new(History[float64])
	h.Append(1994, 148.2)
	h.Append(1989, 124.0)
	h.Append(1994, 148.4)

	if h.Len() != 2 {
		t.Fatalf("History.Len() = %d, want 2", h.Len())
	}
	if diff := cmp.Diff([]int{1989, 1994}, h.Years()); diff != "" {
		t.Errorf("Years() mismatch (-want +got):\n%s", diff)
	}
	if v, ok := h.Get(1994); !ok || v != 148.4 {
		t.Errorf("Get(1994) = %v, %v, want 148.4, true", v, ok)
	}
	if _, ok := h.Get(1990); ok {
		t.Error("Get(1990) found a value, want none")
	}
}
