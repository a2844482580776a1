package inflation

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

const cpi = `Year,Level,Source
1984,103.9,BLS
1989,124.0,BLS
1994,148.2,BLS
1999,166.6,BLS
2001,177.1,BLS
2019,255.657,BLS
`

func TestDecode(t *testing.T) {
	s, err := Decode(strings.NewReader(cpi))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if got := len(s.Years()); got != 6 {
		t.Errorf("got %d years, want 6", got)
	}
	f, err := s.Factor(1989, 1994)
	if err != nil {
		t.Fatalf("Factor(1989, 1994) error = %v", err)
	}
	if want := 148.2 / 124.0; f != want {
		t.Errorf("Factor(1989, 1994) = %v, want %v", f, want)
	}
}

func TestDecode_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		csvData string
		wantErr string
	}{
		{"no header", ``, "empty price-level series"},
		{"missing level column", "year,cpi\n1989,124\n", "missing \"year\" or \"level\" column"},
		{"bad year", "year,level\nabc,124\n", "invalid year"},
		{"bad level", "year,level\n1989,x\n", "invalid level"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.csvData))
			if err == nil {
				t.Fatalf("Decode() succeeded, want error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Decode() error = %q, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestFactor_MultiplicativeConsistency(t *testing.T) {
	s, err := Decode(strings.NewReader(cpi))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	years := s.Years()
	for _, a := range years {
		for _, b := range years {
			for _, c := range years {
				ab, _ := s.Factor(a, b)
				bc, _ := s.Factor(b, c)
				ac, err := s.Factor(a, c)
				if err != nil {
					t.Fatalf("Factor(%d, %d) error = %v", a, c, err)
				}
				if rel := math.Abs(ab*bc-ac) / ac; rel > 1e-9 {
					t.Errorf("Factor(%d,%d)*Factor(%d,%d) = %v, Factor(%d,%d) = %v", a, b, b, c, ab*bc, a, c, ac)
				}
			}
		}
	}
}

func TestFactor_AmbiguousPriceLevel(t *testing.T) {
	s, err := Decode(strings.NewReader("year,level\n1989,124.0\n1989,124.1\n1994,148.2\n"))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if _, err := s.Factor(1989, 1994); !errors.Is(err, ErrAmbiguousPriceLevel) {
		t.Errorf("Factor(1989, 1994) error = %v, want ErrAmbiguousPriceLevel", err)
	}
	if _, err := s.Factor(1994, 2001); !errors.Is(err, ErrNoPriceLevel) {
		t.Errorf("Factor(1994, 2001) error = %v, want ErrNoPriceLevel", err)
	}
	if _, err := s.Factor(1989, 1989); !errors.Is(err, ErrAmbiguousPriceLevel) {
		t.Errorf("Factor(1989, 1989) error = %v, want ErrAmbiguousPriceLevel", err)
	}
}

func TestAdjust(t *testing.T) {
	s := NewSeries([]int{1989, 1994}, []float64{100, 150})
	got, err := s.Adjust(decimal.NewFromInt(1000), 1989, 1994)
	if err != nil {
		t.Fatalf("Adjust() error = %v", err)
	}
	if want := decimal.NewFromInt(1500); !got.Equal(want) {
		t.Errorf("Adjust(1000, 1989, 1994) = %v, want %v", got, want)
	}
}

func TestFactor_EmptyLevelRow(t *testing.T) {
	s, err := Decode(strings.NewReader("year,level\n1989,124.0\n1989,\n1994,148.2\n1999,\n"))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if _, err := s.Factor(1989, 1994); !errors.Is(err, ErrAmbiguousPriceLevel) {
		t.Errorf("Factor(1989, 1994) error = %v, want ErrAmbiguousPriceLevel", err)
	}
	if _, err := s.Factor(1994, 1999); !errors.Is(err, ErrNoPriceLevel) {
		t.Errorf("Factor(1994, 1999) error = %v, want ErrNoPriceLevel", err)
	}
}
