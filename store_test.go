package savings

import (
	"path/filepath"
	"testing"

	"github.com/etnz/savings/wave"
)

func TestStore_FileNames(t *testing.T) {
	span := wave.Span{Start: 1989, End: 1994}
	dir := t.TempDir()
	full := &Store{Dir: dir, BaseName: "psid_"}
	original := &Store{Dir: dir, BaseName: "psid_", Sample: "original"}

	tests := []struct {
		got, want string
	}{
		{full.YearDataFile(1989, 0), "YearData_psid_1989.csv"},
		{original.YearDataFile(1989, 1994), "YearData_psid_1989_as_1994.csv"},
		{full.TwoPeriodFile(span, 0), "TwoPeriod_psid_1989_1994.csv"},
		{original.TwoPeriodFile(span, 0), "TwoPeriod_psid_1989_1994_original.csv"},
		{original.SavingsFile(span, 2019), "Savings_psid_1989_1994_original_as_2019.csv"},
		{CleanFile(original.SavingsFile(span, 0)), "Savings_psid_1989_1994_original_clean.csv"},
	}
	for _, tt := range tests {
		if want := filepath.Join(dir, tt.want); tt.got != want {
			t.Errorf("file name = %q, want %q", tt.got, want)
		}
	}

	var none *Store
	if got, want := none.TwoPeriodFile(span, 0), "TwoPeriod_1989_1994.csv"; got != want {
		t.Errorf("nil Store file name = %q, want %q", got, want)
	}
}
