package savings

import (
	"testing"

	"github.com/etnz/savings/wave"
	"github.com/google/go-cmp/cmp"
)

type household struct {
	income float64
	weight float64
}

var (
	noWeight  = Rule[household]{"Drop_NoWeight", func(h household) bool { return h.weight <= 0 }}
	noIncome  = Rule[household]{"Drop_NoIncome", func(h household) bool { return h.income <= 0 }}
	lowIncome = Rule[household]{"Drop_LowIncome", func(h household) bool { return h.income < 1000 }}
	rich      = Rule[household]{"Drop_Rich", func(h household) bool { return h.income > 1e6 }}
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		h     household
		rules []Rule[household]
		want  Status
	}{
		{"no rules", household{}, nil, Keep},
		{"nothing matches", household{income: 5000, weight: 1}, []Rule[household]{noWeight, noIncome}, Keep},
		{"single match", household{income: 5000}, []Rule[household]{noWeight, noIncome}, "Drop_NoWeight"},
		{"first match wins", household{income: 0}, []Rule[household]{noWeight, noIncome}, "Drop_NoWeight"},
		{"first match wins reordered", household{income: 0}, []Rule[household]{noIncome, noWeight}, "Drop_NoIncome"},
		{"overlapping rules", household{income: -1, weight: 1}, []Rule[household]{lowIncome, noIncome}, "Drop_LowIncome"},
		{"overlapping rules reordered", household{income: -1, weight: 1}, []Rule[household]{noIncome, lowIncome}, "Drop_NoIncome"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.h, tt.rules); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	h := household{income: 2e6, weight: 1}
	rules := []Rule[household]{noWeight, rich}
	first := Classify(h, rules)
	for range 10 {
		if got := Classify(h, rules); got != first {
			t.Fatalf("Classify() = %q, then %q", first, got)
		}
	}
}

func TestClassify_DisjointRulesCommute(t *testing.T) {
	// noIncome and rich can never match the same household.
	for _, h := range []household{{income: 0, weight: 1}, {income: 2e6, weight: 1}, {income: 500, weight: 1}} {
		a := Classify(h, []Rule[household]{noIncome, rich})
		b := Classify(h, []Rule[household]{rich, noIncome})
		if a != b {
			t.Errorf("household %+v: %q depends on the order of disjoint rules (%q)", h, a, b)
		}
	}
}

func TestAnnotate_KeepsEarlierDrops(t *testing.T) {
	span := wave.Span{Start: 1989, End: 1994}
	column := StatusColumn(span)
	if column != "cleaningStatus_1989_1994" {
		t.Fatalf("StatusColumn() = %q", column)
	}

	tab := NewTable("id", "income")
	tab.Append("1", "100")
	tab.Append("2", "0")
	tab.Append("3", "0")
	tab.Row(2).Set(column, "Drop_NoWeight")

	rules := []Rule[Row]{{"Drop_NoIncome", func(r Row) bool { return r.Get("income") == "0" }}}
	Annotate(tab, column, rules)

	var got []string
	for r := range tab.Rows() {
		got = append(got, r.Get(column))
	}
	want := []string{"Keep", "Drop_NoIncome", "Drop_NoWeight"}
	if !cmp.Equal(got, want) {
		t.Errorf("Annotate() diff (-got +want):\n%s", cmp.Diff(got, want))
	}
}

func TestKeepOnly(t *testing.T) {
	tab := NewTable("id", YearStatusColumn(1994), StatusColumn(wave.Span{Start: 1989, End: 1994}))
	tab.Append("1", "Keep", "Keep")
	tab.Append("2", "Keep", "Drop_NoWeight")
	tab.Append("3", "Drop_Outlier", "Keep")
	tab.Append("4", "Keep", "Keep")

	var got []string
	for r := range KeepOnly(tab).Rows() {
		got = append(got, r.Get("id"))
	}
	if want := []string{"1", "4"}; !cmp.Equal(got, want) {
		t.Errorf("KeepOnly() ids = %v, want %v", got, want)
	}
	if tab.Len() != 4 {
		t.Errorf("KeepOnly() modified its input")
	}
}

func TestCountStatuses(t *testing.T) {
	tab := NewTable("s")
	for _, s := range []string{"Drop_b", "Keep", "Drop_a", "Keep", "Drop_b"} {
		tab.Append(s)
	}
	got := CountStatuses(tab, "s")
	want := []StatusCount{{Keep, 2}, {"Drop_a", 1}, {"Drop_b", 2}}
	if !cmp.Equal(got, want) {
		t.Errorf("CountStatuses() diff (-got +want):\n%s", cmp.Diff(got, want))
	}
}
