package savings

import (
	"slices"

	"github.com/etnz/savings/crosswalk"
	"github.com/etnz/savings/wave"
	"github.com/shopspring/decimal"
)

// tenure is the own/rent status of a family.
type tenure int

const (
	unknownTenure tenure = iota
	owns
	rents
	neither
)

// parseMoved decodes the move indicator: 1 moved, 5 did not, anything else is unknown.
func parseMoved(r Row, c string) (moved, ok bool) {
	switch v, _ := r.Int(c); v {
	case 1:
		return true, true
	case 5:
		return false, true
	}
	return false, false
}

func parseTenure(r Row, c string) tenure {
	v, ok := r.Int(c)
	if !ok {
		return unknownTenure
	}
	switch v {
	case 1:
		return owns
	case 5:
		return rents
	case 8:
		return neither
	}
	return unknownTenure
}

// compositionFlags maps each composition flag to the change codes that leave it unset.
var compositionFlags = []struct {
	column   string
	noChange []int
}{
	{ColChangeInCompositionFU, []int{0}},
	{ColChangeInHeadSpouseComboFU, []int{0, 1}},
	{ColChangeInHeadFU, []int{0, 1, 2}},
}

// reconcile derives the move and composition columns of a two-period table.
//
// For every family year y after span.Start, a move is assumed when the own/rent
// status differs from the previous wave and the survey did not report one.
// The house value difference of every wave with such a forced move is
// accumulated, so it is not mistaken for a capital gain.
func reconcile(t *Table, span wave.Span) {
	years := wave.Between(span.Start, span.End)
	notSure := crosswalk.QualifySpan(ColMovedNotSure, span)
	increase := crosswalk.QualifySpan(ColHouseValueIncreaseOnMove, span)

	for r := range t.Rows() {
		flags := make([]bool, len(compositionFlags))
		unsure := false
		sum := decimal.Zero

		for i := 1; i < len(years); i++ {
			prev, y := years[i-1], years[i]

			moved, known := parseMoved(r, crosswalk.Qualify(VarMoved, y))
			before := parseTenure(r, crosswalk.Qualify(VarOwnRent, prev))
			after := parseTenure(r, crosswalk.Qualify(VarOwnRent, y))
			forced := !moved && before != unknownTenure && after != unknownTenure && before != after
			if forced {
				moved, known = true, true
			}
			r.SetBool(crosswalk.Qualify(ColMovedForced, y), forced)
			if known {
				r.SetBool(crosswalk.Qualify(ColMoved, y), moved)
			} else {
				r.Set(crosswalk.Qualify(ColMoved, y), "")
				unsure = true
			}

			if forced {
				hv, ok1 := r.Decimal(crosswalk.Qualify(VarHouseValue, y))
				hvPrev, ok2 := r.Decimal(crosswalk.Qualify(VarHouseValue, prev))
				if ok1 && ok2 {
					sum = sum.Add(hv.Sub(hvPrev))
				}
			}

			code, ok := r.Int(crosswalk.Qualify(VarCompositionChange, y))
			if !ok {
				continue
			}
			for j, f := range compositionFlags {
				if !slices.Contains(f.noChange, code) {
					flags[j] = true
				}
			}
		}

		r.SetBool(notSure, unsure)
		r.SetDecimal(increase, sum)
		for j, f := range compositionFlags {
			r.SetBool(crosswalk.QualifySpan(f.column, span), flags[j])
		}
	}
}
