package savings

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/etnz/savings/crosswalk"
	"github.com/etnz/savings/inflation"
	"github.com/etnz/savings/wave"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrMissingMoveIndicator is returned when a wave has no move indicator at
	// all: the input file is incomplete.
	ErrMissingMoveIndicator = errors.New("move indicator absent")
	// ErrNoLinkage is returned when no household could be linked to family data.
	ErrNoLinkage = errors.New("no household linked to family data")
	// ErrFieldNotInFile is returned when a field listed by the crosswalk is not
	// a column of the extraction file.
	ErrFieldNotInFile = errors.New("field not in extraction file")
	// ErrInvalidSpan is returned for a timespan that cannot be assembled.
	ErrInvalidSpan = errors.New("invalid span")
)

// Sample design boundaries of the 1968 family ids: the original SRC and SEO
// samples. Ids outside are later refresher samples.
var originalSample = [...]struct{ from, to int }{{1, 2930}, {5001, 6872}}

// IsOriginalSample reports whether a 1968 family id belongs to the original sample.
func IsOriginalSample(familyID1968 int) bool {
	for _, r := range originalSample {
		if familyID1968 >= r.from && familyID1968 <= r.to {
			return true
		}
	}
	return false
}

// familyNamespace is the name space of constant family ids.
var familyNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("savings.constantFamilyId"))

// Panel assembles the cross-sectional and two-period tables.
type Panel struct {
	Crosswalk *crosswalk.Table
	Prices    *inflation.Series // required by TwoPeriod and to express amounts in another year
	Source    Source
	Store     *Store // optional

	// Variables are the family variables requested on top of the ones the
	// assembly needs.
	Variables []Variable
	// OriginalSampleOnly restricts two-period tables to the original 1968 families.
	OriginalSampleOnly bool
	// YearRules classify cross-sectional rows. Nil means YearDataRules.
	YearRules func(year int) []Rule[Row]
	// Rules classify two-period rows. Nil means AssemblyRules.
	// Stage files do not record the rules: set Store.ForceReload after changing them.
	Rules func(wave.Span) []Rule[Row]

	Logger *zap.Logger
}

func (p *Panel) log() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

// variables returns the household variables followed by the requested ones, without duplicates.
func (p *Panel) variables() []Variable {
	seen := make(map[string]bool)
	var vars []Variable
	for _, v := range append(householdVariables[:len(householdVariables):len(householdVariables)], p.Variables...) {
		if seen[v.Name] {
			continue
		}
		seen[v.Name] = true
		vars = append(vars, v)
	}
	return vars
}

// YearData returns the cross-sectional family table of year, columns renamed to
// stable names and amounts expressed in toYear dollars (toYear 0 keeps
// nominal amounts).
func (p *Panel) YearData(year, toYear int) (*Table, error) {
	return p.Store.Load(p.Store.YearDataFile(year, toYear), func() (*Table, error) {
		return p.yearData(year, toYear)
	})
}

func (p *Panel) yearData(year, toYear int) (*Table, error) {
	if !wave.IsFamilyYear(year) {
		return nil, fmt.Errorf("no family data collected in %d", year)
	}
	if toYear != 0 {
		if p.Prices == nil {
			return nil, fmt.Errorf("year %d as %d: no price-level series", year, toYear)
		}
		if _, err := p.Prices.Factor(year, toYear); err != nil {
			return nil, fmt.Errorf("year %d as %d: %w", year, toYear, err)
		}
	}

	raw, err := p.Source.Family(year)
	if err != nil {
		return nil, fmt.Errorf("reading family data of %d: %w", year, err)
	}

	type column struct {
		Variable
		field string
	}
	var columns []column
	out := NewTable()
	for _, v := range p.variables() {
		field, ok, err := p.Crosswalk.FieldNameForYear(v.Name, year)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if !raw.Has(field) {
			return nil, fmt.Errorf("%w: %s (%s) in %d", ErrFieldNotInFile, field, v.Name, year)
		}
		out.AddColumn(v.Name)
		columns = append(columns, column{v, field})
	}

	for r := range raw.Rows() {
		o := out.Append()
		for _, c := range columns {
			if !c.Dollars || toYear == 0 || r.IsMissing(c.field) {
				o.Set(c.Name, r.Get(c.field))
				continue
			}
			d, ok := r.Decimal(c.field)
			if !ok {
				return nil, fmt.Errorf("invalid amount %q for %s (%s) in %d", r.Get(c.field), c.field, c.Name, year)
			}
			if d, err = p.Prices.Adjust(d, year, toYear); err != nil {
				return nil, err
			}
			o.SetDecimal(c.Name, d)
		}
	}
	rules := YearDataRules
	if p.YearRules != nil {
		rules = p.YearRules
	}
	Annotate(out, YearStatusColumn(year), rules(year))

	p.log().Info("year data assembled", zap.Int("year", year), zap.Int("as", toYear),
		zap.Int("families", out.Len()), zap.Int("variables", len(columns)))
	return out, nil
}

// TwoPeriod returns the table linking every head of household of span.End to
// the family data of every wave of the span.
//
// Amounts of every wave are expressed in toYear dollars, or in span.End
// dollars when toYear is 0, so p.Prices is required.
func (p *Panel) TwoPeriod(span wave.Span, toYear int) (*Table, error) {
	return p.Store.Load(p.Store.TwoPeriodFile(span, toYear), func() (*Table, error) {
		return p.twoPeriod(span, toYear)
	})
}

// head is a tracked household: its head's individual record and its output row.
type head struct {
	person Row
	out    Row
}

func (p *Panel) twoPeriod(span wave.Span, toYear int) (*Table, error) {
	if err := span.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpan, err)
	}
	as := toYear
	if as == 0 {
		as = span.End
	}
	if p.Prices == nil {
		return nil, fmt.Errorf("span %v: no price-level series to express amounts in %d dollars", span, as)
	}
	individuals, err := p.Source.Individuals()
	if err != nil {
		return nil, fmt.Errorf("reading individual data: %w", err)
	}

	out := NewTable(ColConstantFamilyID, ColConstantIndividualID, ColFamilyID1968)
	heads, err := p.heads(individuals, span.End, out)
	if err != nil {
		return nil, err
	}

	years := wave.Between(span.Start, span.End)
	var links []string
	for _, y := range years {
		fam, err := p.YearData(y, as)
		if err != nil {
			return nil, err
		}
		if y > span.Start {
			if err := checkMoveIndicator(fam, y); err != nil {
				return nil, err
			}
		}
		if !fam.Has(VarFamilyInterviewNumber) {
			return nil, fmt.Errorf("%s has no field in %d", VarFamilyInterviewNumber, y)
		}
		interviewField, ok, err := p.Crosswalk.FieldNameForYear(VarInterviewNumber, y)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%s has no field in %d", VarInterviewNumber, y)
		}

		byInterview := make(map[int]Row, fam.Len())
		for r := range fam.Rows() {
			if id, ok := r.Int(VarFamilyInterviewNumber); ok {
				byInterview[id] = r
			}
		}
		// the two-period table has its own status
		columns := slices.DeleteFunc(fam.Columns(), func(c string) bool { return c == YearStatusColumn(y) })
		for _, c := range columns {
			out.AddColumn(crosswalk.Qualify(c, y))
		}
		// left join: unmatched households keep empty cells for that year
		for _, h := range heads {
			id, ok := h.person.Int(interviewField)
			if !ok {
				continue
			}
			fr, ok := byInterview[id]
			if !ok {
				continue
			}
			for _, c := range columns {
				h.out.Set(crosswalk.Qualify(c, y), fr.Get(c))
			}
		}
		links = append(links, crosswalk.Qualify(VarFamilyInterviewNumber, y))
	}

	tracked := out.Len()
	out = out.Filter(func(r Row) bool {
		for _, c := range links {
			if !r.IsMissing(c) {
				return true
			}
		}
		return false
	})
	observed := out.Len()
	if p.OriginalSampleOnly {
		out = out.Filter(func(r Row) bool {
			id, ok := r.Int(ColFamilyID1968)
			return ok && IsOriginalSample(id)
		})
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("%w in span %v", ErrNoLinkage, span)
	}

	reconcile(out, span)

	rules := AssemblyRules
	if p.Rules != nil {
		rules = p.Rules
	}
	Annotate(out, StatusColumn(span), rules(span))

	p.log().Info("two-period data assembled", zap.Stringer("span", span), zap.Int("as", as),
		zap.Int("heads", tracked), zap.Int("neverObserved", tracked-observed),
		zap.Int("outsideOriginalSample", observed-out.Len()), zap.Int("households", out.Len()))
	return out, nil
}

// heads appends one row to out per head of household in year and returns them.
func (p *Panel) heads(individuals *Table, year int, out *Table) ([]head, error) {
	field := func(name string, year int) (string, error) {
		f, ok, err := p.Crosswalk.FieldNameForYear(name, year)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("%s has no field in %d", name, year)
		}
		if !individuals.Has(f) {
			return "", fmt.Errorf("%w: %s (%s) in individual file", ErrFieldNotInFile, f, name)
		}
		return f, nil
	}
	seqField, err := field(VarSequenceNumber, year)
	if err != nil {
		return nil, err
	}
	interviewField, err := field(VarInterviewNumber, year)
	if err != nil {
		return nil, err
	}
	interview1968, err := field(VarInterviewNumber1968, wave.First)
	if err != nil {
		return nil, err
	}
	person1968, err := field(VarPersonNumber1968, wave.First)
	if err != nil {
		return nil, err
	}

	var heads []head
	skipped := 0
	for r := range individuals.Rows() {
		if seq, ok := r.Int(seqField); !ok || seq != 1 || r.IsMissing(interviewField) {
			continue
		}
		family, ok1 := r.Int(interview1968)
		person, ok2 := r.Int(person1968)
		if !ok1 || !ok2 {
			skipped++
			continue
		}
		id := ConstantIndividualID(family, person)
		o := out.Append(
			uuid.NewSHA1(familyNamespace, []byte(fmt.Sprintf("%d/%d", year, id))).String(),
			strconv.Itoa(id),
			strconv.Itoa(family),
		)
		heads = append(heads, head{person: r, out: o})
	}
	if skipped > 0 {
		p.log().Warn("heads without 1968 identifiers ignored", zap.Int("year", year), zap.Int("count", skipped))
	}
	return heads, nil
}

// ConstantIndividualID derives the cross-year id of a person from the 1968
// interview number and person number.
func ConstantIndividualID(interview1968, person1968 int) int {
	return interview1968*1000 + person1968
}

// checkMoveIndicator fails when the move indicator of year is absent from the
// whole family file.
func checkMoveIndicator(fam *Table, year int) error {
	if !fam.Has(VarMoved) {
		return fmt.Errorf("%w in %d: no field", ErrMissingMoveIndicator, year)
	}
	for r := range fam.Rows() {
		if !r.IsMissing(VarMoved) {
			return nil
		}
	}
	return fmt.Errorf("%w in %d: missing for every family", ErrMissingMoveIndicator, year)
}

// YearDataRules are the default cleaning rules of cross-sectional tables.
func YearDataRules(year int) []Rule[Row] {
	return []Rule[Row]{
		{
			Status: "Drop_NoWeight",
			When: func(r Row) bool {
				w, ok := r.Decimal(VarWeight)
				return !ok || !w.IsPositive()
			},
		},
	}
}

// AssemblyRules are the default cleaning rules of two-period tables.
func AssemblyRules(span wave.Span) []Rule[Row] {
	return []Rule[Row]{
		{
			Status: "Drop_NotObservedAtStart",
			When: func(r Row) bool {
				return r.IsMissing(crosswalk.Qualify(VarFamilyInterviewNumber, span.Start))
			},
		},
		{
			Status: "Drop_NoWeight",
			When: func(r Row) bool {
				w, ok := r.Decimal(crosswalk.Qualify(VarWeight, span.End))
				return !ok || !w.IsPositive()
			},
		},
	}
}
