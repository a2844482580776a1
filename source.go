package savings

import (
	"fmt"
	"path/filepath"
)

// Source gives access to the raw yearly extraction files produced upstream.
// Their columns are the survey's per-year field names.
type Source interface {
	// Family returns the family file of a year, one row per family.
	Family(year int) (*Table, error)
	// Individuals returns the cross-year individual file, one row per person.
	Individuals() (*Table, error)
}

// DirSource reads the extraction files from a directory:
// FamilyExtract_<year>.csv and IndividualExtract.csv.
type DirSource string

// Family implements Source.
func (d DirSource) Family(year int) (*Table, error) {
	return ReadTableFile(filepath.Join(string(d), fmt.Sprintf("FamilyExtract_%d.csv", year)))
}

// Individuals implements Source.
func (d DirSource) Individuals() (*Table, error) {
	return ReadTableFile(filepath.Join(string(d), "IndividualExtract.csv"))
}
