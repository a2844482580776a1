package savings

// Stable names of the survey variables the panel relies on. Their per-year
// field names come from the crosswalk.
const (
	// Individual file.
	VarInterviewNumber     = "InterviewNumber" // per year, links a person to that year's family
	VarSequenceNumber      = "SequenceNumber"  // per year, 1 is the head of household
	VarInterviewNumber1968 = "InterviewNumber1968"
	VarPersonNumber1968    = "PersonNumber1968"

	// Family files.
	VarFamilyInterviewNumber = "FamilyInterviewNumber"
	VarMoved                 = "MovedR"
	VarOwnRent               = "HomeOwnership"
	VarCompositionChange     = "ChangeInCompositionFU"
	VarHouseValue            = "HouseValue"
	VarTotalIncome           = "TotalIncomeHH"
	VarWeight                = "LongitudinalWeightHH"
)

// Columns computed by the panel.
const (
	ColConstantFamilyID     = "constantFamilyId"
	ColConstantIndividualID = "constantIndividualId"
	ColFamilyID1968         = "familyId1968"

	// per year
	ColMoved       = "moved"
	ColMovedForced = "movedForced"

	// per timespan
	ColMovedNotSure              = "movedNotSure"
	ColChangeInCompositionFU     = "changeInCompositionFU"
	ColChangeInHeadFU            = "changeInHeadFU"
	ColChangeInHeadSpouseComboFU = "changeInHeadSpouseComboFU"
	ColHouseValueIncreaseOnMove  = "houseValueIncreaseOnMoving"
)

// Variable is a stable variable requested from the yearly family files.
type Variable struct {
	Name    string
	Dollars bool // nominal amount, converted when a price-level year is requested
}

// householdVariables are needed by the two-period assembly whatever the analysis.
var householdVariables = []Variable{
	{Name: VarFamilyInterviewNumber},
	{Name: VarMoved},
	{Name: VarOwnRent},
	{Name: VarCompositionChange},
	{Name: VarHouseValue, Dollars: true},
	{Name: VarTotalIncome, Dollars: true},
	{Name: VarWeight},
}
