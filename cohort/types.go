package cohort

// Symptom severity categories recorded at each visit.
const (
	SymptomNone     = "none"
	SymptomMild     = "mild"
	SymptomModerate = "moderate"
	SymptomSevere   = "severe"
)

// Symptoms lists the categories in severity order.
var Symptoms = []string{SymptomNone, SymptomMild, SymptomModerate, SymptomSevere}

// Patient holds the per-subject demographics generated once per cohort.
type Patient struct {
	PatientID  string
	GivenName  string
	FamilyName string
	Sex        string // F | M
	BirthDate  string // ISO 2006-01-02
}

// VisitRecord is one clinical measurement occasion: one patient at one
// visit. The long shape holds these directly; the wide shape spreads a
// patient's records across visit-suffixed columns.
type VisitRecord struct {
	PatientID    string
	Visit        int32 // 1-based visit index
	VisitDate    string
	OnMedication bool
	Symptom      string
	AdverseEvent bool
}
