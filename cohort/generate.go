package cohort

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Sample pools for generating realistic patient records.
var (
	givenNames = []string{
		"James", "Mary", "John", "Patricia", "Robert", "Jennifer",
		"Michael", "Linda", "William", "Elizabeth", "David", "Barbara",
		"Richard", "Susan", "Joseph", "Jessica", "Thomas", "Sarah",
	}

	familyNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia",
		"Miller", "Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez",
		"Gonzalez", "Wilson", "Anderson", "Taylor", "Moore", "Jackson",
	}
)

// studyBaseline anchors visit 1. Individual patients enroll within two
// weeks of it.
var studyBaseline = time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)

// visitInterval is the nominal spacing between scheduled visits.
const visitInterval = 30 // days

// Generator produces a synthetic visit cohort. The same seed reproduces
// the same cohort exactly, so fixtures and demos are repeatable.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Patients generates n subjects with demographics drawn from the sample
// pools. Patient IDs are UUIDs sourced from the seeded generator.
func (g *Generator) Patients(n int) ([]Patient, error) {
	patients := make([]Patient, n)
	for i := range patients {
		id, err := uuid.NewRandomFromReader(g.rng)
		if err != nil {
			return nil, fmt.Errorf("patient id: %w", err)
		}

		sex := "F"
		if g.rng.Intn(2) == 1 {
			sex = "M"
		}
		birth := time.Date(1940+g.rng.Intn(66), time.Month(1+g.rng.Intn(12)), 1+g.rng.Intn(28),
			0, 0, 0, 0, time.UTC)

		patients[i] = Patient{
			PatientID:  id.String(),
			GivenName:  givenNames[g.rng.Intn(len(givenNames))],
			FamilyName: familyNames[g.rng.Intn(len(familyNames))],
			Sex:        sex,
			BirthDate:  birth.Format("2006-01-02"),
		}
	}
	return patients, nil
}

// VisitsFor generates one record per patient for a single visit index.
// Visit dates advance roughly 30 days per index with a few days of
// scheduling jitter; each patient's enrollment offset is derived from
// the patient ID so it stays stable across calls.
func (g *Generator) VisitsFor(patients []Patient, visit int32) ([]VisitRecord, error) {
	if visit < 1 {
		return nil, fmt.Errorf("visit index %d, must be >= 1", visit)
	}
	records := make([]VisitRecord, len(patients))
	for i, p := range patients {
		jitter := 0
		if visit > 1 {
			jitter = g.rng.Intn(7) - 3
		}
		days := enrollOffset(p.PatientID) + int(visit-1)*visitInterval + jitter
		date := studyBaseline.AddDate(0, 0, days)

		records[i] = VisitRecord{
			PatientID:    p.PatientID,
			Visit:        visit,
			VisitDate:    date.Format("2006-01-02"),
			OnMedication: g.rng.Intn(2) == 1,
			Symptom:      Symptoms[g.rng.Intn(len(Symptoms))],
			AdverseEvent: g.rng.Intn(10) == 0,
		}
	}
	return records, nil
}

// Cohort generates all visits for n patients, visit-major: all of visit
// 1, then all of visit 2, and so on.
func (g *Generator) Cohort(n int, visits int32) ([]Patient, []VisitRecord, error) {
	patients, err := g.Patients(n)
	if err != nil {
		return nil, nil, err
	}
	var records []VisitRecord
	for v := int32(1); v <= visits; v++ {
		vr, err := g.VisitsFor(patients, v)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, vr...)
	}
	return patients, records, nil
}

// enrollOffset maps a patient ID to a stable 0-13 day enrollment offset.
func enrollOffset(patientID string) int {
	var h uint32
	for _, b := range []byte(patientID) {
		h = h*31 + uint32(b)
	}
	return int(h % 14)
}
