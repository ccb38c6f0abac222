package types

import "fmt"

// Treatment represents the treatment strategy chosen for a risk.
// It is an independent classification, orthogonal to the lifecycle status.
type Treatment string

const (
	TreatmentAccept   Treatment = "accept"
	TreatmentMitigate Treatment = "mitigate"
	TreatmentTransfer Treatment = "transfer"
	TreatmentAvoid    Treatment = "avoid"
)

// AllTreatments returns all valid treatment strategies
func AllTreatments() []Treatment {
	return []Treatment{
		TreatmentAccept,
		TreatmentMitigate,
		TreatmentTransfer,
		TreatmentAvoid,
	}
}

// IsValid checks if the treatment is valid. Empty is allowed: a newly
// identified risk may not have a treatment decision yet.
func (t Treatment) IsValid() bool {
	switch t {
	case "", TreatmentAccept, TreatmentMitigate, TreatmentTransfer, TreatmentAvoid:
		return true
	default:
		return false
	}
}

// String returns the string representation of the treatment
func (t Treatment) String() string {
	return string(t)
}

// ParseTreatment parses a string into a Treatment
func ParseTreatment(s string) (Treatment, error) {
	treatment := Treatment(s)
	if !treatment.IsValid() {
		return "", fmt.Errorf("invalid treatment: %s", s)
	}
	return treatment, nil
}
