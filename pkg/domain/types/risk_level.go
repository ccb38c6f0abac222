package types

// RiskLevel represents the low/medium/high/critical band derived from a
// numeric risk score.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// AllRiskLevels returns all risk levels in ascending severity order
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{
		RiskLevelLow,
		RiskLevelMedium,
		RiskLevelHigh,
		RiskLevelCritical,
	}
}

// RiskLevelOf maps a risk score to its band. The thresholds (6, 12, 20,
// inclusive on the lower side) are a fixed contract shared by scoring,
// scheduling, stats and the UI.
func RiskLevelOf(score int) RiskLevel {
	switch {
	case score <= 6:
		return RiskLevelLow
	case score <= 12:
		return RiskLevelMedium
	case score <= 20:
		return RiskLevelHigh
	default:
		return RiskLevelCritical
	}
}

// IsValid checks if the risk level is valid
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelCritical:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk level
func (l RiskLevel) String() string {
	return string(l)
}
