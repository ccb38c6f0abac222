package model

import (
	"strings"

	"github.com/grc-lab/riskreg/pkg/domain/types"
)

// FilterAll is the sentinel meaning "do not filter on this dimension".
// An empty value is treated the same way.
const FilterAll = "all"

// RiskFilters is a declarative, transient query over the risk collection.
// Dimensions are AND-combined.
type RiskFilters struct {
	Search    string
	Category  string
	Status    string
	Priority  string // band of the current score
	Owner     string
	RiskLevel string // band of the residual score
	Treatment string
}

func filterActive(v string) bool {
	return v != "" && v != FilterAll
}

// Apply filters the collection, preserving input order. resolveOwner maps an
// employee ID to a display name for search matching; it may be nil.
func (f *RiskFilters) Apply(risks []*Risk, resolveOwner func(string) string) []*Risk {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	result := make([]*Risk, 0, len(risks))
	for _, r := range risks {
		if filterActive(f.Category) && r.Category.String() != f.Category {
			continue
		}
		if filterActive(f.Status) && r.Status.String() != f.Status {
			continue
		}
		if filterActive(f.Priority) && r.Level().String() != f.Priority {
			continue
		}
		if filterActive(f.Owner) && r.Owner != f.Owner {
			continue
		}
		if filterActive(f.RiskLevel) && r.ResidualLevel().String() != f.RiskLevel {
			continue
		}
		if filterActive(f.Treatment) && r.Treatment.String() != f.Treatment {
			continue
		}
		if search != "" && !matchesSearch(r, search, resolveOwner) {
			continue
		}
		result = append(result, r)
	}
	return result
}

// matchesSearch does a case-insensitive substring match over the risk's
// display text: title, description and the owner's resolved name.
func matchesSearch(r *Risk, search string, resolveOwner func(string) string) bool {
	haystack := r.Title + " " + r.Description + " " + r.Owner
	if resolveOwner != nil {
		haystack += " " + resolveOwner(r.Owner)
	}
	return strings.Contains(strings.ToLower(haystack), search)
}

// Validate checks that each concrete dimension carries a known value
func (f *RiskFilters) Validate() error {
	if filterActive(f.Status) {
		if _, err := types.ParseRiskStatus(f.Status); err != nil {
			return err
		}
	}
	if filterActive(f.Treatment) {
		if _, err := types.ParseTreatment(f.Treatment); err != nil {
			return err
		}
	}
	if filterActive(f.Priority) && !types.RiskLevel(f.Priority).IsValid() {
		return errInvalidLevel(f.Priority)
	}
	if filterActive(f.RiskLevel) && !types.RiskLevel(f.RiskLevel).IsValid() {
		return errInvalidLevel(f.RiskLevel)
	}
	return nil
}
