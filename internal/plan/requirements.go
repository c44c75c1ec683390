// Package plan implements the plan requirement computation engine: given an
// account's roster, the game catalog of upgrade costs, and a chain of plans,
// it computes the incremental material and QP cost of reaching each plan's
// targets.
//
// The engine is stateless and pure: inputs are never mutated and every call
// returns freshly allocated output.
package plan

// RequirementsItem tracks how much of one material a computation needs,
// broken down by enhancement axis. Total is the sum across axes.
type RequirementsItem struct {
	Ascensions   int `json:"ascensions"`
	Skills       int `json:"skills"`
	AppendSkills int `json:"append_skills"`
	Costumes     int `json:"costumes"`
	Total        int `json:"total"`
}

// Requirements is an additive aggregate of material and QP costs.
// Combining two records is element-wise summation: Add is associative and
// commutative and NewRequirements() is its identity.
type Requirements struct {
	Items map[int]*RequirementsItem `json:"items"`
	QP    int64                     `json:"qp"`
}

// NewRequirements returns the all-zero requirements record.
func NewRequirements() *Requirements {
	return &Requirements{Items: make(map[int]*RequirementsItem)}
}

// item returns the entry for itemID, creating a zero entry when absent.
func (r *Requirements) item(itemID int) *RequirementsItem {
	entry, ok := r.Items[itemID]
	if !ok {
		entry = &RequirementsItem{}
		r.Items[itemID] = entry
	}
	return entry
}

// Add merges src into r field-wise. Missing item entries are created on
// demand; src is not modified. A nil src is a no-op.
func (r *Requirements) Add(src *Requirements) {
	if src == nil {
		return
	}
	r.QP += src.QP
	for itemID, from := range src.Items {
		entry := r.item(itemID)
		entry.Ascensions += from.Ascensions
		entry.Skills += from.Skills
		entry.AppendSkills += from.AppendSkills
		entry.Costumes += from.Costumes
		entry.Total += from.Total
	}
}

// Clone returns an independent deep copy of r.
func (r *Requirements) Clone() *Requirements {
	out := NewRequirements()
	out.Add(r)
	return out
}

// SumRequirements folds Add over the given records, starting from the zero
// record. SumRequirements(nil) returns the all-zero identity.
func SumRequirements(records []*Requirements) *Requirements {
	out := NewRequirements()
	for _, rec := range records {
		out.Add(rec)
	}
	return out
}
