package shuffle

import (
	"fmt"

	"github.com/handiism/playlist-spreader/internal/model"
)

// Violation is a pair of same-title placements closer than the minimum
// distance.
type Violation struct {
	First    int
	Second   int
	Title    string
	Distance int
}

// AuditReport is the result of checking a sequence against a minimum
// distance.
type AuditReport struct {
	MinDistance int
	Violations  []Violation

	// MinObserved is the smallest violating distance, 0 without violations.
	MinObserved int
}

// Audit lists every pair of same-title placements less than minDistance
// slots apart. It does not modify placements.
func Audit(placements []model.Placement, minDistance int) *AuditReport {
	r := &AuditReport{MinDistance: minDistance}

	n := len(placements)
	for i := 0; i < n; i++ {
		end := min(i+minDistance, n)
		for j := i + 1; j < end; j++ {
			if placements[j].Track.Title != placements[i].Track.Title {
				continue
			}
			d := j - i
			r.Violations = append(r.Violations, Violation{
				First:    i,
				Second:   j,
				Title:    placements[i].Track.Title,
				Distance: d,
			})
			if r.MinObserved == 0 || d < r.MinObserved {
				r.MinObserved = d
			}
		}
	}

	return r
}

// OK reports whether no violation was found.
func (r *AuditReport) OK() bool {
	return len(r.Violations) == 0
}

// Unexplained returns the violations whose later slot is not a recorded
// relaxation. A correct shuffle never produces any.
func (r *AuditReport) Unexplained(relaxations []Relaxation) []Violation {
	relaxed := make(map[int]bool, len(relaxations))
	for _, rl := range relaxations {
		relaxed[rl.Slot] = true
	}

	var out []Violation
	for _, v := range r.Violations {
		if !relaxed[v.Second] {
			out = append(out, v)
		}
	}
	return out
}

// Summary returns a one-line description of the audit.
func (r *AuditReport) Summary() string {
	if r.OK() {
		return fmt.Sprintf("no violations (min distance %d)", r.MinDistance)
	}
	return fmt.Sprintf("%d violations (min distance %d, closest %d)", len(r.Violations), r.MinDistance, r.MinObserved)
}
