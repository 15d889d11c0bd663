// Package severity turns a confirmed symptom set and a duration into a risk
// recommendation.
package severity

// riskThreshold is the cutoff for the duration-weighted score. The value and
// the +1 denominator term are fixed policy constants; changing either changes
// every recommendation.
const riskThreshold = 13

// Recommendation is the outcome of severity scoring.
type Recommendation int

const (
	MinorPrecaution Recommendation = iota
	ConsultDoctor
)

// Advice returns the user-facing recommendation text.
func (r Recommendation) Advice() string {
	if r == ConsultDoctor {
		return "You should consult a doctor."
	}
	return "It might not be serious, but take precautions."
}

func (r Recommendation) String() string {
	if r == ConsultDoctor {
		return "consult_doctor"
	}
	return "minor_precaution"
}

// Scorer scores symptom sets against a severity table.
type Scorer struct {
	table map[string]int
}

// NewScorer creates a Scorer over the given symptom severity table. The
// table is read, never written.
func NewScorer(table map[string]int) *Scorer {
	return &Scorer{table: table}
}

// Score sums the severities of the given symptoms (unknown symptoms weigh 0)
// and weights the total by duration: (total * days) / (count + 1). Above the
// threshold the recommendation is ConsultDoctor. Days must already be
// validated as positive by the caller.
func (s *Scorer) Score(symptoms []string, days int) Recommendation {
	total := 0
	for _, sym := range symptoms {
		total += s.table[sym]
	}
	score := float64(total*days) / float64(len(symptoms)+1)
	if score > riskThreshold {
		return ConsultDoctor
	}
	return MinorPrecaution
}
