package model

import "gonum.org/v1/gonum/mat"

// Vocabulary is the fixed, ordered list of symptom names the classifier was
// trained on. Positions are feature-column indices, so the order must match
// the order used at training time.
type Vocabulary struct {
	names []string
	index map[string]int
}

// NewVocabulary creates a Vocabulary from an ordered symptom name list.
func NewVocabulary(names []string) *Vocabulary {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		idx[n] = i
	}
	return &Vocabulary{names: names, index: idx}
}

// Names returns the symptom names in feature-column order.
func (v *Vocabulary) Names() []string {
	return v.names
}

// Index returns the feature-column index of the given symptom.
func (v *Vocabulary) Index(name string) (int, bool) {
	i, ok := v.index[name]
	return i, ok
}

// Contains reports whether the symptom is in the vocabulary.
func (v *Vocabulary) Contains(name string) bool {
	_, ok := v.index[name]
	return ok
}

// Len returns the number of feature columns.
func (v *Vocabulary) Len() int {
	return len(v.names)
}

// Vector builds a binary indicator vector for the given symptoms.
// Symptoms not in the vocabulary are dropped; the returned names list holds
// the ones that were. The vector length always equals Len().
func (v *Vocabulary) Vector(symptoms []string) (*mat.VecDense, []string) {
	vec := mat.NewVecDense(len(v.names), nil)
	var kept []string
	for _, s := range symptoms {
		i, ok := v.index[s]
		if !ok {
			continue
		}
		vec.SetVec(i, 1)
		kept = append(kept, s)
	}
	return vec, kept
}

// Symptoms returns the symptom names whose indicator is set in the vector,
// in feature-column order.
func (v *Vocabulary) Symptoms(vec *mat.VecDense) []string {
	var out []string
	for i, n := range v.names {
		if i < vec.Len() && vec.AtVec(i) != 0 {
			out = append(out, n)
		}
	}
	return out
}
