// Package profile resolves a predicted disease to its characteristic symptom
// set learned from the training table.
package profile

// Resolver looks up per-disease symptom profiles. Diseases without training
// rows resolve to an empty set; that is a degraded case the caller proceeds
// through, not an error.
type Resolver struct {
	byDisease map[string][]string
}

// NewResolver creates a Resolver over a disease-to-symptoms mapping. Symptom
// slices keep vocabulary order.
func NewResolver(byDisease map[string][]string) *Resolver {
	return &Resolver{byDisease: byDisease}
}

// Related returns the characteristic symptoms of a disease, or nil when the
// disease has no profile.
func (r *Resolver) Related(disease string) []string {
	return r.byDisease[disease]
}

// Followups returns the characteristic symptoms of a disease minus the
// already-reported one, preserving order.
func (r *Resolver) Followups(disease, reported string) []string {
	related := r.byDisease[disease]
	if len(related) == 0 {
		return nil
	}
	out := make([]string, 0, len(related))
	for _, s := range related {
		if s != reported {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
