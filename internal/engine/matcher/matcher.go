// Package matcher resolves free-text symptom input against the known symptom
// vocabulary. Matching is case-insensitive substring containment, not edit
// distance: "fever" matches "high_fever" and "mild_fever".
package matcher

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrNoMatch is returned when the query text matches no known symptom.
var ErrNoMatch = errors.New("no matching symptom")

// Match returns the candidate symptoms whose name contains the query as a
// case-insensitive literal substring, in vocabulary order. The query is
// NFKC-normalized and trimmed first. When several candidates match, picking
// one is the caller's job.
func Match(query string, candidates []string) ([]string, error) {
	q := strings.TrimSpace(norm.NFKC.String(query))
	if q == "" {
		return nil, ErrNoMatch
	}

	// QuoteMeta keeps user input literal, so compilation cannot fail.
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(q))

	var matches []string
	for _, c := range candidates {
		if re.MatchString(c) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return nil, ErrNoMatch
	}
	return matches, nil
}
