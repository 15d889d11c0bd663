// Package triage provides a symptom-based triage engine that matches
// free-text symptom input, predicts a likely condition with a decision
// tree, and scores severity against the reported duration.
//
// Quick start:
//
//	t, err := triage.New(triage.WithDataDir("chatdata/input"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rep, _ := t.Diagnose("itching", 5, []string{"skin_rash"})
//	fmt.Println(rep.Disease, rep.Severity)
//
// The Triage instance is safe for concurrent use. Create once, reuse across
// requests. See the README for full documentation.
package triage
