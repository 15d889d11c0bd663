package severity

import "testing"

func TestScoreBelowThreshold(t *testing.T) {
	// (3+2)*5 / (2+1) = 8.33 — not serious.
	s := NewScorer(map[string]int{"chills": 3, "fatigue": 2})
	got := s.Score([]string{"chills", "fatigue"}, 5)
	if got != MinorPrecaution {
		t.Fatalf("Score() = %v, want MinorPrecaution", got)
	}
}

func TestScoreAboveThreshold(t *testing.T) {
	// (3+2)*10 / (2+1) = 16.67 — consult a doctor.
	s := NewScorer(map[string]int{"chills": 3, "fatigue": 2})
	got := s.Score([]string{"chills", "fatigue"}, 10)
	if got != ConsultDoctor {
		t.Fatalf("Score() = %v, want ConsultDoctor", got)
	}
}

func TestScoreUnknownSymptomWeighsZero(t *testing.T) {
	s := NewScorer(map[string]int{"chills": 3})
	// Unknown symptom contributes 0 severity but still counts in the
	// denominator: 3*100/3 = 100 vs 3*100/2 = 150.
	withUnknown := s.Score([]string{"chills", "mystery"}, 100)
	if withUnknown != ConsultDoctor {
		t.Fatalf("Score() = %v, want ConsultDoctor", withUnknown)
	}

	only := NewScorer(map[string]int{})
	if got := only.Score([]string{"mystery"}, 365); got != MinorPrecaution {
		t.Fatalf("all-unknown symptoms: Score() = %v, want MinorPrecaution", got)
	}
}

func TestScoreMonotonicInDays(t *testing.T) {
	s := NewScorer(map[string]int{"high_fever": 7})

	prev := MinorPrecaution
	for days := 1; days <= 30; days++ {
		got := s.Score([]string{"high_fever"}, days)
		if got < prev {
			t.Fatalf("recommendation dropped from %v to %v at days=%d", prev, got, days)
		}
		prev = got
	}
	if prev != ConsultDoctor {
		t.Fatal("long duration with positive severity should reach ConsultDoctor")
	}
}

func TestScoreExactThresholdIsMinor(t *testing.T) {
	// 13*2/2 = 13 exactly: threshold is strict, so still minor.
	s := NewScorer(map[string]int{"a": 13})
	if got := s.Score([]string{"a"}, 2); got != MinorPrecaution {
		t.Fatalf("Score() at threshold = %v, want MinorPrecaution", got)
	}
}

func TestAdviceText(t *testing.T) {
	if ConsultDoctor.Advice() != "You should consult a doctor." {
		t.Fatalf("ConsultDoctor.Advice() = %q", ConsultDoctor.Advice())
	}
	if MinorPrecaution.Advice() != "It might not be serious, but take precautions." {
		t.Fatalf("MinorPrecaution.Advice() = %q", MinorPrecaution.Advice())
	}
}
