package game

import "testing"

func TestScoreTrackerBestNeverBelowScore(t *testing.T) {
	var s ScoreTracker
	for i := 0; i < 5; i++ {
		s.Increment()
	}
	s.Reset()
	s.Increment()
	if s.Score != 1 || s.Best != 5 {
		t.Fatalf("score = %d best = %d, want 1 and 5", s.Score, s.Best)
	}
	for i := 0; i < 6; i++ {
		s.Increment()
		if s.Best < s.Score {
			t.Fatalf("best %d below score %d", s.Best, s.Score)
		}
	}
	if s.Best != 7 {
		t.Fatalf("best = %d, want 7", s.Best)
	}
}
