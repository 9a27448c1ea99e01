package game

// ScoreTracker keeps the current run's score and the session best.
type ScoreTracker struct {
	Score uint32
	Best  uint32
}

// Increment adds a point and raises Best if needed.
func (t *ScoreTracker) Increment() {
	t.Score++
	if t.Score > t.Best {
		t.Best = t.Score
	}
}

// Reset drops the current score. Best is kept.
func (t *ScoreTracker) Reset() {
	t.Score = 0
}
