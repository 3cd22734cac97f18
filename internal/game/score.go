package game

// ScoreTracker counts completed rounds and feeds the session high score.
type ScoreTracker struct {
	score   int
	session *Session
}

// NewScoreTracker returns a tracker at zero bound to session.
func NewScoreTracker(session *Session) ScoreTracker {
	return ScoreTracker{session: session}
}

// Score returns the current score.
func (t ScoreTracker) Score() int {
	return t.score
}

// OnRoundComplete increments the score and updates the high score.
func (t *ScoreTracker) OnRoundComplete() int {
	t.score++
	t.session.record(t.score)
	return t.score
}
