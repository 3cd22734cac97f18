// Package game implements the prime factorization round state machine.
package game

// Session holds state that outlives a single game, owned by the application
// and shared by pointer with whichever game is active.
type Session struct {
	highScore int
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// HighScore returns the best score reached in this session.
func (s *Session) HighScore() int {
	return s.highScore
}

// record applies the max-update rule. Only round completion calls it.
func (s *Session) record(score int) {
	if score > s.highScore {
		s.highScore = score
	}
}
