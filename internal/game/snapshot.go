package game

import "time"

// NotificationView is a notification with its remaining display time.
type NotificationView struct {
	Message   string
	Remaining time.Duration
}

// Snapshot is a read-only view of the game for rendering.
type Snapshot struct {
	State        State
	Number       string
	Score        int
	Level        int
	HighScore    int
	GameOver     bool
	Cause        Cause
	Notification *NotificationView
	Primes       []int
	Remaining    time.Duration
	TimeFraction float64
	Hover        int
}

// Snapshot captures the game at now. The countdown freezes once the game ends.
func (g *Game) Snapshot(now time.Time) Snapshot {
	at := now
	if g.state == StateGameOver {
		at = g.endedAt
	}
	snap := Snapshot{
		State:        g.state,
		Number:       g.number.String(),
		Score:        g.score.Score(),
		Level:        g.progression.Level(),
		HighScore:    g.session.HighScore(),
		GameOver:     g.state == StateGameOver,
		Cause:        g.cause,
		Primes:       g.primes.Values(),
		Remaining:    g.countdown.Remaining(at),
		TimeFraction: g.countdown.Fraction(at),
		Hover:        g.hover,
	}
	if n, ok := g.progression.Notification(now); ok {
		snap.Notification = &NotificationView{Message: n.Message, Remaining: n.Remaining(now)}
	}
	return snap
}
