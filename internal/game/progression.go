package game

import (
	"time"

	"github.com/verte-zerg/primefactorize/internal/primes"
)

const (
	// LevelUpEvery is the score interval between level increases.
	LevelUpEvery = 5
	// NotificationWindow is how long a level-up notification stays visible.
	NotificationWindow = 3 * time.Second
	// LevelUpMessage is the notification text shown on level-up.
	LevelUpMessage = "Level UP!"
)

// Notification is a transient message that disappears at ExpiresAt.
type Notification struct {
	ExpiresAt time.Time
	Message   string
}

// Active reports whether the notification is still visible at now.
func (n Notification) Active(now time.Time) bool {
	return now.Before(n.ExpiresAt)
}

// Remaining returns the visible time left, never negative.
func (n Notification) Remaining(now time.Time) time.Duration {
	left := n.ExpiresAt.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Progression tracks the level and the level-up notification.
type Progression struct {
	level        int
	notification *Notification
}

// NewProgression starts at level 1 without a notification.
func NewProgression() Progression {
	return Progression{level: 1}
}

// Level returns the current level.
func (p Progression) Level() int {
	return p.level
}

// LevelUp describes the outcome of a level increase.
type LevelUp struct {
	Level    int
	Unlocked []int
}

// OnRoundComplete advances the level when score is a positive multiple of
// LevelUpEvery, unlocking primes in set. It returns nil when the level is
// unchanged.
func (p *Progression) OnRoundComplete(score int, now time.Time, set *primes.Set) *LevelUp {
	if score <= 0 || score%LevelUpEvery != 0 {
		return nil
	}
	p.level++
	p.notification = &Notification{
		ExpiresAt: now.Add(NotificationWindow),
		Message:   LevelUpMessage,
	}
	return &LevelUp{Level: p.level, Unlocked: set.UnlockFor(p.level)}
}

// Notification returns the active notification, clearing it once expired.
func (p *Progression) Notification(now time.Time) (Notification, bool) {
	if p.notification == nil {
		return Notification{}, false
	}
	if !p.notification.Active(now) {
		p.notification = nil
		return Notification{}, false
	}
	return *p.notification, true
}
