package game

import (
	"math/big"
	"time"

	"github.com/verte-zerg/primefactorize/internal/generator"
	"github.com/verte-zerg/primefactorize/internal/model"
	"github.com/verte-zerg/primefactorize/internal/primes"
)

// State is the round lifecycle state.
type State int

// Round states. StateRoundComplete only lasts for the tick that sets up the
// next round.
const (
	StatePlaying State = iota
	StateRoundComplete
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateRoundComplete:
		return "round-complete"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Frame is the input sampled by the presentation layer for one tick. Hover
// and Clicked are indexed like the active primes.
type Frame struct {
	Now     time.Time
	Hover   []bool
	Clicked []bool
}

// Clicks builds a frame clicking the control at index.
func Clicks(now time.Time, count, index int) Frame {
	f := Frame{Now: now, Clicked: make([]bool, count)}
	if index >= 0 && index < count {
		f.Clicked[index] = true
	}
	return f
}

var one = big.NewInt(1)

// Game is one play-through from the first round until game over.
type Game struct {
	session     *Session
	gen         *generator.Generator
	primes      *primes.Set
	countdown   Countdown
	progression Progression
	score       ScoreTracker

	number *big.Int
	state  State
	cause  Cause
	hover  int

	divisions int
	startedAt time.Time
	endedAt   time.Time
}

// New starts a game at now and generates its first round.
func New(session *Session, gen *generator.Generator, now time.Time) *Game {
	g := &Game{
		session:     session,
		gen:         gen,
		primes:      primes.NewSet(),
		countdown:   NewCountdown(TimeLimit, now),
		progression: NewProgression(),
		score:       NewScoreTracker(session),
		hover:       -1,
		startedAt:   now,
	}
	g.startRound(now)
	return g
}

// Tick advances the game by one frame and returns the cues it produced.
func (g *Game) Tick(f Frame) []Event {
	if g.state == StateGameOver {
		return nil
	}
	g.hover = firstSet(f.Hover, g.primes.Len())

	// A finished number wins over a timeout and over further input.
	if g.number.Cmp(one) == 0 {
		return g.completeRound(f.Now)
	}
	if g.countdown.Expired(f.Now) {
		g.end(CauseTimeout, f.Now)
		return []Event{EventTimeout, EventGameOver}
	}
	limit := min(len(f.Clicked), g.primes.Len())
	for i := 0; i < limit; i++ {
		if !f.Clicked[i] {
			continue
		}
		next, ok := Apply(g.number, g.primes.At(i))
		if !ok {
			g.end(CauseWrong, f.Now)
			return []Event{EventWrong, EventGameOver}
		}
		g.number = next
		g.divisions++
		return []Event{EventCorrect}
	}
	return nil
}

func (g *Game) completeRound(now time.Time) []Event {
	g.state = StateRoundComplete
	events := []Event{EventRoundClear}
	score := g.score.OnRoundComplete()
	if up := g.progression.OnRoundComplete(score, now, g.primes); up != nil {
		events = append(events, EventLevelUp)
		if len(up.Unlocked) > 0 {
			events = append(events, EventPrimesChanged)
		}
	}
	g.startRound(now)
	return append(events, EventRoundStarted)
}

func (g *Game) startRound(now time.Time) {
	g.number, _ = g.gen.Generate(g.progression.Level(), g.primes.Values())
	g.countdown.Reset(now)
	g.state = StatePlaying
}

func (g *Game) end(cause Cause, now time.Time) {
	g.state = StateGameOver
	g.cause = cause
	g.endedAt = now
}

// State returns the lifecycle state.
func (g *Game) State() State {
	return g.state
}

// Over reports whether the game has ended.
func (g *Game) Over() bool {
	return g.state == StateGameOver
}

// Cause returns why the game ended, or CauseNone while playing.
func (g *Game) Cause() Cause {
	return g.cause
}

// Number returns a copy of the current target number.
func (g *Game) Number() *big.Int {
	return new(big.Int).Set(g.number)
}

// Score returns the number of completed rounds.
func (g *Game) Score() int {
	return g.score.Score()
}

// Level returns the current level.
func (g *Game) Level() int {
	return g.progression.Level()
}

// Primes returns the active primes in control order.
func (g *Game) Primes() []int {
	return g.primes.Values()
}

// Result summarizes the game for the run ledger.
func (g *Game) Result() model.RunStats {
	end := g.endedAt
	if end.IsZero() {
		end = g.startedAt
	}
	return model.RunStats{
		StartedAt:  g.startedAt,
		EndedAt:    end,
		Score:      g.score.Score(),
		Level:      g.progression.Level(),
		Divisions:  g.divisions,
		Primes:     g.primes.Len(),
		Cause:      string(g.cause),
		DurationMs: end.Sub(g.startedAt).Milliseconds(),
	}
}

func firstSet(flags []bool, limit int) int {
	for i := 0; i < len(flags) && i < limit; i++ {
		if flags[i] {
			return i
		}
	}
	return -1
}
