package game

// Event is a cue emitted by a tick for the presentation layer (sound, flash).
type Event int

// Events emitted by Tick.
const (
	EventRoundStarted Event = iota
	EventCorrect
	EventRoundClear
	EventLevelUp
	EventPrimesChanged
	EventWrong
	EventTimeout
	EventGameOver
)

var eventNames = map[Event]string{
	EventRoundStarted:  "round-started",
	EventCorrect:       "correct",
	EventRoundClear:    "round-clear",
	EventLevelUp:       "level-up",
	EventPrimesChanged: "primes-changed",
	EventWrong:         "wrong",
	EventTimeout:       "timeout",
	EventGameOver:      "game-over",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return "unknown"
}

// Cause explains why a game ended.
type Cause string

// Game over causes.
const (
	CauseNone    Cause = ""
	CauseWrong   Cause = "wrong"
	CauseTimeout Cause = "timeout"
)
