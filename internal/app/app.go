// Package app switches between the title and game screens and owns the
// session shared by every game.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/primefactorize/internal/game"
	"github.com/verte-zerg/primefactorize/internal/generator"
	"github.com/verte-zerg/primefactorize/internal/model"
)

// ScreenKind identifies the active screen.
type ScreenKind int

// Screens.
const (
	ScreenTitle ScreenKind = iota
	ScreenGame
)

func (k ScreenKind) String() string {
	switch k {
	case ScreenTitle:
		return "title"
	case ScreenGame:
		return "game"
	default:
		return "unknown"
	}
}

// Action is a navigation request from the presentation layer.
type Action int

// Navigation actions.
const (
	ActionNone Action = iota
	ActionStart
	ActionExit
	ActionBack
)

// Transition is what a screen asks the app to do after an update.
type Transition int

// Transitions.
const (
	Stay Transition = iota
	ToTitle
	ToGame
	Quit
)

// Input is everything sampled for one frame.
type Input struct {
	Frame  game.Frame
	Action Action
}

// Ledger records finished games.
type Ledger interface {
	RecordRun(ctx context.Context, run model.RunStats) (int64, error)
}

// App holds the active screen. Exactly one of title and play is non-nil.
type App struct {
	session *game.Session
	gen     *generator.Generator
	ledger  Ledger

	screen ScreenKind
	title  *TitleScreen
	play   *GameScreen
	quit   bool
}

// New returns an app showing the title screen. ledger may be nil.
func New(session *game.Session, gen *generator.Generator, ledger Ledger) *App {
	a := &App{session: session, gen: gen, ledger: ledger}
	a.showTitle()
	return a
}

// Screen returns the active screen.
func (a *App) Screen() ScreenKind {
	return a.screen
}

// Quit reports whether the player asked to exit.
func (a *App) Quit() bool {
	return a.quit
}

// HighScore returns the session high score.
func (a *App) HighScore() int {
	return a.session.HighScore()
}

// Snapshot returns the game view when the game screen is active.
func (a *App) Snapshot(now time.Time) (game.Snapshot, bool) {
	if a.play == nil {
		return game.Snapshot{}, false
	}
	return a.play.game.Snapshot(now), true
}

// Update dispatches the input to the active screen and applies the resulting
// transition. The error reports a ledger failure; the game keeps running.
func (a *App) Update(in Input) ([]game.Event, error) {
	var (
		tr     Transition
		events []game.Event
		err    error
	)
	switch a.screen {
	case ScreenTitle:
		tr = a.title.Update(in)
	case ScreenGame:
		tr, events, err = a.play.Update(in)
	}
	switch tr {
	case ToGame:
		a.showGame(in.Frame.Now)
		events = append(events, game.EventRoundStarted)
	case ToTitle:
		a.showTitle()
	case Quit:
		a.quit = true
	}
	return events, err
}

func (a *App) showTitle() {
	a.screen = ScreenTitle
	a.play = nil
	a.title = &TitleScreen{}
}

func (a *App) showGame(now time.Time) {
	a.screen = ScreenGame
	a.title = nil
	a.play = &GameScreen{game: game.New(a.session, a.gen, now), ledger: a.ledger}
}

// TitleScreen offers start and exit.
type TitleScreen struct{}

// Update maps navigation to transitions.
func (t *TitleScreen) Update(in Input) Transition {
	switch in.Action {
	case ActionStart:
		return ToGame
	case ActionExit:
		return Quit
	default:
		return Stay
	}
}

// GameScreen runs one game and records it once it ends.
type GameScreen struct {
	game     *game.Game
	ledger   Ledger
	recorded bool
}

// Update ticks the game. After game over only ActionBack has an effect.
func (s *GameScreen) Update(in Input) (Transition, []game.Event, error) {
	if s.game.Over() {
		if in.Action == ActionBack {
			return ToTitle, nil, nil
		}
		return Stay, nil, nil
	}
	events := s.game.Tick(in.Frame)
	if !s.game.Over() || s.recorded {
		return Stay, events, nil
	}
	s.recorded = true
	if s.ledger == nil {
		return Stay, events, nil
	}
	if _, err := s.ledger.RecordRun(context.Background(), s.game.Result()); err != nil {
		return Stay, events, fmt.Errorf("failed to record run: %w", err)
	}
	return Stay, events, nil
}
