package game

import (
	"math/big"
	"testing"
	"time"

	"github.com/verte-zerg/primefactorize/internal/generator"
)

var base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestGame(t *testing.T, session *Session) *Game {
	t.Helper()
	if session == nil {
		session = NewSession()
	}
	return New(session, generator.NewWithSeed(1), base)
}

func completeRounds(g *Game, n int, now time.Time) {
	for i := 0; i < n; i++ {
		g.number = big.NewInt(1)
		g.Tick(Frame{Now: now})
	}
}

func hasEvent(events []Event, want Event) bool {
	for _, e := range events {
		if e == want {
			return true
		}
	}
	return false
}

func TestNewGameInitialState(t *testing.T) {
	g := newTestGame(t, nil)
	if g.State() != StatePlaying {
		t.Fatalf("expected playing, got %s", g.State())
	}
	if g.Score() != 0 || g.Level() != 1 {
		t.Fatalf("expected score 0 level 1, got %d/%d", g.Score(), g.Level())
	}
	if g.Number().Cmp(big.NewInt(1)) <= 0 {
		t.Fatalf("expected generated number > 1, got %s", g.Number())
	}
	if len(g.Primes()) != 4 {
		t.Fatalf("expected 4 primes, got %v", g.Primes())
	}
}

func TestScenarioDivideToCompletion(t *testing.T) {
	g := newTestGame(t, nil)
	g.number = big.NewInt(6)
	count := len(g.Primes())

	events := g.Tick(Clicks(base.Add(time.Second), count, 0))
	if !hasEvent(events, EventCorrect) {
		t.Fatalf("expected correct cue, got %v", events)
	}
	if g.Number().Cmp(big.NewInt(3)) != 0 {
		t.Fatalf("expected 3 after dividing by 2, got %s", g.Number())
	}

	g.Tick(Clicks(base.Add(2*time.Second), count, 1))
	if g.Number().Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("expected 1 after dividing by 3, got %s", g.Number())
	}
	if g.Score() != 0 {
		t.Fatalf("round completes on the next tick, score was %d", g.Score())
	}

	events = g.Tick(Frame{Now: base.Add(3 * time.Second)})
	if !hasEvent(events, EventRoundClear) || !hasEvent(events, EventRoundStarted) {
		t.Fatalf("expected round clear and start cues, got %v", events)
	}
	if g.Score() != 1 {
		t.Fatalf("expected score 1, got %d", g.Score())
	}
	if g.State() != StatePlaying {
		t.Fatalf("expected next round playing, got %s", g.State())
	}
	if g.Number().Cmp(big.NewInt(1)) <= 0 {
		t.Fatalf("expected a fresh number, got %s", g.Number())
	}
}

func TestScenarioWrongDivisorEndsGame(t *testing.T) {
	g := newTestGame(t, nil)
	g.number = big.NewInt(6)

	events := g.Tick(Clicks(base.Add(time.Second), len(g.Primes()), 2))
	if !hasEvent(events, EventWrong) || !hasEvent(events, EventGameOver) {
		t.Fatalf("expected wrong and game over cues, got %v", events)
	}
	if !g.Over() || g.Cause() != CauseWrong {
		t.Fatalf("expected game over by wrong divisor, got %s/%q", g.State(), g.Cause())
	}
	if g.Number().Cmp(big.NewInt(6)) != 0 {
		t.Fatalf("expected number untouched, got %s", g.Number())
	}
}

func TestScenarioTimeoutEndsGame(t *testing.T) {
	g := newTestGame(t, nil)
	g.number = big.NewInt(6)

	if events := g.Tick(Frame{Now: base.Add(TimeLimit)}); len(events) != 0 {
		t.Fatalf("expected no expiry at exactly the limit, got %v", events)
	}
	events := g.Tick(Frame{Now: base.Add(TimeLimit + time.Millisecond)})
	if !hasEvent(events, EventTimeout) {
		t.Fatalf("expected timeout cue, got %v", events)
	}
	if !g.Over() || g.Cause() != CauseTimeout {
		t.Fatalf("expected game over by timeout, got %s/%q", g.State(), g.Cause())
	}
}

func TestTimeoutIgnoresPendingClick(t *testing.T) {
	g := newTestGame(t, nil)
	g.number = big.NewInt(6)
	g.Tick(Clicks(base.Add(TimeLimit+time.Second), len(g.Primes()), 0))
	if g.Cause() != CauseTimeout {
		t.Fatalf("expected timeout before input, got %q", g.Cause())
	}
	if g.Number().Cmp(big.NewInt(6)) != 0 {
		t.Fatalf("expected no division after timeout, got %s", g.Number())
	}
}

func TestCompletedNumberBeatsTimeout(t *testing.T) {
	g := newTestGame(t, nil)
	g.number = big.NewInt(1)
	late := base.Add(TimeLimit + 5*time.Second)
	g.Tick(Clicks(late, len(g.Primes()), 2))
	if g.Over() {
		t.Fatalf("expected round completion to take priority, got %q", g.Cause())
	}
	if g.Score() != 1 {
		t.Fatalf("expected score 1, got %d", g.Score())
	}
	if g.countdown.Expired(late) {
		t.Fatalf("expected countdown reset at round start")
	}
}

func TestOneDivisionPerTick(t *testing.T) {
	g := newTestGame(t, nil)
	g.number = big.NewInt(6)
	f := Frame{Now: base.Add(time.Second), Clicked: []bool{true, true, false, false}}
	g.Tick(f)
	if g.Number().Cmp(big.NewInt(3)) != 0 {
		t.Fatalf("expected only the first click honored, got %s", g.Number())
	}
}

func TestClicksBeyondPrimeSetIgnored(t *testing.T) {
	g := newTestGame(t, nil)
	g.number = big.NewInt(6)
	f := Frame{Now: base.Add(time.Second), Clicked: []bool{false, false, false, false, true}}
	if events := g.Tick(f); len(events) != 0 {
		t.Fatalf("expected out of range click ignored, got %v", events)
	}
	if g.Over() {
		t.Fatalf("expected game to continue")
	}
}

func TestGameOverIsTerminal(t *testing.T) {
	g := newTestGame(t, nil)
	g.number = big.NewInt(6)
	g.Tick(Clicks(base.Add(time.Second), len(g.Primes()), 3))
	if !g.Over() {
		t.Fatalf("expected game over")
	}
	g.number = big.NewInt(1)
	if events := g.Tick(Frame{Now: base.Add(2 * time.Second)}); events != nil {
		t.Fatalf("expected no cues after game over, got %v", events)
	}
	if g.Score() != 0 || g.State() != StateGameOver {
		t.Fatalf("expected frozen state, got score %d state %s", g.Score(), g.State())
	}
}

func TestScenarioLevelUpNotification(t *testing.T) {
	g := newTestGame(t, nil)
	now := base.Add(10 * time.Second)
	completeRounds(g, 4, now)
	if g.Level() != 1 {
		t.Fatalf("expected level 1 after 4 rounds, got %d", g.Level())
	}
	g.number = big.NewInt(1)
	events := g.Tick(Frame{Now: now})
	if !hasEvent(events, EventLevelUp) {
		t.Fatalf("expected level up cue, got %v", events)
	}
	if g.Score() != 5 || g.Level() != 2 {
		t.Fatalf("expected score 5 level 2, got %d/%d", g.Score(), g.Level())
	}

	snap := g.Snapshot(now.Add(time.Second))
	if snap.Notification == nil {
		t.Fatalf("expected active notification")
	}
	if snap.Notification.Message != LevelUpMessage {
		t.Fatalf("unexpected message %q", snap.Notification.Message)
	}
	if snap.Notification.Remaining != 2*time.Second {
		t.Fatalf("expected 2s remaining, got %s", snap.Notification.Remaining)
	}
	if snap := g.Snapshot(now.Add(NotificationWindow)); snap.Notification != nil {
		t.Fatalf("expected notification cleared after window")
	}
}

func TestLevelIncrementsOncePerMultipleOfFive(t *testing.T) {
	g := newTestGame(t, nil)
	for round := 1; round <= 40; round++ {
		completeRounds(g, 1, base)
		want := 1 + round/LevelUpEvery
		if g.Level() != want {
			t.Fatalf("round %d: expected level %d, got %d", round, want, g.Level())
		}
	}
}

func TestScenarioPrimeUnlocks(t *testing.T) {
	g := newTestGame(t, nil)
	completeRounds(g, 19, base)
	if len(g.Primes()) != 4 {
		t.Fatalf("expected 4 primes below level 5, got %v", g.Primes())
	}
	g.number = big.NewInt(1)
	events := g.Tick(Frame{Now: base})
	if g.Level() != 5 {
		t.Fatalf("expected level 5, got %d", g.Level())
	}
	if !hasEvent(events, EventPrimesChanged) {
		t.Fatalf("expected primes changed cue, got %v", events)
	}
	got := g.Primes()
	if len(got) != 5 || got[4] != 11 {
		t.Fatalf("expected 11 appended, got %v", got)
	}

	completeRounds(g, 10, base)
	got = g.Primes()
	if g.Level() != 7 || len(got) != 6 || got[5] != 13 {
		t.Fatalf("expected 13 at level 7, got level %d primes %v", g.Level(), got)
	}

	completeRounds(g, 20, base)
	if len(g.Primes()) != 6 {
		t.Fatalf("expected no further unlocks, got %v", g.Primes())
	}
}

func TestUnlockedPrimeIsSelectable(t *testing.T) {
	g := newTestGame(t, nil)
	completeRounds(g, 20, base)
	g.number = big.NewInt(22)
	g.Tick(Clicks(base.Add(time.Second), len(g.Primes()), 4))
	if g.Number().Cmp(big.NewInt(2)) != 0 {
		t.Fatalf("expected 22/11 = 2, got %s", g.Number())
	}
}

func TestHighScoreCarriesAcrossGames(t *testing.T) {
	session := NewSession()
	first := newTestGame(t, session)
	completeRounds(first, 3, base)
	if session.HighScore() != 3 {
		t.Fatalf("expected high score 3, got %d", session.HighScore())
	}

	second := newTestGame(t, session)
	completeRounds(second, 1, base)
	if session.HighScore() != 3 {
		t.Fatalf("expected high score to stay 3, got %d", session.HighScore())
	}
	if second.Score() != 1 || second.Level() != 1 {
		t.Fatalf("expected new game to start fresh, got %d/%d", second.Score(), second.Level())
	}
	completeRounds(second, 3, base)
	if session.HighScore() != 4 {
		t.Fatalf("expected high score 4, got %d", session.HighScore())
	}
}

func TestSnapshotFreezesCountdownAtGameOver(t *testing.T) {
	g := newTestGame(t, nil)
	g.number = big.NewInt(6)
	g.Tick(Clicks(base.Add(5*time.Second), len(g.Primes()), 2))
	snap := g.Snapshot(base.Add(time.Minute))
	if !snap.GameOver || snap.Cause != CauseWrong {
		t.Fatalf("expected game over snapshot, got %+v", snap)
	}
	if snap.Remaining != 10*time.Second {
		t.Fatalf("expected 10s frozen remaining, got %s", snap.Remaining)
	}
	if snap.Number != "6" {
		t.Fatalf("expected number 6, got %s", snap.Number)
	}
}

func TestSnapshotTracksHover(t *testing.T) {
	g := newTestGame(t, nil)
	g.Tick(Frame{Now: base, Hover: []bool{false, false, true, false}})
	if snap := g.Snapshot(base); snap.Hover != 2 {
		t.Fatalf("expected hover 2, got %d", snap.Hover)
	}
}

func TestResultSummarizesRun(t *testing.T) {
	g := newTestGame(t, nil)
	completeRounds(g, 2, base)
	g.number = big.NewInt(6)
	g.Tick(Clicks(base.Add(time.Second), len(g.Primes()), 0))
	g.Tick(Frame{Now: base.Add(TimeLimit + 2*time.Second)})
	res := g.Result()
	if res.Score != 2 || res.Divisions != 1 || res.Cause != string(CauseTimeout) {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.DurationMs != (TimeLimit + 2*time.Second).Milliseconds() {
		t.Fatalf("unexpected duration %d", res.DurationMs)
	}
}
