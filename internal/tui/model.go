// Package tui provides the Bubble Tea game interface.
package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/primefactorize/internal/app"
	"github.com/verte-zerg/primefactorize/internal/game"
	"github.com/verte-zerg/primefactorize/internal/model"
)

const cueDuration = 300 * time.Millisecond

type tickMsg time.Time

func tickCmd(fps int) tea.Cmd {
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model implements the Bubble Tea game UI. Input is buffered between ticks
// and handed to the app as one frame.
type Model struct {
	config model.Config
	app    *app.App
	keys   keyMap
	help   help.Model
	bar    progress.Model

	width  int
	height int
	now    time.Time

	mouseX, mouseY int
	primeCount     int
	controls       []rect
	hover          []bool
	clicked        []bool
	action         app.Action

	cue      game.Event
	cueUntil time.Time
}

var (
	titleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	subtitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	numberStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	scoreStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	noticeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	gameOverStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	correctCueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	wrongCueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	buttonStyle     = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	hoverButtonStyle = buttonStyle.BorderForeground(lipgloss.Color("#C89A3A"))
	controlStyle     = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F0F0F0")).
				Bold(true).
				Align(lipgloss.Center, lipgloss.Center).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#8C8C8C"))
	hoverControlStyle = controlStyle.BorderForeground(lipgloss.Color("#C89A3A"))
)

// NewModel constructs a game TUI model around a.
func NewModel(cfg model.Config, a *app.App) *Model {
	bar := progress.New(progress.WithSolidFill("#FF4D4F"), progress.WithoutPercentage())
	m := &Model{
		config: cfg,
		app:    a,
		keys:   newKeyMap(),
		help:   help.New(),
		bar:    bar,
		now:    time.Now(),
		mouseX: -1,
		mouseY: -1,
	}
	m.syncControls()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tickCmd(m.config.FPS)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = msg.Width
		m.help.Width = msg.Width
		m.primeCount = -1
		m.syncControls()
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tickMsg:
		return m, m.handleTick(time.Time(msg))
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}
	switch m.app.Screen() {
	case app.ScreenTitle:
		switch {
		case key.Matches(msg, m.keys.Start):
			m.action = app.ActionStart
		case key.Matches(msg, m.keys.Exit):
			m.action = app.ActionExit
		}
	case app.ScreenGame:
		if m.gameOver() {
			if key.Matches(msg, m.keys.Back) {
				m.action = app.ActionBack
			}
			return nil
		}
		if key.Matches(msg, m.keys.Divide) {
			idx, err := strconv.Atoi(msg.String())
			if err == nil {
				m.click(idx - 1)
			}
		}
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	m.mouseX, m.mouseY = msg.X, msg.Y
	for i := range m.hover {
		m.hover[i] = i < len(m.controls) && m.controls[i].contains(msg.X, msg.Y)
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	switch m.app.Screen() {
	case app.ScreenTitle:
		switch {
		case startButtonRect(m.width, m.height).contains(msg.X, msg.Y):
			m.action = app.ActionStart
		case exitButtonRect(m.width, m.height).contains(msg.X, msg.Y):
			m.action = app.ActionExit
		}
	case app.ScreenGame:
		if m.gameOver() {
			if backButtonRect(m.width, m.height).contains(msg.X, msg.Y) {
				m.action = app.ActionBack
			}
			return
		}
		for i, r := range m.controls {
			if r.contains(msg.X, msg.Y) {
				m.click(i)
				return
			}
		}
	}
}

func (m *Model) click(idx int) {
	if idx >= 0 && idx < len(m.clicked) {
		m.clicked[idx] = true
	}
}

func (m *Model) handleTick(now time.Time) tea.Cmd {
	in := app.Input{
		Frame: game.Frame{
			Now:     now,
			Hover:   m.hover,
			Clicked: m.clicked,
		},
		Action: m.action,
	}
	events, err := m.app.Update(in)
	if err != nil {
		logErrf("%v\n", err)
	}
	m.now = now
	m.action = app.ActionNone
	m.clicked = make([]bool, len(m.clicked))
	m.applyCues(events, now)
	if m.app.Quit() {
		return tea.Quit
	}
	m.syncControls()
	return tickCmd(m.config.FPS)
}

func (m *Model) applyCues(events []game.Event, now time.Time) {
	for _, e := range events {
		switch e {
		case game.EventCorrect, game.EventRoundClear, game.EventWrong, game.EventTimeout, game.EventLevelUp:
			m.cue = e
			m.cueUntil = now.Add(cueDuration)
		}
	}
}

// syncControls rebuilds control rectangles whenever the number of primes or
// the window changes, keeping rect i bound to prime i.
func (m *Model) syncControls() {
	count := 0
	if snap, ok := m.app.Snapshot(m.now); ok {
		count = len(snap.Primes)
	}
	if count == m.primeCount {
		return
	}
	m.primeCount = count
	m.controls = controlRects(m.width, m.height, count)
	m.hover = make([]bool, count)
	m.clicked = make([]bool, count)
}

func (m *Model) gameOver() bool {
	snap, ok := m.app.Snapshot(m.now)
	return ok && snap.GameOver
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return m.plainView()
	}
	snap, ok := m.app.Snapshot(m.now)
	switch {
	case !ok:
		return m.titleView()
	case snap.GameOver:
		return m.gameOverView(snap)
	default:
		return m.playView(snap)
	}
}

func (m *Model) plainView() string {
	snap, ok := m.app.Snapshot(m.now)
	if !ok {
		return fmt.Sprintf("Prime Factorize\nHigh score: %d\n", m.app.HighScore())
	}
	if snap.GameOver {
		return fmt.Sprintf("GAME OVER!\nScore: %d\n", snap.Score)
	}
	return fmt.Sprintf("%s\nScore: %d\n", snap.Number, snap.Score)
}

func (m *Model) titleView() string {
	c := newCanvas(m.width, m.height)
	top := titleTop(m.height)
	c.center(top, titleStyle.Render("Prime Factorize"))
	c.center(top+2, subtitleStyle.Render("Divide the number down to 1 before time runs out"))
	start := startButtonRect(m.width, m.height)
	c.put(start.x, start.y, m.renderButton("Start", start))
	exit := exitButtonRect(m.width, m.height)
	c.put(exit.x, exit.y, m.renderButton("Exit", exit))
	c.center(top+12, scoreStyle.Render(fmt.Sprintf("High score: %d", m.app.HighScore())))
	c.center(m.height-1, m.help.ShortHelpView(m.keys.titleHelp()))
	return c.String()
}

func (m *Model) playView(snap game.Snapshot) string {
	c := newCanvas(m.width, m.height)
	c.put(0, 0, m.bar.ViewAs(snap.TimeFraction))
	c.put(0, 1, m.statusLine(snap))

	bodyHeight := m.height - controlHeight
	c.center(max(2, bodyHeight/2-1), numberStyle.Render(snap.Number))
	if cue := m.renderCue(); cue != "" {
		c.center(max(3, bodyHeight/2+1), cue)
	}
	c.put(0, bodyHeight, m.renderControls(snap))
	return c.String()
}

func (m *Model) statusLine(snap game.Snapshot) string {
	left := ""
	if snap.Notification != nil {
		left = noticeStyle.Render(snap.Notification.Message)
	}
	right := scoreStyle.Render(fmt.Sprintf("Level %d  Score %d  Best %d ", snap.Level, snap.Score, snap.HighScore))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) renderCue() string {
	if !m.now.Before(m.cueUntil) {
		return ""
	}
	switch m.cue {
	case game.EventCorrect:
		return correctCueStyle.Render("correct")
	case game.EventRoundClear:
		return correctCueStyle.Render("clear!")
	case game.EventLevelUp:
		return noticeStyle.Render("level up")
	default:
		return ""
	}
}

func (m *Model) renderControls(snap game.Snapshot) string {
	if len(m.controls) != len(snap.Primes) {
		return ""
	}
	boxes := make([]string, 0, len(snap.Primes))
	for i, p := range snap.Primes {
		r := m.controls[i]
		style := controlStyle
		if i == snap.Hover {
			style = hoverControlStyle
		}
		label := runewidth.Truncate(fmt.Sprintf("÷%d", p), max(0, r.w-2), "")
		boxes = append(boxes, style.Width(max(0, r.w-2)).Height(max(0, r.h-2)).Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m *Model) gameOverView(snap game.Snapshot) string {
	c := newCanvas(m.width, m.height)
	mid := m.height / 2
	c.center(max(0, mid-3), gameOverStyle.Render("GAME OVER!"))
	c.center(max(1, mid-1), wrongCueStyle.Render(causeText(snap.Cause)))
	c.center(max(2, mid+1), scoreStyle.Render(fmt.Sprintf("Score: %d", snap.Score)))
	c.center(max(3, mid+2), footerStyle.Render(fmt.Sprintf("High score: %d", snap.HighScore)))
	back := backButtonRect(m.width, m.height)
	c.put(back.x, back.y, m.renderButton("Back", back))
	c.put(0, m.height-1, m.help.ShortHelpView(m.keys.gameOverHelp()))
	return c.String()
}

func (m *Model) renderButton(label string, r rect) string {
	style := buttonStyle
	if r.contains(m.mouseX, m.mouseY) {
		style = hoverButtonStyle
	}
	return style.Width(r.w - 2).Render(label)
}

func causeText(cause game.Cause) string {
	switch cause {
	case game.CauseWrong:
		return "Wrong divisor"
	case game.CauseTimeout:
		return "Time up"
	default:
		return ""
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
