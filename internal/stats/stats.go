// Package stats contains run statistics and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/primefactorize/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	terminalWidthBackup = 80
	summaryLabelWidth   = 16
)

// RunMetrics computes rounds per minute and mean seconds per round.
func RunMetrics(score int, durationMs int64) (roundsPerMin, secsPerRound float64) {
	if durationMs <= 0 || score <= 0 {
		return 0, 0
	}
	minutes := float64(durationMs) / 60000.0
	roundsPerMin = float64(score) / minutes
	secsPerRound = float64(durationMs) / 1000.0 / float64(score)
	return roundsPerMin, secsPerRound
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(min(i+1, window))
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// ScoreTrend returns a sparkline of run scores fitted to width columns,
// keeping the most recent runs.
func ScoreTrend(runs []model.RunAggregate, window, width int) string {
	if len(runs) == 0 || width <= 0 {
		return ""
	}
	if len(runs) > width {
		runs = runs[len(runs)-width:]
	}
	scores := make([]float64, len(runs))
	for i, r := range runs {
		scores[i] = float64(r.Score)
	}
	return Sparkline(MovingAverage(scores, window))
}

// TerminalWidth returns the stdout width or a fallback when not a terminal.
func TerminalWidth() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// RenderSummary prints the session summary and a per-run table.
func RenderSummary(w io.Writer, summary model.SessionSummary, runs []model.RunAggregate, width int) error {
	if summary.Runs == 0 {
		_, err := fmt.Fprintln(w, "No games played.")
		return err
	}
	lines := []string{
		"Session",
		fmt.Sprintf("Games: %d", summary.Runs),
		fmt.Sprintf("High score: %d", summary.BestScore),
		fmt.Sprintf("Best level: %d", summary.BestLevel),
		fmt.Sprintf("Avg score: %.2f", summary.AvgScore),
		fmt.Sprintf("Endings: %d wrong, %d timeout", summary.Wrong, summary.Timeouts),
	}
	if trend := ScoreTrend(runs, 3, width-summaryLabelWidth); trend != "" && len(runs) > 1 {
		lines = append(lines, fmt.Sprintf("Score trend: [%s]", trend))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return RenderRunTable(w, runs)
}

// RenderRunTable prints one row per run.
func RenderRunTable(w io.Writer, runs []model.RunAggregate) error {
	if len(runs) == 0 {
		return nil
	}
	headers := []string{"#", "Score", "Level", "Divisions", "Rounds/min", "Sec/round", "Ended by"}
	rows := make([][]string, 0, len(runs))
	for i, r := range runs {
		rpm, spr := RunMetrics(r.Score, r.DurationMs)
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Level),
			fmt.Sprintf("%d", r.Divisions),
			fmt.Sprintf("%.1f", rpm),
			fmt.Sprintf("%.1f", spr),
			r.Cause,
		})
	}
	rightAlign := map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
