// Package model defines shared data structures.
package model

import "time"

// Config defines game settings resolved from flags, environment and file.
type Config struct {
	Seed      int64
	FPS       int
	Mouse     bool
	AltScreen bool
	Summary   bool
}

// RunStats captures a finished game.
type RunStats struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Score      int
	Level      int
	Divisions  int
	Primes     int
	Cause      string
	DurationMs int64
}

// RunAggregate summarizes a stored run for reporting.
type RunAggregate struct {
	RunID      int64
	EndedAt    time.Time
	Score      int
	Level      int
	Divisions  int
	Cause      string
	DurationMs int64
}

// SessionSummary aggregates all runs of the current process.
type SessionSummary struct {
	Runs      int
	BestScore int
	BestLevel int
	AvgScore  float64
	Timeouts  int
	Wrong     int
}
