// Package main provides the CLI entrypoint for primefactorize.
package main

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/primefactorize/internal/app"
	"github.com/verte-zerg/primefactorize/internal/config"
	"github.com/verte-zerg/primefactorize/internal/game"
	"github.com/verte-zerg/primefactorize/internal/generator"
	"github.com/verte-zerg/primefactorize/internal/model"
	"github.com/verte-zerg/primefactorize/internal/primes"
	"github.com/verte-zerg/primefactorize/internal/stats"
	"github.com/verte-zerg/primefactorize/internal/store"
	"github.com/verte-zerg/primefactorize/internal/tui"
)

const (
	defaultFPS       = 60
	defaultMouse     = true
	defaultAltScreen = true
	defaultSummary   = true
	maxFPS           = 240
	summaryRuns      = 20
)

var (
	playSeed      int64
	playFPS       int
	playMouse     bool
	playAltScreen bool
	playSummary   bool

	rollLevel int
	rollSeed  int64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "primefactorize",
		Short:         "Timed prime factorization game",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().Int64Var(&playSeed, "seed", 0, "random seed for reproducible rounds (0: random)")
	rootCmd.Flags().IntVar(&playFPS, "fps", defaultFPS, "frames per second")
	rootCmd.Flags().BoolVar(&playMouse, "mouse", defaultMouse, "enable mouse controls")
	rootCmd.Flags().BoolVar(&playAltScreen, "alt-screen", defaultAltScreen, "use the alternate screen buffer")
	rootCmd.Flags().BoolVar(&playSummary, "summary", defaultSummary, "print a session summary on exit")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newRollCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	ledger, err := store.OpenMemory()
	if err != nil {
		return fmt.Errorf("failed to open run ledger: %w", err)
	}
	defer func() {
		if cerr := ledger.Close(); cerr != nil {
			logErrf("failed to close run ledger: %v\n", cerr)
		}
	}()

	seed := cfg.Seed
	if seed == 0 {
		seed, err = newSeed()
		if err != nil {
			return err
		}
	}

	a := app.New(game.NewSession(), generator.NewWithSeed(seed), ledger)
	opts := []tea.ProgramOption{}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	program := tea.NewProgram(tui.NewModel(cfg, a), opts...)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if !cfg.Summary {
		return nil
	}
	report, err := stats.BuildReport(context.Background(), ledger, summaryRuns)
	if err != nil {
		return fmt.Errorf("failed to build summary: %w", err)
	}
	return stats.RenderSummary(cmd.OutOrStdout(), report.Summary, report.Runs, stats.TerminalWidth())
}

// resolveConfig layers changed flags over environment over config file.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	envCfg, err := config.LoadEnv()
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load environment: %w", err)
	}
	merged := config.Merge(fileCfg.Game, envCfg)

	applyConfig(cmd, "seed", &playSeed, merged.Seed)
	applyConfig(cmd, "fps", &playFPS, merged.FPS)
	applyConfig(cmd, "mouse", &playMouse, merged.Mouse)
	applyConfig(cmd, "alt-screen", &playAltScreen, merged.AltScreen)
	applyConfig(cmd, "summary", &playSummary, merged.Summary)

	return model.Config{
		Seed:      playSeed,
		FPS:       playFPS,
		Mouse:     playMouse,
		AltScreen: playAltScreen,
		Summary:   playSummary,
	}, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newRollCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roll",
		Short: "Print a generated number and its factorization",
		Args:  cobra.NoArgs,
		RunE:  runRollCmd,
	}
	cmd.Flags().IntVar(&rollLevel, "level", 1, "level to generate for")
	cmd.Flags().Int64Var(&rollSeed, "seed", 0, "random seed (0: random)")
	return cmd
}

func runRollCmd(cmd *cobra.Command, _ []string) error {
	if rollLevel < 1 {
		return fmt.Errorf("--level must be >= 1")
	}
	seed := rollSeed
	if seed == 0 {
		var err error
		seed, err = newSeed()
		if err != nil {
			return err
		}
	}
	set := primes.NewSet()
	for level := 1; level <= rollLevel; level++ {
		set.UnlockFor(level)
	}
	number, factors := generator.NewWithSeed(seed).Generate(rollLevel, set.Values())
	sort.Ints(factors)
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = fmt.Sprintf("%d", f)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", number, strings.Join(parts, " × ")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

func applyConfig[T any](cmd *cobra.Command, name string, target, value *T) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# primefactorize configuration
# Uncomment a value to enable it. Environment variables (PRIMEFACTORIZE_*)
# override config values; CLI flags override both.

[game]
# seed = 0                # Random seed, 0 picks a fresh one
# fps = %d                # Frames per second
# mouse = %t            # Enable mouse controls
# alt-screen = %t       # Use the alternate screen buffer
# summary = %t          # Print a session summary on exit
`,
		defaultFPS,
		defaultMouse,
		defaultAltScreen,
		defaultSummary,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.FPS <= 0 || cfg.FPS > maxFPS {
		return fmt.Errorf("--fps must be between 1 and %d", maxFPS)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
