package main

import (
	"bytes"
	"math/big"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/primefactorize/internal/config"
	"github.com/verte-zerg/primefactorize/internal/model"
)

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(model.Config{FPS: 60}); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	for _, fps := range []int{0, -1, maxFPS + 1} {
		if err := validateConfig(model.Config{FPS: fps}); err == nil {
			t.Fatalf("expected error for fps %d", fps)
		}
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var cfg config.FileConfig
	if _, err := toml.Decode(defaultConfigTemplate(), &cfg); err != nil {
		t.Fatalf("template does not decode: %v", err)
	}
	if cfg.Game.FPS != nil {
		t.Fatalf("expected template values commented out")
	}
}

func TestRollPrintsFactorization(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"roll", "--level", "3", "--seed", "9"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("roll: %v", err)
	}
	line := strings.TrimSpace(out.String())
	lhs, rhs, ok := strings.Cut(line, " = ")
	if !ok {
		t.Fatalf("unexpected output %q", line)
	}
	factors := strings.Split(rhs, " × ")
	if len(factors) != 4 {
		t.Fatalf("expected 4 factors at level 3, got %q", rhs)
	}
	product := big.NewInt(1)
	for _, f := range factors {
		v, err := strconv.Atoi(f)
		if err != nil {
			t.Fatalf("bad factor %q", f)
		}
		product.Mul(product, big.NewInt(int64(v)))
	}
	if product.String() != lhs {
		t.Fatalf("product %s != %s", product, lhs)
	}
}

func TestRollRejectsBadLevel(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"roll", "--level", "0"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for level 0")
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PRIMEFACTORIZE_FPS", "30")
	t.Setenv("PRIMEFACTORIZE_SUMMARY", "false")
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--fps", "90"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if cfg.FPS != 90 {
		t.Fatalf("expected flag to win, got fps %d", cfg.FPS)
	}
	if cfg.Summary {
		t.Fatalf("expected env to disable summary")
	}
	if filepath.Base(config.DefaultConfigPath()) != "config.toml" {
		t.Fatalf("unexpected config path")
	}
}
