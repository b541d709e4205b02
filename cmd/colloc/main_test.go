package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/colloc/internal/collocation"
	"github.com/san-kum/colloc/internal/config"
)

func testCommand() *cobra.Command {
	preset, configFile = "", ""
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&distribution, "dist", config.DefaultDistribution, "")
	cmd.Flags().StringVar(&precision, "precision", config.DefaultPrecision, "")
	cmd.Flags().StringVar(&function, "func", config.DefaultFunction, "")
	cmd.Flags().IntVar(&digits, "digits", config.DefaultDigits, "")
	return cmd
}

func TestResolveConfig_Defaults(t *testing.T) {
	cmd := testCommand()
	cfg, err := resolveConfig(cmd, []string{"7"})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Size != 7 || cfg.Distribution != config.DefaultDistribution {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestResolveConfig_PresetThenFlags(t *testing.T) {
	cmd := testCommand()
	if err := cmd.Flags().Parse([]string{"--dist", "uniform"}); err != nil {
		t.Fatal(err)
	}
	preset = "trajectory"
	defer func() { preset = "" }()

	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Distribution != "uniform" {
		t.Errorf("flag should override preset, got %s", cfg.Distribution)
	}
	if cfg.Function != "exp" || cfg.Size != 10 {
		t.Errorf("preset values lost: %+v", cfg)
	}
}

func TestResolveConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("size: 9\ndistribution: legendre\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := testCommand()
	configFile = path
	defer func() { configFile = "" }()

	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Size != 9 || cfg.Distribution != "legendre" {
		t.Errorf("config file ignored: %+v", cfg)
	}
}

func TestResolveConfig_Errors(t *testing.T) {
	if _, err := resolveConfig(testCommand(), []string{"abc"}); err == nil {
		t.Error("expected error for non-numeric size")
	}
	if _, err := resolveConfig(testCommand(), []string{"0"}); err == nil {
		t.Error("expected error for zero size")
	}

	cmd := testCommand()
	preset = "missing"
	defer func() { preset = "" }()
	if _, err := resolveConfig(cmd, nil); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestBuildOperator(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Size = 3

	op, err := buildOperator(cfg)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if op.rows[0][0] != -3 || op.rows[2][2] != 3 {
		t.Errorf("unexpected matrix: %v", op.rows)
	}

	cfg.Precision = "float32"
	op, err = buildOperator(cfg)
	if err != nil {
		t.Fatalf("float32 build failed: %v", err)
	}
	if op.doc.Precision != "float32" {
		t.Errorf("expected float32 document, got %s", op.doc.Precision)
	}

	if _, err := buildDocument[float64](0, collocation.Uniform{}); err == nil {
		t.Error("expected error for zero size")
	}
}
