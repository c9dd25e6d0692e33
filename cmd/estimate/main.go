// Package main is the entry point for the estimate CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lemonberrylabs/estimate/pkg/ast"
	"github.com/lemonberrylabs/estimate/pkg/parser"
	"github.com/lemonberrylabs/estimate/pkg/runtime"
	"github.com/lemonberrylabs/estimate/pkg/stdlib"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "estimate",
		Short:         "Monte Carlo estimates from uncertain quantities",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Version = version + " (commit=" + commit + ", built=" + date + ")"
	rootCmd.SetVersionTemplate("estimate version {{.Version}}\n")

	rootCmd.PersistentFlags().Int("samples", 0, "Samples per output (default 1000, env ESTIMATE_SAMPLES)")
	rootCmd.PersistentFlags().Float64("credibility", 0, "Interval credibility in percent for to() and *_range() (default 90, env ESTIMATE_CREDIBILITY)")
	rootCmd.PersistentFlags().String("format", "", "Output format: text or json (default text, env ESTIMATE_FORMAT)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "run <model.yaml|dir>...",
		Short: "Evaluate model documents and summarize their outputs",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runModels,
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "eval <formula>",
		Short: "Evaluate a single formula and summarize it",
		Args:  cobra.ExactArgs(1),
		RunE:  evalFormula,
	})
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// settings are the resolved flag and environment values. Zero values defer
// to the model document, then to the built-in defaults.
type settings struct {
	samples     int
	credibility float64
	format      string
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	var s settings

	samples, err := strconv.Atoi(envOrDefault("ESTIMATE_SAMPLES", "0"))
	if err != nil {
		return s, fmt.Errorf("invalid ESTIMATE_SAMPLES: %w", err)
	}
	s.samples = samples
	if v, _ := cmd.Flags().GetInt("samples"); v != 0 {
		s.samples = v
	}
	if s.samples < 0 || s.samples > parser.MaxSamples {
		return s, fmt.Errorf("samples must be in [1, %d], got %d", parser.MaxSamples, s.samples)
	}

	credibility, err := strconv.ParseFloat(envOrDefault("ESTIMATE_CREDIBILITY", "0"), 64)
	if err != nil {
		return s, fmt.Errorf("invalid ESTIMATE_CREDIBILITY: %w", err)
	}
	s.credibility = credibility
	if v, _ := cmd.Flags().GetFloat64("credibility"); v != 0 {
		s.credibility = v
	}
	if s.credibility != 0 && !(s.credibility > 0 && s.credibility < 100) {
		return s, fmt.Errorf("credibility must lie strictly between 0 and 100, got %v", s.credibility)
	}

	s.format = envOrDefault("ESTIMATE_FORMAT", "text")
	if v, _ := cmd.Flags().GetString("format"); v != "" {
		s.format = v
	}
	if s.format != "text" && s.format != "json" {
		return s, fmt.Errorf("unknown format %q (want text or json)", s.format)
	}
	return s, nil
}

func runModels(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	models, err := loadModels(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var results []*runtime.Result
	for _, m := range models {
		result, err := runOne(ctx, m, s)
		if err != nil {
			return fmt.Errorf("%s: %w", m.Name, err)
		}
		results = append(results, result)
	}
	return render(cmd.OutOrStdout(), s.format, results)
}

func evalFormula(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	model, err := parser.ParseFormula(args[0])
	if err != nil {
		return err
	}
	result, err := runOne(cmd.Context(), model, s)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), s.format, []*runtime.Result{result})
}

func runOne(ctx context.Context, model *ast.Model, s settings) (*runtime.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	credibility := s.credibility
	if credibility == 0 {
		credibility = model.Credibility
	}
	if credibility == 0 {
		credibility = stdlib.DefaultCredibility
	}

	engine := runtime.NewEngine(model, stdlib.NewRegistry(stdlib.WithCredibility(credibility)))
	return engine.Run(ctx, s.samples)
}

func render(w io.Writer, format string, results []*runtime.Result) error {
	if format == "json" {
		return writeJSON(w, results)
	}
	return writeText(w, results)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
