package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gradkit-ml/gradkit/autodiff"
	"github.com/gradkit-ml/gradkit/optim"
)

var (
	minimizeFile    string
	minimizeVerbose bool
)

// Problem describes a minimization run loaded from a YAML file.
//
// Example:
//
//	objective: rosenbrock
//	initial: [-1.2, 1.0]
//	tol: 1e-8
//	max_iter: 2000
type Problem struct {
	Objective string    `yaml:"objective"`
	Initial   []float64 `yaml:"initial"`
	Tol       float64   `yaml:"tol"`
	MaxIter   int       `yaml:"max_iter"`
}

var minimizeCmd = &cobra.Command{
	Use:   "minimize",
	Short: "Minimize a builtin objective with BFGS",
	Long: "Loads a problem description from a YAML file, builds the named " +
		"builtin objective as a differentiation graph, and minimizes it " +
		"with BFGS. Builtin objectives: " + objectiveNames() + ".",
	RunE: runMinimize,
}

func init() {
	minimizeCmd.Flags().StringVarP(&minimizeFile, "file", "f", "problem.yaml", "problem description file")
	minimizeCmd.Flags().BoolVarP(&minimizeVerbose, "verbose", "v", false, "log each iteration")
}

func runMinimize(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(minimizeFile)
	if err != nil {
		return fmt.Errorf("reading problem file: %w", err)
	}

	var prob Problem
	if err := yaml.Unmarshal(data, &prob); err != nil {
		return fmt.Errorf("parsing %s: %w", minimizeFile, err)
	}
	if len(prob.Initial) == 0 {
		return fmt.Errorf("%s: initial values are required", minimizeFile)
	}

	build, ok := objectives[prob.Objective]
	if !ok {
		return fmt.Errorf("unknown objective %q (have: %s)", prob.Objective, objectiveNames())
	}

	level := slog.LevelInfo
	if minimizeVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	params := make([]*autodiff.Node, len(prob.Initial))
	for i := range params {
		params[i] = autodiff.Unbound()
	}
	cost, err := build(params)
	if err != nil {
		return err
	}

	res, err := optim.Minimize(cost, params, prob.Initial, optim.Config{
		Tol:     prob.Tol,
		MaxIter: prob.MaxIter,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("minimizing %s: %w", prob.Objective, err)
	}

	final := make([]float64, len(params))
	for i, p := range params {
		final[i], _ = p.Value()
	}
	fv, _ := cost.Value()

	logger.Info("minimization finished",
		"objective", prob.Objective,
		"found", res.Found,
		"iterations", res.Iterations,
		"step", res.Step,
		"cost", fv,
	)
	fmt.Printf("x = %v\n", final)
	return nil
}
