package automation

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/storage"
)

const scenarioYAML = `
name: tour
description: two families back to back
steps:
  - family: lorenz
    steps: 200
    params: {b: 20}
  - family: halvorsen
    steps: 100
    dt: 0.001
    initial: [1, 0, 0]
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}

	if sc.Name != "tour" {
		t.Errorf("expected name tour, got %s", sc.Name)
	}
	if len(sc.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(sc.Steps))
	}
	if sc.Steps[0].Params["b"] != 20 {
		t.Errorf("expected b override 20, got %v", sc.Steps[0].Params)
	}
	if sc.Steps[1].Initial == nil || *sc.Steps[1].Initial != (config.Vec3{1, 0, 0}) {
		t.Errorf("expected initial [1 0 0], got %v", sc.Steps[1].Initial)
	}
}

func TestLoadScenarioEmpty(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, "name: empty\n"))
	if !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}
	cfg := config.DefaultConfig()
	st := storage.New(t.TempDir())

	runs, err := RunScenario(context.Background(), sc, cfg, st, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("RunScenario failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}

	if runs[0].Family != "lorenz" || runs[0].Steps != 200 {
		t.Errorf("expected lorenz with 200 steps, got %s with %d", runs[0].Family, runs[0].Steps)
	}
	if runs[0].Params.B != 20 || runs[0].Params.A != 10 {
		t.Errorf("expected b overridden and a kept, got %+v", runs[0].Params)
	}
	if runs[1].Dt != 0.001 || runs[1].Initial != (dynamo.Point3{X: 1}) {
		t.Errorf("expected dt 0.001 from (1,0,0), got %v from %v", runs[1].Dt, runs[1].Initial)
	}

	points, err := st.LoadPoints(runs[1].ID)
	if err != nil {
		t.Fatalf("LoadPoints failed: %v", err)
	}
	if len(points) != 100 {
		t.Errorf("expected 100 points, got %d", len(points))
	}

	if cfg.FamilyConfig(physics.Lorenz).Params.B != 28 {
		t.Errorf("expected base config untouched, got b=%v", cfg.FamilyConfig(physics.Lorenz).Params.B)
	}
}

func TestRunScenarioLogsOverrides(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{
		{Family: "lorenz", Steps: 10, Params: map[string]float64{"b": 20}},
	}}
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	if _, err := RunScenario(context.Background(), sc, config.DefaultConfig(), storage.New(t.TempDir()), logger); err != nil {
		t.Fatalf("RunScenario failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"params":{"a":10,"b":20,`) {
		t.Errorf("expected the merged params in the step log, got %s", buf.String())
	}
}

func TestRunScenarioBadStep(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{
		{Family: "lorenz", Steps: 10},
		{Family: "rossler", Steps: 10},
	}}
	st := storage.New(t.TempDir())

	runs, err := RunScenario(context.Background(), sc, config.DefaultConfig(), st, slog.New(slog.DiscardHandler))
	if !errors.Is(err, dynamo.ErrUnknownFamily) {
		t.Errorf("expected ErrUnknownFamily, got %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected the first run kept, got %d", len(runs))
	}
}

func TestRunScenarioUnknownParam(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{
		{Family: "lorenz", Steps: 10, Params: map[string]float64{"d": 1}},
	}}
	st := storage.New(t.TempDir())

	_, err := RunScenario(context.Background(), sc, config.DefaultConfig(), st, slog.New(slog.DiscardHandler))
	if !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{
		Family:  physics.Lorenz,
		Param:   "b",
		Min:     0.5,
		Max:     28,
		Samples: 5,
		Steps:   20000,
	}

	results, err := RunSweep(context.Background(), sweep, config.DefaultConfig())
	if err != nil {
		t.Fatalf("RunSweep failed: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	if results[0].Value != 0.5 || results[4].Value != 28 {
		t.Errorf("expected values from 0.5 to 28, got %v .. %v", results[0].Value, results[4].Value)
	}
	// Below b=1 the origin attracts; at 28 the flow is chaotic.
	if results[0].Lyapunov >= 0 {
		t.Errorf("expected negative exponent at b=0.5, got %v", results[0].Lyapunov)
	}
	if results[4].Lyapunov <= 0 {
		t.Errorf("expected positive exponent at b=28, got %v", results[4].Lyapunov)
	}
	if results[4].Bounds.Count != 20000 {
		t.Errorf("expected 20000 observed points, got %d", results[4].Bounds.Count)
	}
}

func TestRunSweepValidates(t *testing.T) {
	cfg := config.DefaultConfig()

	_, err := RunSweep(context.Background(), &ParameterSweep{Family: physics.Lorenz, Param: "a", Samples: 1}, cfg)
	if !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	_, err = RunSweep(context.Background(), &ParameterSweep{Family: physics.Lorenz, Param: "q", Samples: 3}, cfg)
	if !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestRunSweepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sweep := &ParameterSweep{Family: physics.Aizawa, Param: "a", Min: 0.9, Max: 1, Samples: 3, Steps: 100}
	if _, err := RunSweep(ctx, sweep, config.DefaultConfig()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestParallelForCoversRange(t *testing.T) {
	for _, n := range []int{0, 1, 7, 100, 1001} {
		seen := make([]int32, n)
		ParallelFor(n, 3, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&seen[i], 1)
			}
		})
		for i, v := range seen {
			if v != 1 {
				t.Errorf("n=%d: expected index %d visited once, got %d", n, i, v)
			}
		}
	}
}
