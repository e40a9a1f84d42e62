package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/attractors/internal/analysis"
	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/integrators"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/sim"
	"github.com/san-kum/attractors/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted batch of headless recordings.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep records one family. Zero fields keep the configured
// constants.
type ScenarioStep struct {
	Family  string             `yaml:"family"`
	Steps   int                `yaml:"steps"`
	Dt      float64            `yaml:"dt"`
	Initial *config.Vec3       `yaml:"initial,flow"`
	Params  map[string]float64 `yaml:"params"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: scenario %s has no steps", dynamo.ErrInvalidConfig, path)
	}

	return &scenario, nil
}

// apply returns a copy of cfg with the step's family selected and its
// overrides merged in.
func (s ScenarioStep) apply(cfg *config.Config) (*config.Config, physics.Family, error) {
	f, err := physics.ParseFamily(s.Family)
	if err != nil {
		return nil, 0, err
	}

	out := *cfg
	out.Family = f.String()
	out.Families = make(map[string]config.FamilyConfig, len(cfg.Families))
	for k, v := range cfg.Families {
		out.Families[k] = v
	}

	fc := cfg.FamilyConfig(f)
	if s.Dt > 0 {
		fc.Dt = s.Dt
	}
	if s.Initial != nil {
		fc.Initial = *s.Initial
	}
	k := fc.Params.Params()
	for name, v := range s.Params {
		if k, err = analysis.SetParam(k, name, v); err != nil {
			return nil, 0, err
		}
	}
	fc.Params = config.ParamsConfig{A: k.A, B: k.B, C: k.C}
	out.Families[f.String()] = fc

	if err := out.Validate(); err != nil {
		return nil, 0, err
	}
	return &out, f, nil
}

// RunScenario records every step in order and returns the saved runs.
// Runs completed before an error are returned with it.
func RunScenario(ctx context.Context, scenario *Scenario, cfg *config.Config, st *storage.Store, logger *slog.Logger) ([]storage.RunMetadata, error) {
	results := make([]storage.RunMetadata, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		stepCfg, f, err := step.apply(cfg)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		fc := stepCfg.FamilyConfig(f)
		n := step.Steps
		if n <= 0 {
			n = fc.MaxLength
		}

		logger.Info("scenario step", "step", i+1, "of", len(scenario.Steps), "family", f.String(), "steps", n,
			"dt", fc.Dt, "params", fc.Params.Params().Map())

		rec, err := st.NewRecorder(f, fc.Dt, fc.Params.Params(), fc.Initial.Point())
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		c, err := sim.New(stepCfg, sim.WithObserver(rec), sim.WithLogger(logger))
		if err != nil {
			rec.Close()
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		_, runErr := c.Run(ctx, n)
		meta, err := rec.Close()
		if err := errors.Join(runErr, err); err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, *meta)
	}

	return results, nil
}

// ParameterSweep estimates the largest Lyapunov exponent of one family
// across a range of one parameter.
type ParameterSweep struct {
	Family   physics.Family
	Param    string
	Min, Max float64
	Samples  int
	Steps    int
}

// SweepResult holds the outcome for one parameter value.
type SweepResult struct {
	Value    float64
	Lyapunov float64
	Bounds   analysis.Bounds
}

// RunSweep evaluates the sweep in parallel chunks. Results are in
// parameter order.
func RunSweep(ctx context.Context, sweep *ParameterSweep, cfg *config.Config) ([]SweepResult, error) {
	if sweep.Samples < 2 {
		return nil, fmt.Errorf("%w: sweep needs at least 2 samples, got %d", dynamo.ErrInvalidConfig, sweep.Samples)
	}
	fc := cfg.FamilyConfig(sweep.Family)
	base := fc.Params.Params()
	if _, err := analysis.SetParam(base, sweep.Param, sweep.Min); err != nil {
		return nil, err
	}

	results := make([]SweepResult, sweep.Samples)
	step := (sweep.Max - sweep.Min) / float64(sweep.Samples-1)

	ParallelFor(sweep.Samples, 1, func(start, end int) {
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				return
			}
			v := sweep.Min + float64(i)*step
			k, _ := analysis.SetParam(base, sweep.Param, v)
			results[i] = SweepResult{
				Value:    v,
				Lyapunov: analysis.LyapunovExponent(sweep.Family, k, fc.Initial.Point(), fc.Dt, sweep.Steps, 1e-8),
				Bounds:   trajectoryBounds(sweep.Family, k, fc.Initial.Point(), fc.Dt, sweep.Steps),
			}
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func trajectoryBounds(f physics.Family, k dynamo.Params, x0 dynamo.Point3, dt float64, steps int) analysis.Bounds {
	integ := integrators.NewEuler()
	var b analysis.Bounds
	x := x0
	for range steps {
		x = integ.Step(f, x, k, dt)
		b.Observe(x)
	}
	return b
}
