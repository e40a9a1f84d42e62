package sim

import (
	"context"
	"sync"

	"github.com/san-kum/attractors/internal/analysis"
	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/physics"
)

// Calibration is the outcome of one headless run.
type Calibration struct {
	Family physics.Family
	Steps  int
	Bounds analysis.Bounds
}

// Ensemble runs several families headless at once, one controller per
// goroutine, to estimate their bounding boxes and midpoints.
type Ensemble struct {
	cfg   *config.Config
	steps int
}

func NewEnsemble(cfg *config.Config, steps int) *Ensemble {
	return &Ensemble{cfg: cfg, steps: steps}
}

func (e *Ensemble) Run(ctx context.Context, families []physics.Family) ([]Calibration, error) {
	results := make([]Calibration, len(families))
	errs := make([]error, len(families))

	var wg sync.WaitGroup
	for i, f := range families {
		wg.Add(1)
		go func(idx int, f physics.Family) {
			defer wg.Done()

			cfgCopy := *e.cfg
			cfgCopy.Family = f.String()

			c, err := New(&cfgCopy)
			if err != nil {
				errs[idx] = err
				return
			}

			n, err := c.Run(ctx, e.steps)
			results[idx] = Calibration{Family: f, Steps: n, Bounds: c.Bounds()}
			errs[idx] = err
		}(i, f)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
