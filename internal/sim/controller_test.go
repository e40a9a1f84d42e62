package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/viz"
)

func newController(t *testing.T, opts ...Option) *Controller {
	t.Helper()
	c, err := New(config.DefaultConfig(), opts...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return c
}

func TestNewSeedsTrail(t *testing.T) {
	c := newController(t)

	if c.Active() != physics.Lorenz {
		t.Errorf("expected lorenz, got %v", c.Active())
	}
	if c.State() != Running {
		t.Errorf("expected running, got %v", c.State())
	}
	if c.Len() != 1000 {
		t.Errorf("expected 1000 points, got %d", c.Len())
	}

	want := dynamo.Point3{X: 0.8, Y: 0.5, Z: 4.1}
	if c.Head() != want {
		t.Errorf("expected head %v, got %v", want, c.Head())
	}
	if pts := c.Points(); pts[0] != config.DefaultPad {
		t.Errorf("expected pad %v at the head, got %v", config.DefaultPad, pts[0])
	}
	if c.Model() != c.Defaults() {
		t.Error("expected live model to equal its snapshot")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Family = "rossler"

	if _, err := New(cfg); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestFrameLorenzFirstStep(t *testing.T) {
	c := newController(t)

	a, b, k := 10.0, 28.0, 8.0/3.0
	x, y, z, dt := 0.8, 0.5, 4.1, 0.005
	want := dynamo.Point3{
		X: x + a*(y-x)*dt,
		Y: y + (x*(b-z)-y)*dt,
		Z: z + (x*y-k*z)*dt,
	}

	segs := c.Frame()

	if c.Head() != want {
		t.Errorf("expected head %v, got %v", want, c.Head())
	}
	if c.Len() != 1000 {
		t.Errorf("expected length to stay 1000, got %d", c.Len())
	}
	if len(segs) != 999 {
		t.Errorf("expected 999 segments, got %d", len(segs))
	}
}

func TestFrameSegments(t *testing.T) {
	c := newController(t)
	m := c.Model()
	rot := m.Rotation

	segs := c.Frame()
	pts := c.Points()
	n := len(pts)

	var prev dynamo.Point3
	for i, p := range pts {
		cur := c.Pipeline().Transform(p, m.Midpoint, rot, m.Zoom)
		rot.Advance()
		if i > 0 {
			s := segs[i-1]
			if s.X0 != prev.X || s.Y0 != prev.Y || s.X1 != cur.X || s.Y1 != cur.Y {
				t.Fatalf("segment %d: expected %v -> %v, got %+v", i-1, prev, cur, s)
			}
			if want := c.Gradient().At(i, n); s.Color != want {
				t.Fatalf("segment %d: expected colour %v, got %v", i-1, want, s.Color)
			}
		}
		prev = cur
	}

	if c.Model().Rotation != rot {
		t.Errorf("expected rotation %+v after the frame, got %+v", rot, c.Model().Rotation)
	}
}

func TestRotationModes(t *testing.T) {
	tests := []struct {
		mode     string
		advances float64
	}{
		{config.RotationPerPoint, 1000},
		{config.RotationPerFrame, 1},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Render.RotationMode = tt.mode
			c, err := New(cfg)
			if err != nil {
				t.Fatalf("new controller: %v", err)
			}

			c.Frame()

			got := c.Model().Rotation.AngleY
			want := tt.advances * 0.000001
			if math.Abs(got-want) > 1e-12 {
				t.Errorf("expected angle %v, got %v", want, got)
			}
			if c.Model().Rotation.AngleX != 0 {
				t.Errorf("expected no x rotation, got %v", c.Model().Rotation.AngleX)
			}
		})
	}
}

func TestPausedFrame(t *testing.T) {
	c := newController(t)
	c.Frame()

	head, rot := c.Head(), c.Model().Rotation
	c.Pause()

	if segs := c.Frame(); segs != nil {
		t.Errorf("expected no segments while paused, got %d", len(segs))
	}
	if c.Head() != head {
		t.Errorf("expected head %v to hold, got %v", head, c.Head())
	}
	if c.Model().Rotation != rot {
		t.Errorf("expected rotation to hold, got %+v", c.Model().Rotation)
	}

	if s := c.TogglePause(); s != Running {
		t.Errorf("expected running after toggle, got %v", s)
	}
	c.Frame()
	if c.Head() == head {
		t.Error("expected the trail to grow after resuming")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	c := newController(t)
	defaults := c.Defaults()

	c.SetA(12)
	c.SetZoom(0.5)
	for i := 0; i < 10; i++ {
		c.Frame()
	}

	if err := c.Reset(physics.Halvorsen); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if c.Len() != 3000 {
		t.Errorf("expected halvorsen trail of 3000, got %d", c.Len())
	}

	if err := c.Reset(physics.Lorenz); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if c.Model() != defaults {
		t.Errorf("expected defaults %+v, got %+v", defaults, c.Model())
	}
	if c.Len() != 1000 {
		t.Errorf("expected 1000 points, got %d", c.Len())
	}
	if want := (dynamo.Point3{X: 0.8, Y: 0.5, Z: 4.1}); c.Head() != want {
		t.Errorf("expected head %v, got %v", want, c.Head())
	}
}

func TestRestartKeepsPause(t *testing.T) {
	c := newController(t)
	c.SetB(20)
	c.Pause()

	if err := c.Restart(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if c.State() != Paused {
		t.Errorf("expected paused, got %v", c.State())
	}
	if c.Model().Params.B != 28 {
		t.Errorf("expected b restored to 28, got %v", c.Model().Params.B)
	}
}

func TestResetUnknownFamily(t *testing.T) {
	c := newController(t)
	if err := c.Reset(physics.Family(9)); !errors.Is(err, dynamo.ErrUnknownFamily) {
		t.Errorf("expected ErrUnknownFamily, got %v", err)
	}
	if c.Active() != physics.Lorenz {
		t.Errorf("expected lorenz to stay active, got %v", c.Active())
	}
}

func TestSetClamps(t *testing.T) {
	tests := []struct {
		param    Param
		in, want float64
	}{
		{ParamA, 12, 12},
		{ParamA, -50, -10},
		{ParamB, 31, 30},
		{ParamC, -2, -1},
		{ParamZoom, 0.01, 0.1},
		{ParamDAngleZ, 1, 0.00001},
		{ParamDAngleX, -1, 0},
		{ParamDt, 0, 0.00001},
		{ParamMaxLength, 9000, 5000},
		{ParamMaxLength, 120.7, 120},
	}

	for _, tt := range tests {
		t.Run(tt.param.String(), func(t *testing.T) {
			c := newController(t)
			if got := c.Set(tt.param, tt.in); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if got := c.Get(tt.param); got != tt.want {
				t.Errorf("expected stored %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSetParamByLabel(t *testing.T) {
	c := newController(t)

	got, err := c.SetParam("Yrot", 0.000005)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if got != 0.000005 || c.Model().Rotation.DAngleY != 0.000005 {
		t.Errorf("expected 5e-6, got %v", c.Model().Rotation.DAngleY)
	}

	if _, err := c.SetParam("sigma", 1); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
	if got := c.SetRotationDelta('q', 1); got != 0 {
		t.Errorf("expected unknown axis to be ignored, got %v", got)
	}
}

func TestParamRanges(t *testing.T) {
	rs := ParamRanges()
	if len(rs) != 9 {
		t.Fatalf("expected 9 sliders, got %d", len(rs))
	}
	for i, r := range rs {
		if r.Param != Param(i) {
			t.Errorf("expected slider %d to be %v, got %v", i, Param(i), r.Param)
		}
		if r.Min >= r.Max {
			t.Errorf("%s: expected min < max, got %v >= %v", r.Label, r.Min, r.Max)
		}
	}
	if !ParamMaxLength.Integral() || ParamDt.Integral() {
		t.Error("expected only length to be integral")
	}
}

func TestSetMaxLengthAppliesOnNextStep(t *testing.T) {
	c := newController(t)
	c.SetMaxLength(10)

	if c.Len() != 1000 {
		t.Errorf("expected no immediate eviction, got %d", c.Len())
	}
	c.Step()
	if c.Len() != 10 {
		t.Errorf("expected 10 points after a step, got %d", c.Len())
	}

	c.SetMaxLength(20)
	for i := 0; i < 5; i++ {
		c.Step()
	}
	if c.Len() != 15 {
		t.Errorf("expected the trail to grow by one per step to 15, got %d", c.Len())
	}
}

func TestSetGradientClamps(t *testing.T) {
	c := newController(t)
	c.SetGradient(viz.Gradient{Initial: viz.RGBA{300, -1, 0, 255}, Final: viz.RGBA{0, 0, 0, 0}})

	if want := (viz.RGBA{255, 0, 0, 255}); c.Gradient().Initial != want {
		t.Errorf("expected %v, got %v", want, c.Gradient().Initial)
	}
}

func TestObserverSeesEveryPoint(t *testing.T) {
	var seen []dynamo.Point3
	c := newController(t, WithObserver(ObserverFunc(func(f physics.Family, p dynamo.Point3) {
		if f != physics.Lorenz {
			t.Errorf("expected lorenz, got %v", f)
		}
		seen = append(seen, p)
	})))

	for i := 0; i < 3; i++ {
		c.Frame()
	}
	c.Step()

	if len(seen) != 4 {
		t.Fatalf("expected 4 points, got %d", len(seen))
	}
	if seen[3] != c.Head() {
		t.Errorf("expected last observed point to be the head, got %v", seen[3])
	}
}

func TestBoundsTrackDrawnPoints(t *testing.T) {
	c := newController(t)
	if !c.Bounds().Empty() {
		t.Fatal("expected empty bounds before the first frame")
	}

	c.Frame()
	b := c.Bounds()
	if b.Count != 1000 {
		t.Errorf("expected 1000 observations, got %d", b.Count)
	}
	if b.Min.X != 0.01 || b.Max.Z != 4.1 {
		t.Errorf("expected box from the pads to the initial point, got %v", b)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	c := newController(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := c.Run(ctx, 5000)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if n != 0 {
		t.Errorf("expected no steps, got %d", n)
	}
}

func TestRun(t *testing.T) {
	c := newController(t)
	n, err := c.Run(context.Background(), 20000)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 20000 {
		t.Errorf("expected 20000 steps, got %d", n)
	}

	// The preset midpoint came from the same estimate.
	mid := c.Bounds().Midpoint()
	preset := c.Model().Midpoint
	if math.Abs(mid.Z-preset.Z) > 5 {
		t.Errorf("expected z midpoint near %v, got %v", preset.Z, mid.Z)
	}
}

func TestEnsemble(t *testing.T) {
	families := []physics.Family{physics.Lorenz, physics.Aizawa, physics.Halvorsen}
	results, err := NewEnsemble(config.DefaultConfig(), 2000).Run(context.Background(), families)
	if err != nil {
		t.Fatalf("ensemble: %v", err)
	}

	for i, r := range results {
		if r.Family != families[i] {
			t.Errorf("expected %v at %d, got %v", families[i], i, r.Family)
		}
		if r.Steps != 2000 || r.Bounds.Count != 2000 {
			t.Errorf("%v: expected 2000 steps observed, got %d/%d", r.Family, r.Steps, r.Bounds.Count)
		}
	}
}

func BenchmarkFrame(b *testing.B) {
	c, err := New(config.DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Frame()
	}
}
