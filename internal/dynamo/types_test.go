package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestPoint3_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		p     Point3
		valid bool
	}{
		{"zero", Point3{}, true},
		{"normal", Point3{1, 2, 3}, true},
		{"with NaN", Point3{1, math.NaN(), 3}, false},
		{"with +Inf", Point3{math.Inf(1), 0, 0}, false},
		{"with -Inf", Point3{0, 0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestPoint3_Arithmetic(t *testing.T) {
	a := Point3{1, 2, 3}
	b := Point3{4, 5, 6}

	if got := a.Add(b); got != (Point3{5, 7, 9}) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != (Point3{3, 3, 3}) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2); got != (Point3{2, 4, 6}) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := (Point3{3, 4, 0}).Norm(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Norm failed: got %v", got)
	}
}

func TestPointSliceRoundTrip(t *testing.T) {
	p := Point3{0.8, 0.5, 4.1}
	if got := PointFromSlice(p.Slice()); got != p {
		t.Errorf("expected %v, got %v", p, got)
	}
}

func TestParamError(t *testing.T) {
	err := &ParamError{Name: "dt", Value: -1, Wrapped: ErrParameterBounds}
	if !errors.Is(err, ErrParameterBounds) {
		t.Error("ParamError should unwrap to ErrParameterBounds")
	}
	expected := "dt: dynamo: parameter out of valid bounds"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestParamsMap(t *testing.T) {
	m := Params{A: 10, B: 28, C: 2.5}.Map()
	if len(m) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(m))
	}
	if m["a"] != 10 || m["b"] != 28 || m["c"] != 2.5 {
		t.Errorf("expected a=10 b=28 c=2.5, got %v", m)
	}
}
