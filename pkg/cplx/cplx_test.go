package cplx

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestArithmetic(t *testing.T) {
	a := New(1, 2)
	b := New(3, -4)

	tests := []struct {
		name string
		got  Complex
		want Complex
	}{
		{"add", a.Add(b), New(4, -2)},
		{"sub", a.Sub(b), New(-2, 6)},
		{"mul", a.Mul(b), New(11, 2)},
		{"mul by i", a.Mul(New(0, 1)), New(-2, 1)},
		{"conj", b.Conj(), New(3, 4)},
		{"scale", a.Scale(3), New(3, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.ApproxEqual(tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestDiv(t *testing.T) {
	got, err := New(11, 2).Div(New(3, -4))
	if err != nil {
		t.Fatalf("Div error: %v", err)
	}
	if !got.ApproxEqual(New(1, 2)) {
		t.Errorf("Div = %v, want %v", got, New(1, 2))
	}
}

func TestDivByZero(t *testing.T) {
	got, err := New(1, 1).Div(Zero)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("Div error = %v, want %v", err, ErrDivisionByZero)
	}
	if got != Zero {
		t.Errorf("Div = %v, want Zero", got)
	}
}

func TestMulDivRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		a := New(rng.Float64()*20-10, rng.Float64()*20-10)
		b := New(rng.Float64()*20-10, rng.Float64()*20-10)
		if b.Abs() < 1e-3 {
			continue
		}

		got, err := a.Mul(b).Div(b)
		if err != nil {
			t.Fatalf("Div(%v) error: %v", b, err)
		}
		if !got.ApproxEqualTol(a, 1e-6) {
			t.Fatalf("(%v * %v) / %v = %v, want %v", a, b, b, got, a)
		}
	}
}

func TestAbsAndAngle(t *testing.T) {
	tests := []struct {
		z     Complex
		abs   float64
		angle float64
	}{
		{New(3, 4), 5, math.Atan2(4, 3) * 180 / math.Pi},
		{New(0, 1), 1, 90},
		{New(-1, 0), 1, 180},
		{New(0, -2), 2, -90},
		{Zero, 0, 0},
	}

	for _, tt := range tests {
		if got := tt.z.Abs(); math.Abs(got-tt.abs) > 1e-12 {
			t.Errorf("%v.Abs() = %v, want %v", tt.z, got, tt.abs)
		}
		if got := tt.z.AngleDegrees(); math.Abs(got-tt.angle) > 1e-9 {
			t.Errorf("%v.AngleDegrees() = %v, want %v", tt.z, got, tt.angle)
		}
	}
}

func TestApproxEqual(t *testing.T) {
	z := New(1, 1)
	if !z.ApproxEqual(New(1+5e-10, 1-5e-10)) {
		t.Error("values within 1e-9 should be equal")
	}
	if z.ApproxEqual(New(1+2e-9, 1)) {
		t.Error("values 2e-9 apart should not be equal")
	}
}

func TestIsFinite(t *testing.T) {
	if !New(1, -1).IsFinite() {
		t.Error("IsFinite() = false for finite value")
	}
	if New(math.NaN(), 0).IsFinite() {
		t.Error("IsFinite() = true for NaN")
	}
	if New(0, math.Inf(-1)).IsFinite() {
		t.Error("IsFinite() = true for -Inf")
	}
}

func TestString(t *testing.T) {
	if got := New(1, -0.5).String(); got != "(1 + -0.5i)" {
		t.Errorf("String() = %q", got)
	}
}
