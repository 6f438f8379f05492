// Package cplx implements the complex arithmetic used by the Newton iteration.
//
// Complex is a plain value type. Both components are float64; division by a
// zero-magnitude divisor is reported as ErrDivisionByZero instead of producing
// infinities.
package cplx

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon is the per-component tolerance used by ApproxEqual.
const Epsilon = 1e-9

// ErrDivisionByZero is returned by Div when the divisor has zero magnitude.
var ErrDivisionByZero = errors.New("complex division by zero")

// Complex is a complex number Re + Im·i.
type Complex struct {
	Re float64
	Im float64
}

// Zero is the additive identity 0+0i.
var Zero = Complex{}

// New returns re + im·i.
func New(re, im float64) Complex {
	return Complex{Re: re, Im: im}
}

// Real returns x + 0i.
func Real(x float64) Complex {
	return Complex{Re: x}
}

func (z Complex) Add(w Complex) Complex {
	return Complex{Re: z.Re + w.Re, Im: z.Im + w.Im}
}

func (z Complex) Sub(w Complex) Complex {
	return Complex{Re: z.Re - w.Re, Im: z.Im - w.Im}
}

// Mul returns (ac−bd) + (ad+bc)i for z = a+bi, w = c+di.
func (z Complex) Mul(w Complex) Complex {
	return Complex{
		Re: z.Re*w.Re - z.Im*w.Im,
		Im: z.Re*w.Im + z.Im*w.Re,
	}
}

// Scale multiplies both components by s.
func (z Complex) Scale(s float64) Complex {
	return Complex{Re: z.Re * s, Im: z.Im * s}
}

// Conj returns the complex conjugate.
func (z Complex) Conj() Complex {
	return Complex{Re: z.Re, Im: -z.Im}
}

// Div returns z / w, computed as z·conj(w) / |w|².
// If |w|² is zero, Div returns Zero and ErrDivisionByZero.
func (z Complex) Div(w Complex) (Complex, error) {
	denom := w.Re*w.Re + w.Im*w.Im
	if denom == 0 {
		return Zero, ErrDivisionByZero
	}

	n := z.Mul(w.Conj())
	return Complex{Re: n.Re / denom, Im: n.Im / denom}, nil
}

// Abs returns the magnitude sqrt(re² + im²).
func (z Complex) Abs() float64 {
	return math.Hypot(z.Re, z.Im)
}

// AngleDegrees returns the argument of z in degrees, in (-180, 180].
func (z Complex) AngleDegrees() float64 {
	return math.Atan2(z.Im, z.Re) * (180.0 / math.Pi)
}

// ApproxEqual reports whether both components differ by less than Epsilon.
func (z Complex) ApproxEqual(w Complex) bool {
	return z.ApproxEqualTol(w, Epsilon)
}

func (z Complex) ApproxEqualTol(w Complex, eps float64) bool {
	return math.Abs(z.Re-w.Re) < eps && math.Abs(z.Im-w.Im) < eps
}

// IsFinite reports whether neither component is NaN or infinite.
func (z Complex) IsFinite() bool {
	return !math.IsNaN(z.Re) && !math.IsInf(z.Re, 0) &&
		!math.IsNaN(z.Im) && !math.IsInf(z.Im, 0)
}

func (z Complex) String() string {
	return fmt.Sprintf("(%g + %gi)", z.Re, z.Im)
}
