// Package polynomial represents polynomials with complex coefficients.
package polynomial

import (
	"strings"

	"github.com/willbeason/newton-fractal/pkg/cplx"
)

// A Polynomial is Σ Coefficients[i]·z^i. Index 0 is the constant term.
//
// The zero value is the empty (zero) polynomial. Trailing zero coefficients are
// kept as given.
type Polynomial struct {
	coefficients []cplx.Complex
}

// New returns a polynomial with the given coefficients, constant term first.
func New(coefficients ...cplx.Complex) *Polynomial {
	p := &Polynomial{}
	for _, c := range coefficients {
		p.Add(c)
	}
	return p
}

// FromReal returns a polynomial with real coefficients, constant term first.
func FromReal(coefficients ...float64) *Polynomial {
	p := &Polynomial{}
	for _, c := range coefficients {
		p.Add(cplx.Real(c))
	}
	return p
}

// Default returns x³ + 1.
func Default() *Polynomial {
	return FromReal(1, 0, 0, 1)
}

// Add appends c as the coefficient of the next-highest degree.
func (p *Polynomial) Add(c cplx.Complex) {
	p.coefficients = append(p.coefficients, c)
}

// Len is the number of coefficients.
func (p *Polynomial) Len() int {
	return len(p.coefficients)
}

// Degree is Len()-1, or -1 for the empty polynomial.
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// Coefficients returns a copy of the coefficients.
func (p *Polynomial) Coefficients() []cplx.Complex {
	result := make([]cplx.Complex, len(p.coefficients))
	copy(result, p.coefficients)
	return result
}

// Derive returns the derivative. Constant and empty polynomials derive to the
// empty polynomial.
func (p *Polynomial) Derive() *Polynomial {
	derived := &Polynomial{}
	for i := 1; i < len(p.coefficients); i++ {
		derived.Add(p.coefficients[i].Scale(float64(i)))
	}
	return derived
}

// Eval evaluates p at z using Horner's method.
func (p *Polynomial) Eval(z cplx.Complex) cplx.Complex {
	result := cplx.Zero
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		result = result.Mul(z).Add(p.coefficients[i])
	}
	return result
}

// EvalReal evaluates p at x + 0i.
func (p *Polynomial) EvalReal(x float64) cplx.Complex {
	return p.Eval(cplx.Real(x))
}

// String formats p as "c0 + c1x + c2xx", one x per degree.
func (p *Polynomial) String() string {
	var sb strings.Builder
	for i, c := range p.coefficients {
		sb.WriteString(c.String())
		sb.WriteString(strings.Repeat("x", i))

		if i < len(p.coefficients)-1 {
			sb.WriteString(" + ")
		}
	}
	return sb.String()
}
