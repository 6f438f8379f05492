package newton

import (
	"github.com/willbeason/newton-fractal/pkg/cplx"
	"github.com/willbeason/newton-fractal/pkg/polynomial"
)

const (
	DefaultMaxIterations = 30
	DefaultTolerance     = 1e-6
)

// An Iterator runs Newton-Raphson iteration z -> z - P(z)/P'(z).
type Iterator struct {
	P  *polynomial.Polynomial
	DP *polynomial.Polynomial

	// MaxIterations caps the number of steps per starting point.
	MaxIterations int

	// Tolerance is the step magnitude below which the iteration has converged.
	Tolerance float64
}

// New returns an Iterator for p with default limits. The derivative is
// computed once here.
func New(p *polynomial.Polynomial) *Iterator {
	return &Iterator{
		P:             p,
		DP:            p.Derive(),
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
	}
}

// Result is the outcome of iterating a single starting point.
type Result struct {
	// Root is the last finite iterate.
	Root cplx.Complex

	// Iterations is the number of steps taken.
	Iterations int

	// Converged is true if the final step was smaller than the tolerance.
	Converged bool

	// Degenerate is true if the iteration hit a zero derivative or left the
	// finite plane. Root is then not an approximation of any root.
	Degenerate bool
}

// Step performs a single Newton step from z, returning the next iterate and
// the step P(z)/P'(z).
func (it *Iterator) Step(z cplx.Complex) (next, delta cplx.Complex, err error) {
	delta, err = it.P.Eval(z).Div(it.DP.Eval(z))
	if err != nil {
		return z, cplx.Zero, err
	}
	return z.Sub(delta), delta, nil
}

// Iterate runs the iteration from z0 until the step magnitude drops below the
// tolerance or MaxIterations steps have been taken. Exhausting the iteration
// budget is not an error; the last iterate is returned.
func (it *Iterator) Iterate(z0 cplx.Complex) Result {
	z := z0
	for i := 0; i < it.MaxIterations; i++ {
		next, delta, err := it.Step(z)
		if err != nil || !next.IsFinite() {
			return Result{Root: z, Iterations: i, Degenerate: true}
		}
		z = next

		if delta.Abs() < it.Tolerance {
			return Result{Root: z, Iterations: i + 1, Converged: true}
		}
	}

	return Result{Root: z, Iterations: it.MaxIterations}
}
