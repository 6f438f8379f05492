package polynomial

import (
	"testing"

	"github.com/willbeason/newton-fractal/pkg/cplx"
)

func TestEvalDefault(t *testing.T) {
	p := Default()

	tests := []struct {
		name string
		z    cplx.Complex
		want cplx.Complex
	}{
		{"zero", cplx.Zero, cplx.New(1, 0)},
		{"one", cplx.New(1, 0), cplx.New(2, 0)},
		{"i", cplx.New(0, 1), cplx.New(1, -1)},
		{"minus one", cplx.New(-1, 0), cplx.Zero},
		{"two", cplx.New(2, 0), cplx.New(9, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Eval(tt.z); !got.ApproxEqual(tt.want) {
				t.Errorf("Eval(%v) = %v, want %v", tt.z, got, tt.want)
			}
		})
	}
}

func TestEvalReal(t *testing.T) {
	p := Default()
	if got := p.EvalReal(1); !got.ApproxEqual(cplx.New(2, 0)) {
		t.Errorf("EvalReal(1) = %v, want (2, 0)", got)
	}
}

func TestEvalMatchesPowerSum(t *testing.T) {
	p := New(cplx.New(1, -2), cplx.New(0.5, 3), cplx.New(-4, 1), cplx.New(2, 2), cplx.New(0, -1))
	z := cplx.New(0.3, -1.7)

	// Σ c_i · z^i by repeated multiplication.
	want := cplx.Zero
	for i, c := range p.Coefficients() {
		term := c
		for j := 0; j < i; j++ {
			term = term.Mul(z)
		}
		want = want.Add(term)
	}

	if got := p.Eval(z); !got.ApproxEqualTol(want, 1e-9) {
		t.Errorf("Eval(%v) = %v, want %v", z, got, want)
	}
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name string
		p    *Polynomial
		want []cplx.Complex
	}{
		{
			name: "x^3+1",
			p:    Default(),
			want: []cplx.Complex{cplx.Zero, cplx.Zero, cplx.Real(3)},
		},
		{
			name: "complex coefficients",
			p:    New(cplx.New(5, 5), cplx.New(1, 2), cplx.New(0, 1)),
			want: []cplx.Complex{cplx.New(1, 2), cplx.New(0, 2)},
		},
		{
			name: "constant",
			p:    FromReal(7),
			want: nil,
		},
		{
			name: "empty",
			p:    &Polynomial{},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.p.Derive()
			if d.Len() != len(tt.want) {
				t.Fatalf("Derive().Len() = %d, want %d", d.Len(), len(tt.want))
			}
			for i, c := range d.Coefficients() {
				if !c.ApproxEqual(tt.want[i]) {
					t.Errorf("coefficient %d = %v, want %v", i, c, tt.want[i])
				}
			}
		})
	}
}

func TestEmptyPolynomial(t *testing.T) {
	var p Polynomial
	if p.Degree() != -1 {
		t.Errorf("Degree() = %d, want -1", p.Degree())
	}
	if got := p.Eval(cplx.New(3, 4)); got != cplx.Zero {
		t.Errorf("Eval() = %v, want Zero", got)
	}
}

func TestAddPreservesOrder(t *testing.T) {
	p := &Polynomial{}
	p.Add(cplx.Real(1))
	p.Add(cplx.Real(2))
	p.Add(cplx.Real(3))

	if p.Degree() != 2 {
		t.Fatalf("Degree() = %d, want 2", p.Degree())
	}
	// 1 + 2x + 3x² at x=2 is 17.
	if got := p.EvalReal(2); !got.ApproxEqual(cplx.Real(17)) {
		t.Errorf("EvalReal(2) = %v, want 17", got)
	}
}

func TestCoefficientsIsCopy(t *testing.T) {
	p := Default()
	c := p.Coefficients()
	c[0] = cplx.Real(100)

	if got := p.EvalReal(0); !got.ApproxEqual(cplx.Real(1)) {
		t.Errorf("mutating Coefficients() changed polynomial: EvalReal(0) = %v", got)
	}
}

func TestString(t *testing.T) {
	got := FromReal(1, 0, 2).String()
	want := "(1 + 0i) + (0 + 0i)x + (2 + 0i)xx"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
