package analysis

// Polynomial holds coefficients in increasing degree: p[k] multiplies x^k.
type Polynomial []float64

// Eval evaluates p at x with Horner's rule.
func (p Polynomial) Eval(x float64) float64 {
	y := 0.0
	for k := len(p) - 1; k >= 0; k-- {
		y = y*x + p[k]
	}
	return y
}

// Derivative returns p'.
func (p Polynomial) Derivative() Polynomial {
	if len(p) <= 1 {
		return Polynomial{}
	}
	d := make(Polynomial, len(p)-1)
	for k := 1; k < len(p); k++ {
		d[k-1] = float64(k) * p[k]
	}
	return d
}

// Degree ignores trailing zero coefficients; the zero polynomial has degree 0.
func (p Polynomial) Degree() int {
	for k := len(p) - 1; k > 0; k-- {
		if p[k] != 0 {
			return k
		}
	}
	return 0
}

// Function wraps p as a test function with its exact derivative.
func (p Polynomial) Function(name string) Function {
	d := p.Derivative()
	return Function{
		Name:   name,
		F:      p.Eval,
		DF:     d.Eval,
		Degree: p.Degree(),
	}
}
