package physics

import "math"

// Special functions backing the hydrogenic wavefunctions. gonum's
// mathext does not cover associated Legendre or generalized Laguerre
// polynomials, so these are the standard three-term recurrences.

// factorial returns n! as a float64. The arguments that reach it
// (n+l for radial norms, l+|m| for harmonic norms) stay far below the
// float64 factorial overflow point at 171.
func factorial(n int) float64 {
	result := 1.0
	for i := 2; i <= n; i++ {
		result *= float64(i)
	}
	return result
}

// doubleFactorial returns n!! = n * (n-2) * (n-4) * ... down to 1 or 2.
func doubleFactorial(n int) float64 {
	result := 1.0
	for i := n; i > 0; i -= 2 {
		result *= float64(i)
	}
	return result
}

// legendre evaluates the Legendre polynomial P_n(x) via the Bonnet
// recurrence.
func legendre(x float64, n int) float64 {
	switch n {
	case 0:
		return 1
	case 1:
		return x
	}
	p0, p1 := 1.0, x
	for i := 2; i <= n; i++ {
		fi := float64(i)
		p0, p1 = p1, ((2*fi-1)*x*p1-(fi-1)*p0)/fi
	}
	return p1
}

// associatedLegendre evaluates P_l^m(x) for m >= 0, including the
// Condon-Shortley (-1)^m factor, via the standard upward recurrence in l.
func associatedLegendre(x float64, l, m int) float64 {
	if m > l {
		return 0
	}
	if m == 0 {
		return legendre(x, l)
	}

	// Seed P_m^m = (-1)^m (2m-1)!! (1-x^2)^(m/2).
	sign := 1.0
	if m%2 != 0 {
		sign = -1.0
	}
	pmm := sign * math.Pow(1-x*x, float64(m)/2) * doubleFactorial(2*m-1)
	if l == m {
		return pmm
	}

	pm1m := x * float64(2*m+1) * pmm
	if l == m+1 {
		return pm1m
	}

	pa, pb := pmm, pm1m
	for i := m + 2; i <= l; i++ {
		fi := float64(i)
		fm := float64(m)
		pa, pb = pb, ((2*fi-1)*x*pb-(fi+fm-1)*pa)/(fi-fm)
	}
	return pb
}

// laguerre evaluates the generalized Laguerre polynomial L_n^alpha(x).
func laguerre(x float64, n, alpha int) float64 {
	if n == 0 {
		return 1
	}
	l0 := 1.0
	l1 := 1 + float64(alpha) - x
	if n == 1 {
		return l1
	}
	fa := float64(alpha)
	for i := 2; i <= n; i++ {
		fi := float64(i)
		l0, l1 = l1, ((2*fi-1+fa-x)*l1-(fi-1+fa)*l0)/fi
	}
	return l1
}
