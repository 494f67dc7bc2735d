// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package solver

import "math"

// Per-margin majorant coefficients (a, b): the quadratic upper bound on a
// single class's Huber hinge contribution at the current margin q. Three
// regimes: the linear-hinge regime (the instance's aggregated loss is
// within the linear region), the p=2 closed form whose curvature is a
// constant handled by the caller, and the general p regime where both
// coefficients are region-wise functions of q. At p=1 the general regime
// degenerates exactly to the linear-hinge one.

// linearMajorant is the class=1 (linear hinge) regime of the piecewise
// majorant schedule: the instance's weighted Huber sum is already within
// the linear regime, so the majorant is the Huber transform's own standard
// quadratic bound.
func linearMajorant(q, kappa float64) (a, b float64) {
	switch {
	case q <= -kappa:
		a = 0.25 / (0.5 - kappa/2 - q)
		b = 0.5
	case q <= 1:
		a = 1 / (2*kappa + 2)
		b = (1 - q) * a
	default:
		a = -0.25 / (0.5 - kappa/2 - q)
		b = 0
	}
	return a, b
}

// quadraticB is the class=0, p=2 regime's linear coefficient. The matching
// curvature is the q-independent constant 1.5*(K-1), applied once per
// instance by the caller rather than per class.
func quadraticB(q, kappa float64) float64 {
	switch {
	case q <= -kappa:
		return 0.5 - kappa/2 - q
	case q <= 1:
		return math.Pow(1-q, 3) / (2 * (kappa + 1) * (kappa + 1))
	default:
		return 0
	}
}

// generalMajorant is the class=0, p != 2 regime: the analytic majorant of
// the Huber hinge raised to p. The curvature switches regions at
// (p+kappa-1)/(p-2), not at -kappa; between the two breakpoints the
// curvature is the constant 0.25*p*(2p-1)*((kappa+1)/2)^(p-2) while b
// still follows the -kappa boundary.
func generalMajorant(q, kappa, p float64) (a, b float64) {
	u := 0.5 - kappa/2 - q

	switch {
	case q <= (p+kappa-1)/(p-2):
		a = 0.25 * p * p * math.Pow(u, p-2)
	case q <= 1:
		a = 0.25 * p * (2*p - 1) * math.Pow((kappa+1)/2, p-2)
	default:
		a = 0.25 * p * p * math.Pow(p/(p-2)*u, p-2)
	}

	switch {
	case q <= -kappa:
		b = 0.5 * p * math.Pow(u, p-1)
	case q <= 1:
		b = p * math.Pow(1-q, 2*p-1) / math.Pow(2*kappa+2, p)
	default:
		b = a*(2*q+kappa-1)/(p-2) + 0.5*p*math.Pow(p/(p-2)*u, p-1)
	}
	return a, b
}
