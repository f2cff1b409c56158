// Package stats holds the statistics primitives behind the weekly
// analyzers. Everything here is pure: identical input ordering produces
// bit-identical output.
package stats

import "math"

// Mean returns the arithmetic mean, or 0 for empty input.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev returns the sample standard deviation (n-1 denominator).
// Fewer than two values carry no spread information, so it returns 0.
func StdDev(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	mean := Mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// CoefficientOfVariation returns 100 * stddev / mean as a percentage.
// A zero mean yields 0 rather than a division by zero; CV is undefined at a
// zero baseline and 0 is the neutral reading for the analyzers.
func CoefficientOfVariation(xs []float64) float64 {
	mean := Mean(xs)
	if mean == 0 {
		return 0
	}
	return 100 * StdDev(xs) / mean
}

// Regression is a least-squares fit of y = Slope*i + Intercept over the
// index sequence 0..n-1.
type Regression struct {
	Slope     float64
	Intercept float64
	RSquared  float64
}

// LinearRegression fits ys against their indices. Order encodes time, so
// unlike Mean and StdDev the result is sensitive to input ordering.
// Returns zeros for n < 2.
func LinearRegression(ys []float64) Regression {
	n := len(ys)
	if n < 2 {
		return Regression{}
	}

	var sumX, sumY float64
	for i, y := range ys {
		sumX += float64(i)
		sumY += y
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var num, denomX, denomY float64
	for i, y := range ys {
		dx := float64(i) - meanX
		dy := y - meanY
		num += dx * dy
		denomX += dx * dx
		denomY += dy * dy
	}

	// denomX is structurally non-zero for n >= 2 since x is the index
	// sequence; keep the guard for symmetry with denomY.
	if denomX == 0 {
		return Regression{}
	}

	slope := num / denomX
	intercept := meanY - slope*meanX

	r2 := 0.0
	if denomY > 0 {
		r := num / math.Sqrt(denomX*denomY)
		r2 = r * r
	}

	return Regression{Slope: slope, Intercept: intercept, RSquared: r2}
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
