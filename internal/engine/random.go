package engine

import "math/rand/v2"

// RandomSource supplies the run's single entropy draw.
type RandomSource interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// NewSeededSource returns a reproducible PCG-backed source.
func NewSeededSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSource returns a randomly seeded source.
func NewSource() RandomSource {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Fixed always returns v. Fixed(0.5) yields an actual factor of exactly 1.0.
type Fixed float64

// Float64 implements RandomSource.
func (f Fixed) Float64() float64 { return float64(f) }

// SourceFromSeed returns a seeded source, or a randomly seeded one for 0.
func SourceFromSeed(seed uint64) RandomSource {
	if seed == 0 {
		return NewSource()
	}
	return NewSeededSource(seed)
}
