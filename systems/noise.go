package systems

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// FractalNoise sums octaves of OpenSimplex noise into a value in [0, 1).
type FractalNoise struct {
	noise      opensimplex.Noise
	octaves    int
	lacunarity float64
	gain       float64
}

// NewFractalNoise creates a seeded fractal noise generator.
func NewFractalNoise(seed int64, octaves int) *FractalNoise {
	if octaves < 1 {
		octaves = 1
	}
	return &FractalNoise{
		noise:      opensimplex.NewNormalized(seed),
		octaves:    octaves,
		lacunarity: 2.0,
		gain:       0.5,
	}
}

// Sample returns the normalized fractal value at (x, y).
func (f *FractalNoise) Sample(x, y float64) float64 {
	var sum, norm float64
	amp, freq := 1.0, 1.0
	for i := 0; i < f.octaves; i++ {
		sum += amp * f.noise.Eval2(x*freq, y*freq)
		norm += amp
		amp *= f.gain
		freq *= f.lacunarity
	}
	return sum / norm
}
