package physics

import (
	"math"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/stat/distuv"
)

// palette holds the per-channel uniform ranges for non-light bodies,
// biased toward blue-green planets.
var palette = [3][2]float64{
	{0.2, 1.0}, // R
	{0.6, 0.9}, // G
	{0.8, 1.0}, // B
}

var white = mgl32.Vec3{1, 1, 1}

// Seed builds the initial store from cfg. Every draw comes from a single PCG
// source seeded with cfg.Seed, so a given Config always yields the same bodies.
//
// Per body the draws are taken in this order: light flag, location angles
// θ and φ, location magnitude (not drawn in shell mode), velocity angles,
// velocity magnitude, three color channels (not drawn for light sources),
// radius. Changing the order changes every seeded layout.
func Seed(cfg Config) *Store {
	src := rand.NewPCG(cfg.Seed, cfg.Seed)

	isLight := distuv.Bernoulli{P: float64(cfg.LightFraction), Src: src}
	theta := distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src}
	phi := distuv.Uniform{Min: 0, Max: math.Pi, Src: src}
	locMag := distuv.Normal{Mu: 0, Sigma: float64(cfg.LocationSD), Src: src}
	velMag := distuv.Normal{Mu: 0, Sigma: float64(cfg.VelocitySD), Src: src}
	radius := distuv.Uniform{Min: float64(cfg.RadiusMin), Max: float64(cfg.RadiusMax), Src: src}
	var channel [3]distuv.Uniform
	for c, r := range palette {
		channel[c] = distuv.Uniform{Min: r[0], Max: r[1], Src: src}
	}

	n := max(cfg.Count, 0)
	s := NewStore(n)
	for range n {
		var b Body
		b.Light = isLight.Rand() == 1

		dir := direction(theta.Rand(), phi.Rand())
		if cfg.Shell {
			b.Location = dir.Mul(cfg.LocationSD)
		} else {
			b.Location = dir.Mul(float32(locMag.Rand()))
		}
		dir = direction(theta.Rand(), phi.Rand())
		b.Velocity = dir.Mul(float32(velMag.Rand()))

		if b.Light {
			b.Color = white
		} else {
			for c := range channel {
				b.Color[c] = float32(channel[c].Rand())
			}
		}

		b.Radius = float32(radius.Rand())
		if b.Light {
			b.Radius *= cfg.SunScale
		}
		b.Mass = SphereMass(b.Radius, cfg.Density)
		s.Append(b)
	}
	return s
}

// direction is the unit vector for azimuth theta and polar angle phi.
func direction(theta, phi float64) mgl32.Vec3 {
	t, p := float32(theta), float32(phi)
	sinP := math32.Sin(p)
	return mgl32.Vec3{math32.Cos(t) * sinP, math32.Sin(t) * sinP, math32.Cos(p)}
}
