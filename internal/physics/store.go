package physics

import (
	"errors"
	"fmt"
	"slices"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvariant is wrapped by every error Check returns.
var ErrInvariant = errors.New("store invariant violated")

// Body is the value form of one entry, used to seed a Store.
type Body struct {
	Mass     float32
	Radius   float32
	Location mgl32.Vec3
	Velocity mgl32.Vec3
	Color    mgl32.Vec3
	Light    bool
}

// Store holds all live bodies as index-aligned parallel arrays: index i in
// every array is the same body. It only changes through Append (initial
// batch) and remove (merge resolution), and remove keeps the light table in
// step with the arrays.
type Store struct {
	mass      []float32
	radius    []float32
	location  []mgl32.Vec3
	velocity  []mgl32.Vec3
	accel     []mgl32.Vec3
	color     []mgl32.Vec3
	light     []bool
	transform []mgl32.Mat4

	// lights holds the indices of light sources, strictly ascending.
	lights []int

	capacity      int
	lightCapacity int
}

// NewStore returns an empty store with room for n bodies.
func NewStore(n int) *Store {
	if n < 0 {
		n = 0
	}
	return &Store{
		mass:      make([]float32, 0, n),
		radius:    make([]float32, 0, n),
		location:  make([]mgl32.Vec3, 0, n),
		velocity:  make([]mgl32.Vec3, 0, n),
		accel:     make([]mgl32.Vec3, 0, n),
		color:     make([]mgl32.Vec3, 0, n),
		light:     make([]bool, 0, n),
		transform: make([]mgl32.Mat4, 0, n),
	}
}

// Append adds b at the end of the store and returns its index. Light sources
// are added to the light table; since the new index is the largest, the
// table stays ascending.
func (s *Store) Append(b Body) int {
	i := len(s.mass)
	s.mass = append(s.mass, b.Mass)
	s.radius = append(s.radius, b.Radius)
	s.location = append(s.location, b.Location)
	s.velocity = append(s.velocity, b.Velocity)
	s.accel = append(s.accel, mgl32.Vec3{})
	s.color = append(s.color, b.Color)
	s.light = append(s.light, b.Light)
	s.transform = append(s.transform, ModelMatrix(b.Location, b.Radius))
	if b.Light {
		s.lights = append(s.lights, i)
		s.lightCapacity++
	}
	s.capacity++
	return i
}

// remove deletes body i from every array and fixes up the light table:
// the entry equal to i goes away, entries above i shift down by one.
func (s *Store) remove(i int) {
	s.mass = slices.Delete(s.mass, i, i+1)
	s.radius = slices.Delete(s.radius, i, i+1)
	s.location = slices.Delete(s.location, i, i+1)
	s.velocity = slices.Delete(s.velocity, i, i+1)
	s.accel = slices.Delete(s.accel, i, i+1)
	s.color = slices.Delete(s.color, i, i+1)
	s.light = slices.Delete(s.light, i, i+1)
	s.transform = slices.Delete(s.transform, i, i+1)

	drop := -1
	for k, idx := range s.lights {
		switch {
		case idx == i:
			drop = k
		case idx > i:
			s.lights[k]--
		}
	}
	if drop >= 0 {
		s.lights = slices.Delete(s.lights, drop, drop+1)
	}
}

// Len returns the number of live bodies.
func (s *Store) Len() int { return len(s.mass) }

// Capacity is the number of bodies ever appended, i.e. the initial N.
// Shader arrays are sized from it.
func (s *Store) Capacity() int { return s.capacity }

// LightCapacity is the number of light sources ever appended.
func (s *Store) LightCapacity() int { return s.lightCapacity }

// Per-index accessors. i must be in [0, Len()).

func (s *Store) Mass(i int) float32 { return s.mass[i] }
func (s *Store) Radius(i int) float32 { return s.radius[i] }
func (s *Store) Location(i int) mgl32.Vec3 { return s.location[i] }
func (s *Store) Velocity(i int) mgl32.Vec3 { return s.velocity[i] }
func (s *Store) Acceleration(i int) mgl32.Vec3 { return s.accel[i] }
func (s *Store) Color(i int) mgl32.Vec3 { return s.color[i] }
func (s *Store) IsLight(i int) bool { return s.light[i] }
func (s *Store) Transform(i int) mgl32.Mat4 { return s.transform[i] }
func (s *Store) LightCount() int { return len(s.lights) }
func (s *Store) LightIndex(k int) int { return s.lights[k] }

// Lights returns a copy of the light table.
func (s *Store) Lights() []int { return slices.Clone(s.lights) }

// Body returns a copy of entry i.
func (s *Store) Body(i int) Body {
	return Body{
		Mass:     s.mass[i],
		Radius:   s.radius[i],
		Location: s.location[i],
		Velocity: s.velocity[i],
		Color:    s.color[i],
		Light:    s.light[i],
	}
}

// Check verifies array alignment, positive mass and radius, and the
// consistency of the light table with the per-body flags.
func (s *Store) Check() error {
	n := len(s.mass)
	lens := map[string]int{
		"radius":       len(s.radius),
		"location":     len(s.location),
		"velocity":     len(s.velocity),
		"acceleration": len(s.accel),
		"color":        len(s.color),
		"light":        len(s.light),
		"transform":    len(s.transform),
	}
	for name, l := range lens {
		if l != n {
			return fmt.Errorf("%w: %s has %d entries, mass has %d", ErrInvariant, name, l, n)
		}
	}
	flagged := 0
	for i := 0; i < n; i++ {
		if !(s.mass[i] > 0) || !(s.radius[i] > 0) {
			return fmt.Errorf("%w: body %d has mass %g radius %g", ErrInvariant, i, s.mass[i], s.radius[i])
		}
		if s.light[i] {
			flagged++
		}
	}
	for k, idx := range s.lights {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: light entry %d points at %d, store has %d bodies", ErrInvariant, k, idx, n)
		}
		if !s.light[idx] {
			return fmt.Errorf("%w: light entry %d points at non-light body %d", ErrInvariant, k, idx)
		}
		if k > 0 && s.lights[k-1] >= idx {
			return fmt.Errorf("%w: light table not ascending at entry %d", ErrInvariant, k)
		}
	}
	if flagged != len(s.lights) {
		return fmt.Errorf("%w: %d bodies flagged as lights, table has %d", ErrInvariant, flagged, len(s.lights))
	}
	return nil
}

// ModelMatrix is translate(location)·scale(radius).
func ModelMatrix(location mgl32.Vec3, radius float32) mgl32.Mat4 {
	return mgl32.Translate3D(location.X(), location.Y(), location.Z()).
		Mul4(mgl32.Scale3D(radius, radius, radius))
}

// SphereMass returns 4/3·π·r³·density.
func SphereMass(radius, density float32) float32 {
	return 4 * math32.Pi * radius * radius * radius / 3 * density
}

// SphereRadius inverts SphereMass: (3m / 4πρ)^(1/3).
func SphereRadius(mass, density float32) float32 {
	return math32.Pow(3*mass/(4*math32.Pi*density), 1.0/3.0)
}
