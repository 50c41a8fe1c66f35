package physics

import "github.com/go-gl/mathgl/mgl32"

// Stats accumulates over the life of an Integrator.
type Stats struct {
	Steps   int
	Merges  int
	SimTime float32 // sum of scaled dt over all steps
}

// Integrator advances a Store with pairwise Newtonian gravity and fully
// inelastic mergers. Only G and the shared density are needed; they are
// passed in explicitly rather than read from the settings.
type Integrator struct {
	G       float32
	Density float32
	// TimeScale multiplies every dt handed to Step. 1 means wall-clock time.
	TimeScale float32

	stats Stats
}

// NewIntegrator returns an integrator with TimeScale 1.
func NewIntegrator(g, density float32) *Integrator {
	return &Integrator{G: g, Density: density, TimeScale: 1}
}

// Stats returns the cumulative step and merge counts.
func (in *Integrator) Stats() Stats { return in.stats }

// Step advances s by dt in place and returns the number of merges it resolved.
//
// Every unordered pair (i, j), i < j, is visited in lexicographic order. A
// touching or overlapping pair is merged on the spot; otherwise both bodies
// accumulate the pair's acceleration. After the scan every survivor gets a
// semi-implicit Euler update and a fresh transform. Stores with fewer than two
// bodies are left untouched.
//
// After a merge the scan continues without skipping any surviving pair:
// if j was absorbed, the body that slid into slot j is tested next; if i was
// absorbed, the row of the body that slid into slot i is scanned from the
// start. Acceleration already contributed by an absorbed body stays for the
// frame.
func (in *Integrator) Step(s *Store, dt float32) int {
	if s.Len() < 2 {
		return 0
	}
	dt *= in.TimeScale
	for i := range s.accel {
		s.accel[i] = mgl32.Vec3{}
	}

	merges := 0
	for i := 0; i < s.Len()-1; i++ {
		for j := i + 1; j < s.Len(); j++ {
			diff := s.location[j].Sub(s.location[i])
			dist := diff.Len()
			if dist <= s.radius[i]+s.radius[j] {
				erased := in.merge(s, i, j)
				merges++
				if erased == i {
					i-- // rescan slot i; the outer increment brings it back
					break
				}
				j--
				continue
			}
			// dist > 0 here: radii are positive, so coincident centers always merge.
			k := in.G / (dist * dist)
			norm := diff.Mul(1 / dist)
			s.accel[i] = s.accel[i].Add(norm.Mul(s.mass[j] * k))
			s.accel[j] = s.accel[j].Sub(norm.Mul(s.mass[i] * k))
		}
	}

	for i := range s.location {
		s.velocity[i] = s.velocity[i].Add(s.accel[i].Mul(dt))
		s.location[i] = s.location[i].Add(s.velocity[i].Mul(dt))
		s.transform[i] = ModelMatrix(s.location[i], s.radius[i])
	}

	in.stats.Steps++
	in.stats.Merges += merges
	in.stats.SimTime += dt
	return merges
}

// merge folds the pair (i, j) into one body and returns the erased index.
// A light source always survives, whatever the masses; between two plain
// bodies (or two lights) the tie-break keeps j unless i is a light.
func (in *Integrator) merge(s *Store, i, j int) int {
	mi, mj := s.mass[i], s.mass[j]
	m := mi + mj
	v := s.velocity[i].Mul(mi).Add(s.velocity[j].Mul(mj)).Mul(1 / m)

	keep, erase := j, i
	if s.light[i] {
		keep, erase = i, j
	}
	s.mass[keep] = m
	s.radius[keep] = SphereRadius(m, in.Density)
	s.velocity[keep] = v
	s.remove(erase)
	return erase
}

// TotalMass is the sum of all body masses.
func TotalMass(s *Store) float32 {
	var m float32
	for _, v := range s.mass {
		m += v
	}
	return m
}

// TotalMomentum is Σ mass·velocity over all bodies.
func TotalMomentum(s *Store) mgl32.Vec3 {
	var p mgl32.Vec3
	for i, v := range s.velocity {
		p = p.Add(v.Mul(s.mass[i]))
	}
	return p
}
