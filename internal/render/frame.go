package render

import (
	"gravity/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
)

// Frame is one snapshot of the store in the shape the sphere shader expects.
// Field comments give the uniform each field is uploaded to.
type Frame struct {
	Projection mgl32.Mat4   // projection
	View       mgl32.Mat4   // view
	Colors     []mgl32.Vec3 // modelColors
	Locations  []mgl32.Vec3 // locations
	Models     []mgl32.Mat4 // models
	Normals    []mgl32.Mat4 // normals (inverse-transpose of models)
	IsLight    []int32      // isLightSource
	Lights     []int32      // lightSourceIndices
	Radii      []float32    // radii
	Ambient    mgl32.Vec3   // ambientColor

	// Count is the number of live bodies: the length of every per-body
	// slice and the instance count of the draw call.
	Count int
}

// RemainingLights is the remainingLights uniform.
func (f *Frame) RemainingLights() int32 { return int32(len(f.Lights)) }

// Fits reports whether the frame stays inside arrays compiled for
// entities bodies and lights light sources.
func (f *Frame) Fits(entities, lights int) bool {
	return f.Count <= entities && len(f.Lights) <= max(lights, 1)
}

// BuildFrame returns a new Frame for s.
func BuildFrame(s *physics.Store, view, projection mgl32.Mat4, ambient mgl32.Vec3) Frame {
	var f Frame
	f.Update(s, view, projection, ambient)
	return f
}

// Update refills f from s, reusing its slices so the per-frame path does not
// allocate once the slices have grown to the initial body count.
func (f *Frame) Update(s *physics.Store, view, projection mgl32.Mat4, ambient mgl32.Vec3) {
	n := s.Len()
	f.Projection = projection
	f.View = view
	f.Ambient = ambient
	f.Count = n

	f.Colors = f.Colors[:0]
	f.Locations = f.Locations[:0]
	f.Models = f.Models[:0]
	f.Normals = f.Normals[:0]
	f.IsLight = f.IsLight[:0]
	f.Radii = f.Radii[:0]
	for i := range n {
		m := s.Transform(i)
		f.Colors = append(f.Colors, s.Color(i))
		f.Locations = append(f.Locations, s.Location(i))
		f.Models = append(f.Models, m)
		f.Normals = append(f.Normals, m.Inv().Transpose())
		f.IsLight = append(f.IsLight, boolToInt(s.IsLight(i)))
		f.Radii = append(f.Radii, s.Radius(i))
	}

	f.Lights = f.Lights[:0]
	for k := range s.LightCount() {
		f.Lights = append(f.Lights, int32(s.LightIndex(k)))
	}
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
