package render

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Sphere mesh resolution. Every body is an instance of one unit sphere.
const (
	sphereRings  = 16
	sphereSlices = 16
)

// uniformLocs caches shader locations so Apply does no string lookups per frame
// for the scalar uniforms. Matrix arrays need one location per element.
type uniformLocs struct {
	projection, view  int32
	colors, locations int32
	isLight, lights   int32
	radii, remaining  int32
	ambient           int32
	models, normals   []int32
}

// Renderer draws every body as one instanced sphere mesh. Uniform array sizes
// are fixed at construction, so it only accepts frames that fit them.
// Must be created after the window (OpenGL context) exists.
type Renderer struct {
	entities int
	lights   int
	mesh     rl.Mesh
	mtl      rl.Material
	locs     uniformLocs

	// Scratch buffers reused by Apply (cgo-safe: passed as slices).
	vec3Buf  []float32
	floatBuf []float32
	intBuf   []float32
	xforms   []rl.Matrix
}

// NewRenderer compiles the sphere shader for entities bodies and lights
// light sources and allocates the sphere mesh.
func NewRenderer(entities, lights int) (*Renderer, error) {
	vs := Template(sphereVS, entities, lights)
	fs := Template(sphereFS, entities, lights)
	shader := rl.LoadShaderFromMemory(vs, fs)
	if !rl.IsShaderValid(shader) {
		return nil, fmt.Errorf("render: sphere shader failed to compile for %d bodies, %d lights", entities, lights)
	}
	r := &Renderer{
		entities: max(entities, 1),
		lights:   max(lights, 1),
		mesh:     rl.GenMeshSphere(1, sphereRings, sphereSlices),
		mtl:      rl.LoadMaterialDefault(),
	}
	r.mtl.Shader = shader
	r.locs = uniformLocs{
		projection: rl.GetShaderLocation(shader, "projection"),
		view:       rl.GetShaderLocation(shader, "view"),
		colors:     rl.GetShaderLocation(shader, "modelColors"),
		locations:  rl.GetShaderLocation(shader, "locations"),
		isLight:    rl.GetShaderLocation(shader, "isLightSource"),
		lights:     rl.GetShaderLocation(shader, "lightSourceIndices"),
		radii:      rl.GetShaderLocation(shader, "radii"),
		remaining:  rl.GetShaderLocation(shader, "remainingLights"),
		ambient:    rl.GetShaderLocation(shader, "ambientColor"),
		models:     make([]int32, r.entities),
		normals:    make([]int32, r.entities),
	}
	for i := range r.entities {
		r.locs.models[i] = rl.GetShaderLocation(shader, fmt.Sprintf("models[%d]", i))
		r.locs.normals[i] = rl.GetShaderLocation(shader, fmt.Sprintf("normals[%d]", i))
	}
	return r, nil
}

// Capacity returns the body and light-source counts the shader was compiled for.
func (r *Renderer) Capacity() (entities, lights int) { return r.entities, r.lights }

// Apply uploads every uniform of f. It rejects frames that would index past
// the compiled arrays.
func (r *Renderer) Apply(f *Frame) error {
	if !f.Fits(r.entities, r.lights) {
		return fmt.Errorf("render: frame of %d bodies, %d lights exceeds capacity %d/%d",
			f.Count, len(f.Lights), r.entities, r.lights)
	}
	shader := r.mtl.Shader
	setMatrix(shader, r.locs.projection, f.Projection)
	setMatrix(shader, r.locs.view, f.View)
	for i := range f.Count {
		setMatrix(shader, r.locs.models[i], f.Models[i])
		setMatrix(shader, r.locs.normals[i], f.Normals[i])
	}
	if f.Count > 0 {
		r.vec3Buf = flattenVec3(r.vec3Buf[:0], f.Colors)
		setVector(shader, r.locs.colors, r.vec3Buf, rl.ShaderUniformVec3, f.Count)
		r.vec3Buf = flattenVec3(r.vec3Buf[:0], f.Locations)
		setVector(shader, r.locs.locations, r.vec3Buf, rl.ShaderUniformVec3, f.Count)
		r.floatBuf = append(r.floatBuf[:0], f.Radii...)
		setVector(shader, r.locs.radii, r.floatBuf, rl.ShaderUniformFloat, f.Count)
		r.intBuf = intBits(r.intBuf[:0], f.IsLight)
		setVector(shader, r.locs.isLight, r.intBuf, rl.ShaderUniformInt, f.Count)
	}
	if len(f.Lights) > 0 {
		r.intBuf = intBits(r.intBuf[:0], f.Lights)
		setVector(shader, r.locs.lights, r.intBuf, rl.ShaderUniformInt, len(f.Lights))
	}
	remaining := intBits(nil, []int32{f.RemainingLights()})
	setVector(shader, r.locs.remaining, remaining, rl.ShaderUniformInt, 1)
	amb := [3]float32{f.Ambient[0], f.Ambient[1], f.Ambient[2]}
	setVector(shader, r.locs.ambient, amb[:], rl.ShaderUniformVec3, 1)
	return nil
}

// Draw issues one instanced draw of f.Count spheres. Call Apply first with
// the same frame. Must be called between BeginMode3D and EndMode3D.
func (r *Renderer) Draw(f *Frame) {
	if f.Count == 0 {
		return
	}
	r.xforms = r.xforms[:0]
	for i := range f.Count {
		r.xforms = append(r.xforms, toMatrix(f.Models[i]))
	}
	rl.DrawMeshInstanced(r.mesh, r.mtl, r.xforms, f.Count)
}

// Unload frees the mesh, shader and material.
func (r *Renderer) Unload() {
	rl.UnloadMesh(&r.mesh)
	rl.UnloadMaterial(r.mtl)
}

func setMatrix(shader rl.Shader, loc int32, m mgl32.Mat4) {
	if loc < 0 {
		return
	}
	rl.SetShaderValueMatrix(shader, loc, toMatrix(m))
}

func setVector(shader rl.Shader, loc int32, v []float32, kind rl.ShaderUniformDataType, count int) {
	if loc < 0 {
		return
	}
	rl.SetShaderValueV(shader, loc, v, kind, int32(count))
}

// toMatrix converts a column-major mgl32 matrix to raylib's layout
// (M0..M3 is the first column).
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func flattenVec3(dst []float32, vs []mgl32.Vec3) []float32 {
	for _, v := range vs {
		dst = append(dst, v[0], v[1], v[2])
	}
	return dst
}

// intBits packs ints into float32 slots bit-for-bit; SetShaderValueV only
// takes []float32 and hands the raw memory to glUniform1iv.
func intBits(dst []float32, vs []int32) []float32 {
	for _, v := range vs {
		dst = append(dst, math.Float32frombits(uint32(v)))
	}
	return dst
}
