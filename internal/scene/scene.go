package scene

import (
	"fmt"

	"gravity/internal/physics"
	"gravity/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Clip planes of the perspective projection.
const (
	nearPlane = 0.01
	farPlane  = 5000
)

// Scene holds a 3D fly camera and draws the bodies of a store. Update runs camera logic;
// Draw renders between BeginMode3D and EndMode3D. Based on raylib examples/core/core_3d_camera_free.
type Scene struct {
	Camera  rl.Camera3D
	Ambient mgl32.Vec3

	cursorDone bool
	renderer   *render.Renderer
	frame      render.Frame
	failed     error // renderer creation error; drawing is skipped once set
}

// New returns a scene with a perspective camera of fov degrees looking at the origin from +Z.
func New(fov float32, ambient mgl32.Vec3) *Scene {
	s := &Scene{Ambient: ambient}
	s.Camera.Position = rl.NewVector3(0, 0, 150)
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = fov
	s.Camera.Projection = rl.CameraPerspective
	return s
}

// Update runs once per frame. When active, raylib UpdateCamera with CameraFree moves the camera
// with mouse and WASD. Cursor is disabled on the first call so the mouse is captured.
// Pass active false while the terminal has focus.
func (s *Scene) Update(active bool) {
	if !s.cursorDone {
		rl.DisableCursor()
		s.cursorDone = true
	}
	if active {
		rl.UpdateCamera(&s.Camera, rl.CameraFree)
	}
}

// View returns the camera's view matrix.
func (s *Scene) View() mgl32.Mat4 {
	return mgl32.LookAtV(vec3(s.Camera.Position), vec3(s.Camera.Target), vec3(s.Camera.Up))
}

// Projection returns the perspective projection for the given viewport aspect ratio.
func (s *Scene) Projection(aspect float32) mgl32.Mat4 {
	return Perspective(s.Camera.Fovy, aspect)
}

// Perspective builds the projection used for every frame: fovy in degrees, near 0.01, far 5000.
func Perspective(fovy, aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(fovy), aspect, nearPlane, farPlane)
}

// ensureRenderer compiles the sphere shader the first time we Draw, so that shader and mesh
// creation run after the window/OpenGL context exists. Array sizes come from the store's
// initial body and light counts; a reseeded store with other counts gets a new renderer.
func (s *Scene) ensureRenderer(store *physics.Store) error {
	if s.failed != nil {
		return s.failed
	}
	if s.renderer != nil {
		e, l := s.renderer.Capacity()
		if e == max(store.Capacity(), 1) && l == max(store.LightCapacity(), 1) {
			return nil
		}
		s.renderer.Unload()
		s.renderer = nil
	}
	r, err := render.NewRenderer(store.Capacity(), store.LightCapacity())
	if err != nil {
		s.failed = err
		return err
	}
	s.renderer = r
	return nil
}

// Draw renders every body of store. Call after ClearBackground and before 2D overlays.
// The returned error is non-nil when the renderer could not be created or the store outgrew it;
// the caller logs it once.
func (s *Scene) Draw(store *physics.Store) error {
	if err := s.ensureRenderer(store); err != nil {
		return err
	}
	aspect := float32(rl.GetScreenWidth()) / float32(max(rl.GetScreenHeight(), 1))
	s.frame.Update(store, s.View(), s.Projection(aspect), s.Ambient)
	if err := s.renderer.Apply(&s.frame); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	rl.BeginMode3D(s.Camera)
	s.renderer.Draw(&s.frame)
	rl.EndMode3D()
	return nil
}

// Unload frees GPU resources. Call before the window closes.
func (s *Scene) Unload() {
	if s.renderer != nil {
		s.renderer.Unload()
		s.renderer = nil
	}
}

func vec3(v rl.Vector3) mgl32.Vec3 { return mgl32.Vec3{v.X, v.Y, v.Z} }
