package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the window opened by Run.
type Window struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool // use the primary monitor's resolution
	TargetFPS  int
	ExitKey    int32 // raylib key that closes the window; ESC is reserved for the terminal
}

// ClearColor is the background drawn behind the bodies.
var ClearColor = rl.NewColor(0, 3, 3, 255)

// Run opens the window and runs the main loop. Each frame it calls update with the frame time in
// seconds (input, simulation), then clears the screen and calls draw (3D scene, then 2D overlays).
// Returns when the window is closed (window button or ExitKey). onClose, if set, runs while the
// OpenGL context still exists so GPU resources can be unloaded.
func Run(w Window, update func(dt float32), draw func(), onClose func()) {
	if w.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode | rl.FlagMsaa4xHint)
		rl.InitWindow(int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0)), w.Title)
	} else {
		rl.SetConfigFlags(rl.FlagMsaa4xHint)
		rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	}
	defer rl.CloseWindow()

	rl.SetExitKey(w.ExitKey)
	rl.SetTargetFPS(int32(w.TargetFPS))

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(ClearColor)
		draw()
		rl.EndDrawing()
	}
	if onClose != nil {
		onClose()
	}
}
