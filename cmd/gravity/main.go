package main

import (
	"flag"
	"fmt"
	"os"

	"gravity/internal/commands"
	"gravity/internal/debug"
	"gravity/internal/fonts"
	"gravity/internal/graphics"
	"gravity/internal/logger"
	"gravity/internal/scene"
	"gravity/internal/settings"
	"gravity/internal/terminal"
	"gravity/internal/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// app ties the simulation to the window: input, 3D scene and 2D overlays.
type app struct {
	sim   *simulation
	scn   *scene.Scene
	term  *terminal.Terminal
	ov    *overlays
	ui    *ui.Engine
	panel *ui.StatsPanel
	log   *logger.Logger
	nodes []*ui.Node

	fontName   string
	fontLoaded bool
	drawFailed bool
}

func main() {
	configPath := flag.String("config", settings.DefaultPath, "settings file (.yaml or .toml)")
	seed := flag.Uint64("seed", 0, "random seed (overrides the settings file)")
	count := flag.Int("count", 0, "number of bodies (overrides the settings file)")
	flag.Parse()

	log := logger.New(logger.DefaultPath)
	slog := log.Slog()

	prefs, err := settings.Load(*configPath)
	if err != nil {
		fail(log, err)
	}
	// saved is what "cmd save" writes back: the file's values plus overlay
	// toggles, without environment or flag overrides.
	saved := prefs
	fromDotenv, err := prefs.ApplyEnv(".env")
	if err != nil {
		fail(log, err)
	}
	if len(fromDotenv) > 0 {
		slog.Info("dotenv overrides", "keys", fromDotenv)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			prefs.Seed = *seed
		case "count":
			prefs.Count = *count
		}
	})
	cfg, err := prefs.Physics()
	if err != nil {
		fail(log, err)
	}
	slog.Info("settings", "config", *configPath, "count", cfg.Count, "seed", cfg.Seed,
		"g", cfg.G, "density", cfg.Density, "shell", cfg.Shell)

	a := &app{
		sim:      newSimulation(cfg, prefs.MaxFrameTime, slog),
		scn:      scene.New(prefs.FOV, prefs.AmbientColor()),
		ov:       &overlays{debug: debug.New(), showPanel: prefs.ShowPanel},
		ui:       ui.New(),
		panel:    ui.NewStatsPanel(),
		log:      log,
		fontName: prefs.Font,
	}
	a.ov.debug.SetShowFPS(prefs.ShowFPS)
	a.ov.debug.SetShowMemAlloc(prefs.ShowMemAlloc)
	if err := a.ui.LoadDefaultCSS(); err != nil {
		slog.Warn("default stylesheet", "err", err)
	}

	reg := commands.NewRegistry()
	registerCommands(reg, a.sim, a.ov, &saved, *configPath, log)
	a.term = terminal.New(log, reg)

	graphics.Run(graphics.Window{
		Title:      "Gravity",
		Width:      prefs.Width,
		Height:     prefs.Height,
		Fullscreen: prefs.Fullscreen,
		TargetFPS:  60,
		ExitKey:    rl.KeyF10,
	}, a.update, a.draw, a.close)
}

// fail logs err and exits before any window is opened.
func fail(log *logger.Logger, err error) {
	log.Log(err.Error())
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func (a *app) update(dt float32) {
	a.term.Update()
	free := !a.term.IsOpen()
	if free && rl.IsKeyPressed(rl.KeyZ) {
		a.sim.TogglePause()
	}
	a.scn.Update(free)
	a.sim.Update(dt)
}

func (a *app) draw() {
	a.ensureFont()
	if err := a.scn.Draw(a.sim.store); err != nil && !a.drawFailed {
		a.drawFailed = true
		a.log.Slog().Error("draw", "err", err)
	}
	a.nodes = a.panel.AppendNodes(a.nodes[:0], a.ov.showPanel, a.sim.Stats())
	a.ui.SetNodes(a.nodes)
	a.ui.Draw()
	a.term.Draw()
	a.ov.debug.Draw()
}

// ensureFont loads the configured font on the first frame (after the OpenGL context exists)
// and shares it with every 2D layer. Missing fonts keep raylib's default.
func (a *app) ensureFont() {
	if a.fontLoaded || a.fontName == "" {
		return
	}
	a.fontLoaded = true
	path, err := fonts.Find(a.fontName)
	if err != nil {
		a.log.Slog().Warn("font not found", "font", a.fontName)
		return
	}
	if err := a.ui.LoadFont(path); err != nil {
		a.log.Slog().Warn("font load failed", "path", path, "err", err)
		return
	}
	font := a.ui.Font()
	a.term.SetFont(font)
	a.ov.debug.SetFont(font)
}

func (a *app) close() {
	a.scn.Unload()
	a.ui.Unload()
}
