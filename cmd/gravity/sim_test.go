package main

import (
	"strings"
	"testing"

	"gravity/internal/commands"
	"gravity/internal/debug"
	"gravity/internal/logger"
	"gravity/internal/physics"
	"gravity/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() physics.Config {
	cfg := physics.DefaultConfig()
	cfg.Count = 30
	cfg.Seed = 3
	return cfg
}

func TestSimulationStartsPaused(t *testing.T) {
	log := logger.New("")
	sim := newSimulation(testConfig(), 0, log.Slog())
	before := sim.store.Location(0)

	sim.Update(0.016)
	assert.Equal(t, before, sim.store.Location(0))
	assert.True(t, sim.Stats().Paused)
	assert.Equal(t, 30, sim.Stats().Initial)

	sim.TogglePause()
	sim.Update(0.016)
	assert.NotEqual(t, before, sim.store.Location(0))
	assert.Equal(t, 1, sim.integ.Stats().Steps)
}

func TestSimulationManualSteps(t *testing.T) {
	sim := newSimulation(testConfig(), 0, logger.New("").Slog())
	sim.QueueSteps(2)
	for range 5 {
		sim.Update(1)
	}
	st := sim.integ.Stats()
	assert.Equal(t, 2, st.Steps)
	assert.InDelta(t, 2*manualStepTime, st.SimTime, 1e-6)
}

func TestSimulationFrameTimeCap(t *testing.T) {
	raw := newSimulation(testConfig(), 0, logger.New("").Slog())
	raw.SetPaused(false)
	raw.Update(0.5)
	assert.InDelta(t, 0.5, raw.integ.Stats().SimTime, 1e-6, "no cap integrates the raw delta")

	capped := newSimulation(testConfig(), 0.1, logger.New("").Slog())
	capped.SetPaused(false)
	capped.Update(0.5)
	assert.InDelta(t, 0.1, capped.integ.Stats().SimTime, 1e-6)
	capped.Update(0.02)
	assert.InDelta(t, 0.12, capped.integ.Stats().SimTime, 1e-6)
}

func setup(t *testing.T) (*commands.Registry, *simulation, *overlays, *settings.Settings, *logger.Logger) {
	t.Helper()
	log := logger.New("")
	sim := newSimulation(testConfig(), 0, log.Slog())
	ov := &overlays{debug: debug.New()}
	prefs := settings.Default()
	reg := commands.NewRegistry()
	registerCommands(reg, sim, ov, &prefs, t.TempDir()+"/gravity.yaml", log)
	return reg, sim, ov, &prefs, log
}

func run(t *testing.T, reg *commands.Registry, line string) error {
	t.Helper()
	args, ok := commands.Parse(line)
	require.True(t, ok)
	return reg.Execute(args)
}

func TestCommands(t *testing.T) {
	reg, sim, ov, prefs, log := setup(t)

	require.NoError(t, run(t, reg, "cmd resume"))
	assert.False(t, sim.paused)
	require.NoError(t, run(t, reg, "cmd pause"))
	assert.True(t, sim.paused)

	require.NoError(t, run(t, reg, "cmd step -n 3"))
	assert.Equal(t, 3, sim.pending)
	assert.Error(t, run(t, reg, "cmd step -n 0"))

	require.NoError(t, run(t, reg, "cmd speed -x 2"))
	assert.Equal(t, float32(2), sim.integ.TimeScale)
	assert.Error(t, run(t, reg, "cmd speed -x -1"))

	require.NoError(t, run(t, reg, "cmd fps on"))
	assert.True(t, ov.debug.ShowFPS)
	assert.True(t, prefs.ShowFPS)
	require.NoError(t, run(t, reg, "cmd panel off"))
	assert.False(t, ov.showPanel)
	assert.Error(t, run(t, reg, "cmd memalloc maybe"))
	assert.Error(t, run(t, reg, "cmd memalloc"))

	require.NoError(t, run(t, reg, "cmd stats"))
	lines := log.Lines()
	assert.Contains(t, lines[len(lines)-1], "bodies 30/30")
}

func TestReseedKeepsTimeScale(t *testing.T) {
	reg, sim, _, prefs, _ := setup(t)
	sim.integ.TimeScale = 3
	require.NoError(t, run(t, reg, "cmd reseed"))
	assert.Equal(t, uint64(4), sim.cfg.Seed)
	assert.Equal(t, float32(3), sim.integ.TimeScale)
	assert.Equal(t, 0, sim.integ.Stats().Steps)
	assert.Equal(t, settings.Default().Seed, prefs.Seed, "reseed never touches saved settings")

	require.NoError(t, run(t, reg, "cmd reseed 42"))
	assert.Equal(t, uint64(42), sim.cfg.Seed)
	want := physics.Seed(sim.cfg)
	assert.Equal(t, want.Body(0), sim.store.Body(0))

	require.NoError(t, run(t, reg, "cmd reseed 0"))
	assert.Equal(t, uint64(0), sim.cfg.Seed, "seed 0 is selectable")

	assert.Error(t, run(t, reg, "cmd reseed x"))
	assert.Error(t, run(t, reg, "cmd reseed 1 2"))
	assert.Equal(t, uint64(0), sim.cfg.Seed)
}

func TestStepDefaultsAfterCount(t *testing.T) {
	reg, sim, _, _, _ := setup(t)
	require.NoError(t, run(t, reg, "cmd step -n 3"))
	sim.pending = 0
	require.NoError(t, run(t, reg, "cmd step"))
	assert.Equal(t, 1, sim.pending)
}

func TestSaveAndHelp(t *testing.T) {
	reg, _, _, prefs, log := setup(t)
	prefs.Count = 55
	require.NoError(t, run(t, reg, "cmd save"))
	require.NoError(t, run(t, reg, "cmd help"))
	var joined strings.Builder
	for _, l := range log.Lines() {
		joined.WriteString(l + "\n")
	}
	out := joined.String()
	assert.Contains(t, out, "saved ")
	assert.Contains(t, out, "reseed: restart from seed N")

	assert.ErrorIs(t, run(t, reg, "cmd warp"), commands.ErrUnknown)
}

func TestSaveSkipsSimulationSeed(t *testing.T) {
	log := logger.New("")
	sim := newSimulation(testConfig(), 0, log.Slog())
	prefs := settings.Default()
	path := t.TempDir() + "/gravity.yaml"
	reg := commands.NewRegistry()
	registerCommands(reg, sim, &overlays{debug: debug.New()}, &prefs, path, log)

	require.NoError(t, run(t, reg, "cmd reseed 9"))
	require.NoError(t, run(t, reg, "cmd fps on"))
	require.NoError(t, run(t, reg, "cmd save"))

	got, err := settings.Load(path)
	require.NoError(t, err)
	assert.Equal(t, settings.Default().Seed, got.Seed)
	assert.True(t, got.ShowFPS)
}
