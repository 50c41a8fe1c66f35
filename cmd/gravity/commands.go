package main

import (
	"fmt"
	"strconv"

	"gravity/internal/commands"
	"gravity/internal/debug"
	"gravity/internal/logger"
	"gravity/internal/settings"
)

// overlays holds the on/off state of the 2D layers that commands can toggle.
type overlays struct {
	debug     *debug.Debug
	showPanel bool
}

// registerCommands wires the "cmd ..." vocabulary of the terminal.
// prefs and prefsPath back "cmd save"; only launcher preferences (overlays) are
// written to prefs, never simulation state such as the current seed.
func registerCommands(reg *commands.Registry, sim *simulation, ov *overlays, prefs *settings.Settings, prefsPath string, log *logger.Logger) {
	reg.Register("help", "list commands", nil, func() error {
		for _, line := range reg.Help() {
			log.Log(line)
		}
		return nil
	})

	reg.Register("pause", "stop integrating", nil, func() error {
		sim.SetPaused(true)
		return nil
	})
	reg.Register("resume", "continue integrating", nil, func() error {
		sim.SetPaused(false)
		return nil
	})

	stepFS := commands.NewFlagSet("step")
	stepN := stepFS.Int("n", 1, "number of frames")
	reg.Register("step", "advance -n frames while paused", stepFS, func() error {
		if *stepN < 1 {
			return fmt.Errorf("step: -n must be at least 1")
		}
		sim.SetPaused(true)
		sim.QueueSteps(*stepN)
		return nil
	})

	speedFS := commands.NewFlagSet("speed")
	speedX := speedFS.Float64("x", 1, "time scale factor")
	reg.Register("speed", "set the time scale (-x 2 runs twice as fast)", speedFS, func() error {
		if *speedX <= 0 {
			return fmt.Errorf("speed: -x must be positive")
		}
		sim.integ.TimeScale = float32(*speedX)
		log.Logf("time scale x%.2f", *speedX)
		return nil
	})

	reg.Register("reseed", "restart from seed N, or the next seed when N is omitted", nil, func() error {
		seed := sim.cfg.Seed + 1
		switch args := reg.Args("reseed"); len(args) {
		case 0:
		case 1:
			n, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("reseed: %w", err)
			}
			seed = n
		default:
			return fmt.Errorf("reseed: want at most one seed")
		}
		sim.reseed(seed)
		return nil
	})

	reg.Register("stats", "log body, light and merge counts", nil, func() error {
		st := sim.Stats()
		log.Logf("bodies %d/%d, lights %d, merges %d, sim time %.2f, seed %d",
			st.Bodies, st.Initial, st.Lights, st.Merges, st.SimTime, st.Seed)
		return sim.store.Check()
	})

	reg.Register("fps", "fps on|off", nil, toggle(reg, "fps", func(on bool) {
		ov.debug.SetShowFPS(on)
		prefs.ShowFPS = on
	}))
	reg.Register("memalloc", "memalloc on|off", nil, toggle(reg, "memalloc", func(on bool) {
		ov.debug.SetShowMemAlloc(on)
		prefs.ShowMemAlloc = on
	}))
	reg.Register("panel", "panel on|off", nil, toggle(reg, "panel", func(on bool) {
		ov.showPanel = on
		prefs.ShowPanel = on
	}))

	reg.Register("save", "write current settings to the config file", nil, func() error {
		if err := prefs.Save(prefsPath); err != nil {
			return err
		}
		log.Logf("saved %s", prefsPath)
		return nil
	})
}

// toggle returns a Run func that reads one positional on/off argument.
func toggle(reg *commands.Registry, name string, set func(on bool)) func() error {
	return func() error {
		args := reg.Args(name)
		if len(args) != 1 {
			return fmt.Errorf("%s: want on or off", name)
		}
		on, err := parseOnOff(args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		set(on)
		return nil
	}
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}
