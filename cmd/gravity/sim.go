package main

import (
	"log/slog"

	"gravity/internal/physics"
	"gravity/internal/ui"
)

// manualStepTime is the dt used by "cmd step" while paused.
const manualStepTime = float32(1) / 60

// simulation owns the body store and the pause/step state of the main loop.
// It starts paused; Z (or "cmd resume") starts integrating.
type simulation struct {
	cfg     physics.Config
	store   *physics.Store
	integ   *physics.Integrator
	paused  bool
	pending int     // manual steps queued while paused
	maxDt   float32 // per-frame dt cap while running; 0 = raw frame delta
	log     *slog.Logger
}

func newSimulation(cfg physics.Config, maxDt float32, log *slog.Logger) *simulation {
	s := &simulation{cfg: cfg, maxDt: maxDt, log: log, paused: true}
	s.reseed(cfg.Seed)
	return s
}

// reseed replaces the store with a fresh one from seed and resets the stats.
// The time scale carries over.
func (s *simulation) reseed(seed uint64) {
	scale := float32(1)
	if s.integ != nil {
		scale = s.integ.TimeScale
	}
	s.cfg.Seed = seed
	s.store = physics.Seed(s.cfg)
	s.integ = physics.NewIntegrator(s.cfg.G, s.cfg.Density)
	s.integ.TimeScale = scale
	s.pending = 0
	s.log.Info("seeded", "seed", seed, "bodies", s.store.Len(), "lights", s.store.LightCount())
}

// Update advances the simulation by one frame of dt seconds unless paused.
func (s *simulation) Update(dt float32) {
	switch {
	case !s.paused:
		if s.maxDt > 0 {
			dt = min(dt, s.maxDt)
		}
	case s.pending > 0:
		s.pending--
		dt = manualStepTime
	default:
		return
	}
	if merged := s.integ.Step(s.store, dt); merged > 0 {
		s.log.Info("merged", "count", merged, "bodies", s.store.Len(), "lights", s.store.LightCount())
	}
}

// SetPaused changes the pause state and logs transitions.
func (s *simulation) SetPaused(p bool) {
	if s.paused == p {
		return
	}
	s.paused = p
	s.pending = 0
	if p {
		s.log.Info("paused", "sim_time", s.integ.Stats().SimTime)
	} else {
		s.log.Info("running")
	}
}

// TogglePause flips the pause state (the Z key).
func (s *simulation) TogglePause() { s.SetPaused(!s.paused) }

// QueueSteps schedules n manual steps; they run one per frame while paused.
func (s *simulation) QueueSteps(n int) {
	if n > 0 {
		s.pending += n
	}
}

// Stats returns the snapshot shown in the stats panel.
func (s *simulation) Stats() ui.Stats {
	st := s.integ.Stats()
	return ui.Stats{
		Bodies:    s.store.Len(),
		Initial:   s.store.Capacity(),
		Lights:    s.store.LightCount(),
		Merges:    st.Merges,
		SimTime:   st.SimTime,
		TimeScale: s.integ.TimeScale,
		Seed:      s.cfg.Seed,
		Paused:    s.paused,
	}
}
