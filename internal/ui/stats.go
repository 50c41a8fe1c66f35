package ui

import "fmt"

// Stats is the simulation snapshot shown in the stats panel.
// Pass this from the game layer; ui does not depend on physics.
type Stats struct {
	Bodies    int
	Initial   int
	Lights    int
	Merges    int
	SimTime   float32
	TimeScale float32
	Seed      uint64
	Paused    bool
}

// StatsPanel is a top-left panel with body, light and merge counts. It owns its nodes and
// updates their text when AppendNodes is called with visible true.
type StatsPanel struct {
	panel  *Node
	title  *Node
	bodies *Node
	lights *Node
	merges *Node
	time   *Node
	scale  *Node
	state  *Node
	banner *Node
}

// NewStatsPanel creates a StatsPanel with nodes styled by the engine's CSS (.stats, .stats-line, #stats-bodies, etc.).
func NewStatsPanel() *StatsPanel {
	return &StatsPanel{
		panel:  NewNode("panel", "stats", "", ""),
		title:  NewNode("label", "stats-title", "", "Gravity"),
		bodies: NewNode("label", "stats-line", "stats-bodies", ""),
		lights: NewNode("label", "stats-line", "stats-lights", ""),
		merges: NewNode("label", "stats-line", "stats-merges", ""),
		time:   NewNode("label", "stats-line", "stats-time", ""),
		scale:  NewNode("label", "stats-line", "stats-scale", ""),
		state:  NewNode("label", "stats-line", "stats-state", ""),
		banner: NewNode("label", "banner", "", "PAUSED (Z to run)"),
	}
}

// AppendNodes appends panel nodes to dst when visible is true, after updating labels from st.
// The paused banner is appended whenever st.Paused, even with the panel hidden.
// Call every frame so visibility and content stay in sync.
func (sp *StatsPanel) AppendNodes(dst []*Node, visible bool, st Stats) []*Node {
	if visible {
		sp.bodies.Text = fmt.Sprintf("Bodies: %d / %d", st.Bodies, st.Initial)
		sp.lights.Text = fmt.Sprintf("Lights: %d", st.Lights)
		sp.merges.Text = fmt.Sprintf("Merges: %d", st.Merges)
		sp.time.Text = fmt.Sprintf("Sim time: %.1f", st.SimTime)
		sp.scale.Text = fmt.Sprintf("Time scale: x%.2f", st.TimeScale)
		if st.Paused {
			sp.state.Text = fmt.Sprintf("Paused (seed %d)", st.Seed)
		} else {
			sp.state.Text = fmt.Sprintf("Running (seed %d)", st.Seed)
		}
		dst = append(dst, sp.panel, sp.title, sp.bodies, sp.lights, sp.merges, sp.time, sp.scale, sp.state)
	}
	if st.Paused {
		dst = append(dst, sp.banner)
	}
	return dst
}
