package game

import "log/slog"

// logWorldState logs the current population and driver state.
func (g *Game) logWorldState(reason string) {
	fire, ash := g.sim.Counts()
	slog.Info("world state",
		"reason", reason,
		"tick", g.sim.Tick(),
		"fire", fire,
		"ash", ash,
		"log_cap", g.sim.Params().LogCap,
		"steps_per_update", g.stepsPerUpdate,
		"paused", g.paused,
	)
}
