package game

import (
	"log/slog"

	"github.com/pthm-cable/emergence/components"
)

// LogWorldState logs the current population and biomass.
func (s *Simulation) LogWorldState() {
	c := s.census()

	var plantMass, fungusMass float64
	for _, m := range c.PlantMasses {
		plantMass += m
	}
	for _, m := range c.FungusMasses {
		fungusMass += m
	}

	slog.Info("world_state",
		"tick", s.tick,
		"sim_time", float64(s.tick)*s.cfg.Physics.DT,
		"plants", s.population[components.KindPlant],
		"fungi", s.population[components.KindFungus],
		"units", s.population[components.KindUnit],
		"plant_mass", plantMass,
		"fungus_mass", fungusMass,
		"tracked", s.lifetimeTracker.Count(),
	)
}
