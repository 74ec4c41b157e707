package components

import "github.com/pthm-cable/emergence/config"

// DefaultStructure returns the structure every newly spawned plant or fungus carries.
func DefaultStructure(cfg config.StructureConfig) Structure {
	return Structure{
		UpkeepRate:  cfg.UpkeepRate,
		DespawnMass: cfg.DespawnMass,
	}
}
