package game

import "github.com/pthm-cable/emergence/components"

// structureTemplate lists the optional components a structure kind carries
// on top of Organism, TilePos, Composition and Structure.
type structureTemplate struct {
	plant      bool
	fungi      bool
	impassable bool
}

var structureTemplates = map[components.OrganismKind]structureTemplate{
	components.KindPlant:  {plant: true, impassable: true},
	components.KindFungus: {fungi: true},
}
