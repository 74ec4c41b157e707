// Package graphics describes how simulation state maps onto sprite assets and tilemap layers.
// It holds data only; drawing is left to whichever front-end consumes it.
package graphics

import (
	"path"

	"github.com/pthm-cable/emergence/components"
)

// SpriteIndex identifies one sprite within a sprite family.
type SpriteIndex interface {
	RootPath() string
	LeafPath() string
}

// AssetPath returns the asset-relative path of a sprite.
func AssetPath(s SpriteIndex) string {
	return path.Join(s.RootPath(), s.LeafPath())
}

// TerrainSprite enumerates terrain sprites.
type TerrainSprite uint8

const (
	TerrainSpritePlain TerrainSprite = iota
	TerrainSpriteHigh
	TerrainSpriteRocky
)

// AllTerrainSprites returns every terrain sprite.
func AllTerrainSprites() []TerrainSprite {
	return []TerrainSprite{TerrainSpritePlain, TerrainSpriteHigh, TerrainSpriteRocky}
}

// TerrainSpriteFor returns the sprite for a terrain kind.
func TerrainSpriteFor(k components.TerrainKind) TerrainSprite {
	switch k {
	case components.TerrainHigh:
		return TerrainSpriteHigh
	case components.TerrainRocky:
		return TerrainSpriteRocky
	default:
		return TerrainSpritePlain
	}
}

func (TerrainSprite) RootPath() string { return "terrain" }

func (s TerrainSprite) LeafPath() string {
	switch s {
	case TerrainSpriteHigh:
		return "tile-high.png"
	case TerrainSpriteRocky:
		return "tile-rocky.png"
	default:
		return "tile-plain.png"
	}
}

// OrganismSprite enumerates organism sprites.
type OrganismSprite uint8

const (
	OrganismSpritePlant OrganismSprite = iota
	OrganismSpriteFungus
	OrganismSpriteUnit
)

// AllOrganismSprites returns every organism sprite.
func AllOrganismSprites() []OrganismSprite {
	return []OrganismSprite{OrganismSpritePlant, OrganismSpriteFungus, OrganismSpriteUnit}
}

// OrganismSpriteFor returns the sprite for an organism kind.
func OrganismSpriteFor(k components.OrganismKind) OrganismSprite {
	switch k {
	case components.KindFungus:
		return OrganismSpriteFungus
	case components.KindUnit:
		return OrganismSpriteUnit
	default:
		return OrganismSpritePlant
	}
}

func (OrganismSprite) RootPath() string { return "organisms" }

func (s OrganismSprite) LeafPath() string {
	switch s {
	case OrganismSpriteFungus:
		return "tile-fungus.png"
	case OrganismSpriteUnit:
		return "tile-ant.png"
	default:
		return "tile-plant.png"
	}
}

// ProduceSprite enumerates produce sprites.
type ProduceSprite uint8

const (
	// ProduceSpriteFood represents food.
	ProduceSpriteFood ProduceSprite = iota
)

// AllProduceSprites returns every produce sprite.
func AllProduceSprites() []ProduceSprite {
	return []ProduceSprite{ProduceSpriteFood}
}

func (ProduceSprite) RootPath() string { return "produce" }

func (ProduceSprite) LeafPath() string { return "tile-food-balls.png" }
