// Package components defines ECS components for the simulation.
package components

// Composition holds the mass-bearing state of an organism.
// Mass may be driven to or below zero within a tick before cleanup removes the entity.
type Composition struct {
	Mass float64
}

// Structure marks a living, rooted organism that pays upkeep and despawns when starved.
// Immutable after spawn.
type Structure struct {
	UpkeepRate  float64 // fraction of mass lost per second
	DespawnMass float64 // absolute mass at or below which the entity is removed
}

// Plant marks a structure that grows by photosynthesis.
type Plant struct {
	PhotosynthesisRate float64
}

// Fungi tag component for efficient querying.
type Fungi struct{}

// Unit tag component for mobile organisms.
type Unit struct{}
