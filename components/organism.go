package components

// OrganismKind identifies what an organism is for spawning, telemetry and sprites.
type OrganismKind uint8

const (
	KindPlant OrganismKind = iota
	KindFungus
	KindUnit
	NumOrganismKinds
)

// Organism holds identity shared by every organism entity.
type Organism struct {
	ID        uint32
	Kind      OrganismKind
	BirthTick int32
}
