package components

// String returns the display name for an OrganismKind.
func (k OrganismKind) String() string {
	names := KindNames()
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// KindNames returns the display names for all organism kinds.
// The order matches the OrganismKind constants.
func KindNames() []string {
	return []string{"plant", "fungus", "unit"}
}

// IsStructure reports whether organisms of this kind carry a Structure.
func (k OrganismKind) IsStructure() bool {
	return k == KindPlant || k == KindFungus
}

// String returns the display name for a TerrainKind.
func (t TerrainKind) String() string {
	names := TerrainNames()
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}

// TerrainNames returns the display names for all terrain kinds.
func TerrainNames() []string {
	return []string{"plain", "high", "rocky"}
}

// Passable reports whether organisms can move onto this terrain.
func (t TerrainKind) Passable() bool {
	return t != TerrainRocky
}
