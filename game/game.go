// Package game owns the ECS world and drives the simulation tick.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/emergence/components"
	"github.com/pthm-cable/emergence/config"
	"github.com/pthm-cable/emergence/systems"
	"github.com/pthm-cable/emergence/telemetry"
)

// Options configures a Simulation.
type Options struct {
	Seed           int64
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // empty disables file output
	SnapshotDir    string  // empty disables snapshots on bookmarks
	LogStats       bool
}

// Simulation holds the complete simulation state.
type Simulation struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand
	size  systems.MapSize

	// Tile layers, one entity per tile at most
	terrainKinds systems.TerrainMap
	terrain      *systems.TileStorage
	organisms    *systems.TileStorage

	// Entity mappers
	terrainMapper   *ecs.Map2[components.TilePos, components.Terrain]
	structureMapper *ecs.Map4[components.Organism, components.TilePos, components.Composition, components.Structure]
	unitMapper      *ecs.Map3[components.Organism, components.TilePos, components.Unit]

	// Component mappers for lookups and optional components
	plantMap      *ecs.Map[components.Plant]
	fungiMap      *ecs.Map[components.Fungi]
	impassableMap *ecs.Map[components.ImpassableTerrain]
	compMap       *ecs.Map[components.Composition]

	structureFilter *ecs.Filter3[components.Organism, components.Composition, components.Structure]
	plantFilter     *ecs.Filter3[components.Organism, components.Composition, components.Plant]

	// Systems
	wander         *systems.WanderSystem
	photosynthesis *systems.PhotosynthesisSystem
	upkeep         *systems.UpkeepSystem
	cleanup        *systems.CleanupSystem

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	lifetimeTracker  *telemetry.LifetimeTracker
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	runInfo          telemetry.RunInfo
	statsCallback    func(telemetry.WindowStats)
	bookmarkCallback func(telemetry.Bookmark)
	snapshotDir      string
	logStats         bool

	// State
	tick       int32
	nextID     uint32
	population [components.NumOrganismKinds]int
}

// NewSimulation builds the world, generates terrain and spawns the initial population.
func NewSimulation(cfg *config.Config, opts Options) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	world := ecs.NewWorld()
	size := systems.MapSize{X: cfg.World.Width, Y: cfg.World.Height}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	s := &Simulation{
		cfg:   cfg,
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		size:  size,

		terrain:   systems.NewTileStorage(size),
		organisms: systems.NewTileStorage(size),

		terrainMapper:   ecs.NewMap2[components.TilePos, components.Terrain](world),
		structureMapper: ecs.NewMap4[components.Organism, components.TilePos, components.Composition, components.Structure](world),
		unitMapper:      ecs.NewMap3[components.Organism, components.TilePos, components.Unit](world),

		plantMap:      ecs.NewMap[components.Plant](world),
		fungiMap:      ecs.NewMap[components.Fungi](world),
		impassableMap: ecs.NewMap[components.ImpassableTerrain](world),
		compMap:       ecs.NewMap[components.Composition](world),

		structureFilter: ecs.NewFilter3[components.Organism, components.Composition, components.Structure](world),
		plantFilter:     ecs.NewFilter3[components.Organism, components.Composition, components.Plant](world),

		photosynthesis: systems.NewPhotosynthesisSystem(world),
		upkeep:         systems.NewUpkeepSystem(world),
		cleanup:        systems.NewCleanupSystem(world),

		collector:        telemetry.NewCollector(statsWindow, cfg.Physics.DT),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		runInfo:          telemetry.NewRunInfo(opts.Seed),
		snapshotDir:      opts.SnapshotDir,
		logStats:         opts.LogStats,
	}
	s.wander = systems.NewWanderSystem(world, s.impassableMap, s.terrain, s.organisms)
	s.wander.OnResolve = s.recordUnitMove

	s.spawnTerrain(systems.GenerateTerrain(size, cfg.Terrain, opts.Seed))

	if err := s.spawnInitialPopulation(); err != nil {
		return nil, err
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	s.outputManager = om
	if om != nil {
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, fmt.Errorf("writing config: %w", err)
		}
		if err := om.WriteRunInfo(s.runInfo); err != nil {
			om.Close()
			return nil, fmt.Errorf("writing run info: %w", err)
		}
	}

	slog.Info("simulation_created",
		"run_id", s.runInfo.ID,
		"seed", opts.Seed,
		"width", size.X,
		"height", size.Y,
		"plants", s.population[components.KindPlant],
		"fungi", s.population[components.KindFungus],
		"units", s.population[components.KindUnit],
	)
	return s, nil
}

// SetStatsCallback registers fn to receive every flushed stats window.
func (s *Simulation) SetStatsCallback(fn func(telemetry.WindowStats)) {
	s.statsCallback = fn
}

// SetBookmarkCallback registers fn to receive every detected bookmark.
func (s *Simulation) SetBookmarkCallback(fn func(telemetry.Bookmark)) {
	s.bookmarkCallback = fn
}

// Unload flushes and closes output files.
func (s *Simulation) Unload() error {
	if s.outputManager == nil {
		return nil
	}
	err := s.outputManager.Close()
	s.outputManager = nil
	return err
}

// Tick returns the current simulation tick.
func (s *Simulation) Tick() int32 {
	return s.tick
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() *config.Config {
	return s.cfg
}

// RunInfo returns the identity of this run.
func (s *Simulation) RunInfo() telemetry.RunInfo {
	return s.runInfo
}

// Size returns the map dimensions.
func (s *Simulation) Size() systems.MapSize {
	return s.size
}

// Population returns the number of living organisms of the given kind.
func (s *Simulation) Population(kind components.OrganismKind) int {
	if kind >= components.NumOrganismKinds {
		return 0
	}
	return s.population[kind]
}

// Alive reports whether entity still exists.
func (s *Simulation) Alive(entity ecs.Entity) bool {
	return s.world.Alive(entity)
}

// Mass returns the mass of a living structure.
func (s *Simulation) Mass(entity ecs.Entity) (float64, bool) {
	if !s.world.Alive(entity) || !s.compMap.Has(entity) {
		return 0, false
	}
	return s.compMap.Get(entity).Mass, true
}

// OrganismAt returns the organism occupying pos, if any.
func (s *Simulation) OrganismAt(pos components.TilePos) (ecs.Entity, bool) {
	return s.organisms.Get(pos)
}

// TerrainAt returns the terrain kind at pos. Tiles outside the map read as rocky.
func (s *Simulation) TerrainAt(pos components.TilePos) components.TerrainKind {
	return s.terrainKinds.At(pos)
}
