package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population counts at window end
	PlantCount  int `csv:"plants"`
	FungusCount int `csv:"fungi"`
	UnitCount   int `csv:"units"`

	// Events during window
	PlantBirths  int `csv:"plant_births"`
	FungusBirths int `csv:"fungus_births"`
	PlantDeaths  int `csv:"plant_deaths"`
	FungusDeaths int `csv:"fungus_deaths"`

	// Movement
	Moves       int     `csv:"moves"`
	Blocked     int     `csv:"blocked"`
	BlockedRate float64 `csv:"blocked_rate"`

	// Mass distribution (sampled at window end)
	PlantMassMean float64 `csv:"plant_mass_mean"`
	PlantMassStd  float64 `csv:"plant_mass_std"`
	PlantMassP10  float64 `csv:"plant_mass_p10"`
	PlantMassP50  float64 `csv:"plant_mass_p50"`
	PlantMassP90  float64 `csv:"plant_mass_p90"`
	FungusMass    float64 `csv:"fungus_mass_mean"`
	TotalBiomass  float64 `csv:"total_biomass"`

	// Despawned during window
	MeanLifespan float64 `csv:"mean_lifespan"`
	MeanPeakMass float64 `csv:"mean_peak_mass"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// MassStats summarizes a mass distribution.
type MassStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Total         float64
}

// ComputeMassStats calculates mean, std, total and percentiles from mass values.
func ComputeMassStats(values []float64) MassStats {
	n := len(values)
	if n == 0 {
		return MassStats{}
	}

	var ms MassStats
	ms.Total = floats.Sum(values)
	if n == 1 {
		ms.Mean = values[0]
	} else {
		ms.Mean, ms.Std = stat.MeanStdDev(values, nil)
	}

	// Sort for percentiles
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	ms.P10 = Percentile(sorted, 0.10)
	ms.P50 = Percentile(sorted, 0.50)
	ms.P90 = Percentile(sorted, 0.90)

	return ms
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("plants", s.PlantCount),
		slog.Int("fungi", s.FungusCount),
		slog.Int("units", s.UnitCount),
		slog.Int("plant_births", s.PlantBirths),
		slog.Int("fungus_births", s.FungusBirths),
		slog.Int("plant_deaths", s.PlantDeaths),
		slog.Int("fungus_deaths", s.FungusDeaths),
		slog.Int("moves", s.Moves),
		slog.Int("blocked", s.Blocked),
		slog.Float64("blocked_rate", s.BlockedRate),
		slog.Float64("plant_mass_mean", s.PlantMassMean),
		slog.Float64("plant_mass_std", s.PlantMassStd),
		slog.Float64("plant_mass_p10", s.PlantMassP10),
		slog.Float64("plant_mass_p50", s.PlantMassP50),
		slog.Float64("plant_mass_p90", s.PlantMassP90),
		slog.Float64("fungus_mass_mean", s.FungusMass),
		slog.Float64("total_biomass", s.TotalBiomass),
		slog.Float64("mean_lifespan", s.MeanLifespan),
		slog.Float64("mean_peak_mass", s.MeanPeakMass),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
