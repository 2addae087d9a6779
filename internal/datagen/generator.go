// Package datagen produces synthetic fleet datasets conforming to the
// source table schemas. It is a stand-in for operator-supplied CSV files:
// any data source satisfying the same schemas can replace it.
package datagen

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"fleetcli/pkg/contracts/domain"
)

var vesselTypes = []string{"Cargo", "Naval", "Submarine", "Tanker", "Passenger"}

var fuelTypes = []string{"Heavy Fuel Oil", "Marine Diesel", "LNG", "Nuclear"}

var maintenanceTypes = []string{
	"Engine Overhaul", "Hull Inspection", "Propulsion Repair",
	"Electrical System", "Navigation Equipment",
}

var riskCategories = []string{"Low", "Medium", "High"}

var incidentTypes = []string{"Mechanical Failure", "Preventive", "Inspection", "Emergency"}

// Generator builds the five synthetic source tables from a private,
// explicitly seeded random stream, so identical parameters always yield
// identical datasets.
type Generator struct {
	rng        *rand.Rand
	numVessels int
	navRecords int
	start      time.Time
	logger     *slog.Logger
}

// Option customizes a Generator.
type Option func(*Generator)

// WithStart pins the start of the 30-day observation window. The default
// is thirty days before now, truncated to the hour.
func WithStart(start time.Time) Option {
	return func(g *Generator) { g.start = start }
}

// WithLogger sets the generator's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// NewGenerator creates a generator for numVessels vessels and navRecords
// total navigation rows, driven by the given seed.
func NewGenerator(seed int64, numVessels, navRecords int, opts ...Option) *Generator {
	g := &Generator{
		rng:        rand.New(rand.NewSource(seed)),
		numVessels: numVessels,
		navRecords: navRecords,
		start:      time.Now().Add(-30 * 24 * time.Hour).Truncate(time.Hour),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds all five source tables.
func (g *Generator) Generate() *domain.SourceTables {
	tables := &domain.SourceTables{}
	tables.Vessels = g.generateVessels()
	tables.Navigation = g.generateNavigation(tables.Vessels)
	tables.Environment = g.generateEnvironment()
	tables.Fuel = g.generateFuel(tables.Vessels)
	tables.Maintenance = g.generateMaintenance(tables.Vessels)

	g.logger.Info("generated synthetic datasets",
		slog.Int("vessels", len(tables.Vessels)),
		slog.Int("navigation_records", len(tables.Navigation)),
		slog.Int("environment_records", len(tables.Environment)),
		slog.Int("fuel_records", len(tables.Fuel)),
		slog.Int("maintenance_records", len(tables.Maintenance)))

	return tables
}

func (g *Generator) generateVessels() []domain.VesselSpec {
	vessels := make([]domain.VesselSpec, 0, g.numVessels)
	for i := 0; i < g.numVessels; i++ {
		vessels = append(vessels, domain.VesselSpec{
			VesselID:         fmt.Sprintf("V%03d", i+1),
			Type:             vesselTypes[g.rng.Intn(len(vesselTypes))],
			EnginePowerKW:    float64(g.intBetween(5000, 50000)),
			FuelType:         fuelTypes[g.rng.Intn(len(fuelTypes))],
			MaxDepthMeters:   float64(g.intBetween(100, 3000)),
			LoadCapacityTons: float64(g.intBetween(5000, 50000)),
			LengthMeters:     g.uniform(50, 300),
			YearBuilt:        g.intBetween(2000, 2023),
		})
	}
	return vessels
}

func (g *Generator) generateNavigation(vessels []domain.VesselSpec) []domain.NavigationRecord {
	perVessel := g.recordsPerVessel()
	records := make([]domain.NavigationRecord, 0, len(vessels)*perVessel)
	for _, vessel := range vessels {
		for i := 0; i < perVessel; i++ {
			records = append(records, domain.NavigationRecord{
				VesselID:               vessel.VesselID,
				Timestamp:              g.start.Add(time.Duration(i) * time.Hour),
				Latitude:               g.uniform(-90, 90),
				Longitude:              g.uniform(-180, 180),
				SpeedKnots:             g.uniform(0, 25),
				EngineRPM:              float64(g.intBetween(100, 3000)),
				DepthMeters:            g.uniform(0, 5000),
				DistanceNM:             g.uniform(1, 50),
				CourseDeviationDegrees: g.uniform(-30, 30),
			})
		}
	}
	return records
}

func (g *Generator) generateEnvironment() []domain.EnvironmentSample {
	count := g.navRecords / 10
	samples := make([]domain.EnvironmentSample, 0, count)
	for i := 0; i < count; i++ {
		samples = append(samples, domain.EnvironmentSample{
			Timestamp:               g.start.Add(time.Duration(i) * 4 * time.Hour),
			WaveHeightMeters:        g.exponential(1.5),
			WindSpeedKnots:          g.gamma2(2),
			VisibilityKm:            g.uniform(0.5, 20),
			SeaTemperatureC:         g.uniform(-2, 30),
			OceanCurrentKnots:       g.uniform(0, 3),
			StormProbabilityPercent: g.uniform(0, 100),
		})
	}
	return samples
}

func (g *Generator) generateFuel(vessels []domain.VesselSpec) []domain.FuelRecord {
	perVessel := g.recordsPerVessel()
	records := make([]domain.FuelRecord, 0, len(vessels)*perVessel)
	for _, vessel := range vessels {
		for i := 0; i < perVessel; i++ {
			records = append(records, domain.FuelRecord{
				VesselID:          vessel.VesselID,
				Timestamp:         g.start.Add(time.Duration(i) * time.Hour),
				FuelPerHourLiters: g.uniform(50, 5000),
				FuelPerNMLiters:   g.uniform(1, 100),
				FuelCostUSD:       g.uniform(100, 10000),
				LoadWeightPercent: g.uniform(0, 100),
				EngineLoadPercent: g.uniform(20, 100),
			})
		}
	}
	return records
}

func (g *Generator) generateMaintenance(vessels []domain.VesselSpec) []domain.MaintenanceIncident {
	var incidents []domain.MaintenanceIncident
	for _, vessel := range vessels {
		numIncidents := g.intBetween(1, 10)
		for i := 0; i < numIncidents; i++ {
			incidents = append(incidents, domain.MaintenanceIncident{
				VesselID:           vessel.VesselID,
				Timestamp:          g.start.Add(time.Duration(g.rng.Intn(30)) * 24 * time.Hour),
				MaintenanceType:    maintenanceTypes[g.rng.Intn(len(maintenanceTypes))],
				RepairTimeHours:    g.uniform(1, 72),
				MaintenanceCostUSD: g.uniform(5000, 50000),
				RiskCategory:       riskCategories[g.rng.Intn(len(riskCategories))],
				IncidentType:       incidentTypes[g.rng.Intn(len(incidentTypes))],
			})
		}
	}
	return incidents
}

func (g *Generator) recordsPerVessel() int {
	if g.numVessels <= 0 {
		return 0
	}
	return g.navRecords / g.numVessels
}

// intBetween returns an integer in [lo, hi).
func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo)
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *Generator) exponential(mean float64) float64 {
	return g.rng.ExpFloat64() * mean
}

// gamma2 samples a gamma distribution with shape 2 as the sum of two
// exponentials, scaled by theta.
func (g *Generator) gamma2(theta float64) float64 {
	return (g.rng.ExpFloat64() + g.rng.ExpFloat64()) * theta
}
