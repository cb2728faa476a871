// Package stochastic draws the monthly random shocks of a property projection.
// Every draw goes through a caller-owned rand.Source; nothing here touches a
// process-wide generator, so a fixed seed replays a run exactly.
package stochastic

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// SeverityShape is the lognormal shape parameter of a single maintenance event.
const SeverityShape = 0.4

var sqrt12 = math.Sqrt(12)

// Generator produces the per-month draws for one simulation run.
// It is not safe for concurrent use; give each trial its own Generator.
type Generator struct {
	src rand.Source
}

// New binds a generator to src.
func New(src rand.Source) *Generator {
	return &Generator{src: src}
}

// NewSeeded is New(NewSource(seed)).
func NewSeeded(seed uint64) *Generator {
	return New(NewSource(seed))
}

// NewSource returns a PCG source seeded with seed.
func NewSource(seed uint64) rand.Source {
	return rand.NewSource(seed)
}

// ResolveSeed returns *seed, or a clock-derived seed when seed is nil.
func ResolveSeed(seed *uint64) uint64 {
	if seed != nil {
		return *seed
	}
	return uint64(time.Now().UnixNano())
}

// ChildSeed draws the next independent seed from a top-level source.
func ChildSeed(src rand.Source) uint64 {
	return src.Uint64()
}

// VacancyLoss is the rent lost this month. The lost fraction is drawn from
// Normal(annualRate/12, annualVol/sqrt(12)) and clamped to [0, 1]; vacancy is
// modeled as a continuous income loss, not an occupied/vacant switch.
func (g *Generator) VacancyLoss(rent, annualRate, annualVol float64) float64 {
	frac := distuv.Normal{
		Mu:    annualRate / 12,
		Sigma: annualVol / sqrt12,
		Src:   g.src,
	}.Rand()
	return rent * clamp01(frac)
}

// MaintenanceShock is the unscheduled repair cost this month: a
// Poisson(annualLambda/12) event count, each event costing a lognormal amount
// whose mean is avgCost.
func (g *Generator) MaintenanceShock(annualLambda, avgCost float64) float64 {
	if annualLambda <= 0 {
		return 0
	}
	events := int(distuv.Poisson{Lambda: annualLambda / 12, Src: g.src}.Rand())
	if events == 0 || avgCost <= 0 {
		return 0
	}
	severity := distuv.LogNormal{
		Mu:    math.Log(avgCost) - 0.5*SeverityShape*SeverityShape,
		Sigma: SeverityShape,
		Src:   g.src,
	}
	total := 0.0
	for i := 0; i < events; i++ {
		total += severity.Rand()
	}
	return total
}

// GrowthStep applies one month of a multiplicative random walk.
func (g *Generator) GrowthStep(value, meanAnnual, stdAnnual float64) float64 {
	shock := distuv.Normal{
		Mu:    meanAnnual / 12,
		Sigma: stdAnnual / sqrt12,
		Src:   g.src,
	}.Rand()
	return value * (1 + shock)
}

func clamp01(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
