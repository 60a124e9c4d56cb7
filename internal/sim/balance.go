package sim

import (
	"errors"
	"fmt"
)

// BalanceStep is the outcome of one weekly mass balance for one reservoir.
type BalanceStep struct {
	StoredVolume      float64
	Evaporation       float64
	Release           float64
	UnfulfilledDemand float64
}

// Step performs the weekly mass balance for the reservoir.
//
// The new stored volume is the previous volume plus upstream release and
// inflow, minus evaporation over the current surface area and minus demand.
// Volume above capacity spills as release; a negative balance is recorded as
// unfulfilled demand and the reservoir runs dry.
func (r *Reservoir) Step(prevStorage, upstreamRelease float64, week int) (BalanceStep, error) {
	if week < 1 {
		return BalanceStep{}, fmt.Errorf("week must be >= 1, but was %d", week)
	}
	if week >= len(r.Demands) || week >= len(r.Inflows) || week >= len(r.Evaporation) {
		return BalanceStep{}, fmt.Errorf("week %d is beyond the series horizon", week)
	}

	area, err := r.Curve.AreaAt(prevStorage)
	if err != nil {
		return BalanceStep{}, fmt.Errorf("reservoir %s: %w", r.ID, err)
	}

	evaporation := r.Evaporation[week] * area
	newStorage := prevStorage + upstreamRelease + r.Inflows[week] - evaporation - r.Demands[week]

	step := BalanceStep{Evaporation: evaporation}

	capacity := r.Capacity()
	switch {
	case newStorage > capacity:
		step.Release = newStorage - capacity
		newStorage = capacity
	case newStorage < 0:
		step.UnfulfilledDemand = -newStorage
		newStorage = 0
	}

	step.StoredVolume = newStorage
	return step, nil
}

// Cascade is an ordered chain of reservoirs; the spill release of each
// reservoir feeds the next one downstream.
type Cascade struct {
	Name         string
	HorizonWeeks int
	Reservoirs   []Reservoir
}

// Validate checks the cascade definition.
func (c *Cascade) Validate() error {
	if c.Name == "" {
		return errors.New("cascade name cannot be empty")
	}
	if c.HorizonWeeks < 2 {
		return fmt.Errorf("horizon of %d weeks leaves nothing to simulate", c.HorizonWeeks)
	}
	if len(c.Reservoirs) == 0 {
		return errors.New("cascade needs at least one reservoir")
	}

	seen := make(map[string]bool, len(c.Reservoirs))
	for i := range c.Reservoirs {
		r := &c.Reservoirs[i]
		if err := r.Validate(c.HorizonWeeks); err != nil {
			return err
		}
		if seen[r.ID] {
			return fmt.Errorf("duplicate reservoir id %s", r.ID)
		}
		seen[r.ID] = true
	}
	return nil
}

// FindReservoir returns the reservoir with the given ID, or nil.
func (c *Cascade) FindReservoir(id string) *Reservoir {
	for i := range c.Reservoirs {
		if c.Reservoirs[i].ID == id {
			return &c.Reservoirs[i]
		}
	}
	return nil
}

// Outlet returns the most downstream reservoir.
func (c *Cascade) Outlet() *Reservoir {
	return &c.Reservoirs[len(c.Reservoirs)-1]
}

// WeekTotal aggregates one simulated week across the cascade.
type WeekTotal struct {
	Week              int
	OutletRelease     float64
	UnfulfilledDemand float64
}

// Result holds the outcome of a cascade simulation. Storage series are
// indexed by week; week 0 is the initial condition (reservoirs start full).
type Result struct {
	Weeks             int
	Storage           map[string][]float64
	Steps             map[string][]BalanceStep
	WeekTotals        []WeekTotal
	OutletRelease     float64
	UnfulfilledDemand float64
}

// Run simulates the cascade for the given number of weeks. Week 0 is the
// initial condition, so weeks-1 balance steps are performed. A weeks value
// of zero (or anything past the horizon) runs the full horizon.
func (c *Cascade) Run(weeks int) (*Result, error) {
	if weeks <= 0 || weeks > c.HorizonWeeks {
		weeks = c.HorizonWeeks
	}
	if weeks < 2 {
		return nil, fmt.Errorf("cannot simulate %d weeks", weeks)
	}

	result := &Result{
		Weeks:      weeks,
		Storage:    make(map[string][]float64, len(c.Reservoirs)),
		Steps:      make(map[string][]BalanceStep, len(c.Reservoirs)),
		WeekTotals: make([]WeekTotal, 0, weeks-1),
	}

	for i := range c.Reservoirs {
		r := &c.Reservoirs[i]
		storage := make([]float64, weeks)
		storage[0] = r.Capacity()
		result.Storage[r.ID] = storage
		result.Steps[r.ID] = make([]BalanceStep, weeks)
	}

	for week := 1; week < weeks; week++ {
		total := WeekTotal{Week: week}
		release := 0.0

		for i := range c.Reservoirs {
			r := &c.Reservoirs[i]
			step, err := r.Step(result.Storage[r.ID][week-1], release, week)
			if err != nil {
				return nil, err
			}

			result.Storage[r.ID][week] = step.StoredVolume
			result.Steps[r.ID][week] = step
			release = step.Release
			total.UnfulfilledDemand += step.UnfulfilledDemand
		}

		total.OutletRelease = release
		result.WeekTotals = append(result.WeekTotals, total)
		result.OutletRelease += total.OutletRelease
		result.UnfulfilledDemand += total.UnfulfilledDemand
	}

	return result, nil
}
