package sim

import (
	"errors"
	"fmt"
)

// StorageAreaCurve relates stored volume to reservoir surface area through
// paired breakpoints. Storages must be strictly increasing; the last storage
// breakpoint is the reservoir capacity.
type StorageAreaCurve struct {
	Storages []float64
	Areas    []float64
}

// Validate checks the structural invariants of the curve.
func (c StorageAreaCurve) Validate() error {
	if len(c.Storages) != len(c.Areas) {
		return fmt.Errorf("curve has %d storages but %d areas", len(c.Storages), len(c.Areas))
	}
	if len(c.Storages) < 2 {
		return errors.New("curve needs at least two points")
	}
	for i, s := range c.Storages {
		if s < 0 || c.Areas[i] < 0 {
			return errors.New("curve values must be non-negative")
		}
		if i > 0 && s <= c.Storages[i-1] {
			return errors.New("curve storages must be strictly increasing")
		}
	}
	return nil
}

// Capacity returns the largest storage breakpoint.
func (c StorageAreaCurve) Capacity() float64 {
	if len(c.Storages) == 0 {
		return 0
	}
	return c.Storages[len(c.Storages)-1]
}

// AreaAt interpolates the reservoir surface area for the given stored volume.
// Volumes outside [0, capacity] are an error.
func (c StorageAreaCurve) AreaAt(volume float64) (float64, error) {
	if volume < 0 {
		return 0, fmt.Errorf("stored volume %g is negative", volume)
	}
	if capacity := c.Capacity(); volume > capacity {
		return 0, fmt.Errorf("stored volume %g greater than capacity %g", volume, capacity)
	}

	for i := 1; i < len(c.Storages); i++ {
		s, a := c.Storages[i], c.Areas[i]
		if volume < s {
			sm, am := c.Storages[i-1], c.Areas[i-1]
			return am + (volume-sm)/(s-sm)*(a-am), nil
		}
	}

	return c.Areas[len(c.Areas)-1], nil
}

// Reservoir is one impoundment in a cascade. The weekly series are indexed
// by simulation week; index 0 belongs to the initial condition and is never
// read by the balance.
type Reservoir struct {
	ID          string
	Name        string
	Curve       StorageAreaCurve
	Evaporation []float64
	Inflows     []float64
	Demands     []float64
}

// Capacity returns the reservoir's storage capacity.
func (r *Reservoir) Capacity() float64 {
	return r.Curve.Capacity()
}

// Validate checks the reservoir definition against the simulation horizon.
func (r *Reservoir) Validate(horizonWeeks int) error {
	if r.ID == "" {
		return errors.New("reservoir id cannot be empty")
	}
	if err := r.Curve.Validate(); err != nil {
		return fmt.Errorf("reservoir %s: %w", r.ID, err)
	}
	for name, series := range map[string][]float64{
		"evaporation": r.Evaporation,
		"inflows":     r.Inflows,
		"demands":     r.Demands,
	} {
		if len(series) < horizonWeeks {
			return fmt.Errorf("reservoir %s: %s series has %d weeks, horizon needs %d",
				r.ID, name, len(series), horizonWeeks)
		}
	}
	return nil
}
