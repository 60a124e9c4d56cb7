package simdb

// Reservoir is a reservoir definition imported from the active dataset
type Reservoir struct {
	ID           string  // reservoir_id
	Name         string  // name
	Capacity     float64 // capacity
	HorizonWeeks int     // horizon_weeks
}

// Run is one persisted simulation run over the cascade
type Run struct {
	ID                string  // run_id (uuid)
	Dataset           string  // dataset name
	Weeks             int     // simulated weeks, week 0 included
	OutletRelease     float64 // total release at the cascade outlet
	UnfulfilledDemand float64 // total unfulfilled demand across the cascade
	CreatedAt         int64   // unix milliseconds
}

// RunWeek is the per-reservoir record of one simulated week
type RunWeek struct {
	RunID             string  // run_id
	ReservoirID       string  // reservoir_id
	Week              int     // week (>= 1)
	StoredVolume      float64 // stored_volume
	Release           float64 // release
	UnfulfilledDemand float64 // unfulfilled_demand
}

// WeekTotal aggregates one week of a run across all reservoirs
type WeekTotal struct {
	Week              int
	OutletRelease     float64
	UnfulfilledDemand float64
}
