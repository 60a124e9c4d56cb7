package models

// RunReference is the compact run representation embedded in response references.
type RunReference struct {
	ID      string `json:"id"`
	Dataset string `json:"dataset"`
	Weeks   int    `json:"weeks"`
}

// NewRunReference creates a RunReference
func NewRunReference(id, dataset string, weeks int) RunReference {
	return RunReference{
		ID:      id,
		Dataset: dataset,
		Weeks:   weeks,
	}
}

// Run is the full simulation run representation
type Run struct {
	ID                string  `json:"id"`
	Dataset           string  `json:"dataset"`
	Weeks             int     `json:"weeks"`
	OutletRelease     float64 `json:"outletRelease"`
	UnfulfilledDemand float64 `json:"unfulfilledDemand"`
	CreatedAt         int64   `json:"createdAt"`
}

// WeekTotals is one weekly record in a run detail response
type WeekTotals struct {
	Week              int     `json:"week"`
	OutletRelease     float64 `json:"outletRelease"`
	UnfulfilledDemand float64 `json:"unfulfilledDemand"`
}

// RunDetails combines a run with its weekly outlet totals
type RunDetails struct {
	Run
	WeekTotals []WeekTotals `json:"weekTotals"`
}

// StorageSeries is the stored-volume time series for one reservoir in one run
type StorageSeries struct {
	RunID        string    `json:"runId"`
	ReservoirID  string    `json:"reservoirId"`
	StoredVolume []float64 `json:"storedVolume"`
}
