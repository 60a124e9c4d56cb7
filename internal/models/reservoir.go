package models

// ReservoirReference is the compact reservoir representation embedded in
// response references.
type ReservoirReference struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Capacity float64 `json:"capacity"`
}

// NewReservoirReference creates a ReservoirReference
func NewReservoirReference(id, name string, capacity float64) ReservoirReference {
	return ReservoirReference{
		ID:       id,
		Name:     name,
		Capacity: capacity,
	}
}

// Reservoir is the full reservoir representation returned by entry endpoints
type Reservoir struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Capacity     float64   `json:"capacity"`
	Storages     []float64 `json:"storages"`
	Areas        []float64 `json:"areas"`
	HorizonWeeks int       `json:"horizonWeeks"`
}

func NewReservoir(id, name string, capacity float64, storages, areas []float64, horizonWeeks int) Reservoir {
	return Reservoir{
		ID:           id,
		Name:         name,
		Capacity:     capacity,
		Storages:     storages,
		Areas:        areas,
		HorizonWeeks: horizonWeeks,
	}
}

// AreaForVolume is the payload returned by the area-for-volume endpoint
type AreaForVolume struct {
	ReservoirID string  `json:"reservoirId"`
	Volume      float64 `json:"volume"`
	Area        float64 `json:"area"`
}
