package models

// ReferencesModel References model for related data
type ReferencesModel struct {
	Reservoirs []ReservoirReference `json:"reservoirs"`
	Runs       []RunReference       `json:"runs"`
}

// NewEmptyReferences creates a new empty References model with initialized empty slices
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Reservoirs: []ReservoirReference{},
		Runs:       []RunReference{},
	}
}
