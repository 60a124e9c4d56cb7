package restapi

import (
	"hydrosim.watervault.org/internal/models"
	"hydrosim.watervault.org/simdb"
)

// reservoirReferences builds reference entries for every reservoir in the
// active cascade.
func (api *RestAPI) reservoirReferences() []models.ReservoirReference {
	reservoirs := api.SimManager.Reservoirs()

	references := make([]models.ReservoirReference, 0, len(reservoirs))
	for i := range reservoirs {
		r := &reservoirs[i]
		references = append(references, models.NewReservoirReference(r.ID, r.Name, r.Capacity()))
	}
	return references
}

// newReferencesWithReservoirs returns a references block carrying the
// cascade's reservoirs.
func (api *RestAPI) newReferencesWithReservoirs() models.ReferencesModel {
	references := models.NewEmptyReferences()
	references.Reservoirs = api.reservoirReferences()
	return references
}

func runReference(run simdb.Run) models.RunReference {
	return models.NewRunReference(run.ID, run.Dataset, run.Weeks)
}
