package restapi

import (
	"net/http"

	"hydrosim.watervault.org/internal/models"
)

func (api *RestAPI) reservoirsHandler(w http.ResponseWriter, r *http.Request) {
	cascade := api.SimManager.Cascade()

	list := make([]models.Reservoir, 0, len(cascade.Reservoirs))
	for i := range cascade.Reservoirs {
		reservoir := &cascade.Reservoirs[i]
		list = append(list, models.NewReservoir(
			reservoir.ID,
			reservoir.Name,
			reservoir.Capacity(),
			reservoir.Curve.Storages,
			reservoir.Curve.Areas,
			cascade.HorizonWeeks,
		))
	}

	response := models.NewListResponse(list, models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}
