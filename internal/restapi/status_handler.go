package restapi

import (
	"net/http"

	"hydrosim.watervault.org/internal/models"
)

func (api *RestAPI) statusHandler(w http.ResponseWriter, r *http.Request) {
	cascade := api.SimManager.Cascade()

	entry := models.NewStatusModel(
		cascade.Name,
		len(cascade.Reservoirs),
		cascade.HorizonWeeks,
		api.SimManager.LastUpdated(),
	)

	response := models.NewEntryResponse(entry, models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}
