package restapi

import (
	"net/http"

	"hydrosim.watervault.org/internal/models"
	"hydrosim.watervault.org/internal/utils"
)

func (api *RestAPI) reservoirHandler(w http.ResponseWriter, r *http.Request) {
	queryParamID := utils.ExtractIDFromParams(r, "id")

	if err := utils.ValidateID(queryParamID); err != nil {
		fieldErrors := map[string][]string{
			"id": {err.Error()},
		}
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	reservoir := api.SimManager.FindReservoir(queryParamID)
	if reservoir == nil {
		api.sendNotFound(w, r)
		return
	}

	cascade := api.SimManager.Cascade()
	entry := models.NewReservoir(
		reservoir.ID,
		reservoir.Name,
		reservoir.Capacity(),
		reservoir.Curve.Storages,
		reservoir.Curve.Areas,
		cascade.HorizonWeeks,
	)

	response := models.NewEntryResponse(entry, api.newReferencesWithReservoirs())
	api.sendResponse(w, r, response)
}
