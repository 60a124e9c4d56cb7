package restapi

import (
	"net/http"

	"hydrosim.watervault.org/internal/models"
	"hydrosim.watervault.org/internal/utils"
)

// areaForVolumeHandler interpolates the surface area of a reservoir at the
// given stored volume.
func (api *RestAPI) areaForVolumeHandler(w http.ResponseWriter, r *http.Request) {
	queryParamID := utils.ExtractIDFromParams(r, "id")

	if err := utils.ValidateID(queryParamID); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {err.Error()},
		})
		return
	}

	volume, fieldErrors := utils.ParseFloatParam(r.URL.Query(), "volume", nil)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}
	if err := utils.ValidateVolume(volume); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"volume": {err.Error()},
		})
		return
	}

	reservoir := api.SimManager.FindReservoir(queryParamID)
	if reservoir == nil {
		api.sendNotFound(w, r)
		return
	}

	area, err := reservoir.Curve.AreaAt(volume)
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"volume": {err.Error()},
		})
		return
	}

	entry := models.AreaForVolume{
		ReservoirID: reservoir.ID,
		Volume:      volume,
		Area:        area,
	}

	response := models.NewEntryResponse(entry, api.newReferencesWithReservoirs())
	api.sendResponse(w, r, response)
}
