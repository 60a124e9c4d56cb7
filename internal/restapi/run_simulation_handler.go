package restapi

import (
	"net/http"

	"hydrosim.watervault.org/internal/models"
	"hydrosim.watervault.org/internal/utils"
)

// runSimulationHandler simulates the active cascade and persists the run.
// The optional `weeks` parameter truncates the horizon; zero or absent means
// the full dataset horizon.
func (api *RestAPI) runSimulationHandler(w http.ResponseWriter, r *http.Request) {
	weeks, fieldErrors := utils.ParseIntParam(r.URL.Query(), "weeks", nil)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}
	if err := utils.ValidateWeeks(weeks); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"weeks": {err.Error()},
		})
		return
	}

	summary, err := api.SimManager.RunSimulation(r.Context(), weeks)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entry := models.Run{
		ID:                summary.Run.ID,
		Dataset:           summary.Run.Dataset,
		Weeks:             summary.Run.Weeks,
		OutletRelease:     summary.Run.OutletRelease,
		UnfulfilledDemand: summary.Run.UnfulfilledDemand,
		CreatedAt:         summary.Run.CreatedAt,
	}

	references := api.newReferencesWithReservoirs()
	references.Runs = []models.RunReference{runReference(summary.Run)}

	response := models.NewEntryResponse(entry, references)
	api.sendResponse(w, r, response)
}
