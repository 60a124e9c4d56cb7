package restapi

import (
	"database/sql"
	"errors"
	"net/http"

	"hydrosim.watervault.org/internal/models"
	"hydrosim.watervault.org/internal/utils"
)

// storageSeriesHandler returns the stored-volume series of one reservoir in
// one run. The ID is the combined `{run_id}_{reservoir_id}` form.
func (api *RestAPI) storageSeriesHandler(w http.ResponseWriter, r *http.Request) {
	combinedID := utils.ExtractIDFromParams(r, "id")

	runID, reservoirID, err := utils.ExtractRunIDAndReservoirID(combinedID)
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {err.Error()},
		})
		return
	}

	run, err := api.SimManager.SimDB.Queries.GetRun(r.Context(), runID)
	if errors.Is(err, sql.ErrNoRows) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	series, err := api.SimManager.SimDB.Queries.GetStorageSeries(r.Context(), runID, reservoirID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if len(series) == 0 {
		api.sendNotFound(w, r)
		return
	}

	entry := models.StorageSeries{
		RunID:        runID,
		ReservoirID:  reservoirID,
		StoredVolume: series,
	}

	references := api.newReferencesWithReservoirs()
	references.Runs = []models.RunReference{runReference(run)}

	response := models.NewEntryResponse(entry, references)
	api.sendResponse(w, r, response)
}
