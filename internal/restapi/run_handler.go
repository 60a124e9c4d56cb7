package restapi

import (
	"database/sql"
	"errors"
	"net/http"

	"hydrosim.watervault.org/internal/models"
	"hydrosim.watervault.org/internal/utils"
)

// runHandler returns one persisted run together with its weekly outlet totals.
func (api *RestAPI) runHandler(w http.ResponseWriter, r *http.Request) {
	queryParamID := utils.ExtractIDFromParams(r, "id")

	if err := utils.ValidateID(queryParamID); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {err.Error()},
		})
		return
	}

	run, err := api.SimManager.SimDB.Queries.GetRun(r.Context(), queryParamID)
	if errors.Is(err, sql.ErrNoRows) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	outlet := api.SimManager.Cascade().Outlet()
	totals, err := api.SimManager.SimDB.Queries.GetRunWeekTotals(r.Context(), run.ID, outlet.ID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	weekTotals := make([]models.WeekTotals, 0, len(totals))
	for _, t := range totals {
		weekTotals = append(weekTotals, models.WeekTotals{
			Week:              t.Week,
			OutletRelease:     t.OutletRelease,
			UnfulfilledDemand: t.UnfulfilledDemand,
		})
	}

	entry := models.RunDetails{
		Run: models.Run{
			ID:                run.ID,
			Dataset:           run.Dataset,
			Weeks:             run.Weeks,
			OutletRelease:     run.OutletRelease,
			UnfulfilledDemand: run.UnfulfilledDemand,
			CreatedAt:         run.CreatedAt,
		},
		WeekTotals: weekTotals,
	}

	references := api.newReferencesWithReservoirs()
	references.Runs = []models.RunReference{runReference(run)}

	response := models.NewEntryResponse(entry, references)
	api.sendResponse(w, r, response)
}
