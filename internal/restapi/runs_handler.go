package restapi

import (
	"net/http"

	"hydrosim.watervault.org/internal/models"
	"hydrosim.watervault.org/internal/utils"
)

const (
	defaultRunListLimit = 20
	maxRunListLimit     = 100
)

// runsHandler lists persisted runs, newest first.
func (api *RestAPI) runsHandler(w http.ResponseWriter, r *http.Request) {
	limit, fieldErrors := utils.ParseIntParam(r.URL.Query(), "limit", nil)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}
	if limit < 0 {
		api.validationErrorResponse(w, r, map[string][]string{
			"limit": {"limit must be non-negative"},
		})
		return
	}
	if limit == 0 {
		limit = defaultRunListLimit
	}
	if limit > maxRunListLimit {
		limit = maxRunListLimit
	}

	runs, err := api.SimManager.SimDB.Queries.ListRuns(r.Context(), limit)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	list := make([]models.Run, 0, len(runs))
	for _, run := range runs {
		list = append(list, models.Run{
			ID:                run.ID,
			Dataset:           run.Dataset,
			Weeks:             run.Weeks,
			OutletRelease:     run.OutletRelease,
			UnfulfilledDemand: run.UnfulfilledDemand,
			CreatedAt:         run.CreatedAt,
		})
	}

	response := models.NewListResponse(list, models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}
