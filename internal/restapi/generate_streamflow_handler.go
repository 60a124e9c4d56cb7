package restapi

import (
	"net/http"

	"hydrosim.watervault.org/internal/models"
	"hydrosim.watervault.org/internal/sim"
	"hydrosim.watervault.org/internal/utils"
)

const defaultStreamflowWeeks = 52

// generateStreamflowHandler produces a synthetic log-normal streamflow series
// from the given generator parameters. Useful for exploring dataset inputs
// without editing the dataset file.
func (api *RestAPI) generateStreamflowHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	weeks, fieldErrors := utils.ParseIntParam(params, "weeks", nil)
	amplitude, fieldErrors := utils.ParseFloatParam(params, "amplitude", fieldErrors)
	logMean, fieldErrors := utils.ParseFloatParam(params, "logMean", fieldErrors)
	logSigma, fieldErrors := utils.ParseFloatParam(params, "logSigma", fieldErrors)
	seed, fieldErrors := utils.ParseInt64Param(params, "seed", fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if weeks == 0 {
		weeks = defaultStreamflowWeeks
	}
	if fieldErrors := utils.ValidateStreamflowParams(weeks, logSigma); len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	spec := sim.StreamflowSpec{
		Amplitude: amplitude,
		LogMean:   logMean,
		LogSigma:  logSigma,
		Seed:      seed,
	}

	flows, err := sim.GenerateStreamflow(weeks, spec)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entry := models.StreamflowModel{
		Weeks:     weeks,
		Amplitude: amplitude,
		LogMean:   logMean,
		LogSigma:  logSigma,
		Seed:      seed,
		Flows:     flows,
	}

	response := models.NewEntryResponse(entry, models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}
