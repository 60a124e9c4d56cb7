package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// SetRoutes registers all API endpoints on the given router.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/water/status.json", validateAPIKey(api, api.statusHandler))
	router.Handler(http.MethodGet, "/api/water/reservoirs.json", validateAPIKey(api, api.reservoirsHandler))
	router.Handler(http.MethodGet, "/api/water/reservoir/:id", validateAPIKey(api, api.reservoirHandler))
	router.Handler(http.MethodGet, "/api/water/area-for-volume/:id", validateAPIKey(api, api.areaForVolumeHandler))
	router.Handler(http.MethodGet, "/api/water/run-simulation.json", validateAPIKey(api, api.runSimulationHandler))
	router.Handler(http.MethodGet, "/api/water/runs.json", validateAPIKey(api, api.runsHandler))
	router.Handler(http.MethodGet, "/api/water/run/:id", validateAPIKey(api, api.runHandler))
	router.Handler(http.MethodGet, "/api/water/storage-series/:id", validateAPIKey(api, api.storageSeriesHandler))
	router.Handler(http.MethodGet, "/api/water/generate-streamflow.json", validateAPIKey(api, api.generateStreamflowHandler))
}

// Routes returns the full API handler with middleware applied.
func (api *RestAPI) Routes() http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)

	handler := http.Handler(router)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	handler = CompressionMiddleware(handler)
	handler = securityHeaders(handler)
	if api.rateLimiter != nil {
		handler = api.rateLimiter(handler)
	}
	return handler
}
