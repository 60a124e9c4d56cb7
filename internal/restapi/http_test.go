package restapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"hydrosim.watervault.org/internal/app"
	"hydrosim.watervault.org/internal/appconf"
	"hydrosim.watervault.org/internal/models"
	"hydrosim.watervault.org/internal/sim"
)

const testAPIKey = "TEST"

func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	simConfig := sim.Config{
		DatasetSource: models.GetFixturePath(t, "cascade.yaml"),
		DataPath:      ":memory:",
		Env:           appconf.Test,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	manager, err := sim.InitManager(simConfig, logger)
	require.NoError(t, err)
	t.Cleanup(manager.Shutdown)

	application := &app.Application{
		Config: appconf.Config{
			Env:       appconf.Test,
			ApiKeys:   []string{testAPIKey},
			RateLimit: 1000,
		},
		SimConfig:  simConfig,
		Logger:     logger,
		SimManager: manager,
	}

	return NewRestAPI(application)
}

// serveApiAndRetrieveEndpoint spins up a test server with the full middleware
// chain and retrieves the given endpoint with a valid API key.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()

	ts := httptest.NewServer(api.Routes())
	defer ts.Close()

	separator := "?"
	if containsQuery(endpoint) {
		separator = "&"
	}

	resp, err := http.Get(ts.URL + endpoint + separator + "key=" + testAPIKey)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var model models.ResponseModel
	if resp.StatusCode != http.StatusBadRequest {
		require.NoError(t, json.Unmarshal(body, &model))
	}

	return resp, model
}

// serveAndRetrieveRaw retrieves the endpoint exactly as given, without
// appending an API key. Used for auth and error-shape tests.
func serveAndRetrieveRaw(t *testing.T, api *RestAPI, endpoint string) (*http.Response, []byte) {
	t.Helper()

	ts := httptest.NewServer(api.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + endpoint)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, body
}

func containsQuery(endpoint string) bool {
	for _, c := range endpoint {
		if c == '?' {
			return true
		}
	}
	return false
}

// responseData returns the data envelope of a response as a map
func responseData(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "response data is not an object")
	return data
}

func responseEntry(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()

	entry, ok := responseData(t, model)["entry"].(map[string]interface{})
	require.True(t, ok, "response entry is not an object")
	return entry
}

func responseList(t *testing.T, model models.ResponseModel) []interface{} {
	t.Helper()

	list, ok := responseData(t, model)["list"].([]interface{})
	require.True(t, ok, "response list is not an array")
	return list
}

func decodeFieldErrors(t *testing.T, body []byte) map[string][]string {
	t.Helper()

	var payload struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload.FieldErrors
}
