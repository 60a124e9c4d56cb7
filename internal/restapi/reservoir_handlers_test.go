package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservoirsHandler(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/water/reservoirs.json")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	list := responseList(t, model)
	require.Len(t, list, 2)

	first, ok := list[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "upper", first["id"])
	assert.Equal(t, float64(1000), first["capacity"])
	assert.Equal(t, float64(4), first["horizonWeeks"])

	second, ok := list[1].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "lower", second["id"])
}

func TestReservoirHandler(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/water/reservoir/upper.json")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	entry := responseEntry(t, model)
	assert.Equal(t, "upper", entry["id"])
	assert.Equal(t, float64(1000), entry["capacity"])
	assert.Len(t, entry["storages"], 4)
	assert.Len(t, entry["areas"], 4)

	references, ok := responseData(t, model)["references"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, references["reservoirs"], 2)
}

func TestReservoirHandlerNotFound(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/water/reservoir/nope.json")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, model.Code)
	assert.Equal(t, "resource not found", model.Text)
}

func TestAreaForVolumeHandler(t *testing.T) {
	api := createTestApi(t)

	testCases := []struct {
		volume string
		area   float64
	}{
		{"500", 400},
		{"650", 500},
		{"1000", 900},
		{"0", 0},
	}

	for _, tc := range testCases {
		resp, model := serveApiAndRetrieveEndpoint(t, api,
			"/api/water/area-for-volume/upper.json?volume="+tc.volume)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		entry := responseEntry(t, model)
		assert.Equal(t, "upper", entry["reservoirId"])
		assert.InDelta(t, tc.area, entry["area"], 1e-9, "volume %s", tc.volume)
	}
}

func TestAreaForVolumeHandlerRejectsOutOfRangeVolumes(t *testing.T) {
	api := createTestApi(t)

	for _, volume := range []string{"-5", "1200", "abc"} {
		resp, body := serveAndRetrieveRaw(t, api,
			"/api/water/area-for-volume/upper.json?key="+testAPIKey+"&volume="+volume)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "volume %s", volume)

		fieldErrors := decodeFieldErrors(t, body)
		assert.Contains(t, fieldErrors, "volume")
	}
}

func TestAreaForVolumeHandlerUnknownReservoir(t *testing.T) {
	api := createTestApi(t)

	resp, _ := serveApiAndRetrieveEndpoint(t, api, "/api/water/area-for-volume/nope.json?volume=10")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
