package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixturePath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join("..", "..", "testdata", name)
}

func TestParseDataset(t *testing.T) {
	data, err := os.ReadFile(fixturePath(t, "cascade.yaml"))
	require.NoError(t, err)

	cascade, err := ParseDataset(data)
	require.NoError(t, err)

	assert.Equal(t, "two-reservoir-cascade", cascade.Name)
	assert.Equal(t, 4, cascade.HorizonWeeks)
	require.Len(t, cascade.Reservoirs, 2)

	upper := cascade.Reservoirs[0]
	assert.Equal(t, "upper", upper.ID)
	assert.Equal(t, "Upper Basin", upper.Name)
	assert.Equal(t, 1000.0, upper.Capacity())
	assert.Equal(t, []float64{0, 15, 15, 400}, upper.Inflows)

	t.Run("streamflow spec generates the inflow series", func(t *testing.T) {
		lower := cascade.Reservoirs[1]
		require.Len(t, lower.Inflows, 4)

		expected, err := GenerateStreamflow(4, StreamflowSpec{
			Amplitude: 1.0, LogMean: 2.1, LogSigma: 0.5, Seed: 7,
		})
		require.NoError(t, err)
		assert.Equal(t, expected, lower.Inflows)
	})

	t.Run("outlet is the last reservoir", func(t *testing.T) {
		assert.Equal(t, "lower", cascade.Outlet().ID)
	})
}

func TestParseDatasetErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			yaml:    "name: [unclosed",
			wantErr: "error parsing dataset",
		},
		{
			name: "missing name",
			yaml: `
horizon_weeks: 3
reservoirs:
  - id: a
    storage_area_curve: {storages: [0, 10], areas: [0, 5]}
    evaporation: [0, 0, 0]
    inflows: [0, 1, 1]
    demands: [0, 1, 1]
`,
			wantErr: "name cannot be empty",
		},
		{
			name: "short series",
			yaml: `
name: short
horizon_weeks: 5
reservoirs:
  - id: a
    storage_area_curve: {storages: [0, 10], areas: [0, 5]}
    evaporation: [0, 0, 0]
    inflows: [0, 1, 1]
    demands: [0, 1, 1]
`,
			wantErr: "horizon needs 5",
		},
		{
			name: "inflows and streamflow both declared",
			yaml: `
name: both
horizon_weeks: 3
reservoirs:
  - id: a
    storage_area_curve: {storages: [0, 10], areas: [0, 5]}
    evaporation: [0, 0, 0]
    inflows: [0, 1, 1]
    streamflow: {amplitude: 1, log_mean: 2, log_sigma: 1, seed: 1}
    demands: [0, 1, 1]
`,
			wantErr: "both inflows and a streamflow spec",
		},
		{
			name: "invalid curve",
			yaml: `
name: badcurve
horizon_weeks: 3
reservoirs:
  - id: a
    storage_area_curve: {storages: [10, 5], areas: [0, 5]}
    evaporation: [0, 0, 0]
    inflows: [0, 1, 1]
    demands: [0, 1, 1]
`,
			wantErr: "strictly increasing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDataset([]byte(tt.yaml))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestRawDatasetDataMissingFile(t *testing.T) {
	_, err := rawDatasetData(fixturePath(t, "does-not-exist.yaml"), true)
	assert.ErrorContains(t, err, "error reading local dataset file")
}
