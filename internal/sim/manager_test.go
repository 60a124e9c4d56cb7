package sim

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydrosim.watervault.org/internal/appconf"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testManagerConfig() Config {
	return Config{
		DatasetSource: filepath.Join("..", "..", "testdata", "cascade.yaml"),
		DataPath:      ":memory:",
		Env:           appconf.Test,
	}
}

func TestInitManager(t *testing.T) {
	manager, err := InitManager(testManagerConfig(), testLogger())
	require.NoError(t, err)
	defer manager.Shutdown()

	assert.Equal(t, "two-reservoir-cascade", manager.Cascade().Name)
	assert.Len(t, manager.Reservoirs(), 2)
	assert.False(t, manager.LastUpdated().IsZero())

	t.Run("finds reservoirs by id", func(t *testing.T) {
		upper := manager.FindReservoir("upper")
		require.NotNil(t, upper)
		assert.Equal(t, "Upper Basin", upper.Name)

		assert.Nil(t, manager.FindReservoir("nope"))
	})

	t.Run("imports reservoir definitions into the database", func(t *testing.T) {
		reservoirs, err := manager.SimDB.Queries.ListReservoirs(context.Background())
		require.NoError(t, err)
		require.Len(t, reservoirs, 2)
		assert.Equal(t, "upper", reservoirs[0].ID)
		assert.Equal(t, 1000.0, reservoirs[0].Capacity)
		assert.Equal(t, 4, reservoirs[0].HorizonWeeks)
	})
}

func TestInitManagerErrors(t *testing.T) {
	t.Run("missing dataset file", func(t *testing.T) {
		config := testManagerConfig()
		config.DatasetSource = filepath.Join(t.TempDir(), "missing.yaml")
		_, err := InitManager(config, testLogger())
		assert.ErrorContains(t, err, "error reading local dataset file")
	})

	t.Run("test environment refuses file-backed databases", func(t *testing.T) {
		config := testManagerConfig()
		config.DataPath = filepath.Join(t.TempDir(), "sim.db")
		_, err := InitManager(config, testLogger())
		assert.ErrorContains(t, err, "in-memory")
	})
}

func TestRunSimulation(t *testing.T) {
	manager, err := InitManager(testManagerConfig(), testLogger())
	require.NoError(t, err)
	defer manager.Shutdown()

	ctx := context.Background()

	summary, err := manager.RunSimulation(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.NotEmpty(t, summary.Run.ID)
	assert.Equal(t, "two-reservoir-cascade", summary.Run.Dataset)
	assert.Equal(t, 4, summary.Run.Weeks)

	t.Run("persists the run summary", func(t *testing.T) {
		stored, err := manager.SimDB.Queries.GetRun(ctx, summary.Run.ID)
		require.NoError(t, err)
		assert.Equal(t, summary.Run, stored)
	})

	t.Run("persists per-reservoir storage series", func(t *testing.T) {
		series, err := manager.SimDB.Queries.GetStorageSeries(ctx, summary.Run.ID, "upper")
		require.NoError(t, err)
		assert.Equal(t, summary.Result.Storage["upper"], series)
		assert.Equal(t, 1000.0, series[0])
	})

	t.Run("weekly totals match the in-memory result", func(t *testing.T) {
		totals, err := manager.SimDB.Queries.GetRunWeekTotals(ctx, summary.Run.ID, "lower")
		require.NoError(t, err)
		require.Len(t, totals, len(summary.Result.WeekTotals))
		for i, total := range totals {
			assert.Equal(t, summary.Result.WeekTotals[i].Week, total.Week)
			assert.InDelta(t, summary.Result.WeekTotals[i].OutletRelease, total.OutletRelease, 1e-9)
			assert.InDelta(t, summary.Result.WeekTotals[i].UnfulfilledDemand, total.UnfulfilledDemand, 1e-9)
		}
	})

	t.Run("runs appear in the run listing", func(t *testing.T) {
		runs, err := manager.SimDB.Queries.ListRuns(ctx, 10)
		require.NoError(t, err)
		require.NotEmpty(t, runs)
		assert.Equal(t, summary.Run.ID, runs[0].ID)
	})
}

func TestManagerHotReload(t *testing.T) {
	dir := t.TempDir()
	datasetPath := filepath.Join(dir, "cascade.yaml")

	original, err := os.ReadFile(filepath.Join("..", "..", "testdata", "cascade.yaml"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(datasetPath, original, 0o644))

	config := testManagerConfig()
	config.DatasetSource = datasetPath
	config.WatchDataset = true

	manager, err := InitManager(config, testLogger())
	require.NoError(t, err)
	defer manager.Shutdown()

	firstLoad := manager.LastUpdated()

	updated := []byte(`
name: renamed-cascade
horizon_weeks: 3
reservoirs:
  - id: solo
    name: Solo
    storage_area_curve: {storages: [0, 100], areas: [0, 50]}
    evaporation: [0, 0, 0]
    inflows: [0, 1, 1]
    demands: [0, 1, 1]
`)
	require.NoError(t, os.WriteFile(datasetPath, updated, 0o644))

	assert.Eventually(t, func() bool {
		return manager.Cascade().Name == "renamed-cascade"
	}, 5*time.Second, 20*time.Millisecond, "dataset should hot-reload after the file changes")

	assert.True(t, manager.LastUpdated().After(firstLoad) || manager.LastUpdated().Equal(firstLoad))
}

func TestManagerShutdownIsIdempotent(t *testing.T) {
	manager, err := InitManager(testManagerConfig(), testLogger())
	require.NoError(t, err)

	manager.Shutdown()
	manager.Shutdown()
}
