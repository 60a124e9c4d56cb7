package sim

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"hydrosim.watervault.org/internal/logging"
	"hydrosim.watervault.org/simdb"
)

// Manager owns the active cascade dataset and provides simulation runs over
// it. Local dataset files can be hot-reloaded through fsnotify; URL datasets
// are re-fetched on a ticker.
type Manager struct {
	source      string
	isLocalFile bool
	config      Config
	logger      *slog.Logger

	mu          sync.RWMutex
	cascade     *Cascade
	lastUpdated time.Time

	SimDB *simdb.Client

	watcher      *fsnotify.Watcher
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// InitManager initializes the Manager with the dataset from the given source.
// The source can be either a URL or a local file path.
func InitManager(config Config, logger *slog.Logger) (*Manager, error) {
	isLocalFile := !strings.HasPrefix(config.DatasetSource, "http://") &&
		!strings.HasPrefix(config.DatasetSource, "https://")

	cascade, err := loadDataset(config.DatasetSource, isLocalFile)
	if err != nil {
		return nil, err
	}

	dbClient, err := simdb.NewClient(simdb.NewConfig(config.DataPath, config.Env, config.Verbose), logger)
	if err != nil {
		return nil, fmt.Errorf("error building simulation database: %w", err)
	}

	manager := &Manager{
		source:       config.DatasetSource,
		isLocalFile:  isLocalFile,
		config:       config,
		logger:       logger,
		SimDB:        dbClient,
		shutdownChan: make(chan struct{}),
	}

	if err := manager.setCascade(context.Background(), cascade); err != nil {
		_ = dbClient.Close()
		return nil, err
	}

	if isLocalFile && config.WatchDataset {
		if err := manager.startWatcher(); err != nil {
			_ = dbClient.Close()
			return nil, err
		}
	} else if !isLocalFile {
		manager.wg.Add(1)
		go manager.refreshPeriodically()
	}

	return manager, nil
}

// Shutdown gracefully shuts down the manager and its background goroutines
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		close(manager.shutdownChan)
		manager.wg.Wait()
		if manager.watcher != nil {
			logging.SafeCloseWithLogging(manager.watcher, manager.logger, "close_dataset_watcher")
		}
		if manager.SimDB != nil {
			logging.SafeCloseWithLogging(manager.SimDB, manager.logger, "close_simulation_database")
		}
	})
}

// Cascade returns the active cascade snapshot.
func (manager *Manager) Cascade() *Cascade {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.cascade
}

// LastUpdated returns when the dataset was last (re)loaded.
func (manager *Manager) LastUpdated() time.Time {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.lastUpdated
}

// Reservoirs returns the reservoirs of the active cascade in cascade order.
func (manager *Manager) Reservoirs() []Reservoir {
	return manager.Cascade().Reservoirs
}

// FindReservoir returns the reservoir with the given ID, or nil.
func (manager *Manager) FindReservoir(id string) *Reservoir {
	return manager.Cascade().FindReservoir(id)
}

// RunSummary describes one persisted simulation run.
type RunSummary struct {
	Run    simdb.Run
	Result *Result
}

// RunSimulation simulates the active cascade for the given number of weeks
// (zero means the full horizon), persists the run, and returns its summary.
func (manager *Manager) RunSimulation(ctx context.Context, weeks int) (*RunSummary, error) {
	cascade := manager.Cascade()

	result, err := cascade.Run(weeks)
	if err != nil {
		return nil, err
	}

	run := simdb.Run{
		ID:                uuid.NewString(),
		Dataset:           cascade.Name,
		Weeks:             result.Weeks,
		OutletRelease:     result.OutletRelease,
		UnfulfilledDemand: result.UnfulfilledDemand,
		CreatedAt:         time.Now().UnixMilli(),
	}

	runWeeks := make([]simdb.RunWeek, 0, len(cascade.Reservoirs)*result.Weeks)
	for _, r := range cascade.Reservoirs {
		storage := result.Storage[r.ID]
		steps := result.Steps[r.ID]
		for week := 0; week < result.Weeks; week++ {
			runWeeks = append(runWeeks, simdb.RunWeek{
				RunID:             run.ID,
				ReservoirID:       r.ID,
				Week:              week,
				StoredVolume:      storage[week],
				Release:           steps[week].Release,
				UnfulfilledDemand: steps[week].UnfulfilledDemand,
			})
		}
	}

	if err := manager.SimDB.Queries.InsertRun(ctx, run, runWeeks); err != nil {
		return nil, fmt.Errorf("error persisting run: %w", err)
	}

	logging.LogSimulationRun(manager.logger, run.ID, run.Weeks, run.UnfulfilledDemand,
		slog.String("dataset", run.Dataset))

	return &RunSummary{Run: run, Result: result}, nil
}

func (manager *Manager) setCascade(ctx context.Context, cascade *Cascade) error {
	reservoirs := make([]simdb.Reservoir, 0, len(cascade.Reservoirs))
	for _, r := range cascade.Reservoirs {
		reservoirs = append(reservoirs, simdb.Reservoir{
			ID:           r.ID,
			Name:         r.Name,
			Capacity:     r.Capacity(),
			HorizonWeeks: cascade.HorizonWeeks,
		})
	}

	if err := manager.SimDB.ImportReservoirs(ctx, reservoirs); err != nil {
		return fmt.Errorf("error importing reservoirs: %w", err)
	}

	manager.mu.Lock()
	manager.cascade = cascade
	manager.lastUpdated = time.Now()
	manager.mu.Unlock()

	if manager.config.Verbose {
		logging.LogOperation(manager.logger, "dataset_loaded",
			slog.String("source", manager.source),
			slog.Int("reservoirs", len(cascade.Reservoirs)),
			slog.Int("horizon_weeks", cascade.HorizonWeeks))
	}
	return nil
}

func (manager *Manager) reload() {
	cascade, err := loadDataset(manager.source, manager.isLocalFile)
	if err != nil {
		logging.LogError(manager.logger, "error reloading dataset", err,
			slog.String("source", manager.source))
		return
	}

	if err := manager.setCascade(context.Background(), cascade); err != nil {
		logging.LogError(manager.logger, "error applying reloaded dataset", err,
			slog.String("source", manager.source))
	}
}

// startWatcher hot-reloads local dataset files when they change on disk.
func (manager *Manager) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating dataset watcher: %w", err)
	}
	if err := watcher.Add(manager.source); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("error watching dataset file: %w", err)
	}

	manager.watcher = watcher
	manager.wg.Add(1)

	go func() {
		defer manager.wg.Done()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
					manager.reload()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.LogError(manager.logger, "dataset watcher error", err,
					slog.String("source", manager.source))
			case <-manager.shutdownChan:
				return
			}
		}
	}()

	return nil
}

// refreshPeriodically re-fetches URL datasets on a fixed interval.
func (manager *Manager) refreshPeriodically() {
	defer manager.wg.Done()

	ticker := time.NewTicker(manager.config.refreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			manager.reload()
		case <-manager.shutdownChan:
			return
		}
	}
}
