package sim

import (
	"time"

	"hydrosim.watervault.org/internal/appconf"
)

type Config struct {
	// DatasetSource is either a local YAML file path or an HTTP(S) URL.
	DatasetSource string
	// DataPath is the SQLite database location (":memory:" in tests).
	DataPath string
	Env      appconf.Environment
	Verbose  bool
	// WatchDataset enables hot-reloading of local dataset files.
	WatchDataset bool
	// RefreshInterval controls how often URL datasets are re-fetched.
	// Zero means the 24 hour default.
	RefreshInterval time.Duration
}

func (config Config) refreshInterval() time.Duration {
	if config.RefreshInterval <= 0 {
		return 24 * time.Hour
	}
	return config.RefreshInterval
}
