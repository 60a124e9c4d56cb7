package app

import (
	"log/slog"

	"hydrosim.watervault.org/internal/appconf"
	"hydrosim.watervault.org/internal/sim"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware: the application configuration, a structured logger, and
// the simulation manager that owns the active cascade dataset.
type Application struct {
	Config     appconf.Config
	SimConfig  sim.Config
	Logger     *slog.Logger
	SimManager *sim.Manager
}
