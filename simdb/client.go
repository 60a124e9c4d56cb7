package simdb

import (
	"context"
	"database/sql"
	"log/slog"
)

// Client is the main entry point for the simulation database
type Client struct {
	config  Config
	DB      *sql.DB
	Queries *Queries
}

// NewClient creates a new Client with the provided configuration
func NewClient(config Config, logger *slog.Logger) (*Client, error) {
	db, err := createDB(config)
	if err != nil {
		return nil, err
	}

	if config.verbose && logger != nil {
		logger.Info("simulation database ready", "path", config.DBPath)
	}

	return &Client{
		config:  config,
		DB:      db,
		Queries: New(db),
	}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// ImportReservoirs replaces the stored reservoir definitions with those of
// the given dataset snapshot.
func (c *Client) ImportReservoirs(ctx context.Context, reservoirs []Reservoir) error {
	return c.Queries.ReplaceReservoirs(ctx, reservoirs)
}
