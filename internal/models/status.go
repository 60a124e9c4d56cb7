package models

import "time"

// StatusModel describes the currently loaded cascade dataset
type StatusModel struct {
	Dataset        string `json:"dataset"`
	ReservoirCount int    `json:"reservoirCount"`
	HorizonWeeks   int    `json:"horizonWeeks"`
	ReadableTime   string `json:"readableTime"`
	LastLoaded     int64  `json:"lastLoaded"`
}

// NewStatusModel creates a StatusModel based on the provided load time
func NewStatusModel(dataset string, reservoirCount, horizonWeeks int, lastLoaded time.Time) StatusModel {
	return StatusModel{
		Dataset:        dataset,
		ReservoirCount: reservoirCount,
		HorizonWeeks:   horizonWeeks,
		ReadableTime:   lastLoaded.Format(time.RFC3339),
		LastLoaded:     lastLoaded.UnixNano() / int64(time.Millisecond),
	}
}

// StreamflowModel is the payload returned by the generate-streamflow endpoint
type StreamflowModel struct {
	Weeks     int       `json:"weeks"`
	Amplitude float64   `json:"amplitude"`
	LogMean   float64   `json:"logMean"`
	LogSigma  float64   `json:"logSigma"`
	Seed      int64     `json:"seed"`
	Flows     []float64 `json:"flows"`
}
