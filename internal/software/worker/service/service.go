// Package service implements the estimate worker: for each queue message it
// resolves both route endpoints, fetches price and time estimates, merges
// them per product, and appends the outcome to the sink.
package service

import (
	"ride-estimates/internal/general/logger"
	"ride-estimates/internal/ports"
)

type workerService struct {
	logger    *logger.Logger
	geocoder  ports.Geocoder
	estimates ports.EstimateClient
	sink      ports.Sink
}

// NewWorkerService wires the pipeline's collaborators.
func NewWorkerService(log *logger.Logger, geocoder ports.Geocoder, estimates ports.EstimateClient, sink ports.Sink) ports.WorkerService {
	return &workerService{
		logger:    log,
		geocoder:  geocoder,
		estimates: estimates,
		sink:      sink,
	}
}
