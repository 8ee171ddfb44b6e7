package workers

import (
	"github.com/akarimullin/tasktrack/internal/adapter"
	"github.com/akarimullin/tasktrack/internal/config"
	"github.com/akarimullin/tasktrack/internal/logger"
)

// Workers aggregates all background workers of the server.
type Workers struct {
	// Email is exported so that the service layer can enqueue outbound
	// messages through it.
	Email *EmailWorker

	workers []Worker
}

// NewWorkers wires the background workers against their outbound adapters.
func NewWorkers(sender adapter.EmailSender, cfg config.Email, logger *logger.Logger) *Workers {
	email := NewEmailWorker(sender, cfg.QueueSize, logger)

	return &Workers{
		Email:   email,
		workers: []Worker{email},
	}
}

// Run starts every worker.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop shuts the workers down and waits for in-flight work to finish.
func (w *Workers) Stop() {
	if w.Email != nil {
		w.Email.Stop()
	}
}
