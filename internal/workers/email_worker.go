package workers

import (
	"context"
	"sync"

	"github.com/akarimullin/tasktrack/internal/adapter"
	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/models"
)

// EmailWorker drains a buffered channel of outbound e-mail messages so
// request handlers never block on the provider.
//
// Delivery is best-effort: failures are logged and dropped, never retried.
// The in-app notification row written by the service layer is the durable
// record either way.
type EmailWorker struct {
	sender adapter.EmailSender
	queue  chan models.EmailMessage
	logger *logger.Logger

	stopOnce sync.Once
	done     chan struct{}
}

// NewEmailWorker constructs an [EmailWorker] with a buffer of queueSize
// messages.
func NewEmailWorker(sender adapter.EmailSender, queueSize int, logger *logger.Logger) *EmailWorker {
	if queueSize <= 0 {
		queueSize = 64
	}

	return &EmailWorker{
		sender: sender,
		queue:  make(chan models.EmailMessage, queueSize),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Enqueue offers a message to the dispatch queue without blocking.
// Reports false when the queue is full; the message is dropped in that case.
func (w *EmailWorker) Enqueue(msg models.EmailMessage) bool {
	select {
	case w.queue <- msg:
		return true
	default:
		w.logger.Warn().Str("to", msg.To).Msg("email queue full, message dropped")
		return false
	}
}

// Run implements [Worker]. It starts the dispatch goroutine and returns
// immediately.
func (w *EmailWorker) Run() {
	go w.dispatch()
}

func (w *EmailWorker) dispatch() {
	defer close(w.done)

	for msg := range w.queue {
		if err := w.sender.Send(context.Background(), msg); err != nil {
			w.logger.Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("email delivery failed")
		}
	}
}

// Stop closes the queue and waits until every buffered message was handed to
// the sender. Safe to call more than once.
func (w *EmailWorker) Stop() {
	w.stopOnce.Do(func() {
		close(w.queue)
	})
	<-w.done
}
