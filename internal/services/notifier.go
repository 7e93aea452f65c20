package services

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"seguimiento/metas-api/internal/models"
)

// Notificacion tells a submitting user the outcome of a review.
type Notificacion struct {
	UsuarioID    uuid.UUID
	EvidenciaID  uuid.UUID
	Decision     models.EstadoEvidencia
	Calificacion int
}

// Sender delivers one notification. Delivery failures are logged by the
// notifier and never reach the review call that triggered them.
type Sender interface {
	Send(n Notificacion) error
}

type Notifier interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(n Notificacion)
}

type notifier struct {
	sender      Sender
	queue       chan Notificacion
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewNotifier(sender Sender, concurrency, queueSize int) Notifier {
	return &notifier{
		sender:      sender,
		queue:       make(chan Notificacion, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Notifier.
func (w *notifier) Start(ctx context.Context) {
	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.drainQueue(i + 1)
	}
	log.Printf("✅ Notifier started with %d workers\n", w.concurrency)
}

// Stop implements Notifier.
func (w *notifier) Stop() {
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Notifier stopped")
}

// Enqueue implements Notifier. Non-blocking: a full queue drops the
// notification with a log line rather than stalling the review request.
func (w *notifier) Enqueue(n Notificacion) {
	select {
	case w.queue <- n:
	case <-w.stopChan:
		log.Printf("⚠️  Notifier stopped, dropping notification for evidencia %s\n", n.EvidenciaID)
	default:
		log.Printf("⚠️  Notification queue full, dropping notification for evidencia %s\n", n.EvidenciaID)
	}
}

func (w *notifier) drainQueue(workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case n := <-w.queue:
			if err := w.sender.Send(n); err != nil {
				log.Printf("⚠️  Worker #%d failed to notify usuario %s about evidencia %s: %v\n",
					workerID, n.UsuarioID, n.EvidenciaID, err)
			}
		}
	}
}

// logSender is the default delivery channel: it writes the notification to
// the application log. Swapping in SMTP is a wiring change in main.
type logSender struct{}

func NewLogSender() Sender {
	return &logSender{}
}

func (s *logSender) Send(n Notificacion) error {
	log.Printf("📧 Notificación: usuario=%s evidencia=%s decisión=%s calificación=%d\n",
		n.UsuarioID, n.EvidenciaID, n.Decision, n.Calificacion)
	return nil
}
