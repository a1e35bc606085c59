package cleanup

import (
	"log"
	"time"

	"github.com/Gabo-araya/connect4-IA-agent/internal/service/game"
)

// Worker abandons game sessions whose players walked away. The engine
// has no internal timeout, so stale games only ever die here.
type Worker struct {
	Manager           *game.Manager
	InactivityTimeout time.Duration
	Interval          time.Duration
}

func NewWorker(manager *game.Manager, inactivityTimeout time.Duration) *Worker {
	return &Worker{
		Manager:           manager,
		InactivityTimeout: inactivityTimeout,
		Interval:          time.Minute,
	}
}

// Start initiates the background ticker.
func (w *Worker) Start() {
	ticker := time.NewTicker(w.Interval)
	go func() {
		for range ticker.C {
			w.runCleanup()
		}
	}()
	log.Println("[CLEANUP] Background worker started")
}

func (w *Worker) runCleanup() {
	if abandoned := w.Manager.AbandonInactive(w.InactivityTimeout); abandoned > 0 {
		log.Printf("[CLEANUP] Abandoned %d inactive games", abandoned)
	}
}
