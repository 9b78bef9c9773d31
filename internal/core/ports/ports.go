package ports

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=ports.go -destination=mockports.gen.go -package=ports

import (
	"context"
	"time"

	"objcunused/internal/data/history"
	"objcunused/internal/engine/events"
)

// Frontend produces the event stream for one translation unit. The returned
// exit code is the front-end's own status; a non-zero code or an error means
// no report is produced for the run.
type Frontend interface {
	Run(ctx context.Context, mainFile string, sink events.Sink) (int, error)
}

// RunStore abstracts run-history persistence.
type RunStore interface {
	SaveRun(run history.Run) (string, error)
	LoadRuns(projectKey, mainFile string, limit int) ([]history.Run, error)
	Prune(projectKey string, keep int) (int64, error)
	Close() error
}

type EnqueueResult string

const (
	EnqueueAccepted EnqueueResult = "accepted"
	EnqueueDropped  EnqueueResult = "dropped"
)

// RunQueue buffers finished runs for a background writer.
type RunQueue interface {
	Enqueue(run history.Run) EnqueueResult
	DequeueBatch(ctx context.Context, maxItems int, wait time.Duration) ([]history.Run, error)
	Close() error
}
