package app

import (
	"bytes"

	"objcunused/internal/core/errors"
	"objcunused/internal/engine/events"
	"objcunused/internal/shared/util"
)

// traceRecorder tees front-end events into a JSON-lines buffer that replays
// through TraceFrontend.
type traceRecorder struct {
	path string
	buf  bytes.Buffer
	enc  *events.Encoder
	next events.Sink
}

func newTraceRecorder(path string, next events.Sink) *traceRecorder {
	r := &traceRecorder{path: path, next: next}
	r.enc = events.NewEncoder(&r.buf)
	return r
}

func (r *traceRecorder) Emit(ev events.Event) error {
	if err := r.enc.Emit(ev); err != nil {
		return err
	}
	return r.next.Emit(ev)
}

// flush writes everything recorded so far, including the events of a failed
// run.
func (r *traceRecorder) flush() error {
	if err := util.WriteFileAtomic(r.path, r.buf.Bytes(), 0o644); err != nil {
		return errors.AddContext(errors.Wrap(err, errors.CodeInternal, "save event trace"), errors.CtxPath, r.path)
	}
	return nil
}
