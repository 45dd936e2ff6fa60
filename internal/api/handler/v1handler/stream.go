package v1handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"osintscan/pkg/logger"
	"osintscan/pkg/progress"
	"osintscan/pkg/serrors"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// StreamProgress streams a job's progress events as Server-Sent Events. Jobs
// that already ended get their terminal event synthesized from the record.
// The stream ends after a terminal event or when the client goes away. Each
// heartbeat re-reads the record so a dropped terminal event cannot keep the
// stream open.
func (h *Handler) StreamProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parseScanJobID(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, err)

		return
	}
	userID := GetUserIDFromContext(ctx)

	job, err := h.deps.ScanJobs.Get(ctx, userID, id)
	if err != nil {
		renderError(w, r, err)

		return
	}

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var events <-chan progress.Event
	if !job.Status.IsTerminal() {
		events, err = h.deps.Progress.Subscribe(subCtx, id)
		if err != nil {
			renderError(w, r, serrors.Wrap(serrors.ErrUnavailable, err, "progress stream unavailable"))

			return
		}

		// the job may have ended before the subscription was registered
		job, err = h.deps.ScanJobs.Get(ctx, userID, id)
		if err != nil {
			renderError(w, r, err)

			return
		}
	}

	rc := http.NewResponseController(w)
	// the server write timeout would cut long scans short
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		logger.Debug(ctx, "could not clear write deadline", zap.Error(err))
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if ev, ok := progress.Snapshot(job, h.options.TotalUnits); ok {
		_ = writeEvent(w, ev)
		_ = rc.Flush()

		return
	}

	if _, err := io.WriteString(w, ": subscribed\n\n"); err != nil {
		return
	}
	_ = rc.Flush()

	heartbeat := time.NewTicker(h.options.Heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			// the terminal event can be lost in transit, so the record decides
			current, err := h.deps.ScanJobs.Get(ctx, userID, id)
			if err != nil {
				logger.Debug(ctx, "could not refresh scan job", zap.Error(err))
			} else if ev, ok := progress.Snapshot(current, h.options.TotalUnits); ok {
				_ = writeEvent(w, ev)
				_ = rc.Flush()

				return
			}

			if _, err := io.WriteString(w, ": heartbeat\n\n"); err != nil {
				return
			}
			_ = rc.Flush()
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(w, ev); err != nil {
				logger.Debug(ctx, "progress stream closed", zap.Error(err))

				return
			}
			_ = rc.Flush()

			if ev.Status.IsTerminal() {
				return
			}
		}
	}
}

func writeEvent(w io.Writer, ev progress.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("could not marshal progress event: %w", err)
	}

	if _, err := fmt.Fprintf(w, "event: progress\ndata: %s\n\n", data); err != nil {
		return fmt.Errorf("could not write progress event: %w", err)
	}

	return nil
}
