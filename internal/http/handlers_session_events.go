package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/journalsoc/journal-api/internal/service"
)

// SessionEventHandlers streams session transitions to subscribed clients.
type SessionEventHandlers struct {
	Events *service.SessionEvents
}

// Stream handles HTTP requests to follow session changes over server-sent events.
// GET /api/session-events. One event per login or logout; the stream ends when
// the client disconnects.
func (h *SessionEventHandlers) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ch, cancel := h.Events.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case change, open := <-ch:
			if !open {
				return
			}
			payload, err := json.Marshal(change)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "event: session\ndata: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
