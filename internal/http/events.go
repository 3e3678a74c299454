package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	middleware "taskboard.com/taskboard/internal/http/middlewares"
	model "taskboard.com/taskboard/internal/models"
	"taskboard.com/taskboard/internal/realtime"
)

// StreamEvents bridges the change notifier to a server-sent-events
// stream. A slow client gets events dropped rather than blocking the
// hub; the prescribed reaction to any event is a full reload, so a gap
// costs nothing.
func (h *Handler) StreamEvents(c echo.Context) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	actor := middleware.ActorFrom(c)
	events := make(chan realtime.Event, 16)
	unsubscribe, err := h.notifier.Subscribe(func(e realtime.Event) {
		if !visibleTo(actor, e) {
			return
		}
		select {
		case events <- e:
		default:
		}
	})
	if err != nil {
		return domainError(err)
	}
	defer unsubscribe()

	ctx := c.Request().Context()
	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-events:
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			w.Flush()
		case <-keepalive.C:
			fmt.Fprint(w, ": keepalive\n\n")
			w.Flush()
		}
	}
}

// visibleTo keeps targeted events private. Task changes broadcast to
// everyone; an event carrying a user id only reaches that user's
// stream.
func visibleTo(actor model.Actor, event realtime.Event) bool {
	return event.UserID == "" || event.UserID == actor.ID
}
