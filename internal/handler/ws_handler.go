package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/kashafa/tadreeb-backend/internal/model"
	"github.com/kashafa/tadreeb-backend/internal/service"
	ws "github.com/kashafa/tadreeb-backend/internal/websocket"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams the exam window state over WebSocket.
type WSHandler struct {
	schedule *service.ScheduleService
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(schedule *service.ScheduleService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		schedule: schedule,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// ScheduleStream godoc
// WS /ws/v1/schedule/stream
// Pushes a schedule tick every second so countdowns run off the server
// clock. The client may send pings; everything else is ignored.
func (h *WSHandler) ScheduleStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// Reader goroutine: answer pings, drop everything else, and signal
	// when the peer goes away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var env ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &env); err != nil {
				return
			}
			if env.Action == ws.ActionPing {
				_ = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			}
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	var lastMode model.WindowMode
	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
			mode, remaining := h.schedule.Mode()
			tick := ws.ScheduleTick{
				Event:            ws.EventScheduleTick,
				Mode:             string(mode),
				RemainingSeconds: remaining,
			}
			if err := ws.WriteTyped(conn, tick); err != nil {
				return
			}
			if mode != lastMode && lastMode != "" {
				h.log.Debug().Str("mode", string(mode)).Msg("window mode transition streamed")
			}
			lastMode = mode
		}
	}
}
