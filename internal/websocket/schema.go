package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventScheduleTick Event = "schedule_tick"
	EventError        Event = "error"
	EventPong         Event = "pong"
)

// ScheduleTick is pushed every second with the window gate state so exam
// countdowns run off the server clock.
type ScheduleTick struct {
	Event            Event  `json:"event"`
	Mode             string `json:"mode"`
	RemainingSeconds int    `json:"remainingSeconds"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
