package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// WindowMode is the gate state of the global exam window.
type WindowMode string

const (
	WindowBeforeOpen WindowMode = "before_open"
	WindowOpen       WindowMode = "open"
	WindowClosed     WindowMode = "closed"
)

// ExamWindow is the administrator-configured range during which exams may be
// started. A nil window means exams are closed.
type ExamWindow struct {
	OpenAt  time.Time `json:"openAt"`
	CloseAt time.Time `json:"closeAt"`
}

// Mode returns the window state at the given instant plus the seconds
// remaining until the next transition (until open while before_open, until
// close while open, zero once closed).
func (w *ExamWindow) Mode(now time.Time) (WindowMode, int) {
	if w == nil {
		return WindowClosed, 0
	}
	if now.Before(w.OpenAt) {
		return WindowBeforeOpen, ceilSeconds(w.OpenAt.Sub(now))
	}
	if now.Before(w.CloseAt) {
		return WindowOpen, ceilSeconds(w.CloseAt.Sub(now))
	}
	return WindowClosed, 0
}

func ceilSeconds(d time.Duration) int {
	secs := int(d / time.Second)
	if d%time.Second > 0 {
		secs++
	}
	return secs
}

// ParseExamWindow decodes a schedule document into a window. Timestamps are
// accepted in the encodings legacy admin tooling has produced over time:
// raw epoch-millis numbers, {"seconds": n} objects, or RFC3339 strings.
// Any malformed or inverted schedule yields (nil, false).
func ParseExamWindow(raw []byte) (*ExamWindow, bool) {
	var doc struct {
		OpenAt  json.RawMessage `json:"openAt"`
		CloseAt json.RawMessage `json:"closeAt"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false
	}

	openAt, ok := coerceTimestamp(doc.OpenAt)
	if !ok {
		return nil, false
	}
	closeAt, ok := coerceTimestamp(doc.CloseAt)
	if !ok {
		return nil, false
	}
	if !closeAt.After(openAt) {
		return nil, false
	}

	return &ExamWindow{OpenAt: openAt, CloseAt: closeAt}, true
}

func coerceTimestamp(raw json.RawMessage) (time.Time, bool) {
	// A JSON null would unmarshal into float64 without assignment and read
	// as epoch zero, so it is rejected up front like an absent field.
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return time.Time{}, false
	}

	var millis float64
	if err := json.Unmarshal(raw, &millis); err == nil {
		return time.UnixMilli(int64(millis)), true
	}

	var obj struct {
		Seconds *float64 `json:"seconds"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Seconds != nil {
		return time.UnixMilli(int64(*obj.Seconds * 1000)), true
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if t, err := time.Parse(time.RFC3339, str); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// UpdateScheduleRequest carries a new exam window from the admin panel.
// Fields stay raw so the same coercion path validates them.
type UpdateScheduleRequest struct {
	OpenAt  json.RawMessage `json:"openAt" binding:"required"`
	CloseAt json.RawMessage `json:"closeAt" binding:"required"`
}
