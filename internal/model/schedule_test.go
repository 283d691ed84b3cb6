package model

import (
	"fmt"
	"testing"
	"time"
)

func TestParseExamWindowEncodings(t *testing.T) {
	open := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	close := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		raw  string
	}{
		{
			"epoch millis",
			fmt.Sprintf(`{"openAt": %d, "closeAt": %d}`, open.UnixMilli(), close.UnixMilli()),
		},
		{
			"seconds object",
			fmt.Sprintf(`{"openAt": {"seconds": %d}, "closeAt": {"seconds": %d}}`, open.Unix(), close.Unix()),
		},
		{
			"rfc3339 string",
			fmt.Sprintf(`{"openAt": %q, "closeAt": %q}`, open.Format(time.RFC3339), close.Format(time.RFC3339)),
		},
		{
			"mixed encodings",
			fmt.Sprintf(`{"openAt": %d, "closeAt": {"seconds": %d}}`, open.UnixMilli(), close.Unix()),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, ok := ParseExamWindow([]byte(tc.raw))
			if !ok {
				t.Fatalf("ParseExamWindow(%s) rejected", tc.raw)
			}
			if !w.OpenAt.Equal(open) || !w.CloseAt.Equal(close) {
				t.Errorf("got window %v..%v, want %v..%v", w.OpenAt, w.CloseAt, open, close)
			}
		})
	}
}

func TestParseExamWindowRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `{{`},
		{"missing closeAt", `{"openAt": 1700000000000}`},
		{"boolean timestamp", `{"openAt": true, "closeAt": 1700000000000}`},
		{"null openAt", `{"openAt": null, "closeAt": 1700000000000}`},
		{"null closeAt", `{"openAt": 1700000000000, "closeAt": null}`},
		{"inverted range", `{"openAt": 1700000005000, "closeAt": 1700000000000}`},
		{"equal instants", `{"openAt": 1700000000000, "closeAt": 1700000000000}`},
		{"garbled string", `{"openAt": "soon", "closeAt": "later"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w, ok := ParseExamWindow([]byte(tc.raw)); ok {
				t.Errorf("ParseExamWindow accepted %s as %v", tc.raw, w)
			}
		})
	}
}

func TestWindowMode(t *testing.T) {
	open := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	close := open.Add(2 * time.Hour)
	w := &ExamWindow{OpenAt: open, CloseAt: close}

	mode, remaining := w.Mode(open.Add(-90 * time.Second))
	if mode != WindowBeforeOpen || remaining != 90 {
		t.Errorf("before open: got (%s, %d), want (before_open, 90)", mode, remaining)
	}

	mode, remaining = w.Mode(open)
	if mode != WindowOpen || remaining != 7200 {
		t.Errorf("at open: got (%s, %d), want (open, 7200)", mode, remaining)
	}

	mode, remaining = w.Mode(close.Add(-1 * time.Millisecond))
	if mode != WindowOpen || remaining != 1 {
		t.Errorf("just before close: got (%s, %d), want (open, 1)", mode, remaining)
	}

	mode, remaining = w.Mode(close)
	if mode != WindowClosed || remaining != 0 {
		t.Errorf("at close: got (%s, %d), want (closed, 0)", mode, remaining)
	}

	var none *ExamWindow
	mode, remaining = none.Mode(open)
	if mode != WindowClosed || remaining != 0 {
		t.Errorf("nil window: got (%s, %d), want (closed, 0)", mode, remaining)
	}
}
