package stage

import (
	"encoding/json"
	"testing"
)

func TestForTable(t *testing.T) {
	cases := []struct {
		completed int
		want      float64
	}{
		{-3, 1},
		{0, 1},
		{1, 2},
		{2, 3},
		{3, 4},
		{4, 5},
		{5, 6},
		{6, 7},
		{7, 7.5},
		{8, 8},
		{9, 8},
		{100, 8},
	}
	for _, tc := range cases {
		if got := For(tc.completed).Float(); got != tc.want {
			t.Errorf("For(%d) = %v, want %v", tc.completed, got, tc.want)
		}
	}
}

func TestForIsDeterministic(t *testing.T) {
	for count := 0; count <= TotalCourses; count++ {
		a := For(count)
		b := For(count)
		if a != b {
			t.Fatalf("For(%d) not deterministic: %v vs %v", count, a, b)
		}
	}
}

func TestUnlock(t *testing.T) {
	if got := SeventhDoneFinalUnlocked().Unlock(); got != 8 {
		t.Errorf("Unlock() at half-stage = %d, want 8", got)
	}
	if got := Numbered(3).Unlock(); got != 3 {
		t.Errorf("Unlock() at stage 3 = %d, want 3", got)
	}
	if got := Numbered(8).Unlock(); got != 8 {
		t.Errorf("Unlock() at stage 8 = %d, want 8", got)
	}
}

func TestInProgressCourse(t *testing.T) {
	if id, ok := SeventhDoneFinalUnlocked().InProgressCourse(); !ok || id != 8 {
		t.Errorf("InProgressCourse() at half-stage = (%d, %v), want (8, true)", id, ok)
	}
	if id, ok := Numbered(4).InProgressCourse(); !ok || id != 4 {
		t.Errorf("InProgressCourse() at stage 4 = (%d, %v), want (4, true)", id, ok)
	}
	if _, ok := Numbered(8).InProgressCourse(); ok {
		t.Error("InProgressCourse() at stage 8 should report no course")
	}
}

// Seven passed exams unlock the final course while showing 1-7 as done.
func TestSevenCompletedUnlocksFinalCourse(t *testing.T) {
	s := For(7)
	if s.Float() != 7.5 {
		t.Fatalf("For(7).Float() = %v, want 7.5", s.Float())
	}
	if s.Unlock() != 8 {
		t.Errorf("Unlock() = %d, want 8", s.Unlock())
	}
	for id := 1; id <= 7; id++ {
		if !s.IsCourseCompleted(id) {
			t.Errorf("course %d should be completed", id)
		}
	}
	if s.IsCourseCompleted(8) {
		t.Error("course 8 should not be completed")
	}
	if !s.IsCourseUnlocked(8) {
		t.Error("course 8 should be unlocked")
	}
	if id, ok := s.InProgressCourse(); !ok || id != 8 {
		t.Errorf("InProgressCourse() = (%d, %v), want (8, true)", id, ok)
	}
}

func TestFinishedTrackCompletesAllCourses(t *testing.T) {
	s := For(8)
	for id := 1; id <= 8; id++ {
		if !s.IsCourseCompleted(id) {
			t.Errorf("course %d should be completed at stage 8", id)
		}
	}
	if s.IsCourseCompleted(0) || s.IsCourseCompleted(9) {
		t.Error("out-of-track course ids must never be completed")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	cases := []Stage{Numbered(1), Numbered(5), SeventhDoneFinalUnlocked(), Numbered(8)}
	for _, s := range cases {
		raw, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("marshal %v: %v", s, err)
		}
		var back Stage
		if err := json.Unmarshal(raw, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if back != s {
			t.Errorf("round trip %v -> %s -> %v", s, raw, back)
		}
	}
}

func TestUnmarshalInvalidFallsBackToStageOne(t *testing.T) {
	var s Stage
	if err := json.Unmarshal([]byte("3.25"), &s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != Numbered(1) {
		t.Errorf("invalid stage should fall back to 1, got %v", s)
	}
}

func TestFromFloat(t *testing.T) {
	if _, err := FromFloat(0); err == nil {
		t.Error("FromFloat(0) should fail")
	}
	if _, err := FromFloat(8.5); err == nil {
		t.Error("FromFloat(8.5) should fail")
	}
	s, err := FromFloat(7.5)
	if err != nil || s != SeventhDoneFinalUnlocked() {
		t.Errorf("FromFloat(7.5) = (%v, %v)", s, err)
	}
}
