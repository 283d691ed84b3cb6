package service

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/kashafa/tadreeb-backend/internal/model"
	"github.com/rs/zerolog"
)

func TestMergeProgress(t *testing.T) {
	current := model.Progress{
		OpenedCourses:  []int{1, 2, 3},
		CompletedExams: []int{1, 2},
		Scores:         []int{8, 9},
	}
	req := &model.UpdateProgressRequest{
		OpenedCourses:  []int{3, 4},
		CompletedExams: []int{3, 2},
		Scores:         []int{7},
	}

	merged := MergeProgress(current, req)

	if want := []int{1, 2, 3, 4}; !reflect.DeepEqual(merged.OpenedCourses, want) {
		t.Errorf("openedCourses = %v, want %v", merged.OpenedCourses, want)
	}
	if want := []int{1, 2, 3}; !reflect.DeepEqual(merged.CompletedExams, want) {
		t.Errorf("completedExams = %v, want %v", merged.CompletedExams, want)
	}
	if want := []int{8, 9, 7}; !reflect.DeepEqual(merged.Scores, want) {
		t.Errorf("scores = %v, want %v", merged.Scores, want)
	}
}

func TestMergeProgressEmptyPatchKeepsState(t *testing.T) {
	current := model.Progress{
		OpenedCourses:  []int{2, 1},
		CompletedExams: []int{1},
		Scores:         []int{10},
	}

	merged := MergeProgress(current, &model.UpdateProgressRequest{})

	if want := []int{1, 2}; !reflect.DeepEqual(merged.OpenedCourses, want) {
		t.Errorf("openedCourses = %v, want sorted %v", merged.OpenedCourses, want)
	}
	if want := []int{1}; !reflect.DeepEqual(merged.CompletedExams, want) {
		t.Errorf("completedExams = %v, want %v", merged.CompletedExams, want)
	}
	if want := []int{10}; !reflect.DeepEqual(merged.Scores, want) {
		t.Errorf("scores = %v, want %v", merged.Scores, want)
	}
}

func TestMergeProgressIsIdempotentForSets(t *testing.T) {
	current := model.Progress{CompletedExams: []int{1, 2, 3}}
	req := &model.UpdateProgressRequest{CompletedExams: []int{2, 3}}

	once := MergeProgress(current, req)
	twice := MergeProgress(once, req)

	if !reflect.DeepEqual(once.CompletedExams, twice.CompletedExams) {
		t.Errorf("re-applying the same patch changed the set: %v vs %v",
			once.CompletedExams, twice.CompletedExams)
	}
}

func TestScheduleServiceAppliesRawWindow(t *testing.T) {
	svc := NewScheduleService(nil, nil, zerolog.Nop())
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	raw := fmt.Sprintf(`{"openAt": %d, "closeAt": %d}`,
		now.Add(-time.Hour).UnixMilli(), now.Add(2*time.Hour).UnixMilli())
	svc.applyRaw(raw)
	if svc.Window() == nil {
		t.Fatal("valid schedule must install a window")
	}

	mode, _ := svc.Mode()
	if mode != model.WindowOpen {
		t.Errorf("mode = %s, want open", mode)
	}

	// A malformed update closes exams rather than keeping a stale window.
	svc.applyRaw(`{"openAt": "whenever"}`)
	if svc.Window() != nil {
		t.Error("malformed schedule must clear the window")
	}
	if mode, remaining := svc.Mode(); mode != model.WindowClosed || remaining != 0 {
		t.Errorf("mode = (%s, %d), want (closed, 0)", mode, remaining)
	}
}
