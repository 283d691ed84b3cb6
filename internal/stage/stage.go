// Package stage derives a user's progression checkpoint from their count of
// passed course exams. It is the single source of truth for stage math: both
// the dashboard payload and the authoritative progress recompute go through
// this package so the two can never drift.
package stage

import (
	"encoding/json"
	"fmt"
	"math"
)

// TotalCourses is the length of the training track.
const TotalCourses = 8

// Stage is a user's progression checkpoint. It is either a plain numbered
// stage 1..8 or the "seventh course done, final exam pending" state that the
// legacy data model encodes as 7.5. The wire format keeps the numeric
// encoding for compatibility; code works with the tagged value.
type Stage struct {
	n           int
	seventhDone bool
}

// Numbered returns the plain stage n. Values are clamped into [1, TotalCourses].
func Numbered(n int) Stage {
	if n < 1 {
		n = 1
	}
	if n > TotalCourses {
		n = TotalCourses
	}
	return Stage{n: n}
}

// SeventhDoneFinalUnlocked is the half-stage between 7 and 8: all seven
// regular courses passed, the final course unlocked but not yet passed.
func SeventhDoneFinalUnlocked() Stage {
	return Stage{n: TotalCourses - 1, seventhDone: true}
}

// For maps a completed-exam count to the current stage. It is total over all
// ints: negative counts behave like zero, counts past the track length behave
// like a finished track.
func For(completedCount int) Stage {
	switch {
	case completedCount >= TotalCourses:
		return Numbered(TotalCourses)
	case completedCount == TotalCourses-1:
		return SeventhDoneFinalUnlocked()
	case completedCount < 0:
		return Numbered(1)
	default:
		return Numbered(completedCount + 1)
	}
}

// Unlock returns the highest course id the user may open.
func (s Stage) Unlock() int {
	if s.seventhDone {
		return TotalCourses
	}
	return s.n
}

// InProgressCourse returns the course the user is currently working on.
// The second return is false once the whole track is finished.
func (s Stage) InProgressCourse() (int, bool) {
	if s.seventhDone {
		return TotalCourses, true
	}
	if s.n < TotalCourses {
		return s.n, true
	}
	return 0, false
}

// IsCourseCompleted reports whether courseID is behind the user's checkpoint.
func (s Stage) IsCourseCompleted(courseID int) bool {
	if s.seventhDone {
		return courseID <= TotalCourses-1
	}
	if s.n >= TotalCourses {
		return courseID >= 1 && courseID <= TotalCourses
	}
	return courseID < s.n
}

// IsCourseUnlocked reports whether the user may open courseID.
func (s Stage) IsCourseUnlocked(courseID int) bool {
	return courseID >= 1 && courseID <= s.Unlock()
}

// Float returns the legacy numeric encoding (7.5 for the half-stage).
func (s Stage) Float() float64 {
	if s.seventhDone {
		return float64(TotalCourses) - 0.5
	}
	return float64(s.n)
}

// FromFloat parses the legacy numeric encoding.
func FromFloat(v float64) (Stage, error) {
	if v == float64(TotalCourses)-0.5 {
		return SeventhDoneFinalUnlocked(), nil
	}
	if v != math.Trunc(v) || v < 1 || v > TotalCourses {
		return Stage{}, fmt.Errorf("invalid stage value %v", v)
	}
	return Numbered(int(v)), nil
}

func (s Stage) String() string {
	if s.seventhDone {
		return "7.5"
	}
	return fmt.Sprintf("%d", s.n)
}

// MarshalJSON emits the numeric encoding so existing clients keep working.
func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Float())
}

// UnmarshalJSON accepts the numeric encoding. Invalid values fall back to
// stage 1 rather than failing the whole record: a corrupt stage field is
// recoverable because the stage is always recomputed from completedExams on
// the next progress write.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := FromFloat(v)
	if err != nil {
		*s = Numbered(1)
		return nil
	}
	*s = parsed
	return nil
}
