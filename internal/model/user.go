package model

import "github.com/kashafa/tadreeb-backend/internal/stage"

// Progress tracks a user's movement through the training track. All three
// lists use course ids; completedExams is kept de-duplicated and sorted
// ascending by the progress service.
type Progress struct {
	OpenedCourses  []int `json:"openedCourses"`
	CompletedExams []int `json:"completedExams"`
	Scores         []int `json:"scores"`
}

// User is the authoritative user record. CurrentStage is always a pure
// function of len(Progress.CompletedExams); it is stored only so that reads
// do not recompute it, and every progress write recomputes it.
type User struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Serial       string      `json:"serial"`
	CurrentStage stage.Stage `json:"currentStage"`
	Progress     Progress    `json:"progress"`
}

// HasPassed reports whether the user already passed the exam of courseID.
func (u *User) HasPassed(courseID int) bool {
	for _, id := range u.Progress.CompletedExams {
		if id == courseID {
			return true
		}
	}
	return false
}

// BarcodeLoginRequest is the payload for barcode authentication.
type BarcodeLoginRequest struct {
	BarcodeNumber string `json:"barcodeNumber" binding:"required,min=1,max=64"`
}

// UpdateProgressRequest is the payload for the progress patch. Lists are
// merged into the stored sets; they never replace them wholesale.
type UpdateProgressRequest struct {
	CompletedExams []int `json:"completedExams" binding:"omitempty,dive,min=1,max=8"`
	OpenedCourses  []int `json:"openedCourses" binding:"omitempty,dive,min=1,max=8"`
	Scores         []int `json:"scores" binding:"omitempty,dive,min=0"`
}
