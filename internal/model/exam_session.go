package model

import "time"

// SessionStatus enumerates exam session states.
type SessionStatus string

const (
	SessionStatusNotStarted SessionStatus = "NOT_STARTED"
	SessionStatusInProgress SessionStatus = "IN_PROGRESS"
	SessionStatusPassed     SessionStatus = "PASSED"
	SessionStatusFailed     SessionStatus = "FAILED"
)

// ExamResult is the outcome of one scored attempt. It is written at most
// once per attempt and only cleared when a new attempt starts.
type ExamResult struct {
	Score  int  `json:"score"`
	Passed bool `json:"passed"`
}

// ExamSession is one user's exam attempt state for one course. It is
// persisted on every mutation under courseExam:{userId}:{courseId} so a
// reload restores the attempt exactly.
type ExamSession struct {
	UserID        string      `json:"userId"`
	CourseID      int         `json:"courseId"`
	StartedAt     *time.Time  `json:"startedAt,omitempty"`
	Answers       map[int]int `json:"answers"`
	PageIndex     int         `json:"pageIndex"`
	Result        *ExamResult `json:"result,omitempty"`
	CooldownUntil *time.Time  `json:"cooldownUntil,omitempty"`
}

// SessionRef identifies one exam attempt without its state.
type SessionRef struct {
	UserID   string
	CourseID int
}

// NewExamSession returns the all-null session created on first visit.
func NewExamSession(userID string, courseID int) *ExamSession {
	return &ExamSession{
		UserID:   userID,
		CourseID: courseID,
		Answers:  make(map[int]int),
	}
}

// Status derives the state-machine state from the stored fields.
func (s *ExamSession) Status() SessionStatus {
	if s.Result != nil {
		if s.Result.Passed {
			return SessionStatusPassed
		}
		return SessionStatusFailed
	}
	if s.StartedAt != nil {
		return SessionStatusInProgress
	}
	return SessionStatusNotStarted
}

// CooldownActive reports whether a failure lockout is still running.
func (s *ExamSession) CooldownActive(now time.Time) bool {
	return s.CooldownUntil != nil && now.Before(*s.CooldownUntil)
}

// AnswerExamRequest records one selected option.
type AnswerExamRequest struct {
	QuestionIndex int `json:"questionIndex" binding:"min=0"`
	OptionIndex   int `json:"optionIndex" binding:"min=0"`
}

// ChangePageRequest moves the question page cursor by a delta.
type ChangePageRequest struct {
	Direction int `json:"direction" binding:"required,oneof=-1 1"`
}
