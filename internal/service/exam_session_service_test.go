package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kashafa/tadreeb-backend/internal/catalog"
	"github.com/kashafa/tadreeb-backend/internal/model"
	"github.com/kashafa/tadreeb-backend/internal/stage"
	"github.com/rs/zerolog"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// fakeStore round-trips sessions through JSON so tests exercise the same
// serialization the Redis store uses.
type fakeStore struct {
	blobs  map[string][]byte
	active map[model.SessionRef]struct{}
	saves  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		blobs:  make(map[string][]byte),
		active: make(map[model.SessionRef]struct{}),
	}
}

func blobKey(userID string, courseID int) string {
	return fmt.Sprintf("%s/%d", userID, courseID)
}

func (f *fakeStore) Load(_ context.Context, userID string, courseID int) (*model.ExamSession, error) {
	raw, ok := f.blobs[blobKey(userID, courseID)]
	if !ok {
		return nil, nil
	}
	var s model.ExamSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (f *fakeStore) Save(_ context.Context, session *model.ExamSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	f.blobs[blobKey(session.UserID, session.CourseID)] = raw
	f.saves++
	return nil
}

func (f *fakeStore) MarkActive(_ context.Context, userID string, courseID int) error {
	f.active[model.SessionRef{UserID: userID, CourseID: courseID}] = struct{}{}
	return nil
}

func (f *fakeStore) ClearActive(_ context.Context, userID string, courseID int) error {
	delete(f.active, model.SessionRef{UserID: userID, CourseID: courseID})
	return nil
}

func (f *fakeStore) ActiveSessions(_ context.Context) ([]model.SessionRef, error) {
	refs := make([]model.SessionRef, 0, len(f.active))
	for ref := range f.active {
		refs = append(refs, ref)
	}
	return refs, nil
}

type fakeWindows struct{ window *model.ExamWindow }

func (f *fakeWindows) Window() *model.ExamWindow { return f.window }

type fakeProgress struct {
	user    *model.User
	passes  []model.SessionRef
	syncErr error
}

func (f *fakeProgress) RecordPassedExam(_ context.Context, userID string, courseID, score int) error {
	if f.syncErr != nil {
		return f.syncErr
	}
	f.passes = append(f.passes, model.SessionRef{UserID: userID, CourseID: courseID})
	f.user.Progress.CompletedExams = append(f.user.Progress.CompletedExams, courseID)
	f.user.Progress.Scores = append(f.user.Progress.Scores, score)
	return nil
}

func (f *fakeProgress) GetUser(_ context.Context, userID string) (*model.User, error) {
	if f.user == nil || f.user.ID != userID {
		return nil, ErrUserNotFound
	}
	return f.user, nil
}

func testExamCatalog() *catalog.Catalog {
	questions := make([]catalog.Question, 10)
	for i := range questions {
		questions[i] = catalog.Question{
			Text:         fmt.Sprintf("question %d", i+1),
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: i % 4,
		}
	}
	def := &catalog.ExamDefinition{
		CourseID:        1,
		Title:           "course one",
		Questions:       questions,
		DurationMinutes: 30,
		PassScore:       6,
		CooldownMinutes: 120,
	}
	courses := []catalog.Course{{ID: 1, Title: "course one", ContentURL: "https://example.com/1"}}
	return catalog.New(courses, map[int]*catalog.ExamDefinition{1: def})
}

func newExamFixture(t *testing.T) (*ExamSessionService, *fakeStore, *fakeWindows, *fakeProgress, *fakeClock) {
	t.Helper()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: base}
	store := newFakeStore()
	windows := &fakeWindows{window: &model.ExamWindow{
		OpenAt:  base.Add(-time.Hour),
		CloseAt: base.Add(3 * time.Hour),
	}}
	progress := &fakeProgress{user: &model.User{
		ID:           "u1",
		Name:         "tester",
		Serial:       "100001",
		CurrentStage: stage.For(0),
	}}

	svc := NewExamSessionService(store, windows, progress, testExamCatalog(), zerolog.Nop())
	svc.now = clock.Now
	return svc, store, windows, progress, clock
}

func answerCorrectly(t *testing.T, svc *ExamSessionService, count int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < count; i++ {
		if _, err := svc.Answer(ctx, "u1", 1, i, i%4); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}
}

func TestManualSubmitPass(t *testing.T) {
	svc, _, _, progress, _ := newExamFixture(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "u1", 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	answerCorrectly(t, svc, 7)

	session, syncPending, err := svc.Submit(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if session.Result == nil || session.Result.Score != 7 || !session.Result.Passed {
		t.Fatalf("got result %+v, want score 7 passed", session.Result)
	}
	if syncPending {
		t.Error("successful sync must not report a pending progress write")
	}
	if session.CooldownUntil != nil {
		t.Error("pass must not set a cooldown")
	}
	if session.StartedAt != nil {
		t.Error("submit must clear startedAt")
	}
	if len(progress.passes) != 1 || progress.passes[0].CourseID != 1 {
		t.Fatalf("progress sync calls = %+v, want one for course 1", progress.passes)
	}
}

func TestAutoSubmitOnDurationExpiry(t *testing.T) {
	svc, store, _, _, clock := newExamFixture(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "u1", 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	answerCorrectly(t, svc, 4)

	clock.Advance(29 * time.Minute)
	if submitted, err := svc.SubmitIfDue(ctx, "u1", 1); err != nil || submitted {
		t.Fatalf("before deadline: submitted=%v err=%v, want no submit", submitted, err)
	}

	clock.Advance(time.Minute)
	submitted, err := svc.SubmitIfDue(ctx, "u1", 1)
	if err != nil || !submitted {
		t.Fatalf("at deadline: submitted=%v err=%v, want submit", submitted, err)
	}

	session, err := svc.State(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if session.Result == nil || session.Result.Score != 4 || session.Result.Passed {
		t.Fatalf("got result %+v, want score 4 failed", session.Result)
	}
	wantCooldown := clock.Now().Add(120 * time.Minute)
	if session.CooldownUntil == nil || !session.CooldownUntil.Equal(wantCooldown) {
		t.Fatalf("cooldownUntil = %v, want %v", session.CooldownUntil, wantCooldown)
	}
	if len(store.active) != 0 {
		t.Error("submitted session must leave the active set")
	}

	// A second sweep over the same session must not rescore.
	if submitted, err := svc.SubmitIfDue(ctx, "u1", 1); err != nil || submitted {
		t.Fatalf("resweep: submitted=%v err=%v, want no-op", submitted, err)
	}
}

func TestWindowCloseForcesSubmit(t *testing.T) {
	svc, _, windows, _, clock := newExamFixture(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "u1", 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	answerCorrectly(t, svc, 3)

	// Close the window well before the duration budget runs out.
	windows.window = &model.ExamWindow{
		OpenAt:  clock.Now().Add(-2 * time.Hour),
		CloseAt: clock.Now().Add(-time.Second),
	}

	submitted, err := svc.SubmitIfDue(ctx, "u1", 1)
	if err != nil || !submitted {
		t.Fatalf("window close: submitted=%v err=%v, want forced submit", submitted, err)
	}

	session, err := svc.State(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if session.Result == nil || session.Result.Score != 3 {
		t.Fatalf("got result %+v, want score 3 from partial answers", session.Result)
	}

	if _, err := svc.Start(ctx, "u1", 1); !errors.Is(err, ErrWindowClosed) {
		t.Fatalf("start after close: err=%v, want ErrWindowClosed", err)
	}
}

func TestSubmitIsIdempotent(t *testing.T) {
	svc, _, _, progress, _ := newExamFixture(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "u1", 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	answerCorrectly(t, svc, 8)

	first, _, err := svc.Submit(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second, syncPending, err := svc.Submit(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if syncPending {
		t.Error("resubmission must not report a pending progress write")
	}
	if *first.Result != *second.Result {
		t.Errorf("results diverged: %+v vs %+v", first.Result, second.Result)
	}
	if len(progress.passes) != 1 {
		t.Errorf("progress sync invoked %d times, want exactly once", len(progress.passes))
	}
}

func TestStartWindowRejectionsAreDistinct(t *testing.T) {
	svc, _, windows, _, clock := newExamFixture(t)
	ctx := context.Background()

	windows.window = &model.ExamWindow{
		OpenAt:  clock.Now().Add(time.Hour),
		CloseAt: clock.Now().Add(2 * time.Hour),
	}
	if _, err := svc.Start(ctx, "u1", 1); !errors.Is(err, ErrWindowNotOpen) {
		t.Fatalf("before open: err=%v, want ErrWindowNotOpen", err)
	}

	windows.window = &model.ExamWindow{
		OpenAt:  clock.Now().Add(-2 * time.Hour),
		CloseAt: clock.Now().Add(-time.Hour),
	}
	if _, err := svc.Start(ctx, "u1", 1); !errors.Is(err, ErrWindowClosed) {
		t.Fatalf("after close: err=%v, want ErrWindowClosed", err)
	}

	windows.window = nil
	if _, err := svc.Start(ctx, "u1", 1); !errors.Is(err, ErrWindowClosed) {
		t.Fatalf("no window: err=%v, want ErrWindowClosed", err)
	}
}

func TestStartDuringCooldownIsSilentNoOp(t *testing.T) {
	svc, _, _, _, clock := newExamFixture(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "u1", 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, _, err := svc.Submit(ctx, "u1", 1); err != nil {
		t.Fatalf("submit: %v", err)
	}

	clock.Advance(time.Hour)
	session, err := svc.Start(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("start during cooldown: %v", err)
	}
	if session.StartedAt != nil {
		t.Error("cooldown start must not begin a new attempt")
	}
	if session.Result == nil || session.Result.Passed {
		t.Errorf("failed result must survive the no-op, got %+v", session.Result)
	}
}

func TestStartAfterPassIsSilentNoOp(t *testing.T) {
	svc, _, _, _, _ := newExamFixture(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "u1", 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	answerCorrectly(t, svc, 10)
	if _, _, err := svc.Submit(ctx, "u1", 1); err != nil {
		t.Fatalf("submit: %v", err)
	}

	session, err := svc.Start(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("start after pass: %v", err)
	}
	if session.Status() != model.SessionStatusPassed {
		t.Errorf("status = %s, want PASSED preserved", session.Status())
	}
	if session.StartedAt != nil {
		t.Error("pass is terminal, no new attempt may begin")
	}
}

func TestCooldownExpiryResetsToNotStarted(t *testing.T) {
	svc, _, windows, _, clock := newExamFixture(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "u1", 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, _, err := svc.Submit(ctx, "u1", 1); err != nil {
		t.Fatalf("submit: %v", err)
	}

	clock.Advance(121 * time.Minute)
	windows.window = &model.ExamWindow{
		OpenAt:  clock.Now().Add(-time.Hour),
		CloseAt: clock.Now().Add(time.Hour),
	}

	session, err := svc.State(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if session.Status() != model.SessionStatusNotStarted {
		t.Fatalf("status after cooldown expiry = %s, want NOT_STARTED", session.Status())
	}
	if session.CooldownUntil != nil {
		t.Error("expired cooldown must be dropped")
	}

	if _, err := svc.Start(ctx, "u1", 1); err != nil {
		t.Fatalf("retry after cooldown: %v", err)
	}
}

func TestAnswerValidation(t *testing.T) {
	svc, _, _, _, _ := newExamFixture(t)
	ctx := context.Background()

	if _, err := svc.Answer(ctx, "u1", 1, 0, 0); !errors.Is(err, ErrExamNotStarted) {
		t.Fatalf("answer before start: err=%v, want ErrExamNotStarted", err)
	}

	if _, err := svc.Start(ctx, "u1", 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.Answer(ctx, "u1", 1, 10, 0); err == nil {
		t.Error("question index past the paper must be rejected")
	}
	if _, err := svc.Answer(ctx, "u1", 1, 0, 4); err == nil {
		t.Error("option index past the choices must be rejected")
	}

	// Upsert: a re-answer replaces the earlier choice.
	if _, err := svc.Answer(ctx, "u1", 1, 0, 1); err != nil {
		t.Fatalf("answer: %v", err)
	}
	session, err := svc.Answer(ctx, "u1", 1, 0, 0)
	if err != nil {
		t.Fatalf("re-answer: %v", err)
	}
	if session.Answers[0] != 0 {
		t.Errorf("answers[0] = %d, want 0 after re-answer", session.Answers[0])
	}
}

func TestChangePageClamps(t *testing.T) {
	svc, _, _, _, _ := newExamFixture(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "u1", 1); err != nil {
		t.Fatalf("start: %v", err)
	}

	session, err := svc.ChangePage(ctx, "u1", 1, -1)
	if err != nil {
		t.Fatalf("page back: %v", err)
	}
	if session.PageIndex != 0 {
		t.Errorf("page index clamped low = %d, want 0", session.PageIndex)
	}

	// 10 questions over pages of 5 gives pages 0 and 1.
	for i := 0; i < 5; i++ {
		if session, err = svc.ChangePage(ctx, "u1", 1, 1); err != nil {
			t.Fatalf("page forward: %v", err)
		}
	}
	if session.PageIndex != 1 {
		t.Errorf("page index clamped high = %d, want 1", session.PageIndex)
	}
}

func TestUnansweredQuestionsCountAsWrong(t *testing.T) {
	svc, _, _, _, _ := newExamFixture(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "u1", 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	session, _, err := svc.Submit(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("submit with no answers: %v", err)
	}
	if session.Result == nil || session.Result.Score != 0 || session.Result.Passed {
		t.Fatalf("got result %+v, want score 0 failed", session.Result)
	}
}

func TestMidExamStateSurvivesReload(t *testing.T) {
	svc, _, _, _, _ := newExamFixture(t)
	ctx := context.Background()

	started, err := svc.Start(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	answerCorrectly(t, svc, 3)
	if _, err := svc.ChangePage(ctx, "u1", 1, 1); err != nil {
		t.Fatalf("page: %v", err)
	}

	reloaded, err := svc.State(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if reloaded.StartedAt == nil || !reloaded.StartedAt.Equal(*started.StartedAt) {
		t.Errorf("startedAt = %v, want %v", reloaded.StartedAt, started.StartedAt)
	}
	if reloaded.PageIndex != 1 {
		t.Errorf("pageIndex = %d, want 1", reloaded.PageIndex)
	}
	if len(reloaded.Answers) != 3 {
		t.Errorf("answers = %v, want the 3 recorded choices", reloaded.Answers)
	}
	for i := 0; i < 3; i++ {
		if reloaded.Answers[i] != i%4 {
			t.Errorf("answers[%d] = %d, want %d", i, reloaded.Answers[i], i%4)
		}
	}
}

func TestStartRespectsStageGating(t *testing.T) {
	svc, _, _, progress, _ := newExamFixture(t)
	ctx := context.Background()

	progress.user.CurrentStage = stage.For(0)
	questions := []catalog.Question{{Text: "q", Options: []string{"a", "b"}, CorrectIndex: 0}}
	lockedDef := &catalog.ExamDefinition{
		CourseID: 3, Title: "locked", Questions: questions,
		DurationMinutes: 30, PassScore: 1, CooldownMinutes: 120,
	}
	svc.catalog = catalog.New(
		[]catalog.Course{{ID: 1, Title: "one"}, {ID: 3, Title: "three"}},
		map[int]*catalog.ExamDefinition{3: lockedDef},
	)

	if _, err := svc.Start(ctx, "u1", 3); !errors.Is(err, ErrCourseLocked) {
		t.Fatalf("locked course start: err=%v, want ErrCourseLocked", err)
	}
}

func TestUnknownCourseRejected(t *testing.T) {
	svc, _, _, _, _ := newExamFixture(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "u1", 99); !errors.Is(err, ErrExamNotFound) {
		t.Fatalf("unknown course: err=%v, want ErrExamNotFound", err)
	}
	if _, err := svc.State(ctx, "u1", 99); !errors.Is(err, ErrExamNotFound) {
		t.Fatalf("unknown course state: err=%v, want ErrExamNotFound", err)
	}
}

func TestPassKeptWhenProgressSyncFails(t *testing.T) {
	svc, _, _, progress, _ := newExamFixture(t)
	ctx := context.Background()

	progress.syncErr = errors.New("authoritative store down")

	if _, err := svc.Start(ctx, "u1", 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	answerCorrectly(t, svc, 10)

	session, syncPending, err := svc.Submit(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if session.Result == nil || !session.Result.Passed {
		t.Fatalf("pass must be recorded locally despite sync failure, got %+v", session.Result)
	}
	if !syncPending {
		t.Error("failed progress write must be reported as pending")
	}

	reloaded, err := svc.State(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if reloaded.Status() != model.SessionStatusPassed {
		t.Errorf("status = %s, want PASSED preserved", reloaded.Status())
	}
}
