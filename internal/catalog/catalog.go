// Package catalog holds the static training-track reference data: the eight
// courses and their exam definitions. The data is immutable and loaded at
// startup; a course without an entry in the exam map simply offers no exam.
package catalog

import "math"

// PageSize is the fixed number of exam questions shown per page.
const PageSize = 5

// Course is one unit of training content.
type Course struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	ContentURL      string `json:"contentUrl"`
	CertificatePath string `json:"certificatePath"`
}

// Question is a single multiple-choice exam question. CorrectIndex is never
// exposed to clients; see PaperFor.
type Question struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"-"`
}

// ExamDefinition describes the exam offered for one course.
type ExamDefinition struct {
	CourseID        int        `json:"courseId"`
	Title           string     `json:"title"`
	Questions       []Question `json:"questions"`
	DurationMinutes int        `json:"durationMinutes"`
	PassScore       int        `json:"passScore"`
	CooldownMinutes int        `json:"cooldownMinutes"`
}

// PageCount returns the number of fixed-size question pages.
func (d *ExamDefinition) PageCount() int {
	if len(d.Questions) == 0 {
		return 1
	}
	return int(math.Ceil(float64(len(d.Questions)) / float64(PageSize)))
}

// PaperQuestion is a question as sent to exam takers, without the answer key.
type PaperQuestion struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// ExamPaper is the student-safe view of an exam definition.
type ExamPaper struct {
	CourseID        int             `json:"courseId"`
	Title           string          `json:"title"`
	DurationMinutes int             `json:"durationMinutes"`
	PassScore       int             `json:"passScore"`
	QuestionCount   int             `json:"questionCount"`
	PageCount       int             `json:"pageCount"`
	Questions       []PaperQuestion `json:"questions"`
}

// Catalog is the read-only course and exam registry.
type Catalog struct {
	courses []Course
	exams   map[int]*ExamDefinition
}

// New builds a catalog from explicit data. Used by tests and by Default.
func New(courses []Course, exams map[int]*ExamDefinition) *Catalog {
	return &Catalog{courses: courses, exams: exams}
}

// Courses returns all courses in track order.
func (c *Catalog) Courses() []Course {
	return c.courses
}

// Course looks up a course by id.
func (c *Catalog) Course(id int) (Course, bool) {
	for _, course := range c.courses {
		if course.ID == id {
			return course, true
		}
	}
	return Course{}, false
}

// Exam returns the exam definition for a course, if one is offered.
func (c *Catalog) Exam(courseID int) (*ExamDefinition, bool) {
	def, ok := c.exams[courseID]
	return def, ok
}

// PaperFor returns the exam paper for a course with correct answers stripped.
func (c *Catalog) PaperFor(courseID int) (*ExamPaper, bool) {
	def, ok := c.exams[courseID]
	if !ok {
		return nil, false
	}

	questions := make([]PaperQuestion, 0, len(def.Questions))
	for _, q := range def.Questions {
		questions = append(questions, PaperQuestion{Text: q.Text, Options: q.Options})
	}

	return &ExamPaper{
		CourseID:        def.CourseID,
		Title:           def.Title,
		DurationMinutes: def.DurationMinutes,
		PassScore:       def.PassScore,
		QuestionCount:   len(def.Questions),
		PageCount:       def.PageCount(),
		Questions:       questions,
	}, true
}
