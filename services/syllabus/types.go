package syllabus

// CourseMetadata holds everything extracted from the course-info table and
// the labeled page sections of one syllabus document. It is built once per
// document and not mutated afterwards.
type CourseMetadata struct {
	CourseCode          string
	CourseTitle         string
	AcademicYear        string
	Term                string
	Schedule            string
	Campus              string
	Classroom           string
	Faculties           []string
	Instructors         []string
	Credits             string
	InstructionLanguage string
}

// RawTextbook is one row of a document's textbook table. Rows without a
// title are never emitted.
type RawTextbook struct {
	Title     string
	Reading   string
	Authors   string
	Publisher string
	ISBN      string
	Note      string
}

// TextbookRecord is the unit of output: one (document, textbook) pair with
// the course metadata flattened in. Note is append-only and mutated by the
// batch annotation passes.
type TextbookRecord struct {
	TextbookTitle        string
	TextbookTitleReading string
	Authors              string
	Publisher            string
	PublicationYear      string
	ISBN                 string
	CourseTitle          string
	CourseCode           string
	AcademicYear         string
	Term                 string
	Schedule             string
	Classroom            string
	Credits              string
	Instructors          []string
	FacultyNames         []string
	Campus               string
	TagNames             string
	CourseCategory       string
	InstructionLanguage  string
	Note                 string
}
