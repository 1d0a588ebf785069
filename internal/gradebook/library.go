package gradebook

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrCourseNotFound is matched by Course when no course has the name.
var ErrCourseNotFound = errors.New("course not found")

// CourseRef identifies a course within a loaded library.
type CourseRef struct {
	File     string
	Semester string
	Course   string
}

// String renders the reference as "semester/course".
func (r CourseRef) String() string {
	return r.Semester + "/" + r.Course
}

// Source is the read-only record retrieval surface used by the commands.
type Source interface {
	Course(name string) (*Course, *Semester, error)
	Courses() []CourseRef
}

// Library is a set of loaded gradebook documents.
type Library struct {
	Documents []*Document
}

// LoadLibrary loads every path, failing on the first unreadable file.
func LoadLibrary(paths []string) (*Library, error) {
	lib := &Library{}
	for _, path := range paths {
		doc, err := Load(path)
		if err != nil {
			return nil, err
		}
		lib.Documents = append(lib.Documents, doc)
	}
	return lib, nil
}

// Courses lists every course in load order.
func (l *Library) Courses() []CourseRef {
	var refs []CourseRef
	for _, doc := range l.Documents {
		for _, c := range doc.Semester.Courses {
			refs = append(refs, CourseRef{File: doc.Path, Semester: doc.Semester.Name, Course: c.Name})
		}
	}
	return refs
}

// Course finds a course by name. Names are matched case-insensitively and
// may be qualified as "semester/course" when several semesters share a
// course name.
func (l *Library) Course(name string) (*Course, *Semester, error) {
	semesterName, courseName := splitQualified(name)

	type match struct {
		course   *Course
		semester *Semester
	}
	var matches []match
	for _, doc := range l.Documents {
		if semesterName != "" && !equalName(doc.Semester.Name, semesterName) {
			continue
		}
		if c, ok := doc.Semester.FindCourse(courseName); ok {
			matches = append(matches, match{course: c, semester: doc.Semester})
		}
	}

	switch len(matches) {
	case 0:
		return nil, nil, fmt.Errorf("%w: %s", ErrCourseNotFound, name)
	case 1:
		return matches[0].course, matches[0].semester, nil
	default:
		var names []string
		for _, m := range matches {
			names = append(names, m.semester.Name+"/"+m.course.Name)
		}
		sort.Strings(names)
		return nil, nil, fmt.Errorf("course %q is ambiguous, use one of: %s", name, strings.Join(names, ", "))
	}
}

// splitQualified splits "semester/course" at the last slash.
func splitQualified(name string) (semester, course string) {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return strings.TrimSpace(name[:i]), strings.TrimSpace(name[i+1:])
	}
	return "", strings.TrimSpace(name)
}

func equalName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
