// Package gradebook reads semester gradebooks from YAML, JSON and
// spreadsheet files and hands their assignments to the grading engine.
package gradebook

import (
	"github.com/dotcommander/gradecast/internal/grading"
)

// Semester is the top-level document of a gradebook file.
type Semester struct {
	Name        string   `yaml:"semester" json:"semester"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Courses     []Course `yaml:"courses" json:"courses"`
}

// Course groups the assessments of one subject.
type Course struct {
	Name        string   `yaml:"name" json:"name"`
	PassingLine float64  `yaml:"passingLine,omitempty" json:"passingLine,omitempty"`
	Assignments []Record `yaml:"assignments" json:"assignments"`
}

// Record is a graded assignment as written in a gradebook.
type Record struct {
	Name     string   `yaml:"name" json:"name"`
	Weight   float64  `yaml:"weight" json:"weight"`
	FullMark float64  `yaml:"fullMark" json:"fullMark"`
	Scored   float64  `yaml:"scored" json:"scored"`
	Hurdle   *float64 `yaml:"hurdle,omitempty" json:"hurdle,omitempty"`
}

// GradingAssignments converts the course records for the grading engine.
func (c *Course) GradingAssignments() []grading.Assignment {
	out := make([]grading.Assignment, 0, len(c.Assignments))
	for _, r := range c.Assignments {
		a := grading.Assignment{
			Name:     r.Name,
			Weight:   r.Weight,
			FullMark: r.FullMark,
			Scored:   r.Scored,
		}
		if r.Hurdle != nil {
			a.Hurdle = grading.Float(*r.Hurdle)
		}
		out = append(out, a)
	}
	return out
}

// FindCourse returns the course with the given name, ignoring case.
func (s *Semester) FindCourse(name string) (*Course, bool) {
	for i := range s.Courses {
		if equalName(s.Courses[i].Name, name) {
			return &s.Courses[i], true
		}
	}
	return nil, false
}
