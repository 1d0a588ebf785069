package gradebook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseTable(t *testing.T) {
	rows := [][]string{
		{"Course", "Assignment", "Weight", "Full Mark", "Scored", "Hurdle", "Passing_Line"},
		{"COMP1010", "Assignment 1", "30", "100", "80", "50%", "50"},
		{"MATH1001", "Quiz 1", "10", "20", "15", "", ""},
		{"", "", "", "", "", "", ""},
		{"comp1010", "Assignment 2", "30", "100", "70", "", "65"},
	}

	s, err := ParseTable(rows, "Semester 1")
	require.NoError(t, err)
	assert.Equal(t, "Semester 1", s.Name)
	require.Len(t, s.Courses, 2)

	comp := s.Courses[0]
	assert.Equal(t, "COMP1010", comp.Name)
	assert.Equal(t, 50.0, comp.PassingLine, "first passing line wins")
	require.Len(t, comp.Assignments, 2)
	require.NotNil(t, comp.Assignments[0].Hurdle)
	assert.Equal(t, 50.0, *comp.Assignments[0].Hurdle)
	assert.Nil(t, comp.Assignments[1].Hurdle)

	math := s.Courses[1]
	assert.Equal(t, "MATH1001", math.Name)
	assert.Equal(t, 0.0, math.PassingLine)
	assert.Equal(t, 15.0, math.Assignments[0].Scored)
}

func TestParseTableErrors(t *testing.T) {
	header := []string{"course", "assignment", "weight", "fullmark", "scored"}

	tests := []struct {
		name    string
		rows    [][]string
		wantErr string
	}{
		{name: "empty", rows: nil, wantErr: "file is empty"},
		{name: "missing column", rows: [][]string{{"course", "assignment", "weight", "scored"}}, wantErr: `missing required column "fullmark"`},
		{name: "header only", rows: [][]string{header}, wantErr: "no assignment rows"},
		{name: "bad number", rows: [][]string{header, {"C", "A", "ten", "100", "5"}}, wantErr: `row 2: weight "ten" is not a number`},
		{name: "NaN cell", rows: [][]string{header, {"C", "A", "NaN", "100", "5"}}, wantErr: `row 2: weight "NaN" is not a finite number`},
		{name: "infinite cell", rows: [][]string{header, {"C", "A", "10", "100", "+Inf%"}}, wantErr: `row 2: scored "+Inf%" is not a finite number`},
		{name: "empty cell", rows: [][]string{header, {"C", "A", "10", "", "5"}}, wantErr: "row 2: fullmark is empty"},
		{name: "short row", rows: [][]string{header, {"C", "A", "10"}}, wantErr: "row 2: fullmark is empty"},
		{name: "no course", rows: [][]string{header, {"", "A", "10", "100", "5"}}, wantErr: "row 2: course is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTable(tt.rows, "S")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestImportTableCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "marks.csv")
	content := "course,assignment,weight,fullMark,scored\nCOMP1010,Essay,40,50,42\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := ImportTable(path, "S1")
	require.NoError(t, err)
	require.Len(t, s.Courses, 1)
	assert.Equal(t, 42.0, s.Courses[0].Assignments[0].Scored)
}

func TestImportTableXLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "marks.xlsx")

	f := excelize.NewFile()
	sheet := "Sheet1"
	cells := map[string]any{
		"A1": "Course", "B1": "Assignment", "C1": "Weight", "D1": "FullMark", "E1": "Scored", "F1": "Hurdle",
		"A2": "PHYS1001", "B2": "Lab", "C2": 20, "D2": 40, "E2": 32, "F2": 40,
		"A3": "PHYS1001", "B3": "Exam", "C3": 50, "D3": 100, "E3": 61.5,
	}
	for cell, value := range cells {
		require.NoError(t, f.SetCellValue(sheet, cell, value))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	s, err := ImportTable(path, "S2")
	require.NoError(t, err)
	require.Len(t, s.Courses, 1)

	course := s.Courses[0]
	assert.Equal(t, "PHYS1001", course.Name)
	require.Len(t, course.Assignments, 2)
	assert.Equal(t, 20.0, course.Assignments[0].Weight)
	require.NotNil(t, course.Assignments[0].Hurdle)
	assert.Equal(t, 40.0, *course.Assignments[0].Hurdle)
	assert.Equal(t, 61.5, course.Assignments[1].Scored)
	assert.Nil(t, course.Assignments[1].Hurdle)
}

func TestImportTableUnsupported(t *testing.T) {
	_, err := ImportTable("marks.ods", "S")
	assert.ErrorContains(t, err, "unsupported file type")
}
