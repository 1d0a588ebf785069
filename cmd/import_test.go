package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/gradecast/internal/gradebook"
)

const marksCSV = `Course,Assignment,Weight,Full Mark,Scored,Hurdle,Passing Line
COMP1010,Assignment 1,30,100,80,50,
COMP1010,Assignment 2,30,100,70,,
MATH1001,Quiz,20,20,4,40,60
`

func TestRunImportStdout(t *testing.T) {
	env := setupCmd(t)
	path := env.write(t, "marks.csv", marksCSV)

	require.NoError(t, runImport(path, "Semester 1 2026"))

	doc, err := gradebook.Decode(env.stdout.Bytes(), gradebook.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "Semester 1 2026", doc.Semester.Name)
	require.Len(t, doc.Semester.Courses, 2)
	assert.Len(t, doc.Semester.Courses[0].Assignments, 2)
	assert.Equal(t, 60.0, doc.Semester.Courses[1].PassingLine)
}

func TestRunImportDefaultSemester(t *testing.T) {
	env := setupCmd(t)
	path := env.write(t, "semester-one.csv", marksCSV)

	require.NoError(t, runImport(path, ""))
	assert.Contains(t, env.stdout.String(), "semester: semester-one\n")
}

func TestRunImportToFile(t *testing.T) {
	env := setupCmd(t)
	path := env.write(t, "marks.csv", marksCSV)
	dest := filepath.Join(env.dir, "s1.gradebook.json")
	viper.Set("output", dest)

	require.NoError(t, runImport(path, "Semester 1 2026"))
	assert.Contains(t, env.stdout.String(), "Imported 2 courses into "+dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	doc, err := gradebook.Decode(data, gradebook.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "COMP1010", doc.Semester.Courses[0].Name)

	// the imported gradebook is usable straight away
	env.stdout.Reset()
	viper.Set("output", "")
	require.NoError(t, runCheck([]string{dest}))
	assert.Contains(t, env.stdout.String(), "✓ 1 gradebook valid")
}

func TestRunImportRejectsGradebook(t *testing.T) {
	env := setupCmd(t)
	path := env.write(t, "s1.gradebook.yaml", semesterOne)

	err := runImport(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a .csv or .xlsx table")
}
