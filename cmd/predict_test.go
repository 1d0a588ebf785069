package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/gradecast/internal/gradebook"
	"github.com/dotcommander/gradecast/internal/grading"
	"github.com/dotcommander/gradecast/internal/report"
)

func TestRunPredict(t *testing.T) {
	env := setupCmd(t)
	path := env.write(t, "s1.gradebook.yaml", semesterOne)

	err := runPredict([]string{path}, "comp1010", []float64{75, 95}, grading.ScenarioInput{Name: "Final exam"})
	require.NoError(t, err)

	out := env.stdout.String()
	assert.Contains(t, out, "Semester 1 2026 / COMP1010")
	assert.Contains(t, out, "earned 45% of 60% weight so far")
	assert.Contains(t, out, "To reach 75%: need 75% on Final exam (weight 40%, hurdle 50%)")
	assert.Contains(t, out, "To reach 95%: need 125% on Final exam")
	assert.Contains(t, out, "This score is not achievable.")
}

func TestRunPredictFailedCourse(t *testing.T) {
	env := setupCmd(t)
	env.write(t, "s1.gradebook.yaml", semesterOne)

	require.NoError(t, runPredict(nil, "MATH1001", nil, grading.ScenarioInput{}))

	out := env.stdout.String()
	assert.Contains(t, out, "Quiz scored 20%, hurdle 40%")
	assert.Contains(t, out, report.StatusFailed.Label())
	assert.NotContains(t, out, "To reach")
}

func TestRunPredictErrors(t *testing.T) {
	env := setupCmd(t)
	env.write(t, "s1.gradebook.yaml", semesterOne)

	err := runPredict(nil, "", nil, grading.ScenarioInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--course is required")

	err = runPredict(nil, "HIST2000", nil, grading.ScenarioInput{})
	require.Error(t, err)
	assert.ErrorIs(t, err, gradebook.ErrCourseNotFound)
	assert.Contains(t, err.Error(), "available: Semester 1 2026/COMP1010, Semester 1 2026/MATH1001")

	err = runPredict(nil, "COMP1010", nil, grading.ScenarioInput{Weight: grading.Float(-5)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Semester 1 2026/COMP1010")
}

func TestPredictCourseTargets(t *testing.T) {
	semester := &gradebook.Semester{
		Name: "S1",
		Courses: []gradebook.Course{{
			Name:        "COMP1010",
			PassingLine: 65,
			Assignments: []gradebook.Record{
				{Name: "Assignment 1", Weight: 50, FullMark: 50, Scored: 40},
			},
		}},
	}
	lib := &gradebook.Library{Documents: []*gradebook.Document{{Path: "s1.yaml", Semester: semester}}}

	predictions, err := predictCourseTargets(lib, "COMP1010", nil, grading.ScenarioInput{HurdlePercent: grading.Float(0)})
	require.NoError(t, err)
	require.Len(t, predictions, 1)
	assert.Equal(t, 65.0, predictions[0].Scenario.TargetScore, "no target means the passing line")
	assert.Equal(t, 50.0, predictions[0].Scenario.Weight, "weight defaults to what is left")

	value, ok := predictions[0].Result.RequiredScore()
	require.True(t, ok)
	assert.InDelta(t, 50.0, value, 1e-9)

	predictions, err = predictCourseTargets(lib, "S1/COMP1010", []float64{40, 90}, grading.ScenarioInput{HurdlePercent: grading.Float(0)})
	require.NoError(t, err)
	require.Len(t, predictions, 2)
	assert.Equal(t, report.StatusSecured, predictions[0].Status)
	assert.Equal(t, report.StatusAchievable, predictions[1].Status)
}
