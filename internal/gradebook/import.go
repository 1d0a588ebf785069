package gradebook

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Spreadsheet column names, matched case-insensitively.
const (
	ColumnCourse      = "course"
	ColumnAssignment  = "assignment"
	ColumnWeight      = "weight"
	ColumnFullMark    = "fullmark"
	ColumnScored      = "scored"
	ColumnHurdle      = "hurdle"
	ColumnPassingLine = "passingline"
)

var requiredColumns = []string{ColumnCourse, ColumnAssignment, ColumnWeight, ColumnFullMark, ColumnScored}

// ImportTable builds a semester from a CSV or XLSX table with one row per
// assignment. The first row must be a header naming the columns.
func ImportTable(path, semesterName string) (*Semester, error) {
	var rows [][]string
	var err error

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s (supported: .csv, .xlsx)", ext)
	}
	if err != nil {
		return nil, err
	}

	return ParseTable(rows, semesterName)
}

// ParseTable converts header-led rows into a semester. Rows are grouped by
// course in the order courses first appear.
func ParseTable(rows [][]string, semesterName string) (*Semester, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	columns := make(map[string]int)
	for i, name := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(name))
		key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
		columns[key] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	semester := &Semester{Name: semesterName}
	index := make(map[string]int)
	var err error

	for i, row := range rows[1:] {
		line := i + 2
		cell := func(name string) string {
			col, ok := columns[name]
			if !ok || col >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[col])
		}

		courseName := cell(ColumnCourse)
		if courseName == "" && cell(ColumnAssignment) == "" {
			continue // blank row
		}
		if courseName == "" {
			return nil, fmt.Errorf("row %d: course is empty", line)
		}

		record := Record{Name: cell(ColumnAssignment)}
		if record.Weight, err = parseNumber(cell(ColumnWeight), ColumnWeight, line); err != nil {
			return nil, err
		}
		if record.FullMark, err = parseNumber(cell(ColumnFullMark), ColumnFullMark, line); err != nil {
			return nil, err
		}
		if record.Scored, err = parseNumber(cell(ColumnScored), ColumnScored, line); err != nil {
			return nil, err
		}
		if raw := cell(ColumnHurdle); raw != "" {
			hurdle, err := parseNumber(raw, ColumnHurdle, line)
			if err != nil {
				return nil, err
			}
			record.Hurdle = &hurdle
		}

		key := strings.ToLower(courseName)
		idx, ok := index[key]
		if !ok {
			semester.Courses = append(semester.Courses, Course{Name: courseName})
			idx = len(semester.Courses) - 1
			index[key] = idx
		}
		course := &semester.Courses[idx]

		if raw := cell(ColumnPassingLine); raw != "" && course.PassingLine == 0 {
			if course.PassingLine, err = parseNumber(raw, ColumnPassingLine, line); err != nil {
				return nil, err
			}
		}
		course.Assignments = append(course.Assignments, record)
	}

	if len(semester.Courses) == 0 {
		return nil, fmt.Errorf("no assignment rows found")
	}
	return semester, nil
}

func parseNumber(raw, column string, line int) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("row %d: %s is empty", line, column)
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: %s %q is not a number", line, column, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("row %d: %s %q is not a finite number", line, column, raw)
	}
	return v, nil
}

// readCSV reads a CSV file and returns rows as [][]string
func readCSV(filePath string) ([][]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return records, nil
}

// readXLSX reads an Excel file and returns rows from the first sheet as [][]string
func readXLSX(filePath string) ([][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read XLSX rows: %w", err)
	}

	return rows, nil
}
