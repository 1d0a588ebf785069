package format

import (
	"fmt"
	"reflect"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/dotcommander/gradecast/internal/gradebook"
)

// Formatter formats gradebook files canonically.
type Formatter interface {
	// Format takes raw file content and returns formatted content.
	// Returns original content and error if formatting fails.
	Format(content string) (string, error)
}

// GradebookFormatter rewrites a gradebook in the canonical key order with
// two-space indentation.
type GradebookFormatter struct {
	format gradebook.Format
}

// NewGradebookFormatter creates a formatter for files of the given format.
func NewGradebookFormatter(format gradebook.Format) Formatter {
	return &GradebookFormatter{format: format}
}

// Format implements Formatter. Content with fields the gradebook model does
// not carry is refused, since rewriting it would drop them.
func (f *GradebookFormatter) Format(content string) (string, error) {
	doc, err := gradebook.Decode([]byte(content), f.format)
	if err != nil {
		return content, err
	}

	out, err := gradebook.Marshal(doc.Semester, f.format)
	if err != nil {
		return content, err
	}

	again, err := gradebook.Decode(out, f.format)
	if err != nil {
		return content, fmt.Errorf("formatted output does not parse: %w", err)
	}
	if !sameData(doc.Data, again.Data) {
		return content, fmt.Errorf("content has fields gradecast does not know; run check first")
	}

	return string(out), nil
}

// sameData compares decoded documents, treating numbers by value and
// empty values as absent.
func sameData(a, b any) bool {
	if isEmpty(a) && isEmpty(b) {
		return true
	}

	if x, ok := toFloat(a); ok {
		y, ok := toFloat(b)
		return ok && x == y
	}

	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok {
			return false
		}
		for k, v := range av {
			if !sameData(v, bv[k]) {
				return false
			}
		}
		for k, v := range bv {
			if _, seen := av[k]; !seen && !isEmpty(v) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !sameData(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	if f, ok := toFloat(v); ok {
		return f == 0
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

// Diff returns a unified diff between original and formatted content, or
// an empty string when they are identical.
func Diff(original, formatted, filename string) (string, error) {
	if original == formatted {
		return "", nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(formatted),
		FromFile: filename,
		ToFile:   filename + " (formatted)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("error computing diff: %w", err)
	}
	return text, nil
}
