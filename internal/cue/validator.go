package cue

import (
	"embed"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/dotcommander/gradecast/internal/types"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

// gradebookDef is the definition every gradebook document must satisfy.
const gradebookDef = "#Gradebook"

// Validator handles CUE validation
type Validator struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{
		ctx:     cuecontext.New(),
		schemas: make(map[string]cue.Value),
	}
}

// LoadSchemas compiles every embedded schema file.
func (v *Validator) LoadSchemas() error {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return fmt.Errorf("could not read embedded schemas: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".cue" {
			continue
		}
		content, err := schemaFS.ReadFile("schemas/" + entry.Name())
		if err != nil {
			return fmt.Errorf("could not read schema %s: %w", entry.Name(), err)
		}

		inst := v.ctx.CompileBytes(content, cue.Filename(entry.Name()))
		if instErr := inst.Err(); instErr != nil {
			return fmt.Errorf("schema %s does not compile: %w", entry.Name(), instErr)
		}

		// gradebook.cue -> gradebook
		v.schemas[strings.TrimSuffix(entry.Name(), ".cue")] = inst.Value()
	}

	if len(v.schemas) == 0 {
		return fmt.Errorf("no CUE schemas loaded")
	}
	return nil
}

// ValidateGradebook checks decoded gradebook data against the gradebook
// schema. Issues carry paths such as courses[0].assignments[1].weight.
func (v *Validator) ValidateGradebook(data map[string]any) ([]types.ValidationError, error) {
	schema, ok := v.schemas["gradebook"]
	if !ok {
		return nil, fmt.Errorf("gradebook schema not loaded")
	}

	def := schema.LookupPath(cue.ParsePath(gradebookDef))
	if !def.Exists() {
		return nil, fmt.Errorf("gradebook schema has no %s definition", gradebookDef)
	}

	dataValue := v.ctx.Encode(data)
	if encErr := dataValue.Err(); encErr != nil {
		return nil, fmt.Errorf("error encoding data: %w", encErr)
	}

	unified := def.Unify(dataValue)
	if err := unified.Err(); err != nil {
		return extractErrors(err), nil
	}

	// Concreteness catches required fields that are missing.
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return extractErrors(err), nil
	}

	return nil, nil
}

// extractErrors flattens a CUE error list into one issue per path and message.
func extractErrors(err error) []types.ValidationError {
	var issues []types.ValidationError
	seen := make(map[string]bool)

	for _, e := range cueerrors.Errors(err) {
		path := gradebookPath(e.Path())
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)

		key := path + "\x00" + msg
		if seen[key] {
			continue
		}
		seen[key] = true

		issues = append(issues, types.ValidationError{
			Path:     path,
			Message:  msg,
			Severity: types.SeverityError,
			Source:   types.SourceSchema,
		})
	}

	// CUE can return an error without detail entries.
	if len(issues) == 0 {
		issues = append(issues, types.ValidationError{
			Message:  fmt.Sprintf("schema validation failed: %v", err),
			Severity: types.SeverityError,
			Source:   types.SourceSchema,
		})
	}
	return issues
}

// gradebookPath renders CUE path selectors in the gradebook path notation,
// turning list indexes into brackets and dropping the definition name.
func gradebookPath(selectors []string) string {
	var b strings.Builder
	for _, sel := range selectors {
		if strings.HasPrefix(sel, "#") {
			continue
		}
		if _, err := strconv.Atoi(sel); err == nil {
			b.WriteString("[" + sel + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(sel)
	}
	return b.String()
}
