package grading

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	finiteTag  = "finite"
	finiteText = "{0} must be a finite number"
)

// validate and translator are safe for concurrent use once built.
var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	english := en.New()
	translator, _ = ut.New(english, english).GetTranslator("en")

	validate = validator.New()
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report JSON names instead of Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(finiteTag, finiteValidation)
	_ = validate.RegisterTranslation(
		finiteTag, translator,
		func(t ut.Translator) error { return t.Add(finiteTag, finiteText, false) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(finiteTag, fe.Field())
			return s
		},
	)
}

// finiteValidation rejects NaN and infinities on float fields.
func finiteValidation(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return true
	}
}

// evaluation groups everything Evaluate hands to the arithmetic.
type evaluation struct {
	Assignments []Assignment `json:"assignments" validate:"dive"`
	Scenario    Scenario     `json:"scenario"`
}

// recorded wraps assignments so the validator can dive into them.
type recorded struct {
	Assignments []Assignment `json:"assignments" validate:"dive"`
}

// ValidateAssignments checks recorded assignments on their own: finite
// numbers and a positive full mark. Errors are *InvalidInputError.
func ValidateAssignments(assignments []Assignment) error {
	return checkStruct(recorded{Assignments: assignments}, "")
}

// checkStruct runs the validator and converts its errors to an
// InvalidInputError. prefix replaces the root struct name in field paths.
func checkStruct(v any, prefix string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &InvalidInputError{Fields: []FieldError{{Field: prefix, Message: err.Error()}}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fieldPath(fe.Namespace(), prefix),
			Message: fe.Translate(translator),
		})
	}
	return &InvalidInputError{Fields: fields}
}

// fieldPath turns "evaluation.assignments[0].fullMark" into
// "assignments[0].fullMark", optionally under prefix.
func fieldPath(namespace, prefix string) string {
	path := namespace
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		path = namespace[i+1:]
	}
	if prefix == "" {
		return path
	}
	return prefix + "." + path
}
