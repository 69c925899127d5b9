package forms

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const (
	MsgRequired       = "Can't be empty"
	MsgTooLong        = "max 50 char."
	MsgUniqueColumns  = "Column names must be unique"
	MsgNeedsSubtask   = "add at least one subtask"
	tagUniqueNames    = "unique_names"
	pathSubtasksField = "subtask"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
			return name
		})
		_ = v.RegisterValidation(tagUniqueNames, uniqueNames)
		validate = v
	})
	return validate
}

// uniqueNames checks a slice of structs for distinct trimmed Name fields.
func uniqueNames(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	seen := make(map[string]struct{}, field.Len())
	for i := 0; i < field.Len(); i++ {
		elem := reflect.Indirect(field.Index(i))
		name := elem.FieldByName("Name")
		if !name.IsValid() || name.Kind() != reflect.String {
			return false
		}
		key := strings.TrimSpace(name.String())
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
	}
	return true
}

// ValidationError maps field paths (wire names, e.g. "board_column[1].column_name") to
// a user-facing message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid form: " + strings.Join(e.Lines(), "; ")
}

// Lines returns "path: message" entries sorted by path.
func (e *ValidationError) Lines() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+": "+e.Fields[k])
	}
	return out
}

// Field returns the message for path, or "".
func (e *ValidationError) Field(path string) string {
	if e == nil {
		return ""
	}
	return e.Fields[path]
}

func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

func validateStruct(s any) error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		path := fe.Namespace()
		if _, rest, ok := strings.Cut(path, "."); ok {
			path = rest
		}
		if _, exists := out.Fields[path]; !exists {
			out.Fields[path] = message(fe)
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "max":
		return MsgTooLong
	case tagUniqueNames:
		return MsgUniqueColumns
	case "min":
		if fe.Field() == pathSubtasksField {
			return MsgNeedsSubtask
		}
		return MsgRequired
	default:
		return fe.Error()
	}
}
