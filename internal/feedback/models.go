package feedback

import (
	"fmt"

	"github.com/campusvoice/student-portal/internal/gateway"
)

// FieldType is the closed set of question types a feedback template can
// carry. Anything else is rejected rather than guessed at.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldRating   FieldType = "rating"
	FieldChoice   FieldType = "choice"
	FieldCheckbox FieldType = "checkbox"
)

// ParseFieldType validates a template field's declared type
func ParseFieldType(raw string) (FieldType, error) {
	switch t := FieldType(raw); t {
	case FieldText, FieldNumber, FieldRating, FieldChoice, FieldCheckbox:
		return t, nil
	default:
		return "", fmt.Errorf("unknown field type %q", raw)
	}
}

// validateValue checks a raw JSON answer against the field definition and
// returns the normalized value to send to the backend.
func validateValue(field gateway.FeedbackField, raw interface{}) (interface{}, error) {
	fieldType, err := ParseFieldType(field.Type)
	if err != nil {
		return nil, err
	}

	switch fieldType {
	case FieldText:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("field %s expects text", field.ID)
		}
		return s, nil

	case FieldNumber:
		// JSON numbers decode as float64.
		n, ok := raw.(float64)
		if !ok {
			return nil, fmt.Errorf("field %s expects a number", field.ID)
		}
		return n, nil

	case FieldRating:
		n, ok := raw.(float64)
		if !ok || n != float64(int(n)) || n < 1 || n > 5 {
			return nil, fmt.Errorf("field %s expects a rating from 1 to 5", field.ID)
		}
		return int(n), nil

	case FieldChoice:
		s, ok := raw.(string)
		if !ok || !containsOption(field.Options, s) {
			return nil, fmt.Errorf("field %s expects one of its options", field.ID)
		}
		return s, nil

	case FieldCheckbox:
		items, ok := raw.([]interface{})
		if !ok {
			return nil, fmt.Errorf("field %s expects a list of options", field.ID)
		}
		selected := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok || !containsOption(field.Options, s) {
				return nil, fmt.Errorf("field %s expects a list of its options", field.ID)
			}
			selected = append(selected, s)
		}
		return selected, nil
	}

	return nil, fmt.Errorf("unknown field type %q", field.Type)
}

func containsOption(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

// answered reports whether a normalized value counts as an answer for
// required-field purposes
func answered(fieldType FieldType, value interface{}) bool {
	switch fieldType {
	case FieldText:
		return value.(string) != ""
	case FieldCheckbox:
		return len(value.([]string)) > 0
	default:
		return value != nil
	}
}
