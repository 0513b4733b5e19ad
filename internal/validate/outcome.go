package validate

import (
	"fmt"
	"strings"
)

// Kind classifies a failed check.
type Kind int

const (
	KindRequired Kind = iota + 1
	KindFormat
	KindDuplicate
	KindUnverified
)

func (k Kind) String() string {
	switch k {
	case KindRequired:
		return "required"
	case KindFormat:
		return "format"
	case KindDuplicate:
		return "duplicate"
	case KindUnverified:
		return "unverified"
	default:
		return "unknown"
	}
}

// Outcome is one field-level failure.
type Outcome struct {
	Field   string
	Kind    Kind
	Message string
}

func (o Outcome) String() string {
	return fmt.Sprintf("%s: %s", o.Field, o.Message)
}

// Error carries the outcomes of a rejected submission.
type Error struct {
	Outcomes []Outcome
}

func (e *Error) Error() string {
	if len(e.Outcomes) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Outcomes))
	for i, o := range e.Outcomes {
		parts[i] = o.String()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ByField returns the first message reported for each field.
func ByField(outcomes []Outcome) map[string]string {
	out := make(map[string]string, len(outcomes))
	for _, o := range outcomes {
		if _, ok := out[o.Field]; !ok {
			out[o.Field] = o.Message
		}
	}
	return out
}

// Has reports whether outcomes contain kind for field.
func Has(outcomes []Outcome, field string, kind Kind) bool {
	for _, o := range outcomes {
		if o.Field == field && o.Kind == kind {
			return true
		}
	}
	return false
}
