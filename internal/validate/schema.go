package validate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/five82/backoffice/internal/api"
	"github.com/five82/backoffice/internal/resource"
)

// CategoriesField is the outcome field used for the category selection.
const CategoriesField = "categories"

const minPhoneLength = 10

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+'-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}$`)

// Form runs the local schema checks of r against p. Outcomes follow the
// field order of r.
func Form(r resource.Resource, p api.Payload) []Outcome {
	var out []Outcome
	for _, f := range r.Fields {
		if o, ok := checkField(f, strings.TrimSpace(p.Fields[f.Name])); !ok {
			out = append(out, o)
		}
	}
	if r.HasCategories && len(nonEmpty(p.Categories)) == 0 {
		out = append(out, Outcome{Field: CategoriesField, Kind: KindRequired, Message: "Select at least one category"})
	}
	return out
}

func checkField(f resource.Field, value string) (Outcome, bool) {
	if value == "" {
		if !f.Required {
			return Outcome{}, true
		}
		return Outcome{Field: f.Name, Kind: KindRequired, Message: message(f, fmt.Sprintf("%s is required", f.Label))}, false
	}

	switch f.Format {
	case resource.FormatEmail:
		if !emailPattern.MatchString(value) {
			return Outcome{Field: f.Name, Kind: KindFormat, Message: message(f, "Enter valid email address")}, false
		}
	case resource.FormatPhone:
		if utf8.RuneCountInString(value) < minPhoneLength {
			return Outcome{Field: f.Name, Kind: KindFormat, Message: message(f, fmt.Sprintf("%s is too short", f.Label))}, false
		}
	}

	if len(f.Options) > 0 && !slices.Contains(f.Options, value) {
		return Outcome{
			Field:   f.Name,
			Kind:    KindFormat,
			Message: fmt.Sprintf("%s must be one of: %s", f.Label, strings.Join(f.Options, ", ")),
		}, false
	}
	return Outcome{}, true
}

func message(f resource.Field, fallback string) string {
	if f.Message != "" {
		return f.Message
	}
	return fallback
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
