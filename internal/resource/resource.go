// Package resource describes the administrable collections and the form
// schema each one exposes.
package resource

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Format constrains the shape of a field value.
type Format int

const (
	FormatText Format = iota
	FormatEmail
	FormatPhone
	FormatMultiline
)

// Field is one form input.
type Field struct {
	Name     string
	Label    string
	Required bool
	Format   Format
	Options  []string // non-empty means the value must be one of these
	Unique   bool     // checked remotely before create/update
	Message  string   // required-field message
}

// Resource describes one list view and its form.
type Resource struct {
	Name          string // API path segment(s), e.g. "team-members"
	Title         string // human label
	Noun          string // singular, e.g. "Team Member"
	Fields        []Field
	HasCategories bool   // form selects categories from /<name>/categories
	FileField     string // multipart name of the optional upload
	// KeyField names the item field used in PATCH and DELETE paths. Empty
	// means "_id". Uniqueness checks always compare _id.
	KeyField string
}

// UniqueFields returns the fields guarded by the uniqueness validator.
func (r Resource) UniqueFields() []Field {
	var out []Field
	for _, f := range r.Fields {
		if f.Unique {
			out = append(out, f)
		}
	}
	return out
}

// FieldByName returns the named field.
func (r Resource) FieldByName(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

var statusOptions = []string{"active", "inactive"}

var catalogue = []Resource{
	{
		Name:  "team-members",
		Title: "Team Members",
		Noun:  "Team Member",
		Fields: []Field{
			{Name: "title", Label: "Full Name", Required: true, Message: "Title field is required"},
			{Name: "email", Label: "Email Address", Required: true, Format: FormatEmail, Unique: true, Message: "Enter valid email address"},
			{Name: "phone", Label: "Phone Number", Required: true, Format: FormatPhone, Unique: true, Message: "Phone Number field is too short"},
			{Name: "department", Label: "Department", Required: true, Options: []string{"designer", "developer"}, Message: "Department field is required"},
			{Name: "status", Label: "Status", Required: true, Options: statusOptions, Message: "Status field is required"},
		},
		FileField: "avatar",
		KeyField:  "slug",
	},
	{
		Name:  "case-studies",
		Title: "Case Studies",
		Noun:  "Case Study",
		Fields: []Field{
			{Name: "title", Label: "Title", Required: true},
			{Name: "description", Label: "Description", Required: true, Format: FormatMultiline},
			{Name: "status", Label: "Status", Required: true, Options: statusOptions},
		},
		HasCategories: true,
		FileField:     "featuredImg",
	},
	{
		Name:  "blogs",
		Title: "Blog Posts",
		Noun:  "Blog Post",
		Fields: []Field{
			{Name: "title", Label: "Title", Required: true},
			{Name: "description", Label: "Description", Required: true, Format: FormatMultiline},
			{Name: "status", Label: "Status", Required: true, Options: statusOptions},
		},
		HasCategories: true,
		FileField:     "featuredImg",
	},
	{
		Name:   "case-studies/categories",
		Title:  "Case Study Categories",
		Noun:   "Category",
		Fields: []Field{{Name: "title", Label: "Title", Required: true}},
	},
	{
		Name:   "blogs/categories",
		Title:  "Blog Categories",
		Noun:   "Category",
		Fields: []Field{{Name: "title", Label: "Title", Required: true}},
	},
}

// DefaultName is the resource opened when none is configured.
const DefaultName = "team-members"

// All returns the catalogue in display order.
func All() []Resource {
	out := make([]Resource, len(catalogue))
	copy(out, catalogue)
	return out
}

// Names returns every resource name in display order.
func Names() []string {
	names := make([]string, len(catalogue))
	for i, r := range catalogue {
		names[i] = r.Name
	}
	return names
}

// UnknownError is returned by Lookup for names outside the catalogue.
type UnknownError struct {
	Name       string
	Suggestion string
}

func (e UnknownError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown resource %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown resource %q (available: %s)", e.Name, strings.Join(Names(), ", "))
}

// Lookup returns the resource with the given name.
func Lookup(name string) (Resource, error) {
	key := strings.Trim(strings.ToLower(strings.TrimSpace(name)), "/")
	if key == "" {
		key = DefaultName
	}
	for _, r := range catalogue {
		if r.Name == key {
			return r, nil
		}
	}
	return Resource{}, UnknownError{Name: name, Suggestion: suggest(key)}
}

// Next returns the resource after name in display order, wrapping around.
func Next(name string) Resource {
	for i, r := range catalogue {
		if r.Name == name {
			return catalogue[(i+1)%len(catalogue)]
		}
	}
	return catalogue[0]
}

// suggest returns the closest catalogue name within a small edit distance.
func suggest(name string) string {
	type candidate struct {
		name string
		dist int
	}
	var cands []candidate
	for _, r := range catalogue {
		d := levenshtein.ComputeDistance(name, r.Name)
		if d <= maxSuggestDistance(r.Name) {
			cands = append(cands, candidate{r.Name, d})
		}
	}
	if len(cands) == 0 {
		return ""
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })
	return cands[0].name
}

func maxSuggestDistance(target string) int {
	return max(2, len(target)/4)
}
