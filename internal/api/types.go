package api

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Status values accepted by the content API.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Category mirrors the {_id, title} pairs served by /<resource>/categories.
type Category struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}

// UnmarshalJSON accepts either a category object or a bare id string; list
// endpoints populate categories while some older records only carry ids.
func (c *Category) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*c = Category{ID: id}
		return nil
	}
	var raw struct {
		ID      string `json:"_id"`
		AltID   string `json:"id"`
		Title   string `json:"title"`
		AltName string `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.ID = firstNonEmpty(raw.ID, raw.AltID)
	c.Title = firstNonEmpty(raw.Title, raw.AltName)
	return nil
}

// Item is one administrable record. Resource-specific fields are left empty
// by resources that do not use them.
type Item struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug,omitempty"`
	Status      string     `json:"status,omitempty"`
	Description string     `json:"description,omitempty"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Department  string     `json:"department,omitempty"`
	Categories  []Category `json:"categories,omitempty"`
	Image       string     `json:"image,omitempty"`
	CreatedAt   string     `json:"createdAt"`
}

// UnmarshalJSON normalizes id and image aliases used by different resources.
func (i *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	var raw struct {
		plain
		AltID       string `json:"id"`
		Avatar      string `json:"avatar"`
		FeaturedImg string `json:"featuredImg"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = Item(raw.plain)
	i.ID = firstNonEmpty(i.ID, raw.AltID)
	i.Image = firstNonEmpty(i.Image, raw.Avatar, raw.FeaturedImg)
	return nil
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp, zero when missing or
// malformed.
func (i Item) ParsedCreatedAt() time.Time {
	return parseTime(i.CreatedAt)
}

// CategoryIDs returns the ids of the item's categories in order.
func (i Item) CategoryIDs() []string {
	if len(i.Categories) == 0 {
		return nil
	}
	ids := make([]string, 0, len(i.Categories))
	for _, c := range i.Categories {
		if c.ID != "" {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Field returns the string value of a named form field.
func (i Item) Field(name string) string {
	switch name {
	case "title":
		return i.Title
	case "slug":
		return i.Slug
	case "status":
		return i.Status
	case "description":
		return i.Description
	case "email":
		return i.Email
	case "phone":
		return i.Phone
	case "department":
		return i.Department
	default:
		return ""
	}
}

// Key returns the value that addresses the item in PATCH and DELETE paths.
// An empty field or "_id" selects ID.
func (i Item) Key(field string) string {
	switch field {
	case "", "_id", "id":
		return i.ID
	default:
		return i.Field(field)
	}
}

// Clone returns a copy that shares no slices with i.
func (i Item) Clone() Item {
	dup := i
	if i.Categories != nil {
		dup.Categories = append([]Category(nil), i.Categories...)
	}
	return dup
}

// Attachment is an optional file sent alongside a create or update.
type Attachment struct {
	Field    string // form field name, e.g. "avatar" or "featuredImg"
	FileName string
	Body     io.Reader
}

// Payload is the multipart body of a create or update request.
type Payload struct {
	Fields     map[string]string
	Categories []string
	Attachment *Attachment
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", time.DateOnly} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// String renders the item for log lines.
func (i Item) String() string {
	return fmt.Sprintf("%s (%s)", i.Title, i.ID)
}
