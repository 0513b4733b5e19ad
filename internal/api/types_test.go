package api

import (
	"encoding/json"
	"testing"
	"time"
)

func TestItemUnmarshal_AliasesAndCategories(t *testing.T) {
	raw := `{
		"id": "42",
		"title": "Launch",
		"featuredImg": "/img/launch.png",
		"categories": [{"_id": "c1", "title": "News"}, "c2"],
		"createdAt": "2024-01-03"
	}`
	var item Item
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if item.ID != "42" {
		t.Fatalf("ID = %q, want 42 from id alias", item.ID)
	}
	if item.Image != "/img/launch.png" {
		t.Fatalf("Image = %q, want featuredImg value", item.Image)
	}
	if got := item.CategoryIDs(); len(got) != 2 || got[0] != "c1" || got[1] != "c2" {
		t.Fatalf("CategoryIDs = %v, want [c1 c2]", got)
	}
	if item.Categories[0].Title != "News" {
		t.Fatalf("category title = %q, want News", item.Categories[0].Title)
	}
	want := time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)
	if !item.ParsedCreatedAt().Equal(want) {
		t.Fatalf("ParsedCreatedAt = %v, want %v", item.ParsedCreatedAt(), want)
	}
}

func TestParseTimeLayouts(t *testing.T) {
	if parseTime("2025-12-13T10:11:12.123Z").IsZero() {
		t.Fatalf("parseTime should parse RFC3339Nano")
	}
	if parseTime("2025-12-13 10:11:12").IsZero() {
		t.Fatalf("parseTime should parse space separated timestamps")
	}
	if !parseTime("yesterday").IsZero() {
		t.Fatalf("parseTime should return zero for garbage")
	}
	if !parseTime("  ").IsZero() {
		t.Fatalf("parseTime should return zero for blank")
	}
}

func TestItemCloneDoesNotShareCategories(t *testing.T) {
	orig := Item{ID: "1", Categories: []Category{{ID: "c1"}}}
	dup := orig.Clone()
	dup.Categories[0].ID = "changed"
	if orig.Categories[0].ID != "c1" {
		t.Fatalf("Clone shares category slice")
	}
}

func TestItemField(t *testing.T) {
	item := Item{Title: "T", Email: "e", Phone: "p", Department: "d", Status: "active", Description: "x"}
	for field, want := range map[string]string{
		"title": "T", "email": "e", "phone": "p", "department": "d", "status": "active", "description": "x", "unknown": "",
	} {
		if got := item.Field(field); got != want {
			t.Fatalf("Field(%q) = %q, want %q", field, got, want)
		}
	}
}

func TestItemKey(t *testing.T) {
	item := Item{ID: "665f0aa", Slug: "jane-doe"}
	for field, want := range map[string]string{
		"": "665f0aa", "_id": "665f0aa", "id": "665f0aa", "slug": "jane-doe", "unknown": "",
	} {
		if got := item.Key(field); got != want {
			t.Fatalf("Key(%q) = %q, want %q", field, got, want)
		}
	}
}
