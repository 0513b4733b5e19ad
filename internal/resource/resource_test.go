package resource

import (
	"errors"
	"strings"
	"testing"
)

func TestLookup_KnownAndDefault(t *testing.T) {
	r, err := Lookup(" Team-Members/ ")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if r.Name != "team-members" || r.FileField != "avatar" || r.KeyField != "slug" {
		t.Fatalf("Lookup = %#v, want team-members", r)
	}

	r, err = Lookup("")
	if err != nil || r.Name != DefaultName {
		t.Fatalf("Lookup(\"\") = %q, %v, want default", r.Name, err)
	}
}

func TestLookup_UnknownSuggestsClosest(t *testing.T) {
	_, err := Lookup("team-member")
	var unknown UnknownError
	if !errors.As(err, &unknown) {
		t.Fatalf("Lookup error = %v, want UnknownError", err)
	}
	if unknown.Suggestion != "team-members" {
		t.Fatalf("Suggestion = %q, want team-members", unknown.Suggestion)
	}
	if !strings.Contains(err.Error(), "did you mean") {
		t.Fatalf("error = %q, want suggestion text", err.Error())
	}

	_, err = Lookup("invoices")
	if !errors.As(err, &unknown) || unknown.Suggestion != "" {
		t.Fatalf("Lookup(invoices) = %v, want no suggestion", err)
	}
	if !strings.Contains(err.Error(), "available:") {
		t.Fatalf("error = %q, want available list", err.Error())
	}
}

func TestUniqueFields(t *testing.T) {
	r, _ := Lookup("team-members")
	got := r.UniqueFields()
	if len(got) != 2 || got[0].Name != "email" || got[1].Name != "phone" {
		t.Fatalf("UniqueFields = %#v, want email+phone", got)
	}
	blogs, _ := Lookup("blogs")
	if len(blogs.UniqueFields()) != 0 {
		t.Fatalf("blogs should have no unique fields")
	}
	if !blogs.HasCategories {
		t.Fatalf("blogs should select categories")
	}
	if blogs.KeyField != "" {
		t.Fatalf("blogs KeyField = %q, want _id addressing", blogs.KeyField)
	}
}

func TestNextWraps(t *testing.T) {
	names := Names()
	if got := Next(names[len(names)-1]).Name; got != names[0] {
		t.Fatalf("Next(last) = %q, want %q", got, names[0])
	}
	if got := Next("nope").Name; got != names[0] {
		t.Fatalf("Next(unknown) = %q, want %q", got, names[0])
	}
}
