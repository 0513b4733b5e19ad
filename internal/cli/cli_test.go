package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/five82/backoffice/internal/api"
	"github.com/five82/backoffice/internal/app"
)

type memberServer struct {
	mu      sync.Mutex
	items   []api.Item
	deleted []string
}

func newMemberServer(t *testing.T) (*memberServer, string) {
	t.Helper()
	ms := &memberServer{}
	for i, title := range []string{"Ada Lovelace", "Grace Hopper", "Alan Turing", "Linus"} {
		ms.items = append(ms.items, api.Item{
			ID:        fmt.Sprint(i + 1),
			Title:     title,
			Slug:      strings.ReplaceAll(strings.ToLower(title), " ", "-"),
			Email:     strings.ToLower(strings.Fields(title)[0]) + "@x.com",
			Status:    api.StatusActive,
			CreatedAt: fmt.Sprintf("2024-05-%02dT09:00:00Z", i+1),
		})
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ms.mu.Lock()
		defer ms.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/team-members":
			_ = json.NewEncoder(w).Encode(ms.items)
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/team-members/"):
			slug := strings.TrimPrefix(r.URL.Path, "/api/team-members/")
			kept := ms.items[:0:0]
			for _, it := range ms.items {
				if it.Slug != slug {
					kept = append(kept, it)
				}
			}
			if len(kept) == len(ms.items) {
				http.NotFound(w, r)
				return
			}
			ms.items = kept
			ms.deleted = append(ms.deleted, slug)
			_, _ = w.Write([]byte(`{"message":"deleted"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	cfg := fmt.Sprintf("api_base = %q\npage_size = 2\nlog_file = %q\n", server.URL+"/api", filepath.Join(dir, "backoffice.log"))
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return ms, cfgPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	cmd := newRootCmd(func(context.Context, app.Options) error { return nil })
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestList_FiltersAndClampsPage(t *testing.T) {
	_, cfgPath := newMemberServer(t)

	out, err := execute(t, "--config", cfgPath, "list", "--query", "a", "--page", "9")
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if !strings.Contains(out, "Page 2 of 2 (3 of 4 team members)") {
		t.Fatalf("list footer missing:\n%s", out)
	}
	if !strings.Contains(out, "Ada Lovelace") || strings.Contains(out, "Alan Turing") {
		t.Fatalf("page 2 should hold only the oldest match:\n%s", out)
	}
}

func TestList_JSON(t *testing.T) {
	_, cfgPath := newMemberServer(t)

	out, err := execute(t, "--config", cfgPath, "list", "--json")
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	var got listOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if got.Page != 1 || got.TotalPages != 2 || got.Total != 4 {
		t.Fatalf("paging = %d/%d total %d, want 1/2 total 4", got.Page, got.TotalPages, got.Total)
	}
	if len(got.Items) != 2 || got.Items[0].Title != "Linus" {
		t.Fatalf("items = %v, want newest two starting with Linus", got.Items)
	}
}

func TestDelete_SingleRefetches(t *testing.T) {
	ms, cfgPath := newMemberServer(t)

	out, err := execute(t, "--config", cfgPath, "delete", "2")
	if err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	if !strings.Contains(out, "Deleted Team Member 2 (3 remaining)") {
		t.Fatalf("delete output = %q", out)
	}
	if len(ms.deleted) != 1 || ms.deleted[0] != "grace-hopper" {
		t.Fatalf("server deletes = %v, want [grace-hopper]", ms.deleted)
	}
}

func TestDelete_Many(t *testing.T) {
	ms, cfgPath := newMemberServer(t)

	out, err := execute(t, "--config", cfgPath, "delete", "1", "3")
	if err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	if !strings.Contains(out, "Deleted 2 of 2 (2 remaining)") {
		t.Fatalf("delete output = %q", out)
	}
	if len(ms.deleted) != 2 {
		t.Fatalf("server deletes = %v, want 2", ms.deleted)
	}
}

func TestDelete_RepeatedIDCountsOnce(t *testing.T) {
	ms, cfgPath := newMemberServer(t)

	out, err := execute(t, "--config", cfgPath, "delete", "1", "1")
	if err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	if !strings.Contains(out, "Deleted Team Member 1 (3 remaining)") {
		t.Fatalf("delete output = %q", out)
	}
	if len(ms.deleted) != 1 || ms.deleted[0] != "ada-lovelace" {
		t.Fatalf("server deletes = %v, want [ada-lovelace]", ms.deleted)
	}
}

func TestDelete_UnknownID(t *testing.T) {
	ms, cfgPath := newMemberServer(t)

	_, err := execute(t, "--config", cfgPath, "delete", "99")
	if err == nil || !strings.Contains(err.Error(), "not found: 99") {
		t.Fatalf("delete unknown = %v, want not found", err)
	}
	if len(ms.deleted) != 0 {
		t.Fatalf("server deletes = %v, want none", ms.deleted)
	}
}

func TestUnknownResourceSuggests(t *testing.T) {
	_, cfgPath := newMemberServer(t)

	_, err := execute(t, "--config", cfgPath, "--resource", "blgos", "list")
	if err == nil || !strings.Contains(err.Error(), `did you mean "blogs"`) {
		t.Fatalf("list with typo = %v, want suggestion", err)
	}
}

func TestResources(t *testing.T) {
	out, err := execute(t, "resources")
	if err != nil {
		t.Fatalf("resources returned error: %v", err)
	}
	for _, want := range []string{"team-members", "blogs/categories", "email, phone"} {
		if !strings.Contains(out, want) {
			t.Fatalf("resources output missing %q:\n%s", want, out)
		}
	}
}

func TestRootRunsTUIWithFlags(t *testing.T) {
	var got app.Options
	cmd := newRootCmd(func(_ context.Context, opts app.Options) error {
		got = opts
		return nil
	})
	cmd.SetArgs([]string{"--resource", "blogs", "--config", "/tmp/c.toml"})
	cmd.SetOut(&bytes.Buffer{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if got.Resource != "blogs" || got.ConfigPath != "/tmp/c.toml" {
		t.Fatalf("options = %+v", got)
	}
}
