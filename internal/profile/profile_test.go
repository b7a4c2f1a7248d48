package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ppc-youthlead/chapter-web/internal/backend"
)

func TestToggledFlipsRoles(t *testing.T) {
	t.Parallel()

	if got := Toggled(RoleUser); got != RoleAdmin {
		t.Fatalf("Toggled(user) = %q, want admin", got)
	}
	if got := Toggled(RoleAdmin); got != RoleUser {
		t.Fatalf("Toggled(admin) = %q, want user", got)
	}
	if got := Toggled(Toggled(RoleUser)); got != RoleUser {
		t.Fatalf("double toggle = %q, want original role", got)
	}
}

func TestNameFallsBackToAnonymous(t *testing.T) {
	t.Parallel()

	if got := (Profile{DisplayName: "  "}).Name(); got != "Anonymous" {
		t.Fatalf("Name() = %q, want Anonymous", got)
	}
	if got := (Profile{DisplayName: "Alex"}).Name(); got != "Alex" {
		t.Fatalf("Name() = %q, want Alex", got)
	}
}

func TestByUserIDFiltersOnOwner(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "user_id=eq.u-1") {
			t.Errorf("query = %q, want user_id filter", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"id":"p-1","user_id":"u-1","display_name":"Alex","role":"admin","created_at":"2025-10-01T00:00:00Z"}`))
	}))
	defer server.Close()

	service := NewService(backend.New(backend.Config{URL: server.URL, AnonKey: "anon"}))
	got, err := service.ByUserID(context.Background(), "token", "u-1")
	if err != nil {
		t.Fatalf("ByUserID: %v", err)
	}
	if !got.IsAdmin() {
		t.Fatalf("profile = %+v, want admin role", got)
	}
}

func TestByUserIDToleratesNullFields(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"p-2","user_id":"u-2","display_name":null,"avatar_url":null,"role":"user","created_at":"2025-10-01T00:00:00Z"}`))
	}))
	defer server.Close()

	service := NewService(backend.New(backend.Config{URL: server.URL, AnonKey: "anon"}))
	got, err := service.ByUserID(context.Background(), "token", "u-2")
	if err != nil {
		t.Fatalf("ByUserID: %v", err)
	}
	if got.Name() != "Anonymous" {
		t.Fatalf("Name() = %q, want Anonymous for null display name", got.Name())
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "order=created_at.desc") {
			t.Errorf("query = %q, want created_at.desc order", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`[{"id":"p-2","user_id":"u-2","role":"user"},{"id":"p-1","user_id":"u-1","role":"admin"}]`))
	}))
	defer server.Close()

	service := NewService(backend.New(backend.Config{URL: server.URL, AnonKey: "anon"}))
	rows, err := service.List(context.Background(), "token")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
}

func TestUpdateOwnNullsBlankFields(t *testing.T) {
	t.Parallel()

	var gotPatch map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %q, want PATCH", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPatch); err != nil {
			t.Errorf("decode patch: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	service := NewService(backend.New(backend.Config{URL: server.URL, AnonKey: "anon"}))
	if err := service.UpdateOwn(context.Background(), "token", "u-1", " Alex ", "  "); err != nil {
		t.Fatalf("UpdateOwn: %v", err)
	}
	if gotPatch["display_name"] != "Alex" {
		t.Fatalf("display_name = %v, want trimmed Alex", gotPatch["display_name"])
	}
	if value, present := gotPatch["avatar_url"]; !present || value != nil {
		t.Fatalf("avatar_url = %v (present=%v), want explicit null", value, present)
	}
}

func TestSetRoleWritesRolePatch(t *testing.T) {
	t.Parallel()

	var gotPatch map[string]any
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		if err := json.NewDecoder(r.Body).Decode(&gotPatch); err != nil {
			t.Errorf("decode patch: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	service := NewService(backend.New(backend.Config{URL: server.URL, AnonKey: "anon"}))
	if err := service.SetRole(context.Background(), "token", "u-2", RoleAdmin); err != nil {
		t.Fatalf("SetRole: %v", err)
	}
	if gotPatch["role"] != "admin" {
		t.Fatalf("role patch = %v, want admin", gotPatch["role"])
	}
	if !strings.Contains(gotQuery, "user_id=eq.u-2") {
		t.Fatalf("query = %q, want user_id filter", gotQuery)
	}
}
