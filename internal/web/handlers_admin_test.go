package web

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/ppc-youthlead/chapter-web/internal/web/routepath"
)

func newAdminBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fake := newFakeBackend(t)
	fake.role = "admin"
	return fake
}

func TestRoleUpdatePatchesTargetProfile(t *testing.T) {
	t.Parallel()

	fake := newAdminBackend(t)
	var patched map[string]any
	var filter string
	fake.mux.HandleFunc("PATCH /rest/v1/profiles", func(w http.ResponseWriter, r *http.Request) {
		filter = r.URL.Query().Get("user_id")
		if err := json.NewDecoder(r.Body).Decode(&patched); err != nil {
			t.Errorf("decode patch: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	site := newTestServer(t, fake)

	form := url.Values{"user_id": {"u-2"}, "role": {"admin"}}
	resp := postForm(t, site, routepath.AdminRole, form, sessionCookie(t))
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != routepath.Admin {
		t.Fatalf("Location = %q, want clean admin redirect", got)
	}
	if filter != "eq.u-2" {
		t.Fatalf("filter = %q, want eq.u-2", filter)
	}
	if patched["role"] != "admin" {
		t.Fatalf("patched role = %v, want admin", patched["role"])
	}
}

func TestRoleUpdateRefusesOwnRole(t *testing.T) {
	t.Parallel()

	site := newTestServer(t, newAdminBackend(t))
	form := url.Values{"user_id": {"u-1"}, "role": {"user"}}
	resp := postForm(t, site, routepath.AdminRole, form, sessionCookie(t))
	if !strings.Contains(resp.Header.Get("Location"), "error=") {
		t.Fatalf("Location = %q, want an error parameter", resp.Header.Get("Location"))
	}
}

func TestAdminActionsDeniedForNonAdmins(t *testing.T) {
	t.Parallel()

	site := newTestServer(t, newFakeBackend(t))
	form := url.Values{"user_id": {"u-2"}, "role": {"admin"}}
	resp := postForm(t, site, routepath.AdminRole, form, sessionCookie(t))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
}

func TestTicketStatusUpdateAllowsAnyDirection(t *testing.T) {
	t.Parallel()

	fake := newAdminBackend(t)
	var patched map[string]any
	var filter string
	fake.mux.HandleFunc("PATCH /rest/v1/complaints_requests", func(w http.ResponseWriter, r *http.Request) {
		filter = r.URL.Query().Get("id")
		if err := json.NewDecoder(r.Body).Decode(&patched); err != nil {
			t.Errorf("decode patch: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	site := newTestServer(t, fake)

	// Reopening a resolved ticket is a legal move.
	form := url.Values{"ticket_id": {"t-1"}, "status": {"in_progress"}}
	resp := postForm(t, site, routepath.AdminTicketState, form, sessionCookie(t))
	if got := resp.Header.Get("Location"); got != routepath.Admin {
		t.Fatalf("Location = %q, want clean admin redirect", got)
	}
	if filter != "eq.t-1" {
		t.Fatalf("filter = %q, want eq.t-1", filter)
	}
	if patched["status"] != "in_progress" {
		t.Fatalf("patched status = %v, want in_progress", patched["status"])
	}
}

func TestTicketStatusUpdateRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	site := newTestServer(t, newAdminBackend(t))
	form := url.Values{"ticket_id": {"t-1"}, "status": {"archived"}}
	resp := postForm(t, site, routepath.AdminTicketState, form, sessionCookie(t))
	if !strings.Contains(resp.Header.Get("Location"), "error=") {
		t.Fatalf("Location = %q, want an error parameter", resp.Header.Get("Location"))
	}
}

func TestTicketReplyStampsAuthorWithoutTouchingStatus(t *testing.T) {
	t.Parallel()

	fake := newAdminBackend(t)
	var patched map[string]any
	fake.mux.HandleFunc("PATCH /rest/v1/complaints_requests", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&patched); err != nil {
			t.Errorf("decode patch: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	site := newTestServer(t, fake)

	form := url.Values{"ticket_id": {"t-1"}, "reply": {"We ordered the bulb."}}
	resp := postForm(t, site, routepath.AdminTicketReply, form, sessionCookie(t))
	if got := resp.Header.Get("Location"); got != routepath.Admin {
		t.Fatalf("Location = %q, want clean admin redirect", got)
	}
	if patched["admin_reply"] != "We ordered the bulb." {
		t.Fatalf("patched reply = %v", patched["admin_reply"])
	}
	if patched["admin_replied_by"] != "u-1" {
		t.Fatalf("patched replied_by = %v, want acting admin", patched["admin_replied_by"])
	}
	if _, touched := patched["status"]; touched {
		t.Fatal("replying must not change the ticket status")
	}
}

func TestTicketReplyRequiresText(t *testing.T) {
	t.Parallel()

	site := newTestServer(t, newAdminBackend(t))
	form := url.Values{"ticket_id": {"t-1"}, "reply": {"  "}}
	resp := postForm(t, site, routepath.AdminTicketReply, form, sessionCookie(t))
	if !strings.Contains(resp.Header.Get("Location"), "error=") {
		t.Fatalf("Location = %q, want an error parameter", resp.Header.Get("Location"))
	}
}

func eventForm(t *testing.T, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	fields := map[string]string{
		"title":       "Coastal Cleanup",
		"description": "Baywalk cleanup, gloves provided",
		"status":      "upcoming",
		"date":        "Dec 1, 2025",
		"partners":    "City ENRO",
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	if withImage {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="images"; filename="cover.jpg"`)
		header.Set("Content-Type", "image/jpeg")
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create image part: %v", err)
		}
		if _, err := part.Write([]byte("jpeg-bytes")); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func postMultipart(t *testing.T, site *httptest.Server, path string, body io.Reader, contentType string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, site.URL+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestEventCreateUploadsImageAndInsertsRow(t *testing.T) {
	t.Parallel()

	fake := newAdminBackend(t)
	uploaded := false
	var inserted map[string]any
	fake.mux.HandleFunc("/storage/v1/object/event-images/", func(w http.ResponseWriter, r *http.Request) {
		uploaded = true
		w.WriteHeader(http.StatusOK)
	})
	fake.mux.HandleFunc("POST /rest/v1/events", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&inserted); err != nil {
			t.Errorf("decode insert: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	})
	site := newTestServer(t, fake)

	body, contentType := eventForm(t, true)
	resp := postMultipart(t, site, routepath.AdminEventCreate, body, contentType, sessionCookie(t))
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != routepath.Admin {
		t.Fatalf("Location = %q, want clean admin redirect", got)
	}
	if !uploaded {
		t.Fatal("expected image upload before the row insert")
	}
	if inserted["title"] != "Coastal Cleanup" {
		t.Fatalf("inserted title = %v", inserted["title"])
	}
	if inserted["created_by"] != "u-1" {
		t.Fatalf("inserted created_by = %v, want acting admin", inserted["created_by"])
	}
}
