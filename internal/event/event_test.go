package event

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ppc-youthlead/chapter-web/internal/backend"
)

func TestValidateImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		img     Image
		wantErr error
	}{
		{name: "valid jpeg", img: Image{ContentType: "image/jpeg", Size: 2 << 20}, wantErr: nil},
		{name: "valid gif", img: Image{ContentType: "image/gif", Size: 100}, wantErr: nil},
		{name: "at size cap", img: Image{ContentType: "image/png", Size: MaxImageBytes}, wantErr: nil},
		{name: "over size cap", img: Image{ContentType: "image/png", Size: MaxImageBytes + 1}, wantErr: ErrImageTooLarge},
		{name: "svg rejected", img: Image{ContentType: "image/svg+xml", Size: 10}, wantErr: ErrImageType},
		{name: "pdf rejected", img: Image{ContentType: "application/pdf", Size: 10}, wantErr: ErrImageType},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := ValidateImage(tc.img); !errors.Is(err, tc.wantErr) {
				t.Fatalf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestParsePartners(t *testing.T) {
	t.Parallel()

	got := ParsePartners(" City ENRO , , Este Municipal Office ")
	if len(got) != 2 || got[0] != "City ENRO" || got[1] != "Este Municipal Office" {
		t.Fatalf("partners = %v, want two trimmed entries", got)
	}
	if got := ParsePartners("   "); got != nil {
		t.Fatalf("partners = %v, want nil for blank input", got)
	}
}

func TestCreateUploadsImagesThenInsertsRow(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var uploadPaths []string
	var gotRow map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/storage/v1/object/event-images/"):
			mu.Lock()
			uploadPaths = append(uploadPaths, r.URL.Path)
			mu.Unlock()
			w.WriteHeader(http.StatusOK)
		case r.URL.Path == "/rest/v1/events":
			if err := json.NewDecoder(r.Body).Decode(&gotRow); err != nil {
				t.Errorf("decode row: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer server.Close()

	service := NewService(backend.New(backend.Config{URL: server.URL, AnonKey: "anon"}))
	service.now = func() time.Time { return time.UnixMilli(1733000000000) }
	ids := []string{"aaaaaaaa-1111", "bbbbbbbb-2222"}
	service.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	draft := Draft{
		Title:       "Cleanup Day",
		Description: "Coastal cleanup at the baywalk",
		Status:      StatusUpcoming,
		Date:        "Dec 1, 2025",
		Partners:    ParsePartners("City ENRO"),
	}
	images := []Image{
		{Filename: "before.jpg", ContentType: "image/jpeg", Size: 2 << 20, Data: strings.NewReader("jpeg")},
		{Filename: "map.png", ContentType: "image/png", Size: 1 << 20, Data: strings.NewReader("png")},
	}
	if err := service.Create(context.Background(), "token", "u-1", draft, images); err != nil {
		t.Fatalf("Create: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(uploadPaths) != 2 {
		t.Fatalf("uploads = %d, want 2", len(uploadPaths))
	}
	if uploadPaths[0] != "/storage/v1/object/event-images/u-1/1733000000000-aaaaaaaa.jpg" {
		t.Fatalf("first key = %q, want userID/timestamp-random.ext", uploadPaths[0])
	}

	rowImages, ok := gotRow["images"].([]any)
	if !ok || len(rowImages) != 2 {
		t.Fatalf("row images = %v, want exactly 2 URLs", gotRow["images"])
	}
	if gotRow["status"] != "upcoming" {
		t.Fatalf("status = %v, want upcoming", gotRow["status"])
	}
	if gotRow["date"] != "Dec 1, 2025" {
		t.Fatalf("date = %v, want Dec 1, 2025", gotRow["date"])
	}
	if gotRow["created_by"] != "u-1" {
		t.Fatalf("created_by = %v, want acting admin", gotRow["created_by"])
	}
	if value, present := gotRow["location"]; !present || value != nil {
		t.Fatalf("location = %v (present=%v), want explicit null", value, present)
	}
}

func TestCreateAbortsOnUploadFailure(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	uploads := 0
	inserted := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/storage/v1/object/"):
			mu.Lock()
			uploads++
			failSecond := uploads == 2
			mu.Unlock()
			if failSecond {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
		case r.URL.Path == "/rest/v1/events":
			mu.Lock()
			inserted = true
			mu.Unlock()
			w.WriteHeader(http.StatusCreated)
		}
	}))
	defer server.Close()

	service := NewService(backend.New(backend.Config{URL: server.URL, AnonKey: "anon"}))
	draft := Draft{Title: "Tree planting", Description: "Upland site"}
	images := []Image{
		{Filename: "a.jpg", ContentType: "image/jpeg", Size: 10, Data: strings.NewReader("a")},
		{Filename: "b.jpg", ContentType: "image/jpeg", Size: 10, Data: strings.NewReader("b")},
	}
	err := service.Create(context.Background(), "token", "u-1", draft, images)
	if err == nil {
		t.Fatal("expected create to abort on the failed upload")
	}

	mu.Lock()
	defer mu.Unlock()
	if uploads != 2 {
		t.Fatalf("uploads attempted = %d, want 2 (first succeeded, second failed)", uploads)
	}
	if inserted {
		t.Fatal("event row must not be inserted after an upload failure")
	}
}

func TestCreateRequiresTitleAndDescription(t *testing.T) {
	t.Parallel()

	service := NewService(backend.New(backend.Config{URL: "https://backend.test", AnonKey: "anon"}))
	if err := service.Create(context.Background(), "token", "u-1", Draft{Description: "d"}, nil); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("error = %v, want ErrEmptyTitle", err)
	}
	if err := service.Create(context.Background(), "token", "u-1", Draft{Title: "t"}, nil); !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("error = %v, want ErrEmptyDescription", err)
	}
	if err := service.Create(context.Background(), "token", "u-1", Draft{Title: "t", Description: "d", Status: "draft"}, nil); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("error = %v, want ErrInvalidStatus", err)
	}
}

func TestCreateRejectsInvalidImageBeforeAnyUpload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for locally rejected image")
	}))
	defer server.Close()

	service := NewService(backend.New(backend.Config{URL: server.URL, AnonKey: "anon"}))
	draft := Draft{Title: "t", Description: "d"}
	images := []Image{{Filename: "big.png", ContentType: "image/png", Size: MaxImageBytes + 1, Data: strings.NewReader("x")}}
	if err := service.Create(context.Background(), "token", "u-1", draft, images); !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("error = %v, want ErrImageTooLarge", err)
	}
}
