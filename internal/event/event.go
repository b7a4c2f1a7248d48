// Package event manages chapter events: the public listing and the
// admin-only creation path with image attachments in external object storage.
package event

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ppc-youthlead/chapter-web/internal/backend"
)

const table = "events"

// Bucket is the object storage bucket holding event images.
const Bucket = "event-images"

// MaxImageBytes caps a single image upload at 5MB.
const MaxImageBytes = 5 << 20

// allowedImageTypes maps accepted MIME types to their stored extension.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Status is the event lifecycle flag shown on the listing.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
)

var (
	// ErrEmptyTitle rejects events without a title.
	ErrEmptyTitle = errors.New("title is required")
	// ErrEmptyDescription rejects events without a description.
	ErrEmptyDescription = errors.New("description is required")
	// ErrInvalidStatus rejects unknown event statuses.
	ErrInvalidStatus = errors.New("status must be upcoming or completed")
	// ErrImageTooLarge rejects images above MaxImageBytes.
	ErrImageTooLarge = errors.New("image exceeds the 5MB limit")
	// ErrImageType rejects images outside the jpeg/png/webp/gif allow-list.
	ErrImageType = errors.New("image must be a jpeg, png, webp or gif")
)

// Event is one row of the events table. Image URLs are stored as plain
// strings and never re-validated after insertion.
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Location    string   `json:"location"`
	Partners    []string `json:"partners"`
	Images      []string `json:"images"`
	CreatedBy   string   `json:"created_by"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// Draft carries the admin form input for a new event.
type Draft struct {
	Title       string
	Description string
	Status      Status
	Date        string
	Time        string
	Location    string
	Partners    []string
}

// Image is one attachment selected for upload.
type Image struct {
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// ValidateImage applies the pre-upload size and MIME checks.
func ValidateImage(img Image) error {
	if _, ok := allowedImageTypes[img.ContentType]; !ok {
		return fmt.Errorf("%w: %s", ErrImageType, img.ContentType)
	}
	if img.Size > MaxImageBytes {
		return fmt.Errorf("%w: %s", ErrImageTooLarge, img.Filename)
	}
	return nil
}

// ParsePartners splits the comma-separated partner list from the form.
func ParsePartners(raw string) []string {
	var partners []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			partners = append(partners, trimmed)
		}
	}
	return partners
}

// Service reads and creates events through the backend facade.
type Service struct {
	backend *backend.Client
	now     func() time.Time
	newID   func() string
}

// NewService builds an event service on the backend facade.
func NewService(client *backend.Client) *Service {
	return &Service{backend: client, now: time.Now, newID: uuid.NewString}
}

// List returns every event, newest first.
func (s *Service) List(ctx context.Context, token string) ([]Event, error) {
	var rows []Event
	err := s.backend.From(table).OrderDesc("created_at").Get(ctx, token, &rows)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return rows, nil
}

// Create uploads the images and inserts the event row referencing their
// public URLs. Uploads run one by one; the first failure aborts the whole
// submission and leaves the already-uploaded objects orphaned in the bucket.
func (s *Service) Create(ctx context.Context, token, userID string, draft Draft, images []Image) error {
	if strings.TrimSpace(draft.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(draft.Description) == "" {
		return ErrEmptyDescription
	}
	status := draft.Status
	if status == "" {
		status = StatusUpcoming
	}
	if status != StatusUpcoming && status != StatusCompleted {
		return ErrInvalidStatus
	}

	var urls []string
	for _, img := range images {
		if err := ValidateImage(img); err != nil {
			return err
		}
		key := s.objectKey(userID, img.ContentType)
		if err := s.backend.Upload(ctx, token, Bucket, key, img.ContentType, img.Data); err != nil {
			return fmt.Errorf("upload %s: %w", img.Filename, err)
		}
		urls = append(urls, s.backend.PublicURL(Bucket, key))
	}

	row := map[string]any{
		"title":       strings.TrimSpace(draft.Title),
		"description": strings.TrimSpace(draft.Description),
		"status":      status,
		"date":        nullable(draft.Date),
		"time":        nullable(draft.Time),
		"location":    nullable(draft.Location),
		"partners":    draft.Partners,
		"images":      urls,
		"created_by":  userID,
	}
	if err := s.backend.Insert(ctx, token, table, row); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// objectKey builds the {userID}/{timestamp}-{random}.{ext} storage key.
func (s *Service) objectKey(userID, contentType string) string {
	random := s.newID()
	if len(random) > 8 {
		random = random[:8]
	}
	return fmt.Sprintf("%s/%d-%s%s", userID, s.now().UnixMilli(), random, allowedImageTypes[contentType])
}

func nullable(value string) any {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return trimmed
}
