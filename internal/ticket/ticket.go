// Package ticket implements the Service Desk: complaint/request tickets with
// a three-state lifecycle and admin replies.
//
// The lifecycle is pending → in_progress → resolved in spirit only: an admin
// may write any of the three states directly, including backwards. Replies
// and status are independent writes; replying does not resolve a ticket.
package ticket

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ppc-youthlead/chapter-web/internal/backend"
	"github.com/ppc-youthlead/chapter-web/internal/profile"
)

const table = "complaints_requests"

// Type distinguishes complaints from requests.
type Type string

const (
	TypeComplaint Type = "complaint"
	TypeRequest   Type = "request"
)

// Status is the ticket lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

// Valid reports whether the status is one of the three known states.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusResolved
}

const (
	// MaxSubjectLength caps the ticket subject.
	MaxSubjectLength = 200
	// MaxDescriptionLength caps the ticket description.
	MaxDescriptionLength = 1000
)

var (
	// ErrInvalidType rejects unknown ticket types.
	ErrInvalidType = errors.New("type must be complaint or request")
	// ErrEmptySubject rejects tickets without a subject.
	ErrEmptySubject = errors.New("subject is required")
	// ErrSubjectTooLong rejects subjects beyond MaxSubjectLength.
	ErrSubjectTooLong = errors.New("subject too long")
	// ErrEmptyDescription rejects tickets without a description.
	ErrEmptyDescription = errors.New("description is required")
	// ErrDescriptionTooLong rejects descriptions beyond MaxDescriptionLength.
	ErrDescriptionTooLong = errors.New("description too long")
	// ErrInvalidStatus rejects writes outside the three known states.
	ErrInvalidStatus = errors.New("unknown ticket status")
	// ErrEmptyReply rejects blank admin replies.
	ErrEmptyReply = errors.New("please enter a reply")
)

// Ticket is one row of the complaints_requests table.
type Ticket struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	Type           Type   `json:"type"`
	Subject        string `json:"subject"`
	Description    string `json:"description"`
	Status         Status `json:"status"`
	AdminReply     string `json:"admin_reply"`
	AdminReplyAt   string `json:"admin_reply_at"`
	AdminRepliedBy string `json:"admin_replied_by"`
	CreatedAt      string `json:"created_at"`
}

// ShowReply reports whether the owner-facing detail view surfaces the admin
// reply. The reply is hidden until the ticket is resolved even when a reply
// has already been written.
func (t Ticket) ShowReply() bool {
	return t.Status == StatusResolved && t.AdminReply != ""
}

// AuthoredTicket pairs a ticket with the submitter's profile when the join
// or fallback resolution found one; Author is nil otherwise.
type AuthoredTicket struct {
	Ticket
	Author *profile.Profile
}

// AuthorName returns the resolved submitter name or the anonymous fallback.
func (t AuthoredTicket) AuthorName() string {
	if t.Author == nil {
		return "Anonymous"
	}
	return t.Author.Name()
}

// joinedRow decodes the embedded-join shape of the admin listing.
type joinedRow struct {
	Ticket
	Profiles *profile.Profile `json:"profiles"`
}

// ValidateSubmission applies the local courtesy checks for a new ticket.
func ValidateSubmission(typ Type, subject, description string) error {
	if typ != TypeComplaint && typ != TypeRequest {
		return ErrInvalidType
	}
	if subject == "" {
		return ErrEmptySubject
	}
	if utf8.RuneCountInString(subject) > MaxSubjectLength {
		return ErrSubjectTooLong
	}
	if description == "" {
		return ErrEmptyDescription
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// Service reads and mutates tickets through the backend facade.
type Service struct {
	backend *backend.Client
	now     func() time.Time
}

// NewService builds a ticket service on the backend facade.
func NewService(client *backend.Client) *Service {
	return &Service{backend: client, now: time.Now}
}

// Create validates and inserts a new ticket owned by userID. New tickets
// always start pending.
func (s *Service) Create(ctx context.Context, token, userID string, typ Type, subject, description string) error {
	if err := ValidateSubmission(typ, subject, description); err != nil {
		return err
	}
	row := map[string]any{
		"user_id":     userID,
		"type":        typ,
		"subject":     subject,
		"description": description,
		"status":      StatusPending,
	}
	if err := s.backend.Insert(ctx, token, table, row); err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

// ListMine returns the caller's own tickets, newest first. The backend
// policy guarantees a non-admin can never see anyone else's rows; the
// user_id filter here only narrows the query.
func (s *Service) ListMine(ctx context.Context, token, userID string) ([]Ticket, error) {
	var rows []Ticket
	err := s.backend.From(table).Eq("user_id", userID).OrderDesc("created_at").Get(ctx, token, &rows)
	if err != nil {
		return nil, fmt.Errorf("list own tickets: %w", err)
	}
	return rows, nil
}

// ListAll returns every ticket with submitter metadata for the admin view.
// It first attempts the embedded profile join; when the backend rejects it,
// tickets and profiles load separately and are matched by user_id here.
func (s *Service) ListAll(ctx context.Context, token string) ([]AuthoredTicket, error) {
	var joined []joinedRow
	err := s.backend.From(table).
		Select("*,profiles!inner(display_name,user_id,avatar_url,role)").
		OrderDesc("created_at").
		Get(ctx, token, &joined)
	if err == nil {
		tickets := make([]AuthoredTicket, 0, len(joined))
		for _, row := range joined {
			tickets = append(tickets, AuthoredTicket{Ticket: row.Ticket, Author: row.Profiles})
		}
		return tickets, nil
	}
	log.Printf("ticket: joined listing failed, falling back to separate loads: %v", err)

	var rows []Ticket
	if err := s.backend.From(table).OrderDesc("created_at").Get(ctx, token, &rows); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	var profiles []profile.Profile
	if err := s.backend.From("profiles").Get(ctx, token, &profiles); err != nil {
		log.Printf("ticket: profile fallback failed, rendering without submitters: %v", err)
		profiles = nil
	}
	byUser := make(map[string]*profile.Profile, len(profiles))
	for i := range profiles {
		byUser[profiles[i].UserID] = &profiles[i]
	}
	tickets := make([]AuthoredTicket, 0, len(rows))
	for _, row := range rows {
		tickets = append(tickets, AuthoredTicket{Ticket: row, Author: byUser[row.UserID]})
	}
	return tickets, nil
}

// UpdateStatus writes a new status on the ticket. Any of the three states is
// accepted regardless of the current one; transitions are not forced forward.
func (s *Service) UpdateStatus(ctx context.Context, token, ticketID string, status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	patch := map[string]any{"status": status}
	if err := s.backend.Update(ctx, token, table, patch, "id", ticketID); err != nil {
		return fmt.Errorf("update ticket status: %w", err)
	}
	return nil
}

// Reply attaches an admin reply to the ticket. The write stamps the reply
// time and the acting admin but leaves status untouched; resolving the
// ticket is a separate action.
func (s *Service) Reply(ctx context.Context, token, ticketID, replyText, adminUserID string) error {
	if strings.TrimSpace(replyText) == "" {
		return ErrEmptyReply
	}
	patch := map[string]any{
		"admin_reply":      replyText,
		"admin_reply_at":   s.now().UTC().Format(time.RFC3339),
		"admin_replied_by": adminUserID,
	}
	if err := s.backend.Update(ctx, token, table, patch, "id", ticketID); err != nil {
		return fmt.Errorf("submit reply: %w", err)
	}
	return nil
}
