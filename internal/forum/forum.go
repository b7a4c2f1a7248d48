// Package forum implements the Freedom Wall: short public posts with
// best-effort author resolution and a live insert feed.
package forum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/ppc-youthlead/chapter-web/internal/backend"
	"github.com/ppc-youthlead/chapter-web/internal/profile"
)

const table = "forum_posts"

// MaxContentLength is the hard cap on post content.
const MaxContentLength = 500

// PageSize is how many recent posts the wall loads.
const PageSize = 50

// denylist is a cosmetic word filter applied before the insert. It is
// trivially bypassed and carries no authority; moderation lives elsewhere.
var denylist = []string{"fuck", "shit", "bitch", "asshole"}

// ErrEmptyContent rejects posts without any content.
var ErrEmptyContent = errors.New("please enter a message")

// ErrContentTooLong rejects posts beyond MaxContentLength characters.
var ErrContentTooLong = errors.New("message too long")

// ErrDisallowedContent rejects posts tripping the denylist.
var ErrDisallowedContent = errors.New("please keep your message respectful")

// Post is one row of the forum_posts table. Posts are immutable once
// created; there is no edit or delete path.
type Post struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Content    string `json:"content"`
	LikesCount int    `json:"likes_count"`
	CreatedAt  string `json:"created_at"`
}

// AuthoredPost pairs a post with its author profile when resolution
// succeeded. Author stays nil when the lookup failed or the profile is gone.
type AuthoredPost struct {
	Post
	Author *profile.Profile
}

// AuthorName returns the resolved display name or the anonymous fallback.
func (p AuthoredPost) AuthorName() string {
	if p.Author == nil {
		return "Anonymous"
	}
	return p.Author.Name()
}

// ValidateContent applies the local courtesy checks for a new post.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return ErrContentTooLong
	}
	lowered := strings.ToLower(content)
	for _, word := range denylist {
		if strings.Contains(lowered, word) {
			return ErrDisallowedContent
		}
	}
	return nil
}

// Service reads and writes wall posts through the backend facade.
type Service struct {
	backend *backend.Client
}

// NewService builds a forum service on the backend facade.
func NewService(client *backend.Client) *Service {
	return &Service{backend: client}
}

// Create validates and inserts a new post owned by userID.
func (s *Service) Create(ctx context.Context, token, userID, content string) error {
	if err := ValidateContent(content); err != nil {
		return err
	}
	row := map[string]any{
		"user_id":     userID,
		"content":     content,
		"likes_count": 0,
	}
	if err := s.backend.Insert(ctx, token, table, row); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// Latest returns the newest PageSize posts with authors resolved in one
// follow-up profile query. Profile resolution failure is not fatal: the
// posts come back with nil authors instead.
func (s *Service) Latest(ctx context.Context, token string) ([]AuthoredPost, error) {
	var posts []Post
	err := s.backend.From(table).OrderDesc("created_at").Limit(PageSize).Get(ctx, token, &posts)
	if err != nil {
		return nil, fmt.Errorf("load wall: %w", err)
	}

	authors := s.resolveAuthors(ctx, token, posts)
	authored := make([]AuthoredPost, 0, len(posts))
	for _, post := range posts {
		authored = append(authored, AuthoredPost{Post: post, Author: authors[post.UserID]})
	}
	return authored, nil
}

func (s *Service) resolveAuthors(ctx context.Context, token string, posts []Post) map[string]*profile.Profile {
	authors := make(map[string]*profile.Profile)
	if len(posts) == 0 {
		return authors
	}
	userIDs := make([]string, 0, len(posts))
	for _, post := range posts {
		if _, seen := authors[post.UserID]; !seen {
			authors[post.UserID] = nil
			userIDs = append(userIDs, post.UserID)
		}
	}

	var profiles []profile.Profile
	err := s.backend.From("profiles").
		Select("user_id,display_name,avatar_url,role").
		In("user_id", userIDs).
		Get(ctx, token, &profiles)
	if err != nil {
		log.Printf("forum: author resolution failed, rendering without profiles: %v", err)
		return authors
	}
	for i := range profiles {
		authors[profiles[i].UserID] = &profiles[i]
	}
	return authors
}

// Subscribe streams newly inserted posts until ctx ends. Each post gets a
// single-row author lookup; a failed lookup delivers the post authorless.
// Posts arriving here are not deduplicated against a concurrent Latest call.
func (s *Service) Subscribe(ctx context.Context, token string, handle func(AuthoredPost)) error {
	return s.backend.SubscribeInserts(ctx, table, func(record json.RawMessage) {
		var post Post
		if err := json.Unmarshal(record, &post); err != nil {
			log.Printf("forum: dropping malformed insert event: %v", err)
			return
		}
		authored := AuthoredPost{Post: post}
		var author profile.Profile
		err := s.backend.From("profiles").
			Select("user_id,display_name,avatar_url,role").
			Eq("user_id", post.UserID).
			Single(ctx, token, &author)
		if err == nil {
			authored.Author = &author
		}
		handle(authored)
	})
}
