package web

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/ppc-youthlead/chapter-web/internal/forum"
	"github.com/ppc-youthlead/chapter-web/internal/ticket"
	"github.com/ppc-youthlead/chapter-web/internal/web/platform/weberrors"
	"github.com/ppc-youthlead/chapter-web/internal/web/routepath"
	"github.com/ppc-youthlead/chapter-web/internal/web/templates"
)

// handleCommunity renders the portal. The wall is readable by anyone; the
// wall form and the Service Desk require a session.
func (s *Server) handleCommunity(w http.ResponseWriter, r *http.Request) {
	page, identity := s.pageContext(r)
	if !page.Configured {
		s.renderPage(w, r, http.StatusOK, page, "Community", templates.NotConfiguredCard())
		return
	}

	data := templates.CommunityData{
		SignedIn:  page.SignedIn,
		FormError: r.URL.Query().Get("error"),
	}

	posts, err := s.forum.Latest(r.Context(), identity.AccessToken)
	if err != nil {
		log.Printf("load wall: %v", err)
		data.PostsErr = true
	}
	data.Posts = posts

	if page.SignedIn {
		mine, err := s.tickets.ListMine(r.Context(), identity.AccessToken, identity.UserID)
		if err != nil {
			log.Printf("load own tickets: %v", err)
			data.TicketErr = true
		}
		data.Tickets = mine
	}

	s.renderPage(w, r, http.StatusOK, page, "Community", templates.Community(data))
}

// communityRedirect sends the browser back to the portal, optionally with a
// form error message. Post-redirect-get keeps refreshes from resubmitting.
func communityRedirect(w http.ResponseWriter, r *http.Request, formError string) {
	target := routepath.Community
	if formError != "" {
		target += "?error=" + url.QueryEscape(formError)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleWallPost(w http.ResponseWriter, r *http.Request) {
	_, identity, ok := s.requireMember(w, r)
	if !ok {
		return
	}
	content := r.FormValue("content")
	if err := s.forum.Create(r.Context(), identity.AccessToken, identity.UserID, content); err != nil {
		communityRedirect(w, r, wallPostErrorMessage(err))
		return
	}
	communityRedirect(w, r, "")
}

func wallPostErrorMessage(err error) string {
	switch {
	case errors.Is(err, forum.ErrEmptyContent):
		return "Write something before posting."
	case errors.Is(err, forum.ErrContentTooLong):
		return "Posts are limited to 500 characters."
	case errors.Is(err, forum.ErrDisallowedContent):
		return "Please keep the wall respectful."
	default:
		return "Your post could not be saved. Please try again."
	}
}

func (s *Server) handleTicketCreate(w http.ResponseWriter, r *http.Request) {
	_, identity, ok := s.requireMember(w, r)
	if !ok {
		return
	}
	typ := ticket.Type(r.FormValue("type"))
	subject := r.FormValue("subject")
	description := r.FormValue("description")
	if err := s.tickets.Create(r.Context(), identity.AccessToken, identity.UserID, typ, subject, description); err != nil {
		communityRedirect(w, r, ticketErrorMessage(err))
		return
	}
	communityRedirect(w, r, "")
}

func ticketErrorMessage(err error) string {
	switch {
	case errors.Is(err, ticket.ErrInvalidType):
		return "Choose whether this is a complaint or a request."
	case errors.Is(err, ticket.ErrEmptySubject), errors.Is(err, ticket.ErrEmptyDescription):
		return "Both a subject and a description are required."
	case errors.Is(err, ticket.ErrSubjectTooLong), errors.Is(err, ticket.ErrDescriptionTooLong):
		return "Your ticket is too long. Please shorten it."
	default:
		return "Your ticket could not be filed. Please try again."
	}
}

// handleTicketView shows one of the member's own tickets. Looking the ticket
// up through the member's own listing doubles as the ownership check.
func (s *Server) handleTicketView(w http.ResponseWriter, r *http.Request) {
	page, identity, ok := s.requireMember(w, r)
	if !ok {
		return
	}
	ticketID := r.PathValue("ticketID")
	mine, err := s.tickets.ListMine(r.Context(), identity.AccessToken, identity.UserID)
	if err != nil {
		log.Printf("load ticket %s: %v", ticketID, err)
		s.renderFailure(w, r, err)
		return
	}
	for _, tk := range mine {
		if tk.ID == ticketID {
			s.renderPage(w, r, http.StatusOK, page, tk.Subject, templates.TicketDetail(tk))
			return
		}
	}
	s.renderFailure(w, r, weberrors.E(weberrors.KindNotFound, "no such ticket"))
}
