package web

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/ppc-youthlead/chapter-web/internal/event"
	"github.com/ppc-youthlead/chapter-web/internal/profile"
	"github.com/ppc-youthlead/chapter-web/internal/session"
	"github.com/ppc-youthlead/chapter-web/internal/ticket"
	"github.com/ppc-youthlead/chapter-web/internal/web/routepath"
	"github.com/ppc-youthlead/chapter-web/internal/web/templates"
)

// maxEventFormMemory bounds the in-memory portion of the multipart parse;
// larger image parts spill to temp files.
const maxEventFormMemory = 8 << 20

// requireAdmin gates the dashboard. Anonymous visitors go to sign-in;
// signed-in non-admins get the access denied card.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) (templates.PageContext, session.Identity, bool) {
	page, identity, ok := s.requireMember(w, r)
	if !ok {
		return page, identity, false
	}
	if !page.IsAdmin {
		s.renderPage(w, r, http.StatusForbidden, page, "Admins only", templates.AccessDenied())
		return page, identity, false
	}
	return page, identity, true
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	if !s.client.Configured() {
		page, _ := s.pageContext(r)
		s.renderPage(w, r, http.StatusOK, page, "Admin dashboard", templates.NotConfiguredCard())
		return
	}
	page, identity, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}

	data := templates.AdminData{
		ViewerUserID: identity.UserID,
		FormError:    r.URL.Query().Get("error"),
	}

	members, err := s.profiles.List(r.Context(), identity.AccessToken)
	if err != nil {
		log.Printf("list members: %v", err)
		data.MembersErr = true
	}
	data.Members = members

	tickets, err := s.tickets.ListAll(r.Context(), identity.AccessToken)
	if err != nil {
		log.Printf("list tickets: %v", err)
		data.TicketsErr = true
	}
	data.Tickets = tickets

	s.renderPage(w, r, http.StatusOK, page, "Admin dashboard", templates.AdminDashboard(data))
}

func adminRedirect(w http.ResponseWriter, r *http.Request, formError string) {
	target := routepath.Admin
	if formError != "" {
		target += "?error=" + url.QueryEscape(formError)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleRoleUpdate(w http.ResponseWriter, r *http.Request) {
	_, identity, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	targetUserID := r.FormValue("user_id")
	role := profile.Role(r.FormValue("role"))
	if targetUserID == "" || (role != profile.RoleAdmin && role != profile.RoleUser) {
		adminRedirect(w, r, "Invalid role change request.")
		return
	}
	if targetUserID == identity.UserID {
		adminRedirect(w, r, "You cannot change your own role.")
		return
	}
	if err := s.profiles.SetRole(r.Context(), identity.AccessToken, targetUserID, role); err != nil {
		log.Printf("set role for %s: %v", targetUserID, err)
		adminRedirect(w, r, "The role change could not be saved.")
		return
	}
	adminRedirect(w, r, "")
}

func (s *Server) handleTicketStatus(w http.ResponseWriter, r *http.Request) {
	_, identity, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	ticketID := r.FormValue("ticket_id")
	status := ticket.Status(r.FormValue("status"))
	if err := s.tickets.UpdateStatus(r.Context(), identity.AccessToken, ticketID, status); err != nil {
		if errors.Is(err, ticket.ErrInvalidStatus) {
			adminRedirect(w, r, "Unknown ticket status.")
			return
		}
		log.Printf("update ticket %s status: %v", ticketID, err)
		adminRedirect(w, r, "The status change could not be saved.")
		return
	}
	adminRedirect(w, r, "")
}

func (s *Server) handleTicketReply(w http.ResponseWriter, r *http.Request) {
	_, identity, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	ticketID := r.FormValue("ticket_id")
	reply := r.FormValue("reply")
	if err := s.tickets.Reply(r.Context(), identity.AccessToken, ticketID, reply, identity.UserID); err != nil {
		if errors.Is(err, ticket.ErrEmptyReply) {
			adminRedirect(w, r, "Write a reply before sending.")
			return
		}
		log.Printf("reply to ticket %s: %v", ticketID, err)
		adminRedirect(w, r, "The reply could not be saved.")
		return
	}
	adminRedirect(w, r, "")
}

func (s *Server) handleEventCreate(w http.ResponseWriter, r *http.Request) {
	_, identity, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxEventFormMemory); err != nil {
		adminRedirect(w, r, "The event form could not be read.")
		return
	}

	draft := event.Draft{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Status:      event.Status(r.FormValue("status")),
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
		Location:    r.FormValue("location"),
		Partners:    event.ParsePartners(r.FormValue("partners")),
	}

	var images []event.Image
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			file, err := header.Open()
			if err != nil {
				adminRedirect(w, r, "An uploaded image could not be read.")
				return
			}
			defer file.Close()
			images = append(images, event.Image{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
				Data:        file,
			})
		}
	}

	if err := s.events.Create(r.Context(), identity.AccessToken, identity.UserID, draft, images); err != nil {
		adminRedirect(w, r, eventErrorMessage(err))
		return
	}
	adminRedirect(w, r, "")
}

func eventErrorMessage(err error) string {
	switch {
	case errors.Is(err, event.ErrEmptyTitle), errors.Is(err, event.ErrEmptyDescription):
		return "Events need both a title and a description."
	case errors.Is(err, event.ErrInvalidStatus):
		return "Unknown event status."
	case errors.Is(err, event.ErrImageType):
		return "Only JPEG, PNG, WebP, and GIF images are accepted."
	case errors.Is(err, event.ErrImageTooLarge):
		return "Images are limited to 5MB each."
	default:
		return "The event could not be published. Please try again."
	}
}
