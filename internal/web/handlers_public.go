package web

import (
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/a-h/templ"

	"github.com/ppc-youthlead/chapter-web/internal/session"
	"github.com/ppc-youthlead/chapter-web/internal/web/platform/weberrors"
	"github.com/ppc-youthlead/chapter-web/internal/web/routepath"
	"github.com/ppc-youthlead/chapter-web/internal/web/templates"
)

// pageContext assembles the layout state for the current request. The profile
// lookup is best effort: a failed lookup still renders the page with the
// identity's email as the display name.
func (s *Server) pageContext(r *http.Request) (templates.PageContext, session.Identity) {
	page := templates.PageContext{
		CurrentPath: r.URL.Path,
		Configured:  s.client.Configured(),
	}
	identity, ok := session.FromContext(r.Context())
	if !ok {
		return page, session.Identity{}
	}
	page.SignedIn = true
	page.DisplayName = identity.Email
	prof, err := s.profiles.ByUserID(r.Context(), identity.AccessToken, identity.UserID)
	if err == nil {
		page.DisplayName = prof.Name()
		page.IsAdmin = prof.IsAdmin()
	}
	return page, identity
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, page templates.PageContext, title string, body templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.Layout(page, title, body).Render(r.Context(), w); err != nil {
		log.Printf("render %s: %v", r.URL.Path, err)
	}
}

func (s *Server) renderErrorPage(w http.ResponseWriter, r *http.Request, status int) {
	page, _ := s.pageContext(r)
	s.renderPage(w, r, status, page, templates.ErrorPageTitle(status), templates.ErrorPage(status))
}

// renderFailure maps the error through the typed kinds and backend sentinels
// to the status the error page answers with.
func (s *Server) renderFailure(w http.ResponseWriter, r *http.Request, err error) {
	s.renderErrorPage(w, r, weberrors.HTTPStatus(err))
}

// requireMember redirects anonymous requests to the sign-in page, carrying
// the original path so the callback can land the member back where they were.
func (s *Server) requireMember(w http.ResponseWriter, r *http.Request) (templates.PageContext, session.Identity, bool) {
	page, identity := s.pageContext(r)
	if !page.SignedIn {
		target := routepath.Login + "?next=" + url.QueryEscape(r.URL.Path)
		http.Redirect(w, r, target, http.StatusFound)
		return page, identity, false
	}
	return page, identity, true
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	page, _ := s.pageContext(r)
	s.renderPage(w, r, http.StatusOK, page, "Home", templates.Home())
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	page, _ := s.pageContext(r)
	s.renderPage(w, r, http.StatusOK, page, "About", templates.About())
}

func (s *Server) handleLeadership(w http.ResponseWriter, r *http.Request) {
	page, _ := s.pageContext(r)
	s.renderPage(w, r, http.StatusOK, page, "Leadership", templates.Leadership(templates.Officers()))
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	page, identity := s.pageContext(r)
	if !page.Configured {
		s.renderPage(w, r, http.StatusOK, page, "Events", templates.NotConfiguredCard())
		return
	}
	events, err := s.events.List(r.Context(), identity.AccessToken)
	if err != nil {
		log.Printf("list events: %v", err)
	}
	s.renderPage(w, r, http.StatusOK, page, "Events", templates.EventsPage(events, err != nil))
}

func (s *Server) handleMembership(w http.ResponseWriter, r *http.Request) {
	page, _ := s.pageContext(r)
	s.renderPage(w, r, http.StatusOK, page, "Membership", templates.Membership())
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	page, _ := s.pageContext(r)
	if page.SignedIn {
		http.Redirect(w, r, routepath.Community, http.StatusFound)
		return
	}
	query := r.URL.Query()
	message := templates.LoginErrorMessage(query.Get("error"))
	s.renderPage(w, r, http.StatusOK, page, "Sign in",
		templates.LoginPage(message, query.Get("details"), !page.Configured, query.Get("next")))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderErrorPage(w, r, http.StatusNotFound)
}
