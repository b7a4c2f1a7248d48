package web

import (
	"log"
	"net/http"

	"github.com/ppc-youthlead/chapter-web/internal/web/routepath"
	"github.com/ppc-youthlead/chapter-web/internal/web/templates"
)

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if !s.client.Configured() {
		page, _ := s.pageContext(r)
		s.renderPage(w, r, http.StatusOK, page, "My profile", templates.NotConfiguredCard())
		return
	}
	page, identity, ok := s.requireMember(w, r)
	if !ok {
		return
	}
	prof, err := s.profiles.ByUserID(r.Context(), identity.AccessToken, identity.UserID)
	if err != nil {
		log.Printf("load own profile: %v", err)
		s.renderFailure(w, r, err)
		return
	}
	saved := r.URL.Query().Get("saved") == "1"
	s.renderPage(w, r, http.StatusOK, page, "My profile", templates.ProfilePage(prof, saved))
}

func (s *Server) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	_, identity, ok := s.requireMember(w, r)
	if !ok {
		return
	}
	displayName := r.FormValue("display_name")
	avatarURL := r.FormValue("avatar_url")
	if err := s.profiles.UpdateOwn(r.Context(), identity.AccessToken, identity.UserID, displayName, avatarURL); err != nil {
		log.Printf("update own profile: %v", err)
		s.renderFailure(w, r, err)
		return
	}
	http.Redirect(w, r, routepath.Profile+"?saved=1", http.StatusSeeOther)
}
