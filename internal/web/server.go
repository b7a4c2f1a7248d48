// Package web hosts the chapter site: public pages, the member community
// portal, and the admin dashboard. All state lives in the external backend;
// this server renders pages and relays writes.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/ppc-youthlead/chapter-web/internal/backend"
	"github.com/ppc-youthlead/chapter-web/internal/event"
	"github.com/ppc-youthlead/chapter-web/internal/forum"
	"github.com/ppc-youthlead/chapter-web/internal/platform/timeouts"
	"github.com/ppc-youthlead/chapter-web/internal/profile"
	"github.com/ppc-youthlead/chapter-web/internal/session"
	"github.com/ppc-youthlead/chapter-web/internal/ticket"
	"github.com/ppc-youthlead/chapter-web/internal/web/routepath"
)

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr string
}

// Server hosts the chapter site HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	client     *backend.Client
	profiles   *profile.Service
	forum      *forum.Service
	tickets    *ticket.Service
	events     *event.Service
	resolver   *session.Resolver
	wall       *wallHub
}

// NewServer assembles the site server on top of the backend facade.
func NewServer(cfg Config, client *backend.Client) *Server {
	s := &Server{
		httpAddr: cfg.HTTPAddr,
		client:   client,
		profiles: profile.NewService(client),
		forum:    forum.NewService(client),
		tickets:  ticket.NewService(client),
		events:   event.NewService(client),
		resolver: session.NewResolver(client),
		wall:     newWallHub(),
	}
	s.httpServer = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	return s
}

// Handler builds the routed HTTP handler. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", s.handleHome)
	mux.HandleFunc(http.MethodGet+" "+routepath.About, s.handleAbout)
	mux.HandleFunc(http.MethodGet+" "+routepath.Leadership, s.handleLeadership)
	mux.HandleFunc(http.MethodGet+" "+routepath.Events, s.handleEvents)
	mux.HandleFunc(http.MethodGet+" "+routepath.Membership, s.handleMembership)
	mux.HandleFunc(http.MethodGet+" "+routepath.Login, s.handleLogin)
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, s.handleHealth)
	mux.HandleFunc(http.MethodGet+" /static/site.css", handleStylesheet)

	mux.HandleFunc(http.MethodPost+" "+routepath.AuthLogin, s.handleAuthLogin)
	mux.HandleFunc(http.MethodGet+" "+routepath.AuthCallback, s.handleAuthCallback)
	mux.HandleFunc(http.MethodPost+" "+routepath.AuthLogout, s.handleAuthLogout)

	mux.HandleFunc(http.MethodGet+" "+routepath.Community, s.handleCommunity)
	mux.HandleFunc(http.MethodPost+" "+routepath.CommunityPost, s.handleWallPost)
	mux.HandleFunc(http.MethodPost+" "+routepath.CommunityTicket, s.handleTicketCreate)
	mux.HandleFunc(http.MethodGet+" "+routepath.CommunityTicketView, s.handleTicketView)
	mux.Handle(http.MethodGet+" "+routepath.CommunityWallLive, s.wall.handler())

	mux.HandleFunc(http.MethodGet+" "+routepath.Profile, s.handleProfile)
	mux.HandleFunc(http.MethodPost+" "+routepath.Profile, s.handleProfileUpdate)

	mux.HandleFunc(http.MethodGet+" "+routepath.Admin, s.handleAdmin)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminRole, s.handleRoleUpdate)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminTicketState, s.handleTicketStatus)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminTicketReply, s.handleTicketReply)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminEventCreate, s.handleEventCreate)

	mux.HandleFunc("/", s.handleNotFound)

	return s.resolver.Middleware(mux)
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully. The live
// wall feed runs for the lifetime of ctx when the backend is configured.
func (s *Server) Run(ctx context.Context) error {
	if s.client.Configured() {
		go s.runWallFeed(ctx)
	} else {
		log.Printf("backend not configured; community features disabled")
	}

	serveErr := make(chan error, 1)
	log.Printf("chapter site listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
