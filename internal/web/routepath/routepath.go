// Package routepath stores canonical HTTP paths for the chapter site.
package routepath

const (
	Root       = "/"
	About      = "/about"
	Leadership = "/leadership"
	Events     = "/events"
	Membership = "/membership"
	Login      = "/login"
	Health     = "/up"

	AuthLogin    = "/auth/login"
	AuthCallback = "/auth/callback"
	AuthLogout   = "/auth/logout"

	Community           = "/community"
	CommunityPost       = "/community/posts"
	CommunityTicket     = "/community/tickets"
	CommunityTicketView = "/community/tickets/{ticketID}"
	CommunityWallLive   = "/community/wall/live"

	Profile = "/profile"

	Admin            = "/admin"
	AdminRole        = "/admin/roles"
	AdminTicketState = "/admin/tickets/status"
	AdminTicketReply = "/admin/tickets/reply"
	AdminEventCreate = "/admin/events"
)

// TicketPath returns the owner-facing detail path for one ticket.
func TicketPath(ticketID string) string {
	return CommunityTicket + "/" + ticketID
}
