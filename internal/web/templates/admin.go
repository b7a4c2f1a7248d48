package templates

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/ppc-youthlead/chapter-web/internal/profile"
	"github.com/ppc-youthlead/chapter-web/internal/ticket"
	"github.com/ppc-youthlead/chapter-web/internal/web/routepath"
)

// AdminData feeds the admin dashboard.
type AdminData struct {
	// ViewerUserID hides the role toggle on the viewer's own row.
	ViewerUserID string
	Members      []profile.Profile
	MembersErr   bool
	Tickets      []ticket.AuthoredTicket
	TicketsErr   bool
	FormError    string
}

// MemberCount counts loaded member profiles.
func (d AdminData) MemberCount() int { return len(d.Members) }

// AdminCount counts profiles holding the admin role.
func (d AdminData) AdminCount() int {
	count := 0
	for _, member := range d.Members {
		if member.IsAdmin() {
			count++
		}
	}
	return count
}

// UserCount counts profiles holding the regular member role.
func (d AdminData) UserCount() int {
	return d.MemberCount() - d.AdminCount()
}

func (d AdminData) countByStatus(status ticket.Status) int {
	count := 0
	for _, tk := range d.Tickets {
		if tk.Status == status {
			count++
		}
	}
	return count
}

// PendingCount counts tickets still waiting for an officer.
func (d AdminData) PendingCount() int { return d.countByStatus(ticket.StatusPending) }

// InProgressCount counts tickets being worked.
func (d AdminData) InProgressCount() int { return d.countByStatus(ticket.StatusInProgress) }

// ResolvedCount counts closed-out tickets.
func (d AdminData) ResolvedCount() int { return d.countByStatus(ticket.StatusResolved) }

// AccessDenied renders the card shown to signed-in non-admins.
func AccessDenied() templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString("<section class=\"card notice\">\n")
		b.WriteString("<h1>Admins only</h1>\n")
		b.WriteString("<p>This dashboard is reserved for chapter officers. If you believe you should have access, ask an officer to grant you the admin role.</p>\n")
		b.WriteString("<p><a href=\"" + routepath.Community + "\">Back to community</a></p>\n")
		b.WriteString("</section>\n")
	})
}

// AdminDashboard renders the officer dashboard.
func AdminDashboard(data AdminData) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString("<section class=\"prose\">\n<h1>Admin dashboard</h1>\n</section>\n")
		if data.FormError != "" {
			b.WriteString("<p class=\"error\">" + esc(data.FormError) + "</p>\n")
		}
		writeAdminStats(b, data)
		writeMemberTable(b, data)
		writeTicketTable(b, data)
		writeEventForm(b)
	})
}

func writeAdminStats(b *strings.Builder, data AdminData) {
	b.WriteString("<section class=\"stats\">\n")
	b.WriteString(fmt.Sprintf("<div class=\"stat\"><strong>%d</strong><span>Admins</span></div>\n", data.AdminCount()))
	b.WriteString(fmt.Sprintf("<div class=\"stat\"><strong>%d</strong><span>Members</span></div>\n", data.UserCount()))
	b.WriteString(fmt.Sprintf("<div class=\"stat\"><strong>%d</strong><span>Pending</span></div>\n", data.PendingCount()))
	b.WriteString(fmt.Sprintf("<div class=\"stat\"><strong>%d</strong><span>In progress</span></div>\n", data.InProgressCount()))
	b.WriteString(fmt.Sprintf("<div class=\"stat\"><strong>%d</strong><span>Resolved</span></div>\n", data.ResolvedCount()))
	b.WriteString("</section>\n")
}

func writeMemberTable(b *strings.Builder, data AdminData) {
	b.WriteString("<section class=\"panel\">\n<h2>Members</h2>\n")
	if data.MembersErr {
		b.WriteString("<p class=\"notice\">Members could not be loaded right now.</p>\n</section>\n")
		return
	}
	b.WriteString("<table>\n<thead><tr><th>Name</th><th>Role</th><th></th></tr></thead>\n<tbody>\n")
	for _, member := range data.Members {
		b.WriteString("<tr>\n")
		b.WriteString("<td>" + esc(member.Name()) + "</td>\n")
		b.WriteString("<td><span class=\"badge " + esc(string(member.Role)) + "\">" + esc(string(member.Role)) + "</span></td>\n")
		b.WriteString("<td>")
		if member.UserID != data.ViewerUserID {
			writeRoleToggle(b, member)
		}
		b.WriteString("</td>\n</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n</section>\n")
}

func writeRoleToggle(b *strings.Builder, member profile.Profile) {
	label := "Make admin"
	if member.IsAdmin() {
		label = "Make member"
	}
	b.WriteString("<form method=\"post\" action=\"" + routepath.AdminRole + "\">\n")
	b.WriteString("<input type=\"hidden\" name=\"user_id\" value=\"" + esc(member.UserID) + "\">\n")
	b.WriteString("<input type=\"hidden\" name=\"role\" value=\"" + esc(string(profile.Toggled(member.Role))) + "\">\n")
	b.WriteString("<button type=\"submit\" class=\"button small\">" + label + "</button>\n")
	b.WriteString("</form>")
}

func writeTicketTable(b *strings.Builder, data AdminData) {
	b.WriteString("<section class=\"panel\">\n<h2>Service Desk tickets</h2>\n")
	if data.TicketsErr {
		b.WriteString("<p class=\"notice\">Tickets could not be loaded right now.</p>\n</section>\n")
		return
	}
	if len(data.Tickets) == 0 {
		b.WriteString("<p class=\"muted\">No tickets filed.</p>\n</section>\n")
		return
	}
	b.WriteString("<table>\n<thead><tr><th>Subject</th><th>From</th><th>Type</th><th>Status</th><th>Reply</th></tr></thead>\n<tbody>\n")
	for _, tk := range data.Tickets {
		writeTicketRow(b, tk)
	}
	b.WriteString("</tbody>\n</table>\n</section>\n")
}

func writeTicketRow(b *strings.Builder, tk ticket.AuthoredTicket) {
	b.WriteString("<tr>\n")
	b.WriteString("<td><strong>" + esc(tk.Subject) + "</strong><br><span class=\"muted\">" + esc(tk.Description) + "</span></td>\n")
	b.WriteString("<td>" + esc(tk.AuthorName()) + "</td>\n")
	b.WriteString("<td>" + esc(typeLabel(tk.Type)) + "</td>\n")
	b.WriteString("<td>\n")
	b.WriteString("<form method=\"post\" action=\"" + routepath.AdminTicketState + "\">\n")
	b.WriteString("<input type=\"hidden\" name=\"ticket_id\" value=\"" + esc(tk.ID) + "\">\n")
	b.WriteString("<select name=\"status\">\n")
	for _, status := range []ticket.Status{ticket.StatusPending, ticket.StatusInProgress, ticket.StatusResolved} {
		selected := ""
		if status == tk.Status {
			selected = " selected"
		}
		b.WriteString("<option value=\"" + string(status) + "\"" + selected + ">" + esc(statusLabel(status)) + "</option>\n")
	}
	b.WriteString("</select>\n")
	b.WriteString("<button type=\"submit\" class=\"button small\">Update</button>\n")
	b.WriteString("</form>\n")
	b.WriteString("</td>\n")
	b.WriteString("<td>\n")
	if tk.AdminReply != "" {
		b.WriteString("<p class=\"muted\">" + esc(tk.AdminReply) + "</p>\n")
	}
	b.WriteString("<form method=\"post\" action=\"" + routepath.AdminTicketReply + "\">\n")
	b.WriteString("<input type=\"hidden\" name=\"ticket_id\" value=\"" + esc(tk.ID) + "\">\n")
	b.WriteString("<textarea name=\"reply\" rows=\"2\" placeholder=\"Write a reply\"></textarea>\n")
	b.WriteString("<button type=\"submit\" class=\"button small\">Send reply</button>\n")
	b.WriteString("</form>\n")
	b.WriteString("</td>\n</tr>\n")
}

func writeEventForm(b *strings.Builder) {
	b.WriteString("<section class=\"panel\">\n<h2>Post an event</h2>\n")
	b.WriteString("<form method=\"post\" action=\"" + routepath.AdminEventCreate + "\" enctype=\"multipart/form-data\" class=\"event-form\">\n")
	b.WriteString("<label>Title\n<input type=\"text\" name=\"title\" required>\n</label>\n")
	b.WriteString("<label>Description\n<textarea name=\"description\" rows=\"3\" required></textarea>\n</label>\n")
	b.WriteString("<label>Status\n<select name=\"status\">\n")
	b.WriteString("<option value=\"upcoming\">Upcoming</option>\n")
	b.WriteString("<option value=\"completed\">Completed</option>\n")
	b.WriteString("</select>\n</label>\n")
	b.WriteString("<label>Date\n<input type=\"text\" name=\"date\" placeholder=\"Dec 1, 2025\">\n</label>\n")
	b.WriteString("<label>Time\n<input type=\"text\" name=\"time\" placeholder=\"7:00 AM\">\n</label>\n")
	b.WriteString("<label>Location\n<input type=\"text\" name=\"location\">\n</label>\n")
	b.WriteString("<label>Partners (comma separated)\n<input type=\"text\" name=\"partners\" placeholder=\"City ENRO, Barangay Council\">\n</label>\n")
	b.WriteString("<label>Images (JPEG, PNG, WebP, or GIF up to 5MB each)\n<input type=\"file\" name=\"images\" accept=\"image/jpeg,image/png,image/webp,image/gif\" multiple>\n</label>\n")
	b.WriteString("<button type=\"submit\" class=\"button primary\">Publish event</button>\n")
	b.WriteString("</form>\n</section>\n")
}
