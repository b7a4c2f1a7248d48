package templates

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/ppc-youthlead/chapter-web/internal/forum"
	"github.com/ppc-youthlead/chapter-web/internal/ticket"
	"github.com/ppc-youthlead/chapter-web/internal/web/routepath"
)

// CommunityData feeds the community portal page.
type CommunityData struct {
	// SignedIn gates the wall form and the Service Desk panel. Anonymous
	// visitors can read the wall but not write to it.
	SignedIn  bool
	Posts     []forum.AuthoredPost
	PostsErr  bool
	Tickets   []ticket.Ticket
	TicketErr bool
	// FormError carries a validation message from a rejected wall post or
	// ticket submission, surfaced after the redirect.
	FormError string
}

// Community renders the member portal with the Freedom Wall and Service Desk.
func Community(data CommunityData) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString("<section class=\"prose\">\n<h1>Community</h1>\n</section>\n")
		if data.FormError != "" {
			b.WriteString("<p class=\"error\">" + esc(data.FormError) + "</p>\n")
		}
		b.WriteString("<div class=\"community-grid\">\n")
		writeFreedomWall(b, data)
		if data.SignedIn {
			writeServiceDesk(b, data)
		}
		b.WriteString("</div>\n")
		b.WriteString(liveWallScript)
	})
}

func writeFreedomWall(b *strings.Builder, data CommunityData) {
	b.WriteString("<section class=\"panel\" id=\"freedom-wall\">\n")
	b.WriteString("<h2>Freedom Wall</h2>\n")
	if data.SignedIn {
		b.WriteString("<form method=\"post\" action=\"" + routepath.CommunityPost + "\" class=\"wall-form\">\n")
		b.WriteString(fmt.Sprintf("<textarea name=\"content\" maxlength=\"%d\" rows=\"3\" placeholder=\"Share something with the chapter\" required></textarea>\n", forum.MaxContentLength))
		b.WriteString("<button type=\"submit\" class=\"button primary\">Post</button>\n")
		b.WriteString("</form>\n")
	} else {
		b.WriteString("<p class=\"muted\"><a href=\"" + routepath.Login + "\">Sign in</a> to post on the wall.</p>\n")
	}
	if data.PostsErr {
		b.WriteString("<p class=\"notice\">The wall could not be loaded right now.</p>\n")
	} else if len(data.Posts) == 0 {
		b.WriteString("<p class=\"muted\">No posts yet. Start the conversation!</p>\n")
	}
	b.WriteString("<ul class=\"wall\" id=\"wall-posts\">\n")
	for _, post := range data.Posts {
		writeWallPost(b, post)
	}
	b.WriteString("</ul>\n")
	b.WriteString("</section>\n")
}

func writeWallPost(b *strings.Builder, post forum.AuthoredPost) {
	b.WriteString("<li class=\"wall-post\">\n")
	b.WriteString("<span class=\"author\">" + esc(post.AuthorName()) + "</span>\n")
	b.WriteString("<p>" + esc(post.Content) + "</p>\n")
	if post.CreatedAt != "" {
		b.WriteString("<time datetime=\"" + esc(post.CreatedAt) + "\">" + esc(post.CreatedAt) + "</time>\n")
	}
	b.WriteString("</li>\n")
}

func writeServiceDesk(b *strings.Builder, data CommunityData) {
	b.WriteString("<section class=\"panel\" id=\"service-desk\">\n")
	b.WriteString("<h2>Service Desk</h2>\n")
	b.WriteString("<p class=\"muted\">File a complaint or request to the officers. Only you and the admins can see it.</p>\n")
	b.WriteString("<form method=\"post\" action=\"" + routepath.CommunityTicket + "\" class=\"ticket-form\">\n")
	b.WriteString("<label>Type\n<select name=\"type\">\n")
	b.WriteString("<option value=\"" + string(ticket.TypeComplaint) + "\">Complaint</option>\n")
	b.WriteString("<option value=\"" + string(ticket.TypeRequest) + "\">Request</option>\n")
	b.WriteString("</select>\n</label>\n")
	b.WriteString(fmt.Sprintf("<label>Subject\n<input type=\"text\" name=\"subject\" maxlength=\"%d\" required>\n</label>\n", ticket.MaxSubjectLength))
	b.WriteString(fmt.Sprintf("<label>Description\n<textarea name=\"description\" maxlength=\"%d\" rows=\"4\" required></textarea>\n</label>\n", ticket.MaxDescriptionLength))
	b.WriteString("<button type=\"submit\" class=\"button primary\">Submit ticket</button>\n")
	b.WriteString("</form>\n")
	b.WriteString("<h3>My tickets</h3>\n")
	if data.TicketErr {
		b.WriteString("<p class=\"notice\">Your tickets could not be loaded right now.</p>\n")
	} else if len(data.Tickets) == 0 {
		b.WriteString("<p class=\"muted\">You have not filed any tickets.</p>\n")
	} else {
		b.WriteString("<ul class=\"ticket-list\">\n")
		for _, tk := range data.Tickets {
			b.WriteString("<li>\n")
			b.WriteString("<a href=\"" + routepath.TicketPath(tk.ID) + "\">" + esc(tk.Subject) + "</a>\n")
			b.WriteString("<span class=\"badge " + esc(string(tk.Status)) + "\">" + esc(statusLabel(tk.Status)) + "</span>\n")
			b.WriteString("</li>\n")
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</section>\n")
}

// statusLabel renders a ticket status for display.
func statusLabel(status ticket.Status) string {
	switch status {
	case ticket.StatusPending:
		return "Pending"
	case ticket.StatusInProgress:
		return "In progress"
	case ticket.StatusResolved:
		return "Resolved"
	default:
		return string(status)
	}
}

// TicketDetail renders the owner-facing view of one ticket.
func TicketDetail(tk ticket.Ticket) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString("<section class=\"card ticket-detail\">\n")
		b.WriteString("<p><a href=\"" + routepath.Community + "\">&larr; Back to community</a></p>\n")
		b.WriteString("<h1>" + esc(tk.Subject) + "</h1>\n")
		b.WriteString("<p class=\"meta\">" + esc(typeLabel(tk.Type)) + " &middot; <span class=\"badge " + esc(string(tk.Status)) + "\">" + esc(statusLabel(tk.Status)) + "</span></p>\n")
		b.WriteString("<p>" + esc(tk.Description) + "</p>\n")
		if tk.ShowReply() {
			b.WriteString("<div class=\"admin-reply\">\n")
			b.WriteString("<h2>Officer reply</h2>\n")
			b.WriteString("<p>" + esc(tk.AdminReply) + "</p>\n")
			if tk.AdminReplyAt != "" {
				b.WriteString("<time datetime=\"" + esc(tk.AdminReplyAt) + "\">" + esc(tk.AdminReplyAt) + "</time>\n")
			}
			b.WriteString("</div>\n")
		}
		b.WriteString("</section>\n")
	})
}

func typeLabel(typ ticket.Type) string {
	switch typ {
	case ticket.TypeComplaint:
		return "Complaint"
	case ticket.TypeRequest:
		return "Request"
	default:
		return string(typ)
	}
}

// liveWallScript subscribes the wall to the server's live feed and prepends
// new posts as they arrive.
const liveWallScript = `<script>
(function () {
	var wall = document.getElementById("wall-posts");
	if (!wall || !window.WebSocket) {
		return;
	}
	var scheme = location.protocol === "https:" ? "wss://" : "ws://";
	var socket = new WebSocket(scheme + location.host + "/community/wall/live");
	socket.onmessage = function (message) {
		var post;
		try {
			post = JSON.parse(message.data);
		} catch (err) {
			return;
		}
		var item = document.createElement("li");
		item.className = "wall-post";
		var author = document.createElement("span");
		author.className = "author";
		author.textContent = post.author || "Anonymous";
		var body = document.createElement("p");
		body.textContent = post.content || "";
		item.appendChild(author);
		item.appendChild(body);
		wall.insertBefore(item, wall.firstChild);
	};
})();
</script>
`
