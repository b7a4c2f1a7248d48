package templates

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/ppc-youthlead/chapter-web/internal/event"
	"github.com/ppc-youthlead/chapter-web/internal/platform/branding"
	"github.com/ppc-youthlead/chapter-web/internal/web/routepath"
)

// Home renders the landing page.
func Home() templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString("<section class=\"hero\">\n")
		b.WriteString("<h1>" + esc(branding.AppName) + "</h1>\n")
		b.WriteString("<p class=\"tagline\">" + esc(branding.ChapterTagline) + "</p>\n")
		b.WriteString("<div class=\"hero-actions\">\n")
		b.WriteString("<a class=\"button primary\" href=\"" + routepath.Membership + "\">Become a member</a>\n")
		b.WriteString("<a class=\"button\" href=\"" + routepath.Events + "\">See our events</a>\n")
		b.WriteString("</div>\n</section>\n")
		b.WriteString("<section class=\"card-grid\">\n")
		b.WriteString("<article class=\"card\"><h2>Lead</h2><p>Officer roles, committee work, and project ownership for young leaders in Puerto Princesa.</p></article>\n")
		b.WriteString("<article class=\"card\"><h2>Serve</h2><p>Coastal cleanups, tree planting, tutoring drives, and relief operations across the city.</p></article>\n")
		b.WriteString("<article class=\"card\"><h2>Grow</h2><p>Workshops and mentorship that turn volunteers into organizers.</p></article>\n")
		b.WriteString("</section>\n")
	})
}

// About renders the mission and vision page.
func About() templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString("<section class=\"prose\">\n")
		b.WriteString("<h1>About the chapter</h1>\n")
		b.WriteString("<p>" + esc(branding.AppName) + " is a youth-led nonprofit chapter organizing students and young professionals around community service and civic leadership in Puerto Princesa City.</p>\n")
		b.WriteString("<h2>Mission</h2>\n")
		b.WriteString("<p>To develop principled young leaders through hands-on service projects, and to give every member a real role in planning and running them.</p>\n")
		b.WriteString("<h2>Vision</h2>\n")
		b.WriteString("<p>A city where young people are trusted partners in community development, not just volunteers on call.</p>\n")
		b.WriteString("<h2>What we do</h2>\n")
		b.WriteString("<ul>\n")
		b.WriteString("<li>Environmental drives with city offices and barangay councils</li>\n")
		b.WriteString("<li>Education support for public elementary schools</li>\n")
		b.WriteString("<li>Leadership training camps each school break</li>\n")
		b.WriteString("</ul>\n")
		b.WriteString("</section>\n")
	})
}

// Officer is one entry on the leadership roster.
type Officer struct {
	Name     string
	Position string
}

// Officers returns the current chapter leadership roster.
func Officers() []Officer {
	return []Officer{
		{Name: "Andrea Villanueva", Position: "Chapter President"},
		{Name: "Marco Salazar", Position: "VP for Internal Affairs"},
		{Name: "Bea Ramirez", Position: "VP for External Affairs"},
		{Name: "Joshua Tan", Position: "Secretary"},
		{Name: "Kristine Abad", Position: "Treasurer"},
		{Name: "Paolo Mendoza", Position: "Auditor"},
		{Name: "Nica Fernandez", Position: "Public Information Officer"},
	}
}

// Leadership renders the officer roster page.
func Leadership(officers []Officer) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString("<section class=\"prose\">\n<h1>Leadership</h1>\n")
		b.WriteString("<p>The chapter is run by elected officers serving a one-year term.</p>\n")
		b.WriteString("</section>\n<section class=\"card-grid\">\n")
		for _, officer := range officers {
			b.WriteString("<article class=\"card officer\">\n")
			b.WriteString("<h2>" + esc(officer.Name) + "</h2>\n")
			b.WriteString("<p>" + esc(officer.Position) + "</p>\n")
			b.WriteString("</article>\n")
		}
		b.WriteString("</section>\n")
	})
}

// EventsPage renders the public events listing.
func EventsPage(events []event.Event, loadErr bool) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString("<section class=\"prose\">\n<h1>Events</h1>\n</section>\n")
		if loadErr {
			b.WriteString("<p class=\"notice\">Events are unavailable right now. Please check back later.</p>\n")
			return
		}
		if len(events) == 0 {
			b.WriteString("<p class=\"muted\">No events posted yet.</p>\n")
			return
		}
		b.WriteString("<section class=\"event-list\">\n")
		for _, evt := range events {
			writeEventCard(b, evt)
		}
		b.WriteString("</section>\n")
	})
}

func writeEventCard(b *strings.Builder, evt event.Event) {
	b.WriteString("<article class=\"card event\">\n")
	b.WriteString("<header>\n<h2>" + esc(evt.Title) + "</h2>\n")
	b.WriteString("<span class=\"badge " + esc(string(evt.Status)) + "\">" + esc(string(evt.Status)) + "</span>\n</header>\n")
	if evt.Date != "" || evt.Time != "" || evt.Location != "" {
		b.WriteString("<p class=\"meta\">")
		parts := make([]string, 0, 3)
		if evt.Date != "" {
			parts = append(parts, esc(evt.Date))
		}
		if evt.Time != "" {
			parts = append(parts, esc(evt.Time))
		}
		if evt.Location != "" {
			parts = append(parts, esc(evt.Location))
		}
		b.WriteString(strings.Join(parts, " &middot; "))
		b.WriteString("</p>\n")
	}
	b.WriteString("<p>" + esc(evt.Description) + "</p>\n")
	if len(evt.Partners) > 0 {
		b.WriteString("<p class=\"partners\">With " + esc(strings.Join(evt.Partners, ", ")) + "</p>\n")
	}
	if len(evt.Images) > 0 {
		b.WriteString("<div class=\"event-images\">\n")
		for _, url := range evt.Images {
			b.WriteString("<img src=\"" + esc(url) + "\" alt=\"" + esc(evt.Title) + "\" loading=\"lazy\">\n")
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("</article>\n")
}

// Membership renders the how-to-join page.
func Membership() templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString("<section class=\"prose\">\n<h1>Membership</h1>\n")
		b.WriteString("<p>Membership is open to students and young professionals aged 15 to 30 based in Puerto Princesa.</p>\n")
		b.WriteString("<h2>How to join</h2>\n")
		b.WriteString("<ol>\n")
		b.WriteString("<li>Sign in with your Google account to create a member profile.</li>\n")
		b.WriteString("<li>Introduce yourself on the Freedom Wall.</li>\n")
		b.WriteString("<li>Show up to an event. Attendance at two events makes you a regular member.</li>\n")
		b.WriteString("</ol>\n")
		b.WriteString("<a class=\"button primary\" href=\"" + routepath.Login + "\">Sign in to get started</a>\n")
		b.WriteString("</section>\n")
	})
}

// LoginPage renders the sign-in page. errorMessage, when non-empty, is shown
// above the sign-in button with details as a secondary line; notConfigured
// replaces the button with a notice. next is the local path to land on after
// a successful sign-in.
func LoginPage(errorMessage, details string, notConfigured bool, next string) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString("<section class=\"card login\">\n")
		b.WriteString("<h1>Member sign in</h1>\n")
		if errorMessage != "" {
			b.WriteString("<p class=\"error\">" + esc(errorMessage) + "</p>\n")
			if details != "" {
				b.WriteString("<p class=\"muted\">" + esc(details) + "</p>\n")
			}
		}
		if notConfigured {
			b.WriteString("<p class=\"notice\">Sign-in is unavailable because the site is not connected to its backend.</p>\n")
		} else {
			b.WriteString("<form method=\"post\" action=\"" + routepath.AuthLogin + "\">\n")
			if next != "" {
				b.WriteString("<input type=\"hidden\" name=\"next\" value=\"" + esc(next) + "\">\n")
			}
			b.WriteString("<button type=\"submit\" class=\"button primary\">Continue with Google</button>\n")
			b.WriteString("</form>\n")
		}
		b.WriteString("<p class=\"muted\">Signing in creates your member profile if you do not have one yet.</p>\n")
		b.WriteString("</section>\n")
	})
}

// LoginErrorMessage maps an auth callback error code to member-facing copy.
func LoginErrorMessage(code string) string {
	switch code {
	case "auth_failed":
		return "Sign-in failed. Please try again."
	case "no_session":
		return "The sign-in provider did not return a session. Please try again."
	case "no_user":
		return "We could not load your account details. Please try again."
	case "":
		return ""
	default:
		return "Something went wrong during sign-in. Please try again."
	}
}
