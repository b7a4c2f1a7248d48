// Package templates renders the HTML pages for the chapter site.
package templates

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/ppc-youthlead/chapter-web/internal/platform/branding"
	"github.com/ppc-youthlead/chapter-web/internal/web/routepath"
)

// PageContext carries per-request state shared by every page.
type PageContext struct {
	// CurrentPath is the request path used to highlight the active nav link.
	CurrentPath string
	// SignedIn reports whether a member session resolved for this request.
	SignedIn bool
	// DisplayName is the signed-in member's display name.
	DisplayName string
	// IsAdmin reports whether the signed-in member holds the admin role.
	IsAdmin bool
	// Configured reports whether the backend connection is configured.
	Configured bool
}

// ComposePageTitle appends the brand suffix unless the title already carries it.
func ComposePageTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return branding.AppName
	}
	if strings.HasSuffix(title, "| "+branding.AppName) {
		return title
	}
	return title + " | " + branding.AppName
}

// markup adapts a string-building function into a templ component.
func markup(write func(b *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		write(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func esc(s string) string {
	return html.EscapeString(s)
}

// Layout wraps a page body with the document shell, navbar, and footer.
func Layout(page PageContext, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
		b.WriteString("<meta charset=\"utf-8\">\n")
		b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		b.WriteString("<title>" + esc(ComposePageTitle(title)) + "</title>\n")
		b.WriteString("<link rel=\"stylesheet\" href=\"/static/site.css\">\n")
		b.WriteString("</head>\n<body>\n")
		writeNavbar(&b, page)
		b.WriteString("<main class=\"container\">\n")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		var f strings.Builder
		f.WriteString("</main>\n<footer class=\"site-footer\">\n")
		f.WriteString("<p>" + esc(branding.AppName) + " &middot; " + esc(branding.ChapterTagline) + "</p>\n")
		f.WriteString("</footer>\n</body>\n</html>\n")
		_, err := io.WriteString(w, f.String())
		return err
	})
}

type navLink struct {
	label string
	path  string
}

func writeNavbar(b *strings.Builder, page PageContext) {
	links := []navLink{
		{label: "Home", path: routepath.Root},
		{label: "About", path: routepath.About},
		{label: "Leadership", path: routepath.Leadership},
		{label: "Events", path: routepath.Events},
		{label: "Membership", path: routepath.Membership},
	}
	if page.SignedIn {
		links = append(links, navLink{label: "Community", path: routepath.Community})
	}
	if page.IsAdmin {
		links = append(links, navLink{label: "Admin", path: routepath.Admin})
	}

	b.WriteString("<nav class=\"navbar\">\n")
	b.WriteString("<a class=\"brand\" href=\"" + routepath.Root + "\">" + esc(branding.AppName) + "</a>\n")
	b.WriteString("<ul>\n")
	for _, link := range links {
		class := ""
		if link.path == page.CurrentPath {
			class = " class=\"active\""
		}
		b.WriteString("<li><a" + class + " href=\"" + link.path + "\">" + esc(link.label) + "</a></li>\n")
	}
	b.WriteString("</ul>\n")
	if page.SignedIn {
		b.WriteString("<div class=\"nav-session\">\n")
		b.WriteString("<a href=\"" + routepath.Profile + "\">" + esc(page.DisplayName) + "</a>\n")
		b.WriteString("<form method=\"post\" action=\"" + routepath.AuthLogout + "\"><button type=\"submit\">Sign out</button></form>\n")
		b.WriteString("</div>\n")
	} else {
		b.WriteString("<div class=\"nav-session\"><a class=\"button\" href=\"" + routepath.Login + "\">Sign in</a></div>\n")
	}
	b.WriteString("</nav>\n")
}

// NotConfiguredCard explains that the site is running without a backend connection.
func NotConfiguredCard() templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString("<section class=\"card notice\">\n")
		b.WriteString("<h2>Community features unavailable</h2>\n")
		b.WriteString("<p>The site is not connected to its backend yet. Public pages still work, but sign-in, the Freedom Wall, and the Service Desk are disabled until the connection is configured.</p>\n")
		b.WriteString("</section>\n")
	})
}
