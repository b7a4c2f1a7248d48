package templates

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// ErrorPageTitle returns the browser title for error pages.
func ErrorPageTitle(statusCode int) string {
	if statusCode == http.StatusNotFound {
		return "Page not found"
	}
	return "Something went wrong"
}

// ErrorPage renders a member-facing error card for the given status.
func ErrorPage(statusCode int) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString("<section class=\"card notice\">\n")
		switch statusCode {
		case http.StatusNotFound:
			b.WriteString("<h1>Page not found</h1>\n")
			b.WriteString("<p>The page you are looking for does not exist or was moved.</p>\n")
		case http.StatusServiceUnavailable:
			b.WriteString("<h1>Temporarily unavailable</h1>\n")
			b.WriteString("<p>This part of the site is unavailable right now. Please try again later.</p>\n")
		default:
			b.WriteString("<h1>Something went wrong</h1>\n")
			b.WriteString("<p>An unexpected error occurred. Please try again.</p>\n")
		}
		b.WriteString("<p><a href=\"/\">Back to home</a></p>\n")
		b.WriteString("</section>\n")
	})
}
