package templates

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/ppc-youthlead/chapter-web/internal/profile"
	"github.com/ppc-youthlead/chapter-web/internal/web/routepath"
)

// ProfilePage renders the member's own profile with an edit form.
func ProfilePage(p profile.Profile, saved bool) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString("<section class=\"card profile\">\n")
		b.WriteString("<h1>My profile</h1>\n")
		if saved {
			b.WriteString("<p class=\"success\">Profile saved.</p>\n")
		}
		if p.AvatarURL != "" {
			b.WriteString("<img class=\"avatar\" src=\"" + esc(p.AvatarURL) + "\" alt=\"" + esc(p.Name()) + "\">\n")
		}
		b.WriteString("<p class=\"meta\">Role: <span class=\"badge " + esc(string(p.Role)) + "\">" + esc(string(p.Role)) + "</span></p>\n")
		b.WriteString("<form method=\"post\" action=\"" + routepath.Profile + "\">\n")
		b.WriteString("<label>Display name\n<input type=\"text\" name=\"display_name\" value=\"" + esc(p.DisplayName) + "\" maxlength=\"80\">\n</label>\n")
		b.WriteString("<label>Avatar URL\n<input type=\"url\" name=\"avatar_url\" value=\"" + esc(p.AvatarURL) + "\">\n</label>\n")
		b.WriteString("<button type=\"submit\" class=\"button primary\">Save</button>\n")
		b.WriteString("</form>\n")
		b.WriteString("</section>\n")
	})
}
