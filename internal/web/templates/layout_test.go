package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/ppc-youthlead/chapter-web/internal/platform/branding"
	"github.com/ppc-youthlead/chapter-web/internal/web/routepath"
)

func TestComposePageTitleAddsBrandNameSuffix(t *testing.T) {
	got := ComposePageTitle("Events")
	want := "Events | " + branding.AppName
	if got != want {
		t.Fatalf("ComposePageTitle = %q, want %q", got, want)
	}
}

func TestComposePageTitleSkipsWhenAlreadySuffixed(t *testing.T) {
	title := "Events | " + branding.AppName
	if got := ComposePageTitle(title); got != title {
		t.Fatalf("ComposePageTitle = %q, want %q", got, title)
	}
}

func TestComposePageTitleFallsBackToBrandName(t *testing.T) {
	if got := ComposePageTitle("  "); got != branding.AppName {
		t.Fatalf("ComposePageTitle = %q, want %q", got, branding.AppName)
	}
}

func render(t *testing.T, page PageContext, title string) string {
	t.Helper()
	var b strings.Builder
	if err := Layout(page, title, Home()).Render(context.Background(), &b); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	return b.String()
}

func TestLayoutShowsSignInForAnonymousVisitors(t *testing.T) {
	got := render(t, PageContext{CurrentPath: routepath.Root}, "Home")
	if !strings.Contains(got, `href="`+routepath.Login+`">Sign in</a>`) {
		t.Fatalf("expected sign-in link, got %q", got)
	}
	if strings.Contains(got, routepath.Community+`">Community`) {
		t.Fatal("anonymous layout must not link to the community portal")
	}
	if strings.Contains(got, routepath.Admin+`">Admin`) {
		t.Fatal("anonymous layout must not link to the admin dashboard")
	}
}

func TestLayoutShowsCommunityAndSignOutForMembers(t *testing.T) {
	got := render(t, PageContext{CurrentPath: routepath.Community, SignedIn: true, DisplayName: "Bea"}, "Community")
	if !strings.Contains(got, `href="`+routepath.Community+`">Community</a>`) {
		t.Fatalf("expected community link, got %q", got)
	}
	if !strings.Contains(got, ">Sign out</button>") {
		t.Fatal("expected sign-out button for signed-in member")
	}
	if !strings.Contains(got, ">Bea</a>") {
		t.Fatal("expected display name link to profile")
	}
	if strings.Contains(got, routepath.Admin+`">Admin`) {
		t.Fatal("non-admin layout must not link to the admin dashboard")
	}
}

func TestLayoutShowsAdminLinkForAdmins(t *testing.T) {
	got := render(t, PageContext{SignedIn: true, IsAdmin: true, DisplayName: "Andrea"}, "Home")
	if !strings.Contains(got, `href="`+routepath.Admin+`">Admin</a>`) {
		t.Fatalf("expected admin link, got %q", got)
	}
}

func TestLayoutEscapesDisplayName(t *testing.T) {
	got := render(t, PageContext{SignedIn: true, DisplayName: "<script>x</script>"}, "Home")
	if strings.Contains(got, "<script>x</script>") {
		t.Fatal("display name must be HTML-escaped")
	}
}
