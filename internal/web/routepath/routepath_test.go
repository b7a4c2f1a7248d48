package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if Login != "/login" {
		t.Fatalf("Login = %q", Login)
	}
	if Community != "/community" {
		t.Fatalf("Community = %q", Community)
	}
	if AuthCallback != "/auth/callback" {
		t.Fatalf("AuthCallback = %q", AuthCallback)
	}
}

func TestTicketPath(t *testing.T) {
	t.Parallel()

	if got := TicketPath("t-1"); got != "/community/tickets/t-1" {
		t.Fatalf("TicketPath = %q, want /community/tickets/t-1", got)
	}
}
