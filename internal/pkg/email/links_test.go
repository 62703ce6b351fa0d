package email

import (
	"net/url"
	"strings"
	"testing"
)

func testLinks() LinkBuilder {
	return LinkBuilder{
		FrontendURL: "https://training.example.com",
		BackendURL:  "https://api.example.com",
	}
}

func TestInvitationLinks(t *testing.T) {
	links := testLinks()

	if got := links.AcceptURL(7); got != "https://api.example.com/api/nominee/7/accept" {
		t.Errorf("AcceptURL: %q", got)
	}
	if got := links.RejectURL(7); got != "https://api.example.com/api/nominee/7/reject" {
		t.Errorf("RejectURL: %q", got)
	}
	if got := links.FeedbackURL(7); got != "https://training.example.com/feedback/7" {
		t.Errorf("FeedbackURL: %q", got)
	}
}

func TestResponseRedirectURLEscapes(t *testing.T) {
	links := testLinks()

	raw := links.ResponseRedirectURL("accepted", "Ada & Grace", "Go 101: Intro")
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("redirect URL does not parse: %v", err)
	}
	if !strings.HasPrefix(raw, "https://training.example.com/response?") {
		t.Errorf("unexpected prefix: %q", raw)
	}

	q := parsed.Query()
	if q.Get("status") != "accepted" {
		t.Errorf("status = %q", q.Get("status"))
	}
	if q.Get("name") != "Ada & Grace" {
		t.Errorf("name = %q", q.Get("name"))
	}
	if q.Get("event") != "Go 101: Intro" {
		t.Errorf("event = %q", q.Get("event"))
	}
}

func TestResponseRedirectURLOmitsEmptyEvent(t *testing.T) {
	links := testLinks()

	raw := links.ResponseRedirectURL("already", "Ada", "")
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("redirect URL does not parse: %v", err)
	}
	if _, present := parsed.Query()["event"]; present {
		t.Errorf("already outcome carries event param: %q", raw)
	}
}
