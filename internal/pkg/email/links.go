package email

import (
	"fmt"
	"net/url"
)

// LinkBuilder builds the public URLs embedded in outgoing mail and in
// accept/reject redirects. Base URLs come from configuration, not globals.
type LinkBuilder struct {
	FrontendURL string
	BackendURL  string
}

// AcceptURL returns the public accept link for a nominee
func (b LinkBuilder) AcceptURL(nomineeID int64) string {
	return fmt.Sprintf("%s/api/nominee/%d/accept", b.BackendURL, nomineeID)
}

// RejectURL returns the public reject link for a nominee
func (b LinkBuilder) RejectURL(nomineeID int64) string {
	return fmt.Sprintf("%s/api/nominee/%d/reject", b.BackendURL, nomineeID)
}

// FeedbackURL returns the public feedback form link for a nominee
func (b LinkBuilder) FeedbackURL(nomineeID int64) string {
	return fmt.Sprintf("%s/feedback/%d", b.FrontendURL, nomineeID)
}

// ResponseRedirectURL returns the front-end response page URL used after a
// nominee visits an accept/reject link. Status is one of "accepted",
// "rejected" or "already"; eventTitle is omitted when empty.
func (b LinkBuilder) ResponseRedirectURL(status, name, eventTitle string) string {
	params := url.Values{}
	params.Set("status", status)
	params.Set("name", name)
	if eventTitle != "" {
		params.Set("event", eventTitle)
	}
	return fmt.Sprintf("%s/response?%s", b.FrontendURL, params.Encode())
}
