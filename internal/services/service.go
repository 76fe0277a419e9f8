package services

import (
	"context"
)

// EmailDispatcher sends club email. Each call is one provider request and reports only
// whether it succeeded; provider errors are logged by the implementation.
type EmailDispatcher interface {
	// SendOnboarding sends the fixed registration follow-up to one member.
	SendOnboarding(ctx context.Context, email, name string) bool
	// SendCustomText sends the same subject and plain-text body to every address.
	SendCustomText(ctx context.Context, emails []string, subject, text string) bool
	// SendCustomHTML is SendCustomText with an HTML body; text is the fallback.
	// At least one of html and text must be non-empty.
	SendCustomHTML(ctx context.Context, emails []string, subject, html, text string) bool
}

// Verifier checks admin credentials presented by a request.
// On success it returns the shared admin token.
type Verifier interface {
	Verify(creds Credentials) (string, error)
}

// Credentials is whatever the request carried; verifiers read the fields they need.
type Credentials struct {
	Token    string
	Email    string
	Password string
}
