package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ccpc-cuj/membership-backend/internal/metrics"
	"github.com/ccpc-cuj/membership-backend/pkg/emailgateway"
	"github.com/rs/zerolog"
)

// OnboardingSubject is the subject of the email sent after registration.
const OnboardingSubject = "Next Steps for Your Code Crafters Programming Club Registration"

const onboardingBody = `Dear %s,

Thank you for registering for the Code Crafters Programming Club.

Task Document:
https://docs.google.com/document/d/1jUdkuXKYLQf1zCbwS0CzkaRxxbeb2RqNBUeKYI4Fvn8/edit

Response Form:
https://forms.gle/UbESfaUvxLCADXEj6

Best Regards,
Code Crafters Programming Club`

var _ EmailDispatcher = (*EmailService)(nil)

// EmailService implements EmailDispatcher on top of an email gateway.
type EmailService struct {
	gateway emailgateway.Gateway
	log     zerolog.Logger
	metrics *metrics.Metrics
	timeout time.Duration
}

// NewEmailService creates a new EmailService. timeout bounds every provider call.
func NewEmailService(gateway emailgateway.Gateway, log zerolog.Logger, m *metrics.Metrics, timeout time.Duration) *EmailService {
	return &EmailService{
		gateway: gateway,
		log:     log.With().Str("component", "email").Logger(),
		metrics: m,
		timeout: timeout,
	}
}

// OnboardingText renders the onboarding body for name.
func OnboardingText(name string) string {
	return fmt.Sprintf(onboardingBody, name)
}

// SendOnboarding sends the fixed registration follow-up to one member.
func (s *EmailService) SendOnboarding(ctx context.Context, email, name string) bool {
	return s.send(ctx, "onboarding", emailgateway.Message{
		To:      []string{email},
		Subject: OnboardingSubject,
		Text:    OnboardingText(name),
	})
}

// SendCustomText sends subject and text to every address in one provider call.
func (s *EmailService) SendCustomText(ctx context.Context, emails []string, subject, text string) bool {
	return s.send(ctx, "custom_text", emailgateway.Message{
		To:      emails,
		Subject: subject,
		Text:    text,
	})
}

// SendCustomHTML sends an HTML message with an optional plain-text fallback.
func (s *EmailService) SendCustomHTML(ctx context.Context, emails []string, subject, html, text string) bool {
	return s.send(ctx, "custom_html", emailgateway.Message{
		To:      emails,
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
}

func (s *EmailService) send(ctx context.Context, kind string, msg emailgateway.Message) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("kind", kind).Msg("email gateway panicked")
			ok = false
		}
		s.metrics.Email(kind, ok)
	}()

	if len(msg.To) == 0 {
		s.log.Warn().Str("kind", kind).Msg("email has no recipients")
		return false
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	messageID, err := s.gateway.Send(ctx, msg)
	if err != nil {
		s.log.Error().Err(err).Str("kind", kind).Int("recipients", len(msg.To)).Msg("email provider error")
		return false
	}

	s.log.Info().Str("kind", kind).Int("recipients", len(msg.To)).Str("message_id", messageID).Msg("email sent")
	return true
}
