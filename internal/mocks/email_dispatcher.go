// Package mocks holds testify mocks of service dependencies.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// EmailDispatcher is a mock of services.EmailDispatcher
type EmailDispatcher struct {
	mock.Mock
}

func (m *EmailDispatcher) SendOnboarding(ctx context.Context, email, name string) bool {
	args := m.Called(ctx, email, name)
	return args.Bool(0)
}

func (m *EmailDispatcher) SendCustomText(ctx context.Context, emails []string, subject, text string) bool {
	args := m.Called(ctx, emails, subject, text)
	return args.Bool(0)
}

func (m *EmailDispatcher) SendCustomHTML(ctx context.Context, emails []string, subject, html, text string) bool {
	args := m.Called(ctx, emails, subject, html, text)
	return args.Bool(0)
}
