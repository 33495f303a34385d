package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	to      []string
	subject string
	body    string
}

func (s *recordingSender) SendHTML(to []string, subject, htmlBody string) error {
	s.to = to
	s.subject = subject
	s.body = htmlBody
	return nil
}

func TestSendVerificationEmail(t *testing.T) {
	sender := &recordingSender{}
	m := NewAccountMailer(sender, "http://localhost:3000")

	require.NoError(t, m.SendVerificationEmail("alice@example.com", "abc123"))

	assert.Equal(t, []string{"alice@example.com"}, sender.to)
	assert.Contains(t, sender.body, "http://localhost:3000/verify-user/abc123")
}

func TestSendPasswordResetEmail(t *testing.T) {
	sender := &recordingSender{}
	m := NewAccountMailer(sender, "http://localhost:3000")

	require.NoError(t, m.SendPasswordResetEmail("alice@example.com", "abc123"))

	assert.Equal(t, []string{"alice@example.com"}, sender.to)
	assert.Contains(t, sender.body, "http://localhost:3000/reset-password/abc123")
}
