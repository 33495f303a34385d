package mailer

import "fmt"

// Sender is the outbound email dependency used by the auth usecase. Tests
// substitute an in-memory implementation.
type Sender interface {
	SendHTML(to []string, subject, htmlBody string) error
}

// AccountMailer builds and sends the account lifecycle emails. Links embed the
// user's verification token and point at the web client.
type AccountMailer struct {
	sender Sender
	appURL string
}

// NewAccountMailer creates an AccountMailer sending through the given Sender.
func NewAccountMailer(sender Sender, appURL string) *AccountMailer {
	return &AccountMailer{sender: sender, appURL: appURL}
}

// SendVerificationEmail sends the post-sign-up email containing the
// verification link.
func (m *AccountMailer) SendVerificationEmail(email, token string) error {
	verifyLink := fmt.Sprintf("%s/verify-user/%s", m.appURL, token)
	htmlBody := fmt.Sprintf(`
		<p>Hi,</p>
		<p>Thanks for signing up. Please click the link below to verify your email:</p>

		<p><a href="%s">%s</a></p>

		<p>If you did not create an account, you can safely ignore this email.</p>
	`, verifyLink, verifyLink)

	return m.sender.SendHTML([]string{email}, "Verify your email to continue", htmlBody)
}

// SendPasswordResetEmail sends the email containing the password reset link.
func (m *AccountMailer) SendPasswordResetEmail(email, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password/%s", m.appURL, token)
	htmlBody := fmt.Sprintf(`
		<p>Hi,</p>
		<p>We received a request to reset the password for your account.</p>
		<p>If you made this request, please click the link below to create a new password:</p>

		<p><a href="%s">%s</a></p>

		<p>If you did not request a password reset, you can safely ignore this email.</p>
	`, resetLink, resetLink)

	return m.sender.SendHTML([]string{email}, "Reset your password", htmlBody)
}
