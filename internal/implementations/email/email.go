package email

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"passreset/internal/core/domain/user"
	"text/template"
	"time"

	"github.com/golang-module/carbon/v2"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Transport interface {
	Send(ctx context.Context, m Message) error
}

const passwordResetSubject = "Reset your password"

var passwordResetBody = template.Must(template.New("password_reset").Parse(
	`Hello{{ if .Name }} {{ .Name }}{{ end }},

Somebody asked to reset the password of the account registered with {{ .Email }}.
To choose a new password follow the link below:

{{ .URL }}

The link can be used once and expires at {{ .ExpiresAt }} UTC.
If you did not ask for a password reset you can ignore this email.
`))

type passwordResetBodyParams struct {
	Name      string
	Email     string
	URL       string
	ExpiresAt string
}

// PasswordResetTokenSender mails the password reset link. The link carries
// both the email and the plaintext token, so confirming needs nothing but
// the link itself.
type PasswordResetTokenSender struct {
	transport Transport
	baseURL   url.URL
}

func NewPasswordResetTokenSender(transport Transport, baseURL url.URL) *PasswordResetTokenSender {
	if transport == nil {
		panic("transport must not be nil")
	}
	return &PasswordResetTokenSender{transport: transport, baseURL: baseURL}
}

func (s *PasswordResetTokenSender) SendPasswordResetToken(
	ctx context.Context,
	u user.User,
	token user.PasswordResetToken,
	expiresAt time.Time,
) error {
	if u.Email == "" {
		return errors.New("user email is not defined")
	}

	var body bytes.Buffer
	err := passwordResetBody.Execute(&body, passwordResetBodyParams{
		Name:      u.Name,
		Email:     string(u.Email),
		URL:       s.PasswordResetURL(u, token),
		ExpiresAt: carbon.Time2Carbon(expiresAt).SetTimezone(carbon.UTC).ToDateTimeString(),
	})
	if err != nil {
		return err
	}

	return s.transport.Send(ctx, Message{
		To:      string(u.Email),
		Subject: passwordResetSubject,
		Body:    body.String(),
	})
}

func (s *PasswordResetTokenSender) PasswordResetURL(u user.User, token user.PasswordResetToken) string {
	resetURL := s.baseURL
	query := resetURL.Query()
	query.Set("email", string(u.Email))
	query.Set("token", string(token))
	resetURL.RawQuery = query.Encode()
	return resetURL.String()
}
