package email

import (
	"context"
	"fmt"
	"net/url"
	"passreset/internal/core/domain/user"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var EXPIRES_AT = time.Date(2020, 6, 6, 17, 30, 30, 0, time.UTC)

type fakeTransport struct {
	sent []Message
	err  error
}

func (t *fakeTransport) Send(ctx context.Context, m Message) error {
	if t.err != nil {
		return t.err
	}
	t.sent = append(t.sent, m)
	return nil
}

func newSender(t *testing.T, transport Transport) *PasswordResetTokenSender {
	baseURL, err := url.Parse("https://example.com/password-reset")
	require.NoError(t, err)
	return NewPasswordResetTokenSender(transport, *baseURL)
}

func TestSendPasswordResetToken(t *testing.T) {
	transport := &fakeTransport{}
	sender := newSender(t, transport)
	u := user.User{Email: "john.doe+test@example.com", Name: "John"}

	err := sender.SendPasswordResetToken(context.Background(), u, "fake/token=", EXPIRES_AT)

	require.NoError(t, err)
	require.Len(t, transport.sent, 1)
	msg := transport.sent[0]
	require.Equal(t, "john.doe+test@example.com", msg.To)
	require.Equal(t, "Reset your password", msg.Subject)
	require.Contains(t, msg.Body, "Hello John,")
	require.Contains(
		t,
		msg.Body,
		"https://example.com/password-reset?email=john.doe%2Btest%40example.com&token=fake%2Ftoken%3D",
	)
	require.Contains(t, msg.Body, "2020-06-06 17:30:30 UTC")
}

func TestPasswordResetURLRoundTrip(t *testing.T) {
	sender := newSender(t, &fakeTransport{})
	u := user.User{Email: "john.doe@example.com"}

	resetURL, err := url.Parse(sender.PasswordResetURL(u, "fake-token"))

	require.NoError(t, err)
	require.Equal(t, "example.com", resetURL.Host)
	require.Equal(t, "/password-reset", resetURL.Path)
	require.Equal(t, "john.doe@example.com", resetURL.Query().Get("email"))
	require.Equal(t, "fake-token", resetURL.Query().Get("token"))
}

func TestBaseURLIsNotModified(t *testing.T) {
	sender := newSender(t, &fakeTransport{})
	sender.PasswordResetURL(user.User{Email: "a@example.com"}, "first")

	second := sender.PasswordResetURL(user.User{Email: "b@example.com"}, "second")

	require.NotContains(t, second, "first")
	require.NotContains(t, second, "a%40example.com")
}

func TestSendPasswordResetTokenWithoutEmail(t *testing.T) {
	transport := &fakeTransport{}
	sender := newSender(t, transport)

	err := sender.SendPasswordResetToken(context.Background(), user.User{}, "fake-token", EXPIRES_AT)

	require.Error(t, err)
	require.Empty(t, transport.sent)
}

func TestSendPasswordResetTokenTransportError(t *testing.T) {
	transportErr := fmt.Errorf("mail server is down")
	sender := newSender(t, &fakeTransport{err: transportErr})

	err := sender.SendPasswordResetToken(
		context.Background(),
		user.User{Email: "john.doe@example.com"},
		"fake-token",
		EXPIRES_AT,
	)

	require.ErrorIs(t, err, transportErr)
}

func TestNewSMTPValidation(t *testing.T) {
	cases := []struct {
		id      string
		cfg     SMTPConfig
		isValid bool
	}{
		{id: "valid", cfg: SMTPConfig{Host: "localhost", Port: 1025, From: "noreply@example.com"}, isValid: true},
		{id: "no host", cfg: SMTPConfig{Port: 1025, From: "noreply@example.com"}, isValid: false},
		{id: "no from", cfg: SMTPConfig{Host: "localhost", Port: 1025}, isValid: false},
		{id: "no port", cfg: SMTPConfig{Host: "localhost", From: "noreply@example.com"}, isValid: false},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			_, err := NewSMTP(testcase.cfg)
			if testcase.isValid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestSMTPMessage(t *testing.T) {
	transport, err := NewSMTP(SMTPConfig{
		Host:     "localhost",
		Port:     1025,
		From:     "noreply@example.com",
		FromName: "Password Reset",
	})
	require.NoError(t, err)

	msg, err := transport.message(Message{To: "john.doe@example.com", Subject: "subject", Body: "body"})

	require.NoError(t, err)
	require.Equal(t, []string{"john.doe@example.com"}, msg.GetToString())
	require.Len(t, transport.options(), 2)
}

func TestSMTPMessageInvalidRecipient(t *testing.T) {
	transport, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 1025, From: "noreply@example.com"})
	require.NoError(t, err)

	_, err = transport.message(Message{To: "not an address", Subject: "subject", Body: "body"})

	require.Error(t, err)
}
