package mail

import (
	"context"
	"errors"
	"io"
	"testing"

	"CricketPredict/internal/config"

	"github.com/sendgrid/rest"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	got  *sgmail.SGMailV3
	resp *rest.Response
	err  error
}

func (f *fakeSender) SendWithContext(_ context.Context, email *sgmail.SGMailV3) (*rest.Response, error) {
	f.got = email
	return f.resp, f.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestSendVerification(t *testing.T) {
	fs := &fakeSender{resp: &rest.Response{StatusCode: 202}}
	m := &SendGridMailer{client: fs, fromName: "Cricket Predict", from: "no-reply@example.com"}

	require.NoError(t, m.SendVerification(context.Background(), "fan@example.com", "https://app/verify?token=abc"))
	require.NotNil(t, fs.got)
	assert.Equal(t, verificationSubject, fs.got.Subject)
	assert.Equal(t, "no-reply@example.com", fs.got.From.Address)
	require.Len(t, fs.got.Personalizations, 1)
	assert.Equal(t, "fan@example.com", fs.got.Personalizations[0].To[0].Address)
	assert.Contains(t, fs.got.Content[0].Value, "https://app/verify?token=abc")
}

func TestSendVerificationErrors(t *testing.T) {
	m := &SendGridMailer{client: &fakeSender{resp: &rest.Response{StatusCode: 401, Body: "unauthorized"}}}
	err := m.SendVerification(context.Background(), "fan@example.com", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")

	m = &SendGridMailer{client: &fakeSender{err: errors.New("dial tcp: timeout")}}
	assert.ErrorContains(t, m.SendVerification(context.Background(), "fan@example.com", "u"), "failed to send email")
}

func TestNewPicksImplementation(t *testing.T) {
	_, ok := New(config.MailConfig{}, quietLogger()).(*NoopMailer)
	assert.True(t, ok)

	_, ok = New(config.MailConfig{SendGridAPIKey: "SG.key"}, quietLogger()).(*SendGridMailer)
	assert.True(t, ok)

	assert.NoError(t, NewNoopMailer(quietLogger()).SendVerification(context.Background(), "a@b.c", "u"))
}
