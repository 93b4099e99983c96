package mailing

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-api/internal/testutil"
)

func TestNewMailerWithoutHost(t *testing.T) {
	m, err := NewMailer(MailConfig{})
	require.NoError(t, err)

	_, ok := m.(noopMailer)
	assert.True(t, ok)
	assert.NoError(t, m.SendMail(context.Background(), "ana@example.com", "subject", "body"))
}

func TestNewMailerInvalidPort(t *testing.T) {
	_, err := NewMailer(MailConfig{SMTPHost: "smtp.example.com", SMTPPort: "abc"})
	assert.Error(t, err)
}

func TestMessageHeaders(t *testing.T) {
	m, err := NewMailer(MailConfig{
		SMTPHost:   "smtp.example.com",
		SMTPPort:   "587",
		SMTPSender: "Recipe API",
		SMTPEmail:  "noreply@example.com",
	})
	require.NoError(t, err)

	msg := m.(*smtpMailer).message("ana@example.com", SubjectWelcome, WelcomeBody("Ana", "https://recipes.example.com"))
	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "To: ana@example.com")
	assert.Contains(t, raw, "noreply@example.com")
	assert.Contains(t, raw, "Subject: Welcome to Recipe API")
}

func TestBodiesEscapeNames(t *testing.T) {
	assert.Contains(t, WelcomeBody("<b>Ana</b>", "https://x"), "&lt;b&gt;Ana&lt;/b&gt;")
	assert.NotContains(t, PasswordChangedBody("<script>"), "<script>")
}

func TestSendMailStopsAtContextDeadline(t *testing.T) {
	host, port, err := net.SplitHostPort(testutil.SilentListener(t))
	require.NoError(t, err)
	m, err := NewMailer(MailConfig{SMTPHost: host, SMTPPort: port, SMTPEmail: "noreply@example.com"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = m.SendMail(ctx, "ana@example.com", SubjectWelcome, "body")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), SendTimeout)
}
