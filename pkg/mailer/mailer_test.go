package mailer_test

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"strings"
	"testing"

	"portfolio-backend/config"
	"portfolio-backend/pkg/mailer"

	"github.com/stretchr/testify/assert"
)

func newMailer(cfg config.Config) *mailer.Mailer {
	if cfg.SMTPTimeoutSeconds == 0 {
		cfg.SMTPTimeoutSeconds = 2
	}
	return mailer.New(&cfg)
}

func TestSendConfigurationErrors(t *testing.T) {
	testMail := mailer.Mail{To: "a@b.com", Subject: "hi", Body: "hello"}

	cases := []struct {
		name     string
		cfg      config.Config
		contains string
	}{
		{
			name:     "missing host",
			cfg:      config.Config{SMTPUsername: "user@x.com", SMTPPassword: "secret"},
			contains: "SMTP_HOST",
		},
		{
			name:     "no resolvable from address",
			cfg:      config.Config{SMTPHost: "smtp.example.com"},
			contains: "MAIL_FROM_EMAIL or SMTP_USERNAME",
		},
		{
			name:     "username without password",
			cfg:      config.Config{SMTPHost: "smtp.example.com", SMTPUsername: "user@x.com"},
			contains: "SMTP_PASSWORD is missing",
		},
		{
			name:     "password without username",
			cfg:      config.Config{SMTPHost: "smtp.example.com", MailFromEmail: "noreply@x.com", SMTPPassword: "secret"},
			contains: "SMTP_USERNAME is missing",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := newMailer(tc.cfg).Send(testMail)
			var mailErr *mailer.Error
			if assert.ErrorAs(t, err, &mailErr) {
				assert.Equal(t, mailer.KindConfig, mailErr.Kind)
				assert.Contains(t, mailErr.Error(), tc.contains)
			}
		})
	}
}

// fakeSMTP runs a one-shot plaintext SMTP server without STARTTLS support
// and records the commands received plus the DATA payload. authReply and
// quitReply control the responses to AUTH and QUIT.
func fakeSMTP(t *testing.T, authReply, quitReply string) (port int, data, cmds *bytes.Buffer, done chan struct{}) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	data = &bytes.Buffer{}
	cmds = &bytes.Buffer{}
	done = make(chan struct{})

	go func() {
		defer close(done)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		br := bufio.NewReader(conn)
		fmt.Fprintf(conn, "220 fake ESMTP\r\n")
		inData := false
		for {
			line, err := br.ReadString('\n')
			if err != nil {
				return
			}
			if inData {
				if strings.TrimRight(line, "\r\n") == "." {
					inData = false
					fmt.Fprintf(conn, "250 OK\r\n")
					continue
				}
				data.WriteString(line)
				continue
			}
			cmd := strings.ToUpper(strings.TrimRight(line, "\r\n"))
			cmds.WriteString(line)
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				fmt.Fprintf(conn, "250-fake\r\n250 AUTH PLAIN\r\n")
			case strings.HasPrefix(cmd, "AUTH"):
				fmt.Fprintf(conn, "%s\r\n", authReply)
			case strings.HasPrefix(cmd, "DATA"):
				inData = true
				fmt.Fprintf(conn, "354 End data with <CR><LF>.<CR><LF>\r\n")
			case strings.HasPrefix(cmd, "QUIT"):
				fmt.Fprintf(conn, "%s\r\n", quitReply)
				return
			default:
				fmt.Fprintf(conn, "250 OK\r\n")
			}
		}
	}()

	return ln.Addr().(*net.TCPAddr).Port, data, cmds, done
}

func TestSendDeliversMessage(t *testing.T) {
	port, data, _, done := fakeSMTP(t, "235 ok", "221 bye")

	m := newMailer(config.Config{
		SMTPHost:      "127.0.0.1",
		SMTPPort:      port,
		MailFromEmail: "noreply@example.com",
		MailFromName:  "Portfolio",
	})

	err := m.Send(mailer.Mail{
		To:           "owner@example.com",
		Subject:      "new contact submission",
		Body:         "hello from tests",
		ReplyTo:      "visitor@example.com",
		HighPriority: true,
	})
	assert.NoError(t, err)

	<-done
	payload := data.String()
	assert.Contains(t, payload, "Subject: new contact submission")
	assert.Contains(t, payload, "To: owner@example.com")
	assert.Contains(t, payload, "Reply-To: visitor@example.com")
	assert.Contains(t, payload, "X-Priority: 1")
	assert.Contains(t, payload, "X-MSMail-Priority: High")
	assert.Contains(t, payload, "Importance: High")
	assert.Contains(t, payload, "hello from tests")
}

func TestSendWithoutPriorityFlag(t *testing.T) {
	port, data, _, done := fakeSMTP(t, "235 ok", "221 bye")

	m := newMailer(config.Config{
		SMTPHost:      "127.0.0.1",
		SMTPPort:      port,
		MailFromEmail: "noreply@example.com",
	})

	err := m.Send(mailer.Mail{To: "a@b.com", Subject: "plain", Body: "no priority"})
	assert.NoError(t, err)

	<-done
	payload := data.String()
	assert.NotContains(t, payload, "X-Priority")
	assert.NotContains(t, payload, "Reply-To")
}

func TestSendRefusesPlaintextWhenTLSConfigured(t *testing.T) {
	// The fake server never advertises STARTTLS, so a TLS-mode session
	// must fail instead of downgrading and leaking credentials.
	port, data, cmds, done := fakeSMTP(t, "235 ok", "221 bye")

	m := newMailer(config.Config{
		SMTPHost:     "127.0.0.1",
		SMTPPort:     port,
		SMTPUsername: "user@example.com",
		SMTPPassword: "secret",
		SMTPUseTLS:   true,
	})

	err := m.Send(mailer.Mail{To: "a@b.com", Subject: "hi", Body: "hello over tls"})
	var mailErr *mailer.Error
	if assert.ErrorAs(t, err, &mailErr) {
		assert.Equal(t, mailer.KindTransport, mailErr.Kind)
		assert.Contains(t, mailErr.Error(), "STARTTLS")
	}

	<-done
	assert.NotContains(t, cmds.String(), "AUTH", "credentials must never be sent on the plaintext session")
	assert.Empty(t, data.String())
}

func TestSendToleratesQuitFailure(t *testing.T) {
	port, data, _, done := fakeSMTP(t, "235 ok", "421 shutting down")

	m := newMailer(config.Config{
		SMTPHost:      "127.0.0.1",
		SMTPPort:      port,
		MailFromEmail: "noreply@example.com",
	})

	err := m.Send(mailer.Mail{To: "a@b.com", Subject: "bye", Body: "still delivered"})
	assert.NoError(t, err, "a failed QUIT after the message was accepted is not a delivery failure")

	<-done
	assert.Contains(t, data.String(), "still delivered")
}

func TestSendAuthRejection(t *testing.T) {
	port, _, _, _ := fakeSMTP(t, "535 authentication credentials invalid", "221 bye")

	m := newMailer(config.Config{
		SMTPHost:     "127.0.0.1",
		SMTPPort:     port,
		SMTPUsername: "user@example.com",
		SMTPPassword: "wrong",
	})

	err := m.Send(mailer.Mail{To: "a@b.com", Subject: "hi", Body: "hello"})
	var mailErr *mailer.Error
	if assert.ErrorAs(t, err, &mailErr) {
		assert.Equal(t, mailer.KindAuth, mailErr.Kind)
		assert.Contains(t, mailErr.Error(), "App Password")
	}
}

func TestSendConnectFailure(t *testing.T) {
	// Grab a port and close it again so nothing is listening there.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	m := newMailer(config.Config{
		SMTPHost:      "127.0.0.1",
		SMTPPort:      port,
		MailFromEmail: "noreply@example.com",
	})

	err = m.Send(mailer.Mail{To: "a@b.com", Subject: "hi", Body: "hello"})
	var mailErr *mailer.Error
	if assert.ErrorAs(t, err, &mailErr) {
		assert.Equal(t, mailer.KindTransport, mailErr.Kind)
	}
}
