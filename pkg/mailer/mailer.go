// Package mailer sends individual notification mails over SMTP. Every call
// opens its own session and closes it before returning; nothing is pooled.
package mailer

import (
	"crypto/tls"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"portfolio-backend/config"
	"portfolio-backend/pkg/metrics"

	"gopkg.in/gomail.v2"
)

// Kind classifies a dispatch failure.
type Kind string

const (
	// KindConfig means the SMTP settings are incomplete; reported before
	// any connection attempt.
	KindConfig Kind = "config"
	// KindAuth means the server rejected the configured credentials.
	KindAuth Kind = "auth"
	// KindTransport covers every other session-level failure.
	KindTransport Kind = "transport"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Mail is a single outbound message.
type Mail struct {
	To           string
	Subject      string
	Body         string
	ReplyTo      string
	HighPriority bool
}

type Mailer struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
	fromName  string
	useTLS    bool
	useSSL    bool
	timeout   time.Duration
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.MailFromEmail,
		fromName:  cfg.MailFromName,
		useTLS:    cfg.SMTPUseTLS,
		useSSL:    cfg.SMTPUseSSL,
		timeout:   time.Duration(cfg.SMTPTimeoutSeconds) * time.Second,
	}
}

// IsConfigured reports whether a send can reach the network at all.
func (m *Mailer) IsConfigured() bool {
	return m.host != "" && (m.fromEmail != "" || m.username != "")
}

// Send delivers one mail. It fails fast on incomplete configuration,
// authenticates only when both credentials are present, and never retries.
func (m *Mailer) Send(mail Mail) error {
	if m.host == "" {
		return &Error{Kind: KindConfig, Message: "SMTP is not configured. Set SMTP_HOST and SMTP credentials."}
	}

	from := m.fromEmail
	if from == "" {
		from = m.username
	}
	if from == "" {
		return &Error{Kind: KindConfig, Message: "MAIL_FROM_EMAIL or SMTP_USERNAME must be configured."}
	}

	if m.username != "" && m.password == "" {
		return &Error{Kind: KindConfig, Message: "SMTP_PASSWORD is missing. For Gmail, use a 16-character App Password."}
	}
	if m.password != "" && m.username == "" {
		return &Error{Kind: KindConfig, Message: "SMTP_USERNAME is missing while SMTP_PASSWORD is set."}
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", from, m.fromName)
	msg.SetHeader("To", mail.To)
	msg.SetHeader("Subject", mail.Subject)
	if mail.ReplyTo != "" {
		msg.SetHeader("Reply-To", mail.ReplyTo)
	}
	if mail.HighPriority {
		msg.SetHeader("X-Priority", "1")
		msg.SetHeader("X-MSMail-Priority", "High")
		msg.SetHeader("Importance", "High")
	}
	msg.SetBody("text/plain", mail.Body)

	if err := m.transmit(from, mail.To, msg); err != nil {
		metrics.MailSendFailure.WithLabelValues(m.host).Inc()
		return err
	}
	metrics.MailSendSuccess.WithLabelValues(m.host).Inc()
	return nil
}

func (m *Mailer) transmit(from, to string, msg *gomail.Message) error {
	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))

	conn, err := net.DialTimeout("tcp", addr, m.timeout)
	if err != nil {
		return &Error{Kind: KindTransport, Message: "SMTP connect failed", Err: err}
	}
	// One deadline covers the whole session; a hung server fails the send
	// instead of blocking a queue worker forever.
	_ = conn.SetDeadline(time.Now().Add(m.timeout))

	if m.useSSL {
		conn = tls.Client(conn, &tls.Config{ServerName: m.host})
	}

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return &Error{Kind: KindTransport, Message: "SMTP handshake failed", Err: err}
	}
	defer client.Close()

	if m.useTLS && !m.useSSL {
		// TLS mode is explicit configuration; never downgrade to plaintext
		// when the server cannot upgrade.
		if ok, _ := client.Extension("STARTTLS"); !ok {
			return &Error{Kind: KindTransport, Message: "SMTP server does not support STARTTLS"}
		}
		if err := client.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			return &Error{Kind: KindTransport, Message: "STARTTLS failed", Err: err}
		}
	}

	if m.username != "" && m.password != "" {
		auth := smtp.PlainAuth("", m.username, m.password, m.host)
		if err := client.Auth(auth); err != nil {
			return &Error{
				Kind: KindAuth,
				Message: "SMTP authentication failed. Verify SMTP_USERNAME and SMTP_PASSWORD. " +
					"For Gmail, enable 2-Step Verification and use an App Password.",
				Err: err,
			}
		}
	}

	if err := client.Mail(from); err != nil {
		return &Error{Kind: KindTransport, Message: "SMTP error", Err: err}
	}
	if err := client.Rcpt(to); err != nil {
		return &Error{Kind: KindTransport, Message: "SMTP error", Err: err}
	}

	w, err := client.Data()
	if err != nil {
		return &Error{Kind: KindTransport, Message: "SMTP error", Err: err}
	}
	if _, err := msg.WriteTo(w); err != nil {
		w.Close()
		return &Error{Kind: KindTransport, Message: "SMTP error", Err: err}
	}
	if err := w.Close(); err != nil {
		return &Error{Kind: KindTransport, Message: "SMTP error", Err: err}
	}

	// The server accepted the message when the DATA terminator got its 250;
	// a failed QUIT cannot unsend it, so it is not a delivery failure.
	_ = client.Quit()
	return nil
}
