package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"portfolio-backend/config"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/mailer"

	"github.com/go-playground/validator/v10"
)

const (
	defaultSubject = "New contact message"
	// Used in rendered mail bodies only; the persisted row keeps name NULL
	// when the sender left it empty.
	defaultSenderName = "Visitor"

	ownerSubjectPrefix = "[NEW CONTACT \U0001F514] "
	autoReplySubject   = "Thanks for your message — I received it"

	inboxMissingIssue = "CONTACT_INBOX_EMAIL is not configured on the server."
)

const maxListLimit = 200

// Dispatcher sends a single mail; *mailer.Mailer satisfies it.
type Dispatcher interface {
	Send(mail mailer.Mail) error
}

type contactUsecase struct {
	messages domain.MessageRepository
	mail     Dispatcher
	tasks    domain.TaskQueue
	cfg      *config.Config
	validate *validator.Validate
}

func NewContactUsecase(messages domain.MessageRepository, mail Dispatcher, tasks domain.TaskQueue, cfg *config.Config, validate *validator.Validate) domain.ContactUsecase {
	return &contactUsecase{
		messages: messages,
		mail:     mail,
		tasks:    tasks,
		cfg:      cfg,
		validate: validate,
	}
}

// Submit persists the message, then schedules the owner notification and
// sender auto-reply as deferred tasks. The commit strictly precedes task
// registration: nothing is scheduled for a message that was not saved.
func (u *contactUsecase) Submit(ctx context.Context, req *domain.ContactRequest) (*domain.ContactResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = defaultSubject
	}
	body := strings.TrimSpace(req.Body)

	// Binding validated the raw payload; re-check the normalized values
	// since trimming can empty a field or push it under the minimum.
	if err := u.validate.Var(email, "required,email"); err != nil {
		return nil, apperror.BadRequest("a valid sender email is required")
	}
	if err := u.validate.Var(body, "required,min=10,max=5000"); err != nil {
		return nil, apperror.BadRequest("message body must be between 10 and 5000 characters")
	}

	senderName := name
	if senderName == "" {
		senderName = defaultSenderName
	}

	record := &domain.Message{Email: email, Subject: subject, Body: body}
	if name != "" {
		record.Name = &name
	}

	if err := u.messages.Create(ctx, record); err != nil {
		return nil, apperror.New(http.StatusInternalServerError, fmt.Sprintf("Failed to save contact message: %v", err), err)
	}

	submittedAt := time.Now().UTC()
	inbox := u.cfg.ContactInboxEmail
	replyTo := firstNonEmpty(inbox, u.cfg.MailFromEmail, u.cfg.SMTPUsername)

	var deliveryIssue *string
	if inbox != "" {
		ownerMail := mailer.Mail{
			To:           inbox,
			Subject:      ownerSubjectPrefix + subject,
			Body:         renderOwnerBody(record.ID, senderName, email, subject, submittedAt, body),
			ReplyTo:      email,
			HighPriority: true,
		}
		u.tasks.Submit("contact.owner-notification", func(ctx context.Context) error {
			return u.mail.Send(ownerMail)
		})
	} else {
		issue := inboxMissingIssue
		deliveryIssue = &issue
	}

	autoReply := mailer.Mail{
		To:      email,
		Subject: autoReplySubject,
		Body:    renderAutoReplyBody(senderName, subject, body, u.cfg.MailFromName),
		ReplyTo: replyTo,
	}
	u.tasks.Submit("contact.auto-reply", func(ctx context.Context) error {
		return u.mail.Send(autoReply)
	})

	responseMessage := "Thanks for reaching out. Your message was sent successfully."
	if deliveryIssue != nil {
		responseMessage = "Thanks for reaching out. Your message was received and saved."
	}

	return &domain.ContactResult{
		OK:                    true,
		EmailNotificationSent: inbox != "",
		AutoReplySent:         true,
		DeliveryIssue:         deliveryIssue,
		Message:               responseMessage,
	}, nil
}

// ListMessages returns recent messages, newest first. The limit is clamped
// to [1, 200] regardless of input.
func (u *contactUsecase) ListMessages(ctx context.Context, limit int) (*domain.MessageList, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	items, err := u.messages.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.MessageList{OK: true, Count: len(items), Items: items}, nil
}

func renderOwnerBody(id int64, name, email, subject string, submittedAt time.Time, body string) string {
	return fmt.Sprintf(
		"You received a new contact form submission.\n\n"+
			"Message ID: %d\n"+
			"Name: %s\n"+
			"Email: %s\n"+
			"Subject: %s\n"+
			"Received At (UTC): %s\n\n"+
			"Message:\n%s\n",
		id, name, email, subject, submittedAt.Format(time.RFC3339), body,
	)
}

func renderAutoReplyBody(name, subject, body, signature string) string {
	return fmt.Sprintf(
		"Hi %s,\n\n"+
			"Thanks for reaching out through my portfolio. I received your message and will get back to you within 24–48 hours.\n\n"+
			"Your submission summary:\n"+
			"- Subject: %s\n"+
			"- Message: %s\n\n"+
			"Best regards,\n%s\n",
		name, subject, body, signature,
	)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
