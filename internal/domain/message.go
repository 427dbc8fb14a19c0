package domain

import (
	"context"
	"time"
)

// Message is a persisted contact-form submission. Rows are append-only:
// nothing in the system updates or deletes them.
type Message struct {
	ID        int64      `json:"id"`
	Name      *string    `json:"name"`
	Email     string     `json:"email"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	CreatedAt *time.Time `json:"created_at"`
}

// ContactRequest is the contact form payload. Binding rejects it before the
// usecase runs when the bounds are violated.
type ContactRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Name    string `json:"name" binding:"omitempty,max=120"`
	Subject string `json:"subject" binding:"omitempty,max=200"`
	Body    string `json:"body" binding:"required,min=10,max=5000"`
}

// ContactResult reports the outcome of a submission. DeliveryIssue is
// non-fatal: it describes degraded notification behavior, not failure.
type ContactResult struct {
	OK                    bool    `json:"ok"`
	EmailNotificationSent bool    `json:"email_notification_sent"`
	AutoReplySent         bool    `json:"auto_reply_sent"`
	DeliveryIssue         *string `json:"delivery_issue"`
	Message               string  `json:"message"`
}

// MessageList is the wire shape of the recent-messages listing.
type MessageList struct {
	OK    bool      `json:"ok"`
	Count int       `json:"count"`
	Items []Message `json:"items"`
}

type MessageRepository interface {
	// Create persists the message in a single transaction and fills in
	// ID and CreatedAt.
	Create(ctx context.Context, m *Message) error
	// ListRecent returns up to limit messages, newest id first.
	ListRecent(ctx context.Context, limit int) ([]Message, error)
}

// TaskQueue registers work to run after the current request has been
// answered. Submit returns immediately; failures inside fn are logged by the
// queue and never reach the submitter.
type TaskQueue interface {
	Submit(name string, fn func(context.Context) error)
}

type ContactUsecase interface {
	// Submit persists the message and schedules best-effort notifications.
	Submit(ctx context.Context, req *ContactRequest) (*ContactResult, error)
	// ListMessages lists recent messages; limit is clamped to [1, 200].
	ListMessages(ctx context.Context, limit int) (*MessageList, error)
}
