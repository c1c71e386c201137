package mail

import (
	"context"
	"errors"
)

var (
	// ErrAuth means the transport rejected our credentials
	ErrAuth = errors.New("email authentication failed")
	// ErrConnection means the transport could not be reached
	ErrConnection = errors.New("could not connect to email server")
	// ErrNotConfigured means no transport host is configured
	ErrNotConfigured = errors.New("email transport is not configured")
)

// Message is one outbound email with a plain-text body and an optional HTML alternative
type Message struct {
	FromName string
	From     string
	To       string
	ReplyTo  string
	Subject  string
	Text     string
	HTML     string
}

// Sender delivers messages and returns the Message-Id it assigned
type Sender interface {
	Send(ctx context.Context, msg *Message) (string, error)
}
