package service

import (
	"context"
	"strings"

	"github.com/personal-blog-api/internal/mail"
	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/validation"
)

// contactService is the concrete implementation of ContactService
type contactService struct {
	mailer mail.Sender
	from   string
	to     string
}

// NewContactService creates a new ContactService that notifies the inbox at to
func NewContactService(mailer mail.Sender, from, to string) ContactService {
	return &contactService{
		mailer: mailer,
		from:   from,
		to:     to,
	}
}

// Submit validates a contact submission and relays it to the operator inbox.
// Nothing is stored.
func (s *contactService) Submit(ctx context.Context, submission *models.ContactSubmission) (string, error) {
	sub := models.ContactSubmission{
		Name:    strings.TrimSpace(submission.Name),
		Email:   strings.TrimSpace(submission.Email),
		Subject: strings.TrimSpace(submission.Subject),
		Message: submission.Message,
	}

	if errs := validation.ValidateContact(&sub); len(errs) > 0 {
		return "", errs
	}

	msg, err := mail.ComposeContact(&sub, s.from, s.to)
	if err != nil {
		return "", err
	}

	return s.mailer.Send(ctx, msg)
}
