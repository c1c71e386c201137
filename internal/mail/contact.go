package mail

import (
	"bytes"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/personal-blog-api/internal/models"
)

// ContactFromName is the display name on contact notifications
const ContactFromName = "Blog Contact Form"

// ContactSubjectPrefix marks contact notifications in the operator inbox
const ContactSubjectPrefix = "[Blog Contact] "

var contactHTML = htmltemplate.Must(htmltemplate.New("contact.html").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb;">New Contact Form Submission</h2>
  <div style="background: #f8fafc; padding: 20px; border-radius: 8px;">
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
    <p><strong>Subject:</strong> {{.Subject}}</p>
  </div>
  <div style="margin-top: 20px;">
    <h3 style="color: #374151;">Message:</h3>
    <div style="background: #f1f5f9; padding: 15px; border-radius: 6px; white-space: pre-wrap;">{{.Message}}</div>
  </div>
  <hr style="margin: 30px 0; border: none; border-top: 1px solid #e2e8f0;">
  <p style="color: #64748b; font-size: 12px;">This email was sent from your blog contact form.</p>
</div>
`))

var contactText = texttemplate.Must(texttemplate.New("contact.txt").Parse(`New Contact Form Submission

Name: {{.Name}}
Email: {{.Email}}
Subject: {{.Subject}}

Message:
{{.Message}}

---
Sent from your blog contact form.
`))

// ComposeContact renders the operator notification for a contact submission.
// Replies go straight to the submitter.
func ComposeContact(sub *models.ContactSubmission, from, to string) (*Message, error) {
	var html, text bytes.Buffer
	if err := contactHTML.Execute(&html, sub); err != nil {
		return nil, err
	}
	if err := contactText.Execute(&text, sub); err != nil {
		return nil, err
	}

	return &Message{
		FromName: ContactFromName,
		From:     from,
		To:       to,
		ReplyTo:  sub.Email,
		Subject:  ContactSubjectPrefix + sub.Subject,
		Text:     text.String(),
		HTML:     html.String(),
	}, nil
}
