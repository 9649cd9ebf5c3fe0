package services

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var contactNotificationTmpl = template.Must(template.New("contact").Parse(
	`New contact message received.

From: {{.Name}} <{{.Email}}>
Subject: {{.Subject}}

{{.Message}}
`))

var competitionNotificationTmpl = template.Must(template.New("competition").Parse(
	`Competition {{.Action}}: {{.Title}}

Category: {{.Category}}
Deadline: {{.Deadline}}
Status: {{.Status}}
`))

// Mailer sends admin notification and reply emails through SendGrid.
// With no API key configured every send is a silent no-op, so local
// deployments work without an account.
type Mailer struct {
	client     *sendgrid.Client
	fromName   string
	fromEmail  string
	adminEmail string
}

func NewMailer(apiKey, siteName, adminEmail string) *Mailer {
	m := &Mailer{
		fromName:   siteName,
		fromEmail:  "noreply@eruditescholars.org",
		adminEmail: adminEmail,
	}
	if apiKey != "" {
		m.client = sendgrid.NewSendClient(apiKey)
	}
	return m
}

// Enabled reports whether sends will actually go out.
func (m *Mailer) Enabled() bool {
	return m.client != nil && m.adminEmail != ""
}

// SendContactNotification tells the admin a new contact message
// arrived.
func (m *Mailer) SendContactNotification(ctx context.Context, name, email, subject, body string) error {
	if !m.Enabled() {
		return nil
	}
	var text strings.Builder
	err := contactNotificationTmpl.Execute(&text, map[string]string{
		"Name": name, "Email": email, "Subject": subject, "Message": body,
	})
	if err != nil {
		return WrapError(err, "render contact notification")
	}
	return m.send(ctx, m.adminEmail, "New contact message: "+subject, text.String())
}

// SendCompetitionNotification tells the admin a competition was
// created, updated or deleted.
func (m *Mailer) SendCompetitionNotification(ctx context.Context, action, title, category, deadline, status string) error {
	if !m.Enabled() {
		return nil
	}
	var text strings.Builder
	err := competitionNotificationTmpl.Execute(&text, map[string]string{
		"Action": action, "Title": title, "Category": category, "Deadline": deadline, "Status": status,
	})
	if err != nil {
		return WrapError(err, "render competition notification")
	}
	return m.send(ctx, m.adminEmail, fmt.Sprintf("Competition %s: %s", action, title), text.String())
}

// SendReply sends the admin's reply to a contact-message author.
func (m *Mailer) SendReply(ctx context.Context, to, subject, body string) error {
	if m.client == nil {
		return nil
	}
	if !strings.HasPrefix(strings.ToLower(subject), "re:") {
		subject = "Re: " + subject
	}
	return m.send(ctx, to, subject, body)
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	message := mail.NewV3Mail()
	message.From = mail.NewEmail(m.fromName, m.fromEmail)
	message.Subject = subject

	personalization := mail.NewPersonalization()
	personalization.To = append(personalization.To, mail.NewEmail("", to))
	message.Personalizations = append(message.Personalizations, personalization)
	message.Content = append(message.Content, mail.NewContent("text/plain", body))

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return WrapError(err, "send email")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("send email: sendgrid returned %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
