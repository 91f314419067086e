// Package mailer sends transactional email over SMTP.
package mailer

import (
	"bytes"
	"html/template"

	"github.com/go-mail/mail/v2"
	"github.com/dkratzer/taskboard-api/internal/config"
)

// welcomeTemplate is the mail sent after a successful registration.
// Templates are defined inline; there is only one mail in the system.
var welcomeTemplate = template.Must(template.New("welcome").Parse(`
{{define "subject"}}Welcome to Taskboard{{end}}
{{define "plainBody"}}Hi,

Your Taskboard account {{.Email}} is ready. Create a project and start
adding tasks.

The Taskboard team
{{end}}
{{define "htmlBody"}}<html><body>
<p>Hi,</p>
<p>Your Taskboard account <strong>{{.Email}}</strong> is ready. Create a
project and start adding tasks.</p>
<p>The Taskboard team</p>
</body></html>{{end}}
`))

// Mailer sends mail through an SMTP relay.
type Mailer struct {
	dialer *mail.Dialer
	sender string
}

// New creates a Mailer from the given mail configuration.
func New(cfg config.MailConfig) *Mailer {
	dialer := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &Mailer{
		dialer: dialer,
		sender: cfg.Sender,
	}
}

// SendWelcome sends the registration welcome mail to the given address.
// Transient SMTP failures are retried twice before giving up.
func (m *Mailer) SendWelcome(to string) error {
	return m.send(to, welcomeTemplate, struct{ Email string }{Email: to})
}

func (m *Mailer) send(to string, tmpl *template.Template, data any) error {
	var subject bytes.Buffer
	if err := tmpl.ExecuteTemplate(&subject, "subject", data); err != nil {
		return err
	}
	var plainBody bytes.Buffer
	if err := tmpl.ExecuteTemplate(&plainBody, "plainBody", data); err != nil {
		return err
	}
	var htmlBody bytes.Buffer
	if err := tmpl.ExecuteTemplate(&htmlBody, "htmlBody", data); err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", to)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	msg.AddAlternative("text/html", htmlBody.String())

	var err error
	for i := 0; i < 3; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			break
		}
	}
	return err
}
