package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/mindsender/mindsender/internal/config"
	"github.com/mindsender/mindsender/internal/models"
	"gopkg.in/gomail.v2"
)

// SMTPMailer delivers reminder emails synchronously, one call per message.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	appURL string
}

func NewSMTP(cfg config.SMTPConfig, appURL string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		appURL: appURL,
	}
}

func (m *SMTPMailer) SendReminder(to, displayName string, task models.Task) error {
	body, err := renderReminder(reminderData{
		FirstName:   firstName(displayName),
		Subject:     task.Subject,
		Description: task.Description,
		DueTime:     task.DueDate.Local().Format("15:04"),
		AppURL:      m.appURL,
	})

	if err != nil {
		return fmt.Errorf("failed to render reminder body: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, "MindSender AI")
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Reminder: %s", task.Subject))
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send reminder to %s: %w", to, err)
	}

	return nil
}

type reminderData struct {
	FirstName   string
	Subject     string
	Description string
	DueTime     string
	AppURL      string
}

var reminderTemplate = template.Must(template.New("reminder").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="margin: 0; padding: 0; background-color: #f4f4f5; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;">
  <div style="max-width: 600px; margin: 40px auto; background-color: #ffffff; border-radius: 16px; overflow: hidden;">
    <div style="background: linear-gradient(135deg, #7c3aed 0%, #4f46e5 100%); padding: 30px 40px; text-align: center;">
      <h1 style="color: #ffffff; margin: 0; font-size: 24px; font-weight: 800;">MindSender</h1>
      <p style="color: rgba(255, 255, 255, 0.9); margin: 10px 0 0 0; font-size: 14px;">Your intelligent assistant</p>
    </div>
    <div style="padding: 40px;">
      <h2 style="color: #1f2937; margin-top: 0; font-size: 20px;">Hi, {{.FirstName}}</h2>
      <p style="color: #4b5563; line-height: 1.6; font-size: 16px;">
        You have a scheduled task coming up soon. Here are the details:
      </p>
      <div style="background-color: #f8fafc; border: 1px solid #e2e8f0; border-radius: 12px; padding: 24px; margin: 24px 0; border-left: 4px solid #7c3aed;">
        <h3 style="margin: 0 0 8px 0; color: #1e293b; font-size: 18px;">{{.Subject}}</h3>
        {{if .Description}}<p style="margin: 0 0 16px 0; color: #64748b; font-size: 14px;">{{.Description}}</p>{{end}}
        <div style="background-color: #ede9fe; color: #7c3aed; padding: 6px 12px; border-radius: 20px; font-size: 12px; font-weight: 600; display: inline-block;">
          Due: {{.DueTime}}
        </div>
      </div>
      <div style="text-align: center; margin-top: 32px;">
        <a href="{{.AppURL}}" style="display: inline-block; background-color: #111827; color: #ffffff; padding: 14px 28px; text-decoration: none; border-radius: 50px; font-weight: 600; font-size: 14px;">
          Open the dashboard
        </a>
      </div>
    </div>
    <div style="background-color: #f8fafc; padding: 20px; text-align: center; border-top: 1px solid #e2e8f0;">
      <p style="margin: 0; color: #94a3b8; font-size: 12px;">
        Sent automatically by <strong>MindSender AI</strong>
      </p>
    </div>
  </div>
</body>
</html>`))

func renderReminder(data reminderData) (string, error) {
	var buf bytes.Buffer

	if err := reminderTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func firstName(displayName string) string {
	fields := strings.Fields(displayName)

	if len(fields) == 0 {
		return "there"
	}

	return fields[0]
}
