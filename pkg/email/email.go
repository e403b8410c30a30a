package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"recruiter-backend/config"
)

// Mailer handles sending notification emails via SMTP
type Mailer struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// InterviewMailData holds the data rendered into interview notification emails
type InterviewMailData struct {
	CandidateName   string
	InterviewerName string
	JobTitle        string
	ScheduledDate   time.Time
	Duration        int
	InterviewType   string
	MeetingLink     string
	Recommendation  string
}

// NewMailer creates a mailer from SMTP configuration
func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

// IsConfigured returns true if the mailer has enough configuration to send
func (m *Mailer) IsConfigured() bool {
	return m.host != "" && m.port != "" && m.username != "" && m.password != ""
}

const reminderTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Interview Reminder</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Upcoming Interview Reminder</h1>
        </div>
        <div class="content">
            <div class="field">
                <span class="label">Position:</span> {{.JobTitle}}
            </div>
            <div class="field">
                <span class="label">Candidate:</span> {{.CandidateName}}
            </div>
            <div class="field">
                <span class="label">Interviewer:</span> {{.InterviewerName}}
            </div>
            <div class="field">
                <span class="label">When:</span> {{.ScheduledDate.Format "Mon, 02 Jan 2006 15:04 MST"}} ({{.Duration}} minutes)
            </div>
            <div class="field">
                <span class="label">Type:</span> {{.InterviewType}}
            </div>
            {{if .MeetingLink}}
            <div class="field">
                <span class="label">Meeting link:</span> <a href="{{.MeetingLink}}">{{.MeetingLink}}</a>
            </div>
            {{end}}
        </div>
        <div class="footer">
            <p>This is an automated reminder. Please do not reply to this email.</p>
        </div>
    </div>
</body>
</html>`

const feedbackTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Interview Feedback</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Interview Feedback Available</h1>
        </div>
        <div class="content">
            <p>Hi {{.CandidateName}},</p>
            <p>Feedback for your interview for the <strong>{{.JobTitle}}</strong> position is now available.</p>
            <div class="message-box">{{.Recommendation}}</div>
        </div>
        <div class="footer">
            <p>This is an automated notification. Please do not reply to this email.</p>
        </div>
    </div>
</body>
</html>`

var (
	reminderTmpl = template.Must(template.New("reminder").Parse(reminderTemplate))
	feedbackTmpl = template.Must(template.New("feedback").Parse(feedbackTemplate))
)

// SendInterviewReminder sends the 24-hour reminder to the given recipients
// (candidate and interviewer).
func (m *Mailer) SendInterviewReminder(to []string, data InterviewMailData) error {
	subject := fmt.Sprintf("Reminder: Upcoming Interview for %s", data.JobTitle)
	var body bytes.Buffer
	if err := reminderTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render reminder email: %w", err)
	}
	return m.send(to, subject, body.Bytes())
}

// SendFeedbackNotice notifies the candidate that interview feedback was submitted
func (m *Mailer) SendFeedbackNotice(to []string, data InterviewMailData) error {
	subject := fmt.Sprintf("Interview Feedback for %s", data.JobTitle)
	var body bytes.Buffer
	if err := feedbackTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render feedback email: %w", err)
	}
	return m.send(to, subject, body.Bytes())
}

func (m *Mailer) send(to []string, subject string, htmlBody []byte) error {
	if !m.IsConfigured() {
		return fmt.Errorf("email service is not configured")
	}

	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.fromEmail))
	for _, rcpt := range to {
		msg.WriteString(fmt.Sprintf("To: %s\r\n", rcpt))
	}
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.Write(htmlBody)

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.fromEmail, to, msg.Bytes()); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
