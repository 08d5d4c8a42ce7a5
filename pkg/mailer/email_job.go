package mailer

import "fmt"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// HTML is optional; Text is recommended as fallback.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// NewWelcomeJob builds the registration welcome mail.
func NewWelcomeJob(to, fullName, username string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Welcome to Clipstream",
		Text:    fmt.Sprintf("Hi %s, your channel @%s is ready. Upload your first video and start sharing.", fullName, username),
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your channel <strong>@%s</strong> is ready. Upload your first video and start sharing.</p>",
			fullName, username),
	}
}
