package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// SendEmail sends a multipart (plain + HTML) message over SMTP. When SMTP is
// not configured it logs a mock send and reports success, so dev setups work
// without a mail account.
func SendEmail(recipient, subject, htmlBody, textBody string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := os.Getenv("SMTP_FROM_NAME")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] to:%s subject:%s", recipient, subject)
		return nil
	}

	safe := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
	}
	subject = safe(subject)

	if textBody == "" {
		textBody = htmlBody
	}
	if htmlBody == "" {
		htmlBody = textBody
	}

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	to := []string{recipient}
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	boundary := "----=_EVENTIX_EMAIL_BOUNDARY"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipient))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(textBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	if err := smtp.SendMail(addr, auth, smtpUser, to, []byte(sb.String())); err != nil {
		log.Printf("Failed to send email to %s: %v", recipient, err)
		return err
	}

	log.Printf("Email sent to %s", recipient)
	return nil
}

// SendTeamConfirmationEmail mails a one-time confirmation link to an invited
// team member.
func SendTeamConfirmationEmail(recipient, eventTitle, confirmLink string) error {
	subject := fmt.Sprintf("Team Registration Confirmation - %s", eventTitle)

	plainBody := fmt.Sprintf(
		"You have been added to a team for %s.\n\n"+
			"Please confirm your participation using the link below:\n%s\n\n"+
			"This link expires in 7 days.\n",
		eventTitle, confirmLink,
	)

	htmlBody := fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Team Registration</title>
<style>
body { background:#f5f7fb; font-family:Arial, Helvetica, sans-serif; color:#222; }
.container { max-width:640px; margin:20px auto; }
.card { background:#fff; border:1px solid #e6eef6; padding:24px; border-radius:8px; }
.btn { display:inline-block; padding:12px 20px; background:#0b74ff; color:#fff; text-decoration:none; border-radius:6px; margin-top:16px; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h2>Team Registration</h2>
    <p>You have been added to a team for <strong>%s</strong>.</p>
    <p>Please confirm your participation:</p>
    <a class="btn" href="%s" target="_blank">Confirm Registration</a>
    <p>This link expires in 7 days. If you did not expect this invitation, you can ignore this email.</p>
  </div>
</div>
</body>
</html>`,
		htmlEscape(eventTitle), confirmLink,
	)

	return SendEmail(recipient, subject, htmlBody, plainBody)
}

// SendStaffOTPEmail mails a short-lived login code.
func SendStaffOTPEmail(recipient, code string) error {
	subject := "Staff Login OTP - Eventix"
	plainBody := fmt.Sprintf("Your OTP for staff login is: %s\nValid for 10 minutes.\n", code)
	htmlBody := fmt.Sprintf(
		"<h2>Your OTP for Staff Login</h2><p>Your OTP is: <strong>%s</strong></p><p>Valid for 10 minutes.</p>",
		code,
	)
	return SendEmail(recipient, subject, htmlBody, plainBody)
}

// SendEventReminderEmail mails the standard reminder template for an event.
func SendEventReminderEmail(recipient, title, description, date, startTime, endTime, location, mode string) error {
	subject := fmt.Sprintf("Reminder: %s", title)

	plainBody := fmt.Sprintf(
		"Event Reminder\n\n%s\n%s\n\nDate: %s\nTime: %s - %s\nLocation: %s\nMode: %s\n",
		title, description, date, startTime, endTime, location, mode,
	)

	htmlBody := fmt.Sprintf(`
        <h2>Event Reminder</h2>
        <h3>%s</h3>
        <p>%s</p>
        <p><strong>Date:</strong> %s</p>
        <p><strong>Time:</strong> %s - %s</p>
        <p><strong>Location:</strong> %s</p>
        <p><strong>Mode:</strong> %s</p>`,
		htmlEscape(title), htmlEscape(description), date, startTime, endTime,
		htmlEscape(location), htmlEscape(mode),
	)

	return SendEmail(recipient, subject, htmlBody, plainBody)
}

// minimal html escaper for the small strings we use
func htmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(s)
}
