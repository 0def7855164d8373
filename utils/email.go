package utils

import (
	"fmt"
	"net/smtp"
	"os"
)

// SendEmail sends an email to the given address using the configured SMTP
// account.
func SendEmail(to, subject, body string) error {
	from := os.Getenv("EMAIL_FROM")
	password := os.Getenv("EMAIL_PASSWORD")

	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	if smtpHost == "" {
		smtpHost = "smtp.gmail.com"
	}
	if smtpPort == "" {
		smtpPort = "587"
	}

	if from == "" || password == "" {
		return fmt.Errorf("EMAIL_FROM or EMAIL_PASSWORD is not set")
	}

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

// WelcomeEmailBody builds the HTML body for the credentials email sent when
// an admin adds a user.
func WelcomeEmailBody(name, email, password, url string) string {
	return fmt.Sprintf(`<html>
<body>
	<h1>Welcome to Our Platform</h1>
	<p>Hello, %s!</p>
	<p>Your account has been created. You can log in with the following credentials:</p>
	<p><strong>Email:</strong> %s<br><strong>Password:</strong> %s</p>
	<p>For security reasons, we recommend changing your password after your first login.</p>
	<p><a href="%s">Log In Now</a></p>
	<p>This is an automated message. Please do not reply to this email.</p>
</body>
</html>`, name, email, password, url)
}

// PasswordResetEmailBody builds the HTML body for the reset-link email.
func PasswordResetEmailBody(name, url string) string {
	return fmt.Sprintf(`<html>
<body>
	<h1>Password Reset Request</h1>
	<p>Hello %s,</p>
	<p>We received a request to reset the password for your account. To reset it, click the link below:</p>
	<p><a href="%s">Reset My Password</a></p>
	<p>If you didn't request a password reset, you can safely ignore this email. The link expires in 1 hour.</p>
	<p>This is an automated message. Please do not reply to this email.</p>
</body>
</html>`, name, url)
}
