package utils

import (
	"fmt"
	"html"

	"eduplatform/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers an HTML message through SendGrid. Without an API key the message is only logged.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	logger := Component("mailer")
	cfg := config.AppConfig
	if cfg == nil || cfg.SendgridApiKey == "" {
		logger.Info().Str("to", toEmail).Str("subject", subject).Msg("email delivery disabled, skipping")
		return nil
	}

	from := mail.NewEmail(cfg.EmailFromName, cfg.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, StripHTML(htmlBody), htmlBody)

	resp, err := sendgrid.NewSendClient(cfg.SendgridApiKey).Send(message)
	if err != nil {
		logger.Error().Err(err).Str("to", toEmail).Msg("error sending email")
		return err
	}
	if resp.StatusCode >= 400 {
		logger.Error().Int("status", resp.StatusCode).Str("to", toEmail).Msg("sendgrid rejected email")
		return fmt.Errorf("sendgrid: status %d", resp.StatusCode)
	}

	logger.Debug().Str("to", toEmail).Str("subject", subject).Msg("email sent")
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F4F6FB; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #4F46E5; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; }
			.content { padding: 40px 30px; color: #1F2937; line-height: 1.6; }
			.footer { background-color: #F4F6FB; padding: 20px; text-align: center; font-size: 12px; color: #6B7280; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #4F46E5; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>EduPlatform</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">&copy; EduPlatform. You received this email because you have an account with us.</div>
		</div>
	</body>
	</html>
	`, html.EscapeString(title), bodyContent)
}

func baseURL() string {
	if config.AppConfig == nil {
		return ""
	}
	return config.AppConfig.BaseURL
}

// deliver sends in the background; failures are already logged by SendEmail.
func deliver(toEmail, toName, subject, title, body string) {
	go func() {
		_ = SendEmail(toEmail, toName, subject, getEmailTemplate(title, body))
	}()
}

func SendVerificationEmail(email, name, token string) {
	link := fmt.Sprintf("%s/api/auth/verify-email/%s", baseURL(), token)
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Thanks for signing up. Please confirm your email address to activate your account.</p>
		<p><a class="btn" href="%s">Verify email</a></p>
		<p>This link expires in 24 hours.</p>
	`, html.EscapeString(name), html.EscapeString(link))

	deliver(email, name, "Verify your EduPlatform account", "Confirm your email", body)
}

func SendPasswordResetEmail(email, name, token string) {
	link := fmt.Sprintf("%s/reset-password?token=%s", baseURL(), token)
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>We received a request to reset your password.</p>
		<p><a class="btn" href="%s">Reset password</a></p>
		<p>This link expires in 1 hour. If you did not ask for it, you can ignore this email.</p>
	`, html.EscapeString(name), html.EscapeString(link))

	deliver(email, name, "Reset your EduPlatform password", "Password reset", body)
}

func SendEnrollmentEmail(email, name, courseTitle string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You are now enrolled in <strong>%s</strong>.</p>
		<p><a class="btn" href="%s/student-dashboard">Start learning</a></p>
	`, html.EscapeString(name), html.EscapeString(courseTitle), html.EscapeString(baseURL()))

	deliver(email, name, "Enrolled: "+courseTitle, "Welcome to your new course", body)
}

func SendPaymentReceiptEmail(email, name, courseTitle string, amount float64, currency string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>We received your payment of <strong>%.2f %s</strong> for <strong>%s</strong>.</p>
	`, html.EscapeString(name), amount, html.EscapeString(currency), html.EscapeString(courseTitle))

	deliver(email, name, "Payment received", "Thank you for your purchase", body)
}

func SendCourseCompletedEmail(email, name, courseTitle string, enrollmentID uint) {
	link := fmt.Sprintf("%s/api/enrollments/certificate/%d", baseURL(), enrollmentID)
	body := fmt.Sprintf(`
		<p>Congratulations %s,</p>
		<p>You completed <strong>%s</strong>. Your certificate is ready.</p>
		<p><a class="btn" href="%s">View certificate</a></p>
	`, html.EscapeString(name), html.EscapeString(courseTitle), html.EscapeString(link))

	deliver(email, name, "Course completed: "+courseTitle, "Well done!", body)
}
