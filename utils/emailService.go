package utils

import (
	"chalkboard/config"
	"chalkboard/earnings"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers a single HTML email through SendGrid. With no API key
// configured the message is logged and dropped, which keeps local
// development quiet.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("SendGrid not configured; dropping email to %s (%s)", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("Chalkboard", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// SendWelcomeEmail greets a freshly registered user.
func SendWelcomeEmail(toEmail, toName string) error {
	body := fmt.Sprintf(`
		<h2>Welcome to Chalkboard, %s!</h2>
		<p>Your account is ready. Browse the catalog, enroll in a course, or publish your own.</p>`,
		toName,
	)
	return SendEmail(toEmail, toName, "Welcome to Chalkboard", body)
}

// SendEnrollmentEmail confirms a paid enrollment.
func SendEnrollmentEmail(toEmail, toName, courseName string, price float64) error {
	body := fmt.Sprintf(`
		<h2>You're enrolled!</h2>
		<p>Hi %s, your enrollment in <strong>%s</strong> is confirmed.</p>
		<p>Amount charged: %s</p>`,
		toName, courseName, earnings.FormatUSD(price),
	)
	return SendEmail(toEmail, toName, "Enrollment confirmed: "+courseName, body)
}
