package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/ManuelReschke/TableFox/internal/pkg/env"
)

// SendMail sends an HTML email via SMTP
func SendMail(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	err := smtp.SendMail(addr, auth, sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	} else {
		log.Printf("Email sent to %s via %s", to, addr)
	}
	return err
}

// SendTrialExpiryWarning notifies a restaurant that its trial is about to end.
func SendTrialExpiryWarning(to string, restaurantName string, daysLeft int) error {
	subject, body := trialExpiryMessage(restaurantName, daysLeft)
	return SendMail(to, subject, body)
}

// SendSubscriptionConfirmation confirms a completed checkout.
func SendSubscriptionConfirmation(to string, restaurantName string, planName string) error {
	subject, body := subscriptionConfirmationMessage(restaurantName, planName)
	return SendMail(to, subject, body)
}

// SendCancellationConfirmation confirms a cancellation including the access end date.
func SendCancellationConfirmation(to string, restaurantName string, accessUntil string) error {
	subject, body := cancellationConfirmationMessage(restaurantName, accessUntil)
	return SendMail(to, subject, body)
}

func trialExpiryMessage(restaurantName string, daysLeft int) (string, string) {
	subject := fmt.Sprintf("Deine TableFox Testphase endet in %d Tagen", daysLeft)
	if daysLeft == 1 {
		subject = "Deine TableFox Testphase endet morgen"
	}
	body := fmt.Sprintf(
		"<p>Hallo %s,</p>"+
			"<p>deine Testphase läuft in %d Tagen ab. Wähle jetzt einen Tarif, damit dein Kassensystem ohne Unterbrechung weiterläuft.</p>"+
			"<p><a href=\"https://www.tablefox.de/plans\">Tarif wählen</a></p>",
		restaurantName, daysLeft,
	)
	return subject, body
}

func subscriptionConfirmationMessage(restaurantName string, planName string) (string, string) {
	subject := "Dein TableFox Abo ist aktiv"
	body := fmt.Sprintf(
		"<p>Hallo %s,</p>"+
			"<p>dein Abo im Tarif <strong>%s</strong> ist ab sofort aktiv. Danke für dein Vertrauen!</p>",
		restaurantName, planName,
	)
	return subject, body
}

func cancellationConfirmationMessage(restaurantName string, accessUntil string) (string, string) {
	subject := "Dein TableFox Abo wurde gekündigt"
	body := fmt.Sprintf(
		"<p>Hallo %s,</p>"+
			"<p>deine Kündigung ist eingegangen. Du kannst TableFox noch bis zum %s nutzen.</p>",
		restaurantName, accessUntil,
	)
	return subject, body
}
