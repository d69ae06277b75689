package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"Himal/Models"
)

// Send delivers one message over SMTP using the given configuration. TLS is
// the default; plain SMTP is kept for in-office relays.
func Send(config Models.EmailConfig, message Models.EmailMessage) error {
	headers := map[string]string{
		"From":    fmt.Sprintf("%s <%s>", config.FromName, config.FromEmail),
		"To":      strings.Join(message.To, ", "),
		"Subject": message.Subject,
	}
	if len(message.CC) > 0 {
		headers["Cc"] = strings.Join(message.CC, ", ")
	}
	if message.IsHTML {
		headers["MIME-Version"] = "1.0"
		headers["Content-Type"] = "text/html; charset=UTF-8"
	} else {
		headers["Content-Type"] = "text/plain; charset=UTF-8"
	}

	var body strings.Builder
	for key, value := range headers {
		body.WriteString(fmt.Sprintf("%s: %s\r\n", key, value))
	}
	body.WriteString("\r\n")
	body.WriteString(message.Body)

	auth := smtp.PlainAuth("", config.Username, config.Password, config.SMTPServer)

	var recipients []string
	recipients = append(recipients, message.To...)
	recipients = append(recipients, message.CC...)
	recipients = append(recipients, message.BCC...)

	serverAddr := fmt.Sprintf("%s:%d", config.SMTPServer, config.SMTPPort)

	if !config.TLSEnabled {
		return smtp.SendMail(serverAddr, auth, config.FromEmail, recipients, []byte(body.String()))
	}

	tlsConfig := &tls.Config{
		ServerName:         config.SMTPServer,
		InsecureSkipVerify: config.SkipTLSCheck,
	}
	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return fmt.Errorf("connecting to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, config.SMTPServer)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication: %w", err)
	}
	if err := client.Mail(config.FromEmail); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	for _, recipient := range recipients {
		if err := client.Rcpt(recipient); err != nil {
			return fmt.Errorf("adding recipient %s: %w", recipient, err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("opening data connection: %w", err)
	}
	if _, err := writer.Write([]byte(body.String())); err != nil {
		return fmt.Errorf("writing email body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing data connection: %w", err)
	}
	return client.Quit()
}

// PayrollSummaryMessage builds the mail sent to accounts after a payroll run.
func PayrollSummaryMessage(to []string, bsYear, bsMonth, employeeCount int, totalPay float64) Models.EmailMessage {
	return Models.EmailMessage{
		To:      to,
		Subject: fmt.Sprintf("Payroll %d-%02d (BS) posted", bsYear, bsMonth),
		Body: fmt.Sprintf(
			"Payroll for %d-%02d (BS) has been posted.\r\n\r\nEmployees paid: %d\r\nTotal net pay: %.2f\r\n",
			bsYear, bsMonth, employeeCount, totalPay),
	}
}

// POStatusMessage builds the mail sent to a party contact when their purchase
// order changes status.
func POStatusMessage(to []string, poNumber, status string) Models.EmailMessage {
	return Models.EmailMessage{
		To:      to,
		Subject: fmt.Sprintf("Purchase Order %s: %s", poNumber, status),
		Body:    fmt.Sprintf("Purchase order %s has been marked %s.\r\n", poNumber, status),
	}
}
