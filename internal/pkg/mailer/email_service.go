package mailer

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendEscalationNotice(toEmail, sessionID, customerName string, transcript []string) error
	SendTransactionReceipt(toEmail, referenceID, kind string, amountYen int) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

// SendEscalationNotice emails the support desk when a customer asks for
// a human agent, carrying the recent transcript.
func (s *emailService) SendEscalationNotice(toEmail, sessionID, customerName string, transcript []string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Escalation: %s needs an agent (session %s)", customerName, sessionID))

	var lines []string
	for _, t := range transcript {
		lines = append(lines, "<p>"+html.EscapeString(t)+"</p>")
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Customer escalation</h2>
			<p><b>Customer:</b> %s</p>
			<p><b>Session:</b> %s</p>
			<h3>Recent transcript</h3>
			%s
		</div>
	`, html.EscapeString(customerName), html.EscapeString(sessionID), strings.Join(lines, "\n"))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send escalation notice to %s: %v\n", toEmail, err)
		return err
	}
	fmt.Printf("[MAILER] Escalation notice sent to %s\n", toEmail)
	return nil
}

// SendTransactionReceipt confirms a processed cancellation, return, or
// warranty claim to the customer.
func (s *emailService) SendTransactionReceipt(toEmail, referenceID, kind string, amountYen int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Your %s has been processed (%s)", kind, referenceID))

	amountLine := ""
	if amountYen > 0 {
		amountLine = fmt.Sprintf("<p>Refund amount: ¥%d</p>", amountYen)
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s processed</h2>
			<p>Reference: <b>%s</b></p>
			%s
			<p>Thank you for shopping with ShopEZ.</p>
		</div>
	`, html.EscapeString(kind), html.EscapeString(referenceID), amountLine)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send receipt to %s: %v\n", toEmail, err)
		return err
	}
	return nil
}
