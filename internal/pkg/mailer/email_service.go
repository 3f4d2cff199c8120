package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendHotLeadAlert(toEmail, leadName, company string, score int, notes string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendHotLeadAlert(toEmail, leadName, company string, score int, notes string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Lead quente: %s (%d pontos)", leadName, score))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Novo lead quente</h2>
			<p><strong>Nome:</strong> %s</p>
			<p><strong>Empresa:</strong> %s</p>
			<p><strong>Score:</strong> %d</p>
			<p><strong>Observações:</strong></p>
			<p>%s</p>
			<p>Acesse o painel para assumir a conversa.</p>
		</div>
	`, leadName, company, score, notes)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send hot lead alert to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Hot lead alert sent to %s\n", toEmail)
	return nil
}
