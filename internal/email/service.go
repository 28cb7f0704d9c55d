package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/charllys777/appsaloes/internal/config"
)

// Service sends transactional mail over SMTP.
type Service struct {
	dialer *gomail.Dialer
	from   string
}

func NewService(cfg config.EmailConfig) *Service {
	return &Service{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendAdminWelcome tells a newly provisioned admin their console is ready.
func (s *Service) SendAdminWelcome(to, name string) error {
	body := fmt.Sprintf(
		"<p>Olá, %s!</p><p>Sua conta de administrador foi criada. Acesse o painel com este e-mail para começar.</p>",
		name,
	)
	return s.send(to, "Bem-vindo ao painel", body)
}

func (s *Service) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
