package auth

import (
	"fmt"
	"net/smtp"
	"strings"

	"portal-backend/internal/config"
)

// SendMagicLinkEmail envía el link de acceso por SMTP. El que llama decide
// si un fallo acá es fatal o best-effort.
func SendMagicLinkEmail(cfg *config.Config, to, linkURL string) error {
	if cfg.SMTPHost == "" {
		return fmt.Errorf("SMTP no configurado")
	}

	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)

	htmlBody := fmt.Sprintf(
		"<p>Hola,</p>"+
			"<p>Usá este link para entrar al portal de clientes de Tandem Studio:</p>"+
			"<p><a href=\"%s\">Acceder al portal</a></p>"+
			"<p>El link expira en 1 hora.</p>",
		linkURL,
	)

	headers := []string{
		"From: " + cfg.SMTPFrom,
		"To: " + to,
		"Subject: Tu link de acceso al portal",
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	addr := cfg.SMTPHost + ":" + cfg.SMTPPort
	return smtp.SendMail(addr, auth, cfg.SMTPFrom, []string{to}, []byte(msg))
}
