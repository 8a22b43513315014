package service

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/mirakh/gallery-backend/config"
	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/pkg/logger"
)

// Mailer sends transactional email. Implementations must be safe to call
// from request handlers; failures are reported but callers treat them as
// non-fatal.
type Mailer interface {
	SendOrderConfirmation(order *model.Order) error
	SendAdminOrderAlert(order *model.Order) error
	SendContactNotification(contact *model.Contact) error
	SendContactConfirmation(contact *model.Contact) error
}

const orderConfirmationTemplate = `<html>
<body>
  <h2>Thank you for your order, {{.CustomerName}}!</h2>
  <p>Your order <strong>{{.OrderNumber}}</strong> has been received.</p>
  <table border="0" cellpadding="4">
    {{range .OrderItems}}
    <tr>
      <td>{{.Painting.Title}}</td>
      <td>x{{.Quantity}}</td>
      <td>${{printf "%.2f" .Price}}</td>
    </tr>
    {{end}}
  </table>
  <p>Total: <strong>${{printf "%.2f" .TotalAmount}}</strong></p>
  <p>We will contact you at {{.CustomerEmail}} once your order ships.</p>
</body>
</html>`

const adminOrderAlertTemplate = `<html>
<body>
  <h2>New order {{.OrderNumber}}</h2>
  <p>{{.CustomerName}} ({{.CustomerEmail}}{{if .CustomerPhone}}, {{.CustomerPhone}}{{end}})</p>
  <p>Shipping: {{.ShippingAddress}}</p>
  <table border="0" cellpadding="4">
    {{range .OrderItems}}
    <tr>
      <td>{{.Painting.Title}}</td>
      <td>x{{.Quantity}}</td>
      <td>${{printf "%.2f" .Price}}</td>
    </tr>
    {{end}}
  </table>
  <p>Total: <strong>${{printf "%.2f" .TotalAmount}}</strong></p>
</body>
</html>`

const contactNotificationTemplate = `<html>
<body>
  <h2>New contact message</h2>
  <p>From: {{.Name}} ({{.Email}})</p>
  {{if .Subject}}<p>Subject: {{.Subject}}</p>{{end}}
  <p>{{.Message}}</p>
</body>
</html>`

const contactConfirmationTemplate = `<html>
<body>
  <h2>Thank you for reaching out, {{.Name}}!</h2>
  <p>We received your message and will get back to you shortly.</p>
</body>
</html>`

var (
	orderConfirmationTmpl   = template.Must(template.New("order_confirmation").Parse(orderConfirmationTemplate))
	adminOrderAlertTmpl     = template.Must(template.New("admin_order_alert").Parse(adminOrderAlertTemplate))
	contactNotificationTmpl = template.Must(template.New("contact_notification").Parse(contactNotificationTemplate))
	contactConfirmationTmpl = template.Must(template.New("contact_confirmation").Parse(contactConfirmationTemplate))
)

type mailService struct {
	cfg config.MailConfig
}

// NewMailService builds an SMTP-backed Mailer. When mail is disabled in the
// config every send is a logged no-op, which keeps local development and
// tests free of SMTP dependencies.
func NewMailService(cfg config.MailConfig) Mailer {
	return &mailService{cfg: cfg}
}

func (s *mailService) SendOrderConfirmation(order *model.Order) error {
	subject := fmt.Sprintf("Order confirmation %s", order.OrderNumber)
	return s.send(order.CustomerEmail, subject, orderConfirmationTmpl, order)
}

func (s *mailService) SendAdminOrderAlert(order *model.Order) error {
	subject := fmt.Sprintf("New order %s", order.OrderNumber)
	return s.send(s.cfg.AdminEmail, subject, adminOrderAlertTmpl, order)
}

func (s *mailService) SendContactNotification(contact *model.Contact) error {
	subject := fmt.Sprintf("New contact message from %s", contact.Name)
	return s.send(s.cfg.AdminEmail, subject, contactNotificationTmpl, contact)
}

func (s *mailService) SendContactConfirmation(contact *model.Contact) error {
	return s.send(contact.Email, "We received your message", contactConfirmationTmpl, contact)
}

func (s *mailService) send(to, subject string, tmpl *template.Template, data interface{}) error {
	if !s.cfg.Enabled {
		logger.Debug("Mail disabled, skipping send", map[string]interface{}{
			"to":      to,
			"subject": subject,
		})
		return nil
	}
	if to == "" {
		return fmt.Errorf("empty recipient for %q", subject)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		s.cfg.From, to, subject, body.String(),
	)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info("Email sent", map[string]interface{}{
		"to":      to,
		"subject": subject,
	})
	return nil
}
