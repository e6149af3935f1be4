package mailer

import (
	"context"
	"fmt"

	"github.com/takkat/storefront/internal/orders/domain"
	"gopkg.in/gomail.v2"
)

type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	siteURL  string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	FromName string
	SiteURL  string
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:     cfg.User,
		fromName: cfg.FromName,
		siteURL:  cfg.SiteURL,
	}
}

func (m *SMTPMailer) SendOrderConfirmation(ctx context.Context, order *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := orderEmailBody(order, m.siteURL)
	if err != nil {
		return fmt.Errorf("render confirmation email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", order.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Order Confirmation #%s", order.ID))
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}

	return nil
}
