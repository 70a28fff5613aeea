// Package mailer delivers HTML email. Delivery is attempted once; callers
// decide how a failure is surfaced.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"user-account/pkg/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

var ErrDispatch = errors.New("email dispatch failed")

type Dispatcher interface {
	Send(ctx context.Context, to, subject, bodyHTML string) error
}

// sender is the part of *gomail.Dialer the mailer uses.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	from   string
	dialer sender
	log    *zap.Logger
}

func NewSMTPMailer(config utils.EmailConfig, log *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		from:   config.From,
		dialer: gomail.NewDialer(config.Host, config.Port, config.User, config.Password),
		log:    log.With(zap.String("component", "mailer")),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, bodyHTML string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrDispatch, err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", bodyHTML)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Error("Failed to send email",
			zap.Error(err),
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return fmt.Errorf("%w: send to %s: %w", ErrDispatch, to, err)
	}

	m.log.Info("Email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
