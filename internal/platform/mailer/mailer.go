// Copyright (c) 2026 YaMDb. All rights reserved.

/*
Package mailer provides outbound email delivery for confirmation codes.

It is a fire-and-forget collaborator: a delivery failure is logged but never
rolls back the signup that triggered it. Two implementations exist: a plain
SMTP sender for production and a logging sender for development, where the
confirmation code simply appears in the server log.
*/
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// Mailer is the delivery contract consumed by the auth service.
type Mailer interface {
	// Send delivers a plain-text message to a single recipient.
	Send(ctx context.Context, recipient, subject, body string) error
}

// # SMTP Delivery

// connectTimeout bounds the initial TCP dial to the SMTP relay.
const connectTimeout = 10 * time.Second

// SMTPMailer sends mail through a single SMTP relay using PLAIN auth.
type SMTPMailer struct {
	addr     string // host:port
	from     string
	username string
	password string
}

// NewSMTPMailer constructs an [SMTPMailer]. Credentials may be empty for
// relays that accept unauthenticated local submission.
func NewSMTPMailer(addr, from, username, password string) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from, username: username, password: password}
}

// Send implements [Mailer] over SMTP.
func (mailer *SMTPMailer) Send(ctx context.Context, recipient, subject, body string) error {
	host, _, err := net.SplitHostPort(mailer.addr)
	if err != nil {
		return fmt.Errorf("mailer: invalid SMTP address %q: %w", mailer.addr, err)
	}

	dialer := &net.Dialer{Timeout: connectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", mailer.addr)
	if err != nil {
		return fmt.Errorf("mailer: failed to dial %s: %w", mailer.addr, err)
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("mailer: failed to initialize SMTP session: %w", err)
	}
	defer func() { _ = client.Quit() }()

	if mailer.username != "" {
		auth := smtp.PlainAuth("", mailer.username, mailer.password, host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("mailer: SMTP auth failed: %w", err)
		}
	}

	if err := client.Mail(mailer.from); err != nil {
		return fmt.Errorf("mailer: MAIL FROM rejected: %w", err)
	}
	if err := client.Rcpt(recipient); err != nil {
		return fmt.Errorf("mailer: RCPT TO rejected: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("mailer: DATA command failed: %w", err)
	}

	message := buildMessage(mailer.from, recipient, subject, body)
	if _, err := writer.Write([]byte(message)); err != nil {
		return fmt.Errorf("mailer: failed to write message body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("mailer: failed to finalize message: %w", err)
	}

	return nil
}

// buildMessage assembles an RFC 5322 plain-text message.
func buildMessage(from, to, subject, body string) string {
	var builder strings.Builder
	builder.WriteString("From: " + from + "\r\n")
	builder.WriteString("To: " + to + "\r\n")
	builder.WriteString("Subject: " + subject + "\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(body)
	builder.WriteString("\r\n")
	return builder.String()
}

// # Development Delivery

// LogMailer writes outbound mail to the structured log instead of a relay.
// Used when no SMTP address is configured.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer constructs a [LogMailer].
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send implements [Mailer] by logging the message.
func (mailer *LogMailer) Send(ctx context.Context, recipient, subject, body string) error {
	mailer.logger.InfoContext(ctx, "mail_logged_instead_of_sent",
		slog.String("recipient", recipient),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}
