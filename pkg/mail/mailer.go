package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"gopkg.in/gomail.v2"

	"github.com/srijeyam/tyrestore-backend/pkg/config"
	pkgerrors "github.com/srijeyam/tyrestore-backend/pkg/errors"
	"github.com/srijeyam/tyrestore-backend/pkg/logger"
)

// Message is a single HTML email.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

type smtpDialer interface {
	Dial() (gomail.SendCloser, error)
	DialAndSend(m ...*gomail.Message) error
}

// Sender delivers email over SMTP with bounded exponential retry. Delivery
// waits 2^attempt times the base delay after each failed attempt and gives
// the last error back to the caller once the attempt budget is spent.
type Sender struct {
	dialer      smtpDialer
	from        string
	maxAttempts int
	newBackoff  func() retry.Backoff
	logg        *logger.Logger
}

// New builds a Sender from SMTP configuration.
func New(cfg config.SMTPConfig, logg *logger.Logger) *Sender {
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	base := cfg.RetryBaseDelay
	if base <= 0 {
		base = 2 * time.Second
	}

	return &Sender{
		dialer:      gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:        cfg.Sender(),
		maxAttempts: attempts,
		// First wait is 2*base, doubling each failure: 2^1*base, 2^2*base, ...
		newBackoff: func() retry.Backoff { return retry.NewExponential(2 * base) },
		logg:       logg,
	}
}

// Send delivers the message, retrying transient failures up to the attempt
// budget. A send that succeeds on an earlier attempt stops immediately.
// Cancelling the context aborts the backoff wait.
func (s *Sender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", s.from)
	gm.SetHeader("To", msg.To...)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)

	backoff := retry.WithMaxRetries(uint64(s.maxAttempts-1), s.newBackoff())

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		actx := s.attemptContext(ctx, attempt, strings.Join(msg.To, ","))
		if s.logg != nil {
			s.logg.Info(actx, "mail.send.attempt")
		}

		if err := s.dialer.DialAndSend(gm); err != nil {
			s.logFailure(actx, err)
			return retry.RetryableError(err)
		}

		if s.logg != nil {
			s.logg.Info(actx, "mail.send.delivered")
		}
		return nil
	})
}

// Verify dials the SMTP server to confirm the transport configuration,
// using the same bounded retry as Send.
func (s *Sender) Verify(ctx context.Context) error {
	backoff := retry.WithMaxRetries(uint64(s.maxAttempts-1), s.newBackoff())

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		actx := s.attemptContext(ctx, attempt, "")
		if s.logg != nil {
			s.logg.Info(actx, "mail.verify.attempt")
		}

		closer, err := s.dialer.Dial()
		if err != nil {
			s.logFailure(actx, err)
			return retry.RetryableError(err)
		}
		_ = closer.Close()
		return nil
	})
}

func (s *Sender) attemptContext(ctx context.Context, attempt int, to string) context.Context {
	if s.logg == nil {
		return ctx
	}
	fields := map[string]any{
		"attempt":      attempt,
		"max_attempts": s.maxAttempts,
	}
	if to != "" {
		fields["to"] = to
	}
	return s.logg.WithFields(ctx, fields)
}

func (s *Sender) logFailure(ctx context.Context, err error) {
	if s.logg == nil {
		return
	}
	dump := pkgerrors.Dump(err)
	if dump.SMTPCode != 0 {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"smtp_code":     dump.SMTPCode,
			"smtp_response": dump.SMTPResponse,
		})
	}
	s.logg.Error(ctx, "mail.send.failed", err)
}
