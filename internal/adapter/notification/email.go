package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/srgjo27/sportsync/internal/core/domain"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

const defaultSMTPTimeout = 15 * time.Second

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	Timeout  time.Duration
}

type sendFunc func(ctx context.Context, msg *mail.Msg) error

type EmailNotifier struct {
	cfg    SMTPConfig
	send   sendFunc
	logger *zap.Logger
}

func NewEmailNotifier(cfg SMTPConfig, logger *zap.Logger) *EmailNotifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultSMTPTimeout
	}

	n := &EmailNotifier{cfg: cfg, logger: logger}
	n.send = n.dialAndSend

	return n
}

var subjects = map[domain.NoticeKind]string{
	domain.NoticeCreated:   "Booking received",
	domain.NoticeApproved:  "Booking confirmed",
	domain.NoticeRejected:  "Booking rejected",
	domain.NoticeCancelled: "Booking cancelled",
	domain.NoticeCompleted: "Thanks for playing",
}

var bookingTemplate = template.Must(template.New("booking").Funcs(template.FuncMap{
	"vnd": FormatVND,
}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Subject}}</title></head>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h1>SportSync</h1>
  <h2>{{.Subject}}</h2>
  <p>Hello <strong>{{.Notice.CustomerName}}</strong>,</p>
  <p>Booking <strong>#{{.Ref}}</strong> is now <strong>{{.Notice.Status}}</strong>.</p>
  <ul>
    <li>Court: {{.Notice.CourtName}}</li>
    <li>Complex: {{.Notice.ComplexName}}</li>
    <li>From: {{.Notice.StartTime}}</li>
    <li>To: {{.Notice.EndTime}}</li>
    <li>Total: {{vnd .Notice.TotalPrice}}</li>
  </ul>
  {{- if .Notice.Reason}}
  <p>Reason: {{.Notice.Reason}}</p>
  {{- end}}
  <p>Thank you for choosing SportSync.</p>
</body>
</html>
`))

// Render builds the subject and HTML body for a notice.
func Render(notice domain.BookingNotice) (string, string, error) {
	subject, ok := subjects[notice.Kind]
	if !ok {
		return "", "", fmt.Errorf("no email template for %q", notice.Kind)
	}

	ref := strings.ToUpper(strings.ReplaceAll(notice.BookingID.String(), "-", "")[:8])
	subject = fmt.Sprintf("%s #%s - SportSync", subject, ref)

	var buf bytes.Buffer
	err := bookingTemplate.Execute(&buf, struct {
		Subject string
		Ref     string
		Notice  domain.BookingNotice
	}{subject, ref, notice})
	if err != nil {
		return "", "", err
	}

	return subject, buf.String(), nil
}

// NotifyBooking sends the notice as an HTML email. The whole SMTP exchange
// is bounded by the configured timeout.
func (n *EmailNotifier) NotifyBooking(ctx context.Context, notice domain.BookingNotice) error {
	if n.cfg.Host == "" || notice.CustomerEmail == "" {
		return nil
	}

	subject, body, err := Render(notice)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(notice.CustomerEmail); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()

	if err := n.send(ctx, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	n.logger.Debug("booking email sent",
		zap.String("kind", string(notice.Kind)),
		zap.String("booking_id", notice.BookingID.String()),
	)

	return nil
}

func (n *EmailNotifier) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(n.cfg.Timeout),
	}
	if n.cfg.Port > 0 {
		opts = append(opts, mail.WithPort(n.cfg.Port))
	}
	if n.cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.User),
			mail.WithPassword(n.cfg.Password),
		)
	}

	client, err := mail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	return client.DialAndSendWithContext(ctx, msg)
}
