package mail

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional e-mails.
type Mailer interface {
	SendFeeAssignedMail(ctx context.Context, to string, notice FeeNotice) error
	SendPasswordRecoveryMail(ctx context.Context, to string, resetLink string) error
}

// FeeNotice is what a tenant is told about a newly assigned fee.
type FeeNotice struct {
	TenantName  string
	RoomNumber  int
	FeeName     string
	Amount      string
	DueDate     string
	PaymentCode string
}

// SMTPConfig holds the SMTP_* settings.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// NewMailService returns an SMTP mailer, or a mailer that only logs when no
// SMTP host is configured.
func NewMailService(cfg SMTPConfig, logger *slog.Logger) Mailer {
	if cfg.Host == "" {
		logger.Warn("SMTP_HOST not set, e-mails will be logged instead of sent.")
		return &logMailer{logger: logger}
	}
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &MailService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   from,
	}
}

type MailService struct {
	dialer *gomail.Dialer
	from   string
}

func (m *MailService) send(to, subject, body string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", m.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", body)
	if err := m.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

func (m *MailService) SendFeeAssignedMail(_ context.Context, to string, notice FeeNotice) error {
	return m.send(to, "New fee: "+notice.FeeName, feeAssignedBody(notice))
}

func (m *MailService) SendPasswordRecoveryMail(_ context.Context, to string, resetLink string) error {
	return m.send(to, "Password recovery", passwordRecoveryBody(resetLink))
}

func feeAssignedBody(n FeeNotice) string {
	return `
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px; background-color: #f5f5f5;">
			<h2 style="color: #333; text-align: center;">` + n.FeeName + `</h2>
			<p>Hello ` + n.TenantName + `,</p>
			<p>Room ` + fmt.Sprint(n.RoomNumber) + ` has a new fee of <b>` + n.Amount + `</b> due on <b>` + n.DueDate + `</b>.</p>
			<p>When paying by bank transfer, put <b>` + n.PaymentCode + `</b> in the transfer description.</p>
		</div>
	`
}

func passwordRecoveryBody(resetLink string) string {
	return `
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px; background-color: #f5f5f5;">
			<h2 style="color: #333; text-align: center;">Password recovery</h2>
			<p>Follow the link below to choose a new password:</p>
			<p style="text-align: center;"><a href="` + resetLink + `" style="display: inline-block; padding: 10px 20px; background-color: #007bff; color: #fff; text-decoration: none; border-radius: 5px;">Reset password</a></p>
			<p>If you did not request this, ignore this e-mail.</p>
		</div>
	`
}

type logMailer struct {
	logger *slog.Logger
}

func (l *logMailer) SendFeeAssignedMail(_ context.Context, to string, notice FeeNotice) error {
	l.logger.Info("Fee assignment mail (not sent)",
		slog.String("to", to),
		slog.String("fee", notice.FeeName),
		slog.String("payment_code", notice.PaymentCode))
	return nil
}

func (l *logMailer) SendPasswordRecoveryMail(_ context.Context, to string, resetLink string) error {
	l.logger.Info("Password recovery mail (not sent)", slog.String("to", to), slog.String("link", resetLink))
	return nil
}
