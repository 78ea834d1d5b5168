package mail

import (
	"context"
	"fmt"

	"CricketPredict/internal/config"
	"CricketPredict/internal/interfaces"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

const verificationSubject = "Verify Your Email"

type sender interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
}

// SendGridMailer 通过 SendGrid 发送验证邮件
type SendGridMailer struct {
	client   sender
	fromName string
	from     string
}

// New 按配置选择实现：没有 API key 时退化为只打日志的 NoopMailer
func New(cfg config.MailConfig, logger *logrus.Logger) interfaces.Mailer {
	if cfg.SendGridAPIKey == "" {
		logger.Warn("SENDGRID_API_KEY 未配置，验证邮件只写日志")
		return &NoopMailer{logger: logger}
	}
	return &SendGridMailer{
		client:   sendgrid.NewSendClient(cfg.SendGridAPIKey),
		fromName: cfg.FromName,
		from:     cfg.FromEmail,
	}
}

func (m *SendGridMailer) SendVerification(ctx context.Context, to, verificationURL string) error {
	plainTextContent := fmt.Sprintf("Click the link to verify your email: %s", verificationURL)
	htmlContent := fmt.Sprintf(`
        <html>
        <body>
            <h2>Email Verification</h2>
            <p>Thank you for registering! Please verify your email by clicking the link below:</p>
            <p><a href="%s">Verify Email</a></p>
            <p>If you didn't create this account, you can safely ignore this email.</p>
        </body>
        </html>
    `, verificationURL)

	message := sgmail.NewSingleEmail(
		sgmail.NewEmail(m.fromName, m.from),
		verificationSubject,
		sgmail.NewEmail("", to),
		plainTextContent,
		htmlContent,
	)

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: %d - %s", response.StatusCode, response.Body)
	}
	return nil
}

// NoopMailer 本地开发用
type NoopMailer struct {
	logger *logrus.Logger
}

func NewNoopMailer(logger *logrus.Logger) *NoopMailer {
	return &NoopMailer{logger: logger}
}

func (m *NoopMailer) SendVerification(_ context.Context, to, verificationURL string) error {
	m.logger.WithFields(logrus.Fields{"to": to, "url": verificationURL}).Info("skip verification email")
	return nil
}
