package interfaces

import "context"

// Mailer 发送账号相关邮件；未配置 SendGrid 时使用 mail.NoopMailer
type Mailer interface {
	SendVerification(ctx context.Context, to, verificationURL string) error
}
