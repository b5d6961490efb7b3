package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"

	pkgerrors "github.com/rlipkart/storefront-backend/pkg/errors"
	"github.com/rlipkart/storefront-backend/pkg/logger"
)

// Mailer delivers transactional email for the storefront.
type Mailer interface {
	SendOTP(ctx context.Context, to, code string) error
	SendLoginNotification(ctx context.Context, userEmail, userName string, loginTime time.Time) error
}

type emailSender interface {
	SendWithContext(ctx context.Context, req *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type resendMailer struct {
	emails     emailSender
	from       string
	adminEmail string
	logg       *logger.Logger
}

// NewResendMailer builds a Mailer backed by the Resend API.
func NewResendMailer(apiKey, from, adminEmail string, logg *logger.Logger) (Mailer, error) {
	if apiKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "mailer: resend api key is required")
	}
	if from == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "mailer: from address is required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "mailer: logger is required")
	}
	client := resend.NewClient(apiKey)
	return &resendMailer{
		emails:     client.Emails,
		from:       from,
		adminEmail: adminEmail,
		logg:       logg,
	}, nil
}

func (m *resendMailer) SendOTP(ctx context.Context, to, code string) error {
	html := fmt.Sprintf(`
    <h2>Your OTP Code</h2>
    <p>Your one-time password (OTP) for login is:</p>
    <h1 style="text-align: center; font-size: 32px; letter-spacing: 4px; color: #1F74BA; margin: 20px 0;">%s</h1>
    <p>This OTP is valid for 10 minutes.</p>
    <p>If you didn't request this, please ignore this email.</p>
    `, code)

	resp, err := m.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: "Your OTP Code for Rlipkart Login",
		Html:    html,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mailer: send otp email")
	}
	ctx = m.logg.WithField(ctx, "email_id", resp.Id)
	m.logg.Debug(ctx, "otp email dispatched")
	return nil
}

func (m *resendMailer) SendLoginNotification(ctx context.Context, userEmail, userName string, loginTime time.Time) error {
	if m.adminEmail == "" {
		m.logg.Debug(ctx, "login notification skipped, no admin email configured")
		return nil
	}
	if userName == "" {
		userName = "Not provided"
	}
	html := fmt.Sprintf(`
    <h2>Login Notification</h2>
    <p>A user has successfully logged into your website.</p>
    <hr />
    <p><strong>User Email:</strong> %s</p>
    <p><strong>User Name:</strong> %s</p>
    <p><strong>Login Time:</strong> %s</p>
    <hr />
    <p>This is an automated notification. Please do not reply to this email.</p>
    `, userEmail, userName, loginTime.UTC().Format(time.RFC1123))

	resp, err := m.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{m.adminEmail},
		Subject: "Login Successful – A user has logged into your website",
		Html:    html,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mailer: send login notification")
	}
	ctx = m.logg.WithField(ctx, "email_id", resp.Id)
	m.logg.Debug(ctx, "login notification dispatched")
	return nil
}

// Noop discards all outgoing mail. Used in dev when no API key is configured.
type Noop struct {
	Logg *logger.Logger
}

func (n Noop) SendOTP(ctx context.Context, to, code string) error {
	if n.Logg != nil {
		ctx = n.Logg.WithField(ctx, "to", to)
		n.Logg.Info(ctx, "noop mailer: otp email suppressed")
	}
	return nil
}

func (n Noop) SendLoginNotification(ctx context.Context, userEmail, _ string, _ time.Time) error {
	if n.Logg != nil {
		ctx = n.Logg.WithField(ctx, "user_email", userEmail)
		n.Logg.Info(ctx, "noop mailer: login notification suppressed")
	}
	return nil
}
