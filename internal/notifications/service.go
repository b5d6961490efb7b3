package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/rlipkart/storefront-backend/pkg/db/models"
	"github.com/rlipkart/storefront-backend/pkg/logger"
)

const sendTimeout = 10 * time.Second

type loginMailer interface {
	SendLoginNotification(ctx context.Context, userEmail, userName string, loginTime time.Time) error
}

// Service delivers fire-and-forget notifications. Failures are logged
// and never surface to the caller.
type Service struct {
	mailer loginMailer
	logg   *logger.Logger
}

// NewService constructs the notification service.
func NewService(mailer loginMailer, logg *logger.Logger) (*Service, error) {
	if mailer == nil {
		return nil, fmt.Errorf("mailer is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{mailer: mailer, logg: logg}, nil
}

// NotifyLogin dispatches the admin login notification in the background.
// The sign-in outcome never depends on it.
func (s *Service) NotifyLogin(user *models.User, at time.Time) {
	if user == nil {
		return
	}
	email := user.Email
	name := user.FullName
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := s.mailer.SendLoginNotification(ctx, email, name, at); err != nil {
			ctx = s.logg.WithField(ctx, "user_email", email)
			s.logg.Error(ctx, "login notification failed", err)
		}
	}()
}
