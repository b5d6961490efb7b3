package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rlipkart/storefront-backend/internal/users"

	"github.com/rlipkart/storefront-backend/pkg/config"
	pkgerrors "github.com/rlipkart/storefront-backend/pkg/errors"
	"github.com/rlipkart/storefront-backend/pkg/security"
)

// otpStore is the slice of the redis client the OTP flow needs.
type otpStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	OTPKey(email string) string
}

type otpMailer interface {
	SendOTP(ctx context.Context, to, code string) error
}

// isNilErr lets tests swap the redis missing-key check.
type nilChecker func(error) bool

// OTPService implements the passcode sign-in variant: request a code
// for an email, then submit the 6-digit code to complete sign-in.
type OTPService interface {
	RequestOTP(ctx context.Context, req RequestOTPRequest) error
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*LoginResponse, error)
}

// OTPServiceParams bundles the passcode flow dependencies.
type OTPServiceParams struct {
	UserRepo  userRepository
	Store     otpStore
	Mailer    otpMailer
	Login     Service
	OTPConfig config.OTPConfig
	IsNil     func(error) bool
}

type otpService struct {
	users  userRepository
	store  otpStore
	mailer otpMailer
	login  *service
	cfg    config.OTPConfig
	isNil  nilChecker
}

// NewOTPService constructs the passcode flow. The login Service must be
// the one returned by NewService so token issuance stays uniform.
func NewOTPService(params OTPServiceParams) (OTPService, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("otp store is required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mailer is required")
	}
	base, ok := params.Login.(*service)
	if !ok || base == nil {
		return nil, fmt.Errorf("auth service is required")
	}
	if params.IsNil == nil {
		return nil, fmt.Errorf("redis nil checker is required")
	}
	if params.OTPConfig.TTL <= 0 {
		return nil, fmt.Errorf("otp ttl must be positive")
	}
	return &otpService{
		users:  params.UserRepo,
		store:  params.Store,
		mailer: params.Mailer,
		login:  base,
		cfg:    params.OTPConfig,
		isNil:  params.IsNil,
	}, nil
}

// RequestOTP generates a fresh code, stores it with the configured TTL,
// and emails it. A repeat request overwrites the previous code.
func (s *otpService) RequestOTP(ctx context.Context, req RequestOTPRequest) error {
	email := users.NormalizeEmail(req.Email)
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "no account for this email")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	code, err := security.GenerateOTP()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate otp")
	}
	if err := s.store.Set(ctx, s.store.OTPKey(email), code, s.cfg.TTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: store otp")
	}
	if err := s.mailer.SendOTP(ctx, email, code); err != nil {
		return err
	}
	return nil
}

// VerifyOTP enforces the syntactic 6-digit constraint before touching
// Redis, then consumes the code and signs the user in.
func (s *otpService) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*LoginResponse, error) {
	if !security.IsValidOTPFormat(req.Code) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "OTP must be 6 digits")
	}

	email := users.NormalizeEmail(req.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	key := s.store.OTPKey(email)
	stored, err := s.store.Get(ctx, key)
	if err != nil {
		if s.isNil(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired OTP")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: load otp")
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(req.Code)) != 1 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired OTP")
	}

	// Single use: the code dies with the first successful comparison.
	if err := s.store.Del(ctx, key); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: consume otp")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	return s.login.issueTokens(ctx, user)
}
