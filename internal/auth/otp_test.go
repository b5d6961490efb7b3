package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rlipkart/storefront-backend/pkg/config"
	pkgerrors "github.com/rlipkart/storefront-backend/pkg/errors"
	"github.com/rlipkart/storefront-backend/pkg/security"
)

var errMissingKey = errors.New("key not found")

type memoryOTPStore struct {
	data map[string]string
	gets int
}

func newMemoryOTPStore() *memoryOTPStore {
	return &memoryOTPStore{data: make(map[string]string)}
}

func (m *memoryOTPStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	switch v := value.(type) {
	case string:
		m.data[key] = v
	case []byte:
		m.data[key] = string(v)
	}
	return nil
}

func (m *memoryOTPStore) Get(_ context.Context, key string) (string, error) {
	m.gets++
	v, ok := m.data[key]
	if !ok {
		return "", errMissingKey
	}
	return v, nil
}

func (m *memoryOTPStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *memoryOTPStore) OTPKey(email string) string {
	return "rk:otp:" + email
}

type captureOTPMailer struct {
	sent map[string]string
}

func (c *captureOTPMailer) SendOTP(_ context.Context, to, code string) error {
	if c.sent == nil {
		c.sent = make(map[string]string)
	}
	c.sent[to] = code
	return nil
}

func newTestOTPService(t *testing.T) (OTPService, Service, *memoryOTPStore, *captureOTPMailer) {
	t.Helper()
	loginSvc, repo, _, _ := newTestAuthService(t)
	store := newMemoryOTPStore()
	mailer := &captureOTPMailer{}
	svc, err := NewOTPService(OTPServiceParams{
		UserRepo:  repo,
		Store:     store,
		Mailer:    mailer,
		Login:     loginSvc,
		OTPConfig: config.OTPConfig{TTL: 10 * time.Minute, Digits: 6},
		IsNil:     func(err error) bool { return errors.Is(err, errMissingKey) },
	})
	if err != nil {
		t.Fatalf("new otp service: %v", err)
	}
	return svc, loginSvc, store, mailer
}

func TestRequestOTPStoresAndMailsCode(t *testing.T) {
	svc, loginSvc, store, mailer := newTestOTPService(t)
	mustRegister(t, loginSvc, "shopper@example.com", "correct horse battery")

	if err := svc.RequestOTP(context.Background(), RequestOTPRequest{Email: "Shopper@Example.com"}); err != nil {
		t.Fatalf("request otp: %v", err)
	}

	code, ok := store.data["rk:otp:shopper@example.com"]
	if !ok {
		t.Fatal("expected code in store")
	}
	if !security.IsValidOTPFormat(code) {
		t.Fatalf("expected 6-digit code, got %q", code)
	}
	if mailer.sent["shopper@example.com"] != code {
		t.Fatalf("expected mailed code to match stored code")
	}
}

func TestRequestOTPUnknownEmailFails(t *testing.T) {
	svc, _, _, mailer := newTestOTPService(t)

	err := svc.RequestOTP(context.Background(), RequestOTPRequest{Email: "nobody@example.com"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatal("no mail should go out for unknown accounts")
	}
}

func TestVerifyOTPRejectsMalformedCodeBeforeStore(t *testing.T) {
	svc, loginSvc, store, _ := newTestOTPService(t)
	mustRegister(t, loginSvc, "shopper@example.com", "correct horse battery")

	_, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{
		Email: "shopper@example.com",
		Code:  "12a45",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.gets != 0 {
		t.Fatal("malformed code must be rejected before any store lookup")
	}
}

func TestVerifyOTPSignsInAndConsumesCode(t *testing.T) {
	svc, loginSvc, store, mailer := newTestOTPService(t)
	mustRegister(t, loginSvc, "shopper@example.com", "correct horse battery")

	if err := svc.RequestOTP(context.Background(), RequestOTPRequest{Email: "shopper@example.com"}); err != nil {
		t.Fatalf("request otp: %v", err)
	}
	code := mailer.sent["shopper@example.com"]

	resp, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{
		Email: "shopper@example.com",
		Code:  code,
	})
	if err != nil {
		t.Fatalf("verify otp: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair from otp sign-in")
	}
	if _, ok := store.data["rk:otp:shopper@example.com"]; ok {
		t.Fatal("expected code to be consumed")
	}

	// Replaying the same code must fail.
	_, err = svc.VerifyOTP(context.Background(), VerifyOTPRequest{
		Email: "shopper@example.com",
		Code:  code,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized replay, got %v", err)
	}
}

func TestVerifyOTPWrongCodeIsUnauthorized(t *testing.T) {
	svc, loginSvc, _, _ := newTestOTPService(t)
	mustRegister(t, loginSvc, "shopper@example.com", "correct horse battery")

	if err := svc.RequestOTP(context.Background(), RequestOTPRequest{Email: "shopper@example.com"}); err != nil {
		t.Fatalf("request otp: %v", err)
	}

	_, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{
		Email: "shopper@example.com",
		Code:  "000000",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
