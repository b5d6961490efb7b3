package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/rlipkart/storefront-backend/internal/auth"
	cartsvc "github.com/rlipkart/storefront-backend/internal/cart"
	chatsvc "github.com/rlipkart/storefront-backend/internal/chat"
	productsvc "github.com/rlipkart/storefront-backend/internal/products"
	"github.com/rlipkart/storefront-backend/internal/users"
	"github.com/rlipkart/storefront-backend/pkg/config"
	pkgerrors "github.com/rlipkart/storefront-backend/pkg/errors"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(context.Context, string) (bool, error) {
	return true, nil
}

type stubProductService struct{}

func (stubProductService) ListProducts(ctx context.Context, input productsvc.ListProductsInput) ([]productsvc.ProductDTO, error) {
	return []productsvc.ProductDTO{}, nil
}

func (stubProductService) GetProduct(ctx context.Context, id uuid.UUID) (*productsvc.ProductDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

type stubCartService struct{}

func (stubCartService) GetCart(ctx context.Context, ownerID string) (*cartsvc.CartDTO, error) {
	return &cartsvc.CartDTO{Lines: []cartsvc.Line{}}, nil
}

func (stubCartService) AddItem(ctx context.Context, ownerID string, productID uuid.UUID) (*cartsvc.CartDTO, error) {
	return &cartsvc.CartDTO{}, nil
}

func (stubCartService) UpdateQuantity(ctx context.Context, ownerID string, productID uuid.UUID, quantity int) (*cartsvc.CartDTO, error) {
	return &cartsvc.CartDTO{}, nil
}

func (stubCartService) RemoveItem(ctx context.Context, ownerID string, productID uuid.UUID) (*cartsvc.CartDTO, error) {
	return &cartsvc.CartDTO{}, nil
}

func (stubCartService) Checkout(ctx context.Context, ownerID string) (*cartsvc.CheckoutResult, error) {
	return &cartsvc.CheckoutResult{}, nil
}

type stubChatService struct{}

func (stubChatService) StartSession(ctx context.Context, user *chatsvc.UserIdentity) (*chatsvc.Session, error) {
	return &chatsvc.Session{ID: uuid.New()}, nil
}

func (stubChatService) SendMessage(ctx context.Context, sessionID uuid.UUID, text string) (*chatsvc.Session, error) {
	return &chatsvc.Session{ID: sessionID}, nil
}

func (stubChatService) GetSession(ctx context.Context, sessionID uuid.UUID) (*chatsvc.Session, error) {
	return &chatsvc.Session{ID: sessionID}, nil
}

func (stubChatService) EndSession(ctx context.Context, sessionID uuid.UUID) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
	return &users.UserDTO{Email: req.Email}, nil
}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token")
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubOTPService struct{}

func (stubOTPService) RequestOTP(ctx context.Context, req auth.RequestOTPRequest) error {
	return nil
}

func (stubOTPService) VerifyOTP(ctx context.Context, req auth.VerifyOTPRequest) (*auth.LoginResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired OTP")
}

func testRouter() http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = "dev"
	cfg.JWT = config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 15}

	return NewRouter(Deps{
		Config:         cfg,
		Logger:         nil,
		DB:             stubPinger{},
		SessionChecker: stubSessionChecker{},
		ProductService: stubProductService{},
		CartService:    stubCartService{},
		ChatService:    stubChatService{},
		AuthService:    stubAuthService{},
		OTPService:     stubOTPService{},
	})
}

func TestHealthLive(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env := rec.Header().Get("X-Rlipkart-Env"); env != "dev" {
		t.Fatalf("expected env header, got %q", env)
	}
}

func TestProductRoutesArePublic(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCartWorksForGuests(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Guest-Token") == "" {
		t.Fatal("expected guest token header for anonymous cart")
	}
}

func TestCartRejectsBadBearerToken(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestChatSessionCreation(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/sessions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestLogoutRequiresJWT(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoginRouteWired(t *testing.T) {
	router := testRouter()

	body := `{"email":"shopper@example.com","password":"wrong-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 from stub, got %d", rec.Code)
	}
}
