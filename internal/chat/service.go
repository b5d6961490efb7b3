package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rlipkart/storefront-backend/internal/assistant"
	product "github.com/rlipkart/storefront-backend/internal/products"

	"github.com/rlipkart/storefront-backend/pkg/enums"
	"github.com/rlipkart/storefront-backend/pkg/logger"
)

// UserIdentity is the optional signed-in shopper attached to a session.
// It only personalizes greetings and help text.
type UserIdentity struct {
	ID       uuid.UUID
	FullName string
	Email    string
}

// Sleeper injects the composing delay so tests can run synchronously.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration)
}

// RealSleeper waits on the wall clock, honoring context cancellation.
type RealSleeper struct{}

func (RealSleeper) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

type catalogLister interface {
	ListProducts(ctx context.Context, input product.ListProductsInput) ([]product.ProductDTO, error)
}

// Service manages chat sessions and routes messages through the
// recommendation engine.
type Service interface {
	StartSession(ctx context.Context, user *UserIdentity) (*Session, error)
	SendMessage(ctx context.Context, sessionID uuid.UUID, text string) (*Session, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*Session, error)
	EndSession(ctx context.Context, sessionID uuid.UUID) error
}

type service struct {
	store          *Store
	engine         *assistant.Engine
	catalog        catalogLister
	sleeper        Sleeper
	composingDelay time.Duration
	logg           *logger.Logger
	now            func() time.Time
}

// NewService constructs the chat service.
func NewService(store *Store, engine *assistant.Engine, catalog catalogLister, sleeper Sleeper, composingDelay time.Duration, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if engine == nil {
		return nil, fmt.Errorf("assistant engine required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if sleeper == nil {
		return nil, fmt.Errorf("sleeper required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		store:          store,
		engine:         engine,
		catalog:        catalog,
		sleeper:        sleeper,
		composingDelay: composingDelay,
		logg:           logg,
		now:            time.Now,
	}, nil
}

// StartSession opens a session seeded with the assistant greeting.
func (s *service) StartSession(ctx context.Context, user *UserIdentity) (*Session, error) {
	now := s.now()
	session := &Session{
		ID:           uuid.New(),
		CreatedAt:    now,
		LastActiveAt: now,
	}
	if user != nil {
		id := user.ID
		session.UserID = &id
		session.Context.Authenticated = true
	}
	session.appendMessage(Message{
		Role:      enums.ChatRoleAssistant,
		Content:   greeting(user),
		CreatedAt: now,
	})
	s.store.Create(session)

	ctx = s.logg.WithSessionID(ctx, session.ID.String())
	s.logg.Info(ctx, "chat session started")
	return snapshot(session), nil
}

// SendMessage appends the user message, waits the composing delay, and
// appends the engine's reply. Catalog failures degrade to an empty
// catalog rather than failing the exchange.
func (s *service) SendMessage(ctx context.Context, sessionID uuid.UUID, text string) (*Session, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("message text required")
	}

	session, err := s.store.Mutate(sessionID, func(live *Session) {
		live.appendMessage(Message{
			Role:      enums.ChatRoleUser,
			Content:   text,
			CreatedAt: s.now(),
		})
	})
	if err != nil {
		return nil, err
	}

	catalog := s.loadCatalog(ctx)
	s.sleeper.Sleep(ctx, s.composingDelay)

	reply, nextCtx := s.engine.Respond(text, catalog, session.Context)

	updated, err := s.store.Mutate(sessionID, func(live *Session) {
		live.Context = nextCtx
		live.appendMessage(Message{
			Role:      enums.ChatRoleAssistant,
			Content:   reply.Text,
			Products:  reply.Products,
			CreatedAt: s.now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) GetSession(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	return s.store.Get(sessionID)
}

// EndSession discards the session and its transcript.
func (s *service) EndSession(ctx context.Context, sessionID uuid.UUID) error {
	if _, err := s.store.Get(sessionID); err != nil {
		return err
	}
	s.store.Delete(sessionID)
	ctx = s.logg.WithSessionID(ctx, sessionID.String())
	s.logg.Info(ctx, "chat session ended")
	return nil
}

func (s *service) loadCatalog(ctx context.Context) []product.ProductDTO {
	catalog, err := s.catalog.ListProducts(ctx, product.ListProductsInput{})
	if err != nil {
		s.logg.Error(ctx, "catalog load failed, continuing with empty catalog", err)
		return nil
	}
	return catalog
}

func greeting(user *UserIdentity) string {
	if user == nil {
		return "Hi! I am your advanced shopping assistant. I can help you find products, get recommendations, answer questions, and guide you through shopping. Login to unlock personalized features!"
	}
	name := strings.TrimSpace(user.FullName)
	if name == "" {
		name = "User"
	}
	return fmt.Sprintf("Welcome back, %s! I'm your advanced shopping assistant. I can help you find products, get personalized recommendations based on your preferences, track orders, and much more!", name)
}
