package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/rlipkart/storefront-backend/internal/assistant"
	product "github.com/rlipkart/storefront-backend/internal/products"

	"github.com/rlipkart/storefront-backend/pkg/enums"
)

// Message is one entry in a session transcript. Messages are append
// only and never mutated once added.
type Message struct {
	Role      enums.ChatRole       `json:"role"`
	Content   string               `json:"content"`
	Products  []product.ProductDTO `json:"products,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

// Session holds one shopper conversation. Sessions are ephemeral and
// live only in process memory until the sweeper reclaims them.
type Session struct {
	ID           uuid.UUID         `json:"id"`
	UserID       *uuid.UUID        `json:"user_id,omitempty"`
	Messages     []Message         `json:"messages"`
	Context      assistant.Context `json:"context"`
	CreatedAt    time.Time         `json:"created_at"`
	LastActiveAt time.Time         `json:"last_active_at"`
}

func (s *Session) appendMessage(m Message) {
	s.Messages = append(s.Messages, m)
	s.LastActiveAt = m.CreatedAt
}
