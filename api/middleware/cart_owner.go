package middleware

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/rlipkart/storefront-backend/pkg/logger"
)

const guestTokenHeader = "X-Guest-Token"

// Guest tokens are client-held UUIDs. Reject anything else so arbitrary
// header values cannot address someone else's cart key.
var guestTokenPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// CartOwner resolves the cart owner key for the request. Signed-in users own
// the cart keyed by their user ID. Anonymous requests use the X-Guest-Token
// header; when absent or malformed a fresh token is minted and echoed back so
// the client can persist it.
func CartOwner(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			owner := UserIDFromContext(ctx)
			if owner == "" {
				token := r.Header.Get(guestTokenHeader)
				if !guestTokenPattern.MatchString(token) {
					token = uuid.NewString()
				}
				w.Header().Set(guestTokenHeader, token)
				owner = "guest:" + token
			}

			ctx = WithCartOwner(ctx, owner)
			if logg != nil {
				ctx = logg.WithField(ctx, "cart_owner", owner)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
