package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/google/uuid"

	"propositosAPI/internal/user"
)

type contextKey string

const ClerkIDKey contextKey = "clerkID"
const UserIDKey contextKey = "userID"

// ClerkAuthMiddleware validates the Clerk JWT and puts the Clerk subject in
// the request context.
func ClerkAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondWithError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			respondWithError(w, http.StatusUnauthorized, "Invalid authorization format. Use 'Bearer <token>'")
			return
		}

		claims, err := jwt.Verify(r.Context(), &jwt.VerifyParams{
			Token: token,
		})
		if err != nil {
			log.Printf("Token verification failed: %v", err)
			respondWithError(w, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			return
		}

		ctx := context.WithValue(r.Context(), ClerkIDKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ProfileLookup resolves a Clerk subject to a local profile.
type ProfileLookup interface {
	GetProfileByClerkID(ctx context.Context, clerkID string) (*user.Profile, error)
}

// ProfileMiddleware runs after ClerkAuthMiddleware and resolves the Clerk
// subject to the internal profile UUID every handler keys on. Requests from
// Clerk users with no provisioned profile (webhook not delivered yet) get a
// 403 rather than a confusing 404 downstream.
func ProfileMiddleware(users ProfileLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clerkID, ok := GetClerkID(r.Context())
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "User not authenticated")
				return
			}

			profile, err := users.GetProfileByClerkID(r.Context(), clerkID)
			if err != nil {
				respondWithError(w, http.StatusForbidden, "Profile not provisioned")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, profile.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClerkID extracts the Clerk subject from context.
func GetClerkID(ctx context.Context) (string, bool) {
	clerkID, ok := ctx.Value(ClerkIDKey).(string)
	return clerkID, ok
}

// GetUserID extracts the internal profile UUID from context.
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write([]byte(fmt.Sprintf(`{"error": "%s"}`, message)))
}
