// Package auth implements the bearer-token layer: issuing HS256 tokens at
// login, parsing them on every request, and the middleware gates used by
// the protected and admin routes.
//
// The admin gate requires both an admin claim in the token and the
// `isAdmin: true` request header; both are treated as opaque preconditions
// and checked before any lookup.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/corsit/clubsite/internal/app/system/httpjson"
	"github.com/corsit/clubsite/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	adminHeader = "isAdmin"

	// minSecretLen guards against weak signing keys at construction time.
	minSecretLen = 32
)

// Claims is the token payload. Subject carries the user's ObjectID hex.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
	jwt.RegisteredClaims
}

// SessionUser is what the middleware injects into r.Context().
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Admin bool
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the authenticated caller and a "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects a user into the request context, bypassing token
// parsing. For handler tests only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// Manager signs and verifies bearer tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	log    *zap.Logger
}

// NewManager builds a Manager. The secret must be at least 32 characters.
func NewManager(secret string, ttl time.Duration, logger *zap.Logger) (*Manager, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("token secret is too short; provide >=%d random chars", minSecretLen)
	}
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl, log: logger}, nil
}

// Issue signs a token for the given user.
func (m *Manager) Issue(u models.User) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Name:  u.Name,
		Email: u.Email,
		Admin: u.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			Issuer:    "clubsite",
		},
	})
	return tok.SignedString(m.secret)
}

// Parse verifies a token string and returns its claims.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	return &claims, nil
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// authenticate parses the bearer token and returns the caller, or writes
// a 401 and returns false.
func (m *Manager) authenticate(w http.ResponseWriter, r *http.Request) (*SessionUser, bool) {
	tok, ok := bearerToken(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, "missing bearer token")
		return nil, false
	}
	claims, err := m.Parse(tok)
	if err != nil {
		if m.log != nil {
			m.log.Debug("token rejected", zap.Error(err))
		}
		httpjson.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
		return nil, false
	}
	return &SessionUser{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
		Admin: claims.Admin,
	}, true
}

// RequireSignedIn ensures a valid bearer token and injects the caller into
// the request context.
func (m *Manager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := CurrentUser(r); ok && u != nil {
			next.ServeHTTP(w, r)
			return
		}
		u, ok := m.authenticate(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, WithTestUser(r, u))
	})
}

// RequireAdmin ensures a valid bearer token carrying the admin claim plus
// the `isAdmin: true` request header. Unauthorized calls are rejected
// before any lookup happens.
func (m *Manager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := CurrentUser(r)
		if !ok {
			u, ok = m.authenticate(w, r)
			if !ok {
				return
			}
			r = WithTestUser(r, u)
		}
		if !strings.EqualFold(r.Header.Get(adminHeader), "true") || !u.Admin {
			httpjson.WriteError(w, http.StatusForbidden, "admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
