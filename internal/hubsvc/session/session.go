// Package session carries the user's opaque bearer token explicitly,
// through context, instead of reading it from ambient storage.
package session

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/jwtauth"
)

// Session holds the token issued by the hub API. The token is never
// decoded or validated here; the API is the only judge of it.
type Session struct {
	token string
}

func New(token string) Session {
	return Session{token: strings.TrimSpace(token)}
}

// Anonymous is a session without a token.
var Anonymous = Session{}

func (s Session) Token() string {
	return s.token
}

// Authenticated reports whether a token is present. Callers skip
// per-user fetches when it is not.
func (s Session) Authenticated() bool {
	return s.token != ""
}

// AuthorizationHeader is the value to send upstream, or "" when anonymous.
func (s Session) AuthorizationHeader() string {
	if !s.Authenticated() {
		return ""
	}
	return "Bearer " + s.token
}

// FromRequest reads the token from the Authorization header, then from
// the jwt cookie.
func FromRequest(r *http.Request) Session {
	for _, find := range []func(*http.Request) string{jwtauth.TokenFromHeader, jwtauth.TokenFromCookie} {
		if token := find(r); token != "" {
			return New(token)
		}
	}
	return Anonymous
}

type ctxKey struct{}

func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored in ctx, or Anonymous.
func FromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(ctxKey{}).(Session); ok {
		return s
	}
	return Anonymous
}

// Middleware attaches the request's session to its context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := FromRequest(r)
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), s)))
	})
}
