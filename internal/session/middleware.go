package session

import (
	"context"
	"net/http"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Middleware resolves the caller's session from the signed cookie, creating a
// fresh session (and setting the cookie) when none exists or the token is no
// longer valid.
type Middleware struct {
	manager *Manager
	tokens  *TokenService
	secure  bool
}

func NewMiddleware(manager *Manager, tokens *TokenService, secure bool) *Middleware {
	return &Middleware{manager: manager, tokens: tokens, secure: secure}
}

const cookieName = "chess_session"

// Ensure wraps a handler so that a session always exists for the request.
func (mw *Middleware) Ensure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := mw.resolve(r)
		if s == nil {
			s = mw.manager.Create()
			mw.setCookie(w, s.ID)
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, s)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolve returns the live session named by the request cookie, or nil when
// the cookie is missing, invalid, or points at an evicted session.
func (mw *Middleware) resolve(r *http.Request) *Session {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return nil
	}
	gameID, err := mw.tokens.Validate(cookie.Value)
	if err != nil {
		return nil
	}
	s, ok := mw.manager.Get(gameID)
	if !ok {
		return nil
	}
	return s
}

func (mw *Middleware) setCookie(w http.ResponseWriter, gameID string) {
	token, err := mw.tokens.Generate(gameID)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(mw.tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   mw.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromContext returns the session attached by Ensure.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(*Session)
	return s, ok
}
