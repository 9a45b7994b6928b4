// Package auth gates the admin surface behind an HMAC-signed session
// cookie. There is a single staff identity; credentials come from the
// environment (bcrypt hash preferred, plain value as a dev fallback).
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/httpx"
)

type ctxKey string

const (
	sessionCookieName = "session"
	adminCtxKey       = ctxKey("admin")
	sessionTTL        = 14 * 24 * time.Hour
)

// Secret returns SESSION_SECRET or default dev value.
func Secret() string {
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "devsessionsecret"
}

// Credentials holds the configured admin login.
type Credentials struct {
	User         string
	PasswordHash string
	Password     string
}

// Check verifies a submitted username/password pair.
func (c Credentials) Check(user, pass string) bool {
	if subtle.ConstantTimeCompare([]byte(user), []byte(c.User)) != 1 {
		return false
	}
	if c.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(pass)) == nil
	}
	if c.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(pass), []byte(c.Password)) == 1
}

func sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CreateSession sets a signed cookie marking an authenticated admin session.
// The payload is the expiry unix time, so stolen cookies age out.
func CreateSession(w http.ResponseWriter) {
	exp := time.Now().Add(sessionTTL)
	payload := strconv.FormatInt(exp.Unix(), 10)
	value := payload + "." + sign(payload)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

// ClearSession deletes the session cookie.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// ParseSession validates the cookie signature and expiry.
func ParseSession(r *http.Request) bool {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return false
	}
	payload, sig := parts[0], parts[1]
	if !hmac.Equal([]byte(sig), []byte(sign(payload))) {
		return false
	}
	exp, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		return false
	}
	return time.Now().Unix() < exp
}

// WithAdmin marks the context as an authenticated admin session.
func WithAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, adminCtxKey, true)
}

// IsAdmin reports whether the context carries an authenticated session.
func IsAdmin(ctx context.Context) bool {
	v, _ := ctx.Value(adminCtxKey).(bool)
	return v
}

// Middleware attaches the admin marker to the request context if a valid
// session cookie is present.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ParseSession(r) {
			r = r.WithContext(WithAdmin(r.Context()))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects unauthenticated requests with a 401 JSON error.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
