package jwt

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrSessionRevoked = errors.New("session revoked")
)

type Service interface {
	IssueSession(staffID int) (token string, expiresAt int64, err error)
	ParseSession(tokenString string) (staffID int, err error)
	SessionCookie(token string, expiresAt int64) *http.Cookie
	ClearSessionCookie() *http.Cookie
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
	PurgeRevoked() int
}

type JWTService struct {
	secretKey             string
	sessionExpirationTime string
	secureCookie          bool
	tokenAuth             *jwtauth.JWTAuth
	revokedTokens         map[string]int64
	mu                    sync.RWMutex
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, sessionExpirationTime string, secureCookie bool) Service {
	return &JWTService{
		secretKey:             secretKey,
		sessionExpirationTime: sessionExpirationTime,
		secureCookie:          secureCookie,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:         make(map[string]int64),
	}
}

func (j *JWTService) IssueSession(staffID int) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.sessionExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"staff_id": strconv.Itoa(staffID),
		"type":     "session",
		"exp":      expiresAt,
	})
	return tokenString, expiresAt, err
}

// ParseSession verifies a session token and returns its staff id.
func (j *JWTService) ParseSession(tokenString string) (staffID int, err error) {
	if tokenString == "" {
		return 0, ErrInvalidSession
	}
	if j.IsTokenRevoked(tokenString) {
		return 0, ErrSessionRevoked
	}

	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return 0, err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "session" {
		return 0, ErrInvalidSession
	}

	raw, ok := token.Get("staff_id")
	if !ok {
		return 0, ErrInvalidSession
	}
	idStr, ok := raw.(string)
	if !ok {
		return 0, ErrInvalidSession
	}
	staffID, err = strconv.Atoi(idStr)
	if err != nil || staffID <= 0 {
		return 0, ErrInvalidSession
	}

	return staffID, nil
}

func (j *JWTService) SessionCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j *JWTService) ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j *JWTService) RevokeToken(token string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = time.Now().Unix()
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// PurgeRevoked drops revocations older than the session lifetime. Those
// tokens have expired and fail verification on their own.
func (j *JWTService) PurgeRevoked() int {
	lifetime, err := time.ParseDuration(j.sessionExpirationTime)
	if err != nil {
		return 0
	}
	cutoff := time.Now().Add(-lifetime).Unix()

	j.mu.Lock()
	defer j.mu.Unlock()
	n := 0
	for token, revokedAt := range j.revokedTokens {
		if revokedAt < cutoff {
			delete(j.revokedTokens, token)
			n++
		}
	}
	return n
}

// TokenFromSessionCookie is a jwtauth token finder for the session cookie.
func TokenFromSessionCookie(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
