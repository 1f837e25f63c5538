// Package auth is the mock login gate: one configured credential, a session
// record under the currentUser key, and a signed cookie tying the browser to it.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"tasklist/internal/logx"
	"tasklist/internal/models"
	"tasklist/internal/storage"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CookieName = "tasklist_session"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoSession          = errors.New("no active session")
)

type Gate struct {
	kv     storage.KV
	creds  CredentialValidator
	jwtKey []byte
	ttl    time.Duration
	now    func() time.Time
	logger *log.Logger
}

type GateOption func(*Gate)

func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) { g.now = now }
}

func WithLogger(logger *log.Logger) GateOption {
	return func(g *Gate) { g.logger = logger }
}

func NewGate(kv storage.KV, creds CredentialValidator, jwtKey string, ttl time.Duration, opts ...GateOption) *Gate {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	g := &Gate{
		kv:     kv,
		creds:  creds,
		jwtKey: []byte(jwtKey),
		ttl:    ttl,
		now:    time.Now,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Login checks the credential, stores the session and returns a signed
// token for the session cookie.
func (g *Gate) Login(ctx context.Context, username, password string) (models.Session, string, error) {
	username = strings.TrimSpace(username)
	if !g.creds.Validate(username, password) {
		return models.Session{}, "", ErrInvalidCredentials
	}

	now := g.now().UTC()
	sess := models.Session{
		ID:         uuid.New().String(),
		Username:   username,
		LoggedInAt: now,
	}

	b, err := json.Marshal(sess)
	if err != nil {
		return models.Session{}, "", err
	}
	if err := g.kv.Set(ctx, storage.KeyCurrentUser, string(b)); err != nil {
		return models.Session{}, "", fmt.Errorf("store session: %w", err)
	}

	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.MapClaims{
			"sub": sess.Username,
			"sid": sess.ID,
			"iat": now.Unix(),
			"exp": now.Add(g.ttl).Unix()})

	tokenString, err := token.SignedString(g.jwtKey)
	if err != nil {
		return models.Session{}, "", err
	}

	logx.Info(g.logger, "login", logx.Fields{"username": sess.Username})
	return sess, tokenString, nil
}

// Current reads the stored session. Missing or unreadable data means none.
func (g *Gate) Current(ctx context.Context) (models.Session, bool) {
	raw, ok, err := g.kv.Get(ctx, storage.KeyCurrentUser)
	if err != nil {
		logx.Error(g.logger, "session_read_failed", logx.Fields{"error": err})
		return models.Session{}, false
	}
	if !ok || raw == "" {
		return models.Session{}, false
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil || sess.Username == "" {
		return models.Session{}, false
	}
	return sess, true
}

// Authenticate accepts a token only while it matches the stored session.
func (g *Gate) Authenticate(ctx context.Context, tokenString string) (models.Session, error) {
	if tokenString == "" {
		return models.Session{}, ErrNoSession
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return g.jwtKey, nil
	}, jwt.WithTimeFunc(g.now))
	if err != nil {
		return models.Session{}, err
	}
	if !token.Valid {
		return models.Session{}, ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Session{}, ErrNoSession
	}
	sub, _ := claims["sub"].(string)
	sid, _ := claims["sid"].(string)

	sess, ok := g.Current(ctx)
	if !ok || sess.Username != sub || sess.ID != sid {
		return models.Session{}, ErrNoSession
	}
	return sess, nil
}

// Logout removes the session and the stored task list.
func (g *Gate) Logout(ctx context.Context) {
	for _, key := range []string{storage.KeyCurrentUser, storage.KeyUserTodos} {
		if err := g.kv.Remove(ctx, key); err != nil {
			logx.Error(g.logger, "logout_remove_failed", logx.Fields{"key": key, "error": err})
		}
	}
}

func (g *Gate) TTL() time.Duration {
	return g.ttl
}

// TokenFromRequest reads the session cookie, falling back to a bearer header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
		return ""
	}
	return authHeader[7:]
}
