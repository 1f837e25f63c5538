package auth

import (
	"net/http"
	"time"
)

func newSessionCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// SetSessionCookie stores the token in the browser for the gate's TTL.
func (g *Gate) SetSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	c := newSessionCookie(token)
	c.Expires = g.now().Add(g.ttl)
	c.Secure = r.TLS != nil
	http.SetCookie(w, c)
}

func (g *Gate) ClearSessionCookie(w http.ResponseWriter, r *http.Request) {
	c := newSessionCookie("")
	c.Expires = time.Unix(0, 0)
	c.MaxAge = -1
	c.Secure = r.TLS != nil
	http.SetCookie(w, c)
}
