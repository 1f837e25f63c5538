package middleware

import (
	"net/http"
	"tasklist/internal/auth"
	"tasklist/internal/models"

	"github.com/gin-gonic/gin"
)

const sessionKey = "tasklist.session"

// RequirePage sends visitors without a valid session to the login view.
func RequirePage(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := gate.Authenticate(c.Request.Context(), auth.TokenFromRequest(c.Request))
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// RequireAPI is RequirePage for JSON clients: 401 instead of a redirect.
func RequireAPI(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := gate.Authenticate(c.Request.Context(), auth.TokenFromRequest(c.Request))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// RedirectIfAuthenticated keeps logged-in users away from the login view.
func RedirectIfAuthenticated(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := gate.Authenticate(c.Request.Context(), auth.TokenFromRequest(c.Request)); err == nil {
			c.Redirect(http.StatusSeeOther, "/tasks")
			c.Abort()
			return
		}

		c.Next()
	}
}

func SessionFrom(c *gin.Context) (models.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return models.Session{}, false
	}
	sess, ok := v.(models.Session)
	return sess, ok
}
