package handlers

import (
	"errors"
	"net/http"
	"tasklist/internal/auth"
	"tasklist/internal/logx"
	"tasklist/internal/models"
	"tasklist/internal/presenter"

	"github.com/gin-gonic/gin"
)

func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", h.page("Sign in"))
}

func (h *Handler) Login(c *gin.Context) {
	request := &models.Credentials{}
	err := c.ShouldBind(request)
	if err != nil {
		h.loginFailed(c, http.StatusBadRequest, request.Username, "invalid request body")
		return
	}

	_, token, err := h.gate.Login(c.Request.Context(), request.Username, request.Password)
	if err != nil {
		h.loginFailed(c, http.StatusUnauthorized, request.Username, loginMessage(err))
		return
	}

	h.gate.SetSessionCookie(c.Writer, c.Request, token)
	c.Redirect(http.StatusSeeOther, "/tasks")
}

func (h *Handler) Logout(c *gin.Context) {
	h.logout(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handler) APILogin(c *gin.Context) {
	request := &models.Credentials{}
	err := c.ShouldBindJSON(request)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	_, token, err := h.gate.Login(c.Request.Context(), request.Username, request.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error"})
		return
	}

	h.gate.SetSessionCookie(c.Writer, c.Request, token)
	c.JSON(http.StatusOK, models.Token{Token: token})
}

func (h *Handler) APILogout(c *gin.Context) {
	h.logout(c)
	c.Status(http.StatusNoContent)
}

func (h *Handler) logout(c *gin.Context) {
	h.gate.Logout(c.Request.Context())
	h.presenter.Reset()
	h.gate.ClearSessionCookie(c.Writer, c.Request)
	logx.Info(h.logger, "logout", nil)
}

func (h *Handler) loginFailed(c *gin.Context, status int, username, message string) {
	data := h.page("Sign in")
	data.Username = username
	data.Flash = &presenter.Flash{Message: message, Kind: presenter.FlashError}
	c.HTML(status, "login.html", data)
}

func loginMessage(err error) string {
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return err.Error()
	}
	return "could not sign in, try again"
}
