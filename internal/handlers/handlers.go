package handlers

import (
	"log"
	"tasklist/internal/auth"
	"tasklist/internal/presenter"
	"tasklist/internal/remote"
	"tasklist/internal/tasks"
	"time"
)

type Handler struct {
	gate         *auth.Gate
	store        *tasks.Store
	presenter    *presenter.Presenter
	remote       *remote.Provider
	logger       *log.Logger
	flashDismiss time.Duration
}

func New(gate *auth.Gate, store *tasks.Store, p *presenter.Presenter, provider *remote.Provider, logger *log.Logger, flashDismiss time.Duration) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	if flashDismiss <= 0 {
		flashDismiss = 5 * time.Second
	}
	return &Handler{
		gate:         gate,
		store:        store,
		presenter:    p,
		remote:       provider,
		logger:       logger,
		flashDismiss: flashDismiss,
	}
}

type page struct {
	Title     string
	Username  string
	Flash     *presenter.Flash
	DismissMS int64
	View      presenter.ViewModel
}

func (h *Handler) page(title string) page {
	return page{Title: title, DismissMS: h.flashDismiss.Milliseconds()}
}
