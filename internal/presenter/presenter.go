// Package presenter merges user and remote tasks into one view and owns the
// single edit-in-progress slot.
package presenter

import (
	"context"
	"errors"
	"sync"
	"tasklist/internal/models"
	"tasklist/internal/tasks"
)

const KeyEscape = "Escape"

type TaskStore interface {
	List() []models.Task
	Get(id string) (models.Task, bool)
	Create(ctx context.Context, text string) (models.Task, error)
	Update(ctx context.Context, id string, patch tasks.Patch) (models.Task, error)
	Delete(ctx context.Context, id string)
	ToggleDone(ctx context.Context, id string) (models.Task, error)
	Clear()
}

type RemoteSource interface {
	Snapshot() []models.RemoteTask
}

type Presenter struct {
	mu     sync.Mutex
	store  TaskStore
	remote RemoteSource
	format Formatter
	state  State
}

func New(store TaskStore, remote RemoteSource, format Formatter) *Presenter {
	return &Presenter{
		store:  store,
		remote: remote,
		format: format,
	}
}

// View renders the current state. A pending flash is shown once.
func (p *Presenter) View() ViewModel {
	p.mu.Lock()
	defer p.mu.Unlock()

	vm := p.renderLocked()
	p.state.Flash = nil
	return vm
}

// Peek renders without consuming the flash.
func (p *Presenter) Peek() ViewModel {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.renderLocked()
}

func (p *Presenter) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

func (p *Presenter) Create(ctx context.Context, text string) (models.Task, error) {
	t, err := p.store.Create(ctx, text)
	if err != nil {
		p.surface(err)
		return models.Task{}, err
	}
	return t, nil
}

func (p *Presenter) Toggle(ctx context.Context, id string) {
	_, err := p.store.ToggleDone(ctx, id)
	p.surface(err)
}

func (p *Presenter) Delete(ctx context.Context, id string) {
	p.store.Delete(ctx, id)

	p.mu.Lock()
	if p.state.EditingID == id {
		p.closeEditLocked()
	}
	p.mu.Unlock()
}

// StartEdit opens id for editing, closing any other item. Only user tasks
// can be edited.
func (p *Presenter) StartEdit(id string) bool {
	if _, ok := p.store.Get(id); !ok {
		return false
	}

	p.mu.Lock()
	p.state.EditingID = id
	p.state.Draft = ""
	p.mu.Unlock()
	return true
}

// SaveEdit stays in edit mode when the text is rejected and keeps the
// rejected text as the draft.
func (p *Presenter) SaveEdit(ctx context.Context, id, text string) error {
	_, err := p.store.Update(ctx, id, tasks.Patch{Text: &text})

	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case err == nil, errors.Is(err, tasks.ErrNotFound):
		if p.state.EditingID == id {
			p.closeEditLocked()
		}
	case tasks.IsValidation(err):
		if p.state.EditingID == id {
			p.state.Draft = text
		}
		p.state.Flash = &Flash{Message: err.Error(), Kind: FlashError}
	}
	return err
}

func (p *Presenter) CancelEdit() {
	p.mu.Lock()
	p.closeEditLocked()
	p.mu.Unlock()
}

// HandleKey reports whether the key changed anything.
func (p *Presenter) HandleKey(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if key == KeyEscape && p.state.EditingID != "" {
		p.closeEditLocked()
		return true
	}
	return false
}

// Notify queues a message for the next view.
func (p *Presenter) Notify(message, kind string) {
	p.mu.Lock()
	p.state.Flash = &Flash{Message: message, Kind: kind}
	p.mu.Unlock()
}

// Reset forgets the edit slot, any flash, and the in-memory task list.
func (p *Presenter) Reset() {
	p.store.Clear()

	p.mu.Lock()
	p.state = State{}
	p.mu.Unlock()
}

func (p *Presenter) closeEditLocked() {
	p.state.EditingID = ""
	p.state.Draft = ""
}

func (p *Presenter) renderLocked() ViewModel {
	var remote []models.RemoteTask
	if p.remote != nil {
		remote = p.remote.Snapshot()
	}
	return Render(p.store.List(), remote, p.state, p.format)
}

// surface turns validation errors into a flash; not-found is ignored.
func (p *Presenter) surface(err error) {
	if err == nil || !tasks.IsValidation(err) {
		return
	}
	p.Notify(err.Error(), FlashError)
}
