// Package tasks owns the user's task list: validation, create/update/delete,
// toggling, and mirroring the list to the key-value store after every change.
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"tasklist/internal/logx"
	"tasklist/internal/models"
	"tasklist/internal/storage"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("task not found")

// Patch holds the fields of an update. Nil fields are left untouched.
type Patch struct {
	Text *string `json:"text,omitempty"`
	Done *bool   `json:"done,omitempty"`
}

// Store keeps tasks newest-first.
type Store struct {
	mu     sync.Mutex
	kv     storage.KV
	logger *log.Logger
	now    func() time.Time
	newID  func() string
	tasks  []models.Task
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

func NewStore(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		logger: log.Default(),
		now:    time.Now,
		newID:  newTaskID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newTaskID is time-ordered with a random tail, so ids minted in the same
// millisecond still differ.
func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Load replaces the in-memory list with what the store holds. Unreadable
// data is logged and treated as an empty list.
func (s *Store) Load(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, storage.KeyUserTodos)
	if err != nil {
		return err
	}

	var loaded []models.Task
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
			logx.Warn(s.logger, "user_todos_unreadable", logx.Fields{"error": err})
			loaded = nil
		}
	}

	s.mu.Lock()
	s.tasks = loaded
	s.mu.Unlock()

	return nil
}

func (s *Store) List() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Get(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(id); i >= 0 {
		return s.tasks[i], true
	}
	return models.Task{}, false
}

func (s *Store) Create(ctx context.Context, text string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trimmed, err := ValidateText(text, s.tasks, "")
	if err != nil {
		return models.Task{}, err
	}

	now := s.clock()
	t := models.Task{
		ID:        s.newID(),
		Text:      trimmed,
		Done:      false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.tasks = append([]models.Task{t}, s.tasks...)
	s.persistLocked(ctx)

	return t, nil
}

func (s *Store) Update(ctx context.Context, id string, patch Patch) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateLocked(ctx, id, patch)
}

func (s *Store) updateLocked(ctx context.Context, id string, patch Patch) (models.Task, error) {
	i := s.indexLocked(id)
	if i < 0 {
		return models.Task{}, ErrNotFound
	}

	t := s.tasks[i]
	if patch.Text != nil {
		trimmed, err := ValidateText(*patch.Text, s.tasks, id)
		if err != nil {
			return models.Task{}, err
		}
		t.Text = trimmed
	}
	if patch.Done != nil {
		t.Done = *patch.Done
	}

	next := s.clock()
	if !next.After(t.UpdatedAt) {
		next = t.UpdatedAt.Add(time.Millisecond)
	}
	t.UpdatedAt = next

	s.tasks[i] = t
	s.persistLocked(ctx)

	return t, nil
}

// Delete is idempotent: a missing id still rewrites the stored list.
func (s *Store) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(id); i >= 0 {
		s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	}
	s.persistLocked(ctx)
}

func (s *Store) ToggleDone(ctx context.Context, id string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return models.Task{}, ErrNotFound
	}
	done := !s.tasks[i].Done
	return s.updateLocked(ctx, id, Patch{Done: &done})
}

// Clear drops the in-memory list without touching storage.
func (s *Store) Clear() {
	s.mu.Lock()
	s.tasks = nil
	s.mu.Unlock()
}

func (s *Store) indexLocked(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// clock truncates to milliseconds, the stored precision.
func (s *Store) clock() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *Store) persistLocked(ctx context.Context) {
	list := s.tasks
	if list == nil {
		list = []models.Task{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		logx.Error(s.logger, "user_todos_encode_failed", logx.Fields{"error": err})
		return
	}
	if err := s.kv.Set(ctx, storage.KeyUserTodos, string(b)); err != nil {
		logx.Error(s.logger, "user_todos_persist_failed", logx.Fields{"error": err})
	}
}
