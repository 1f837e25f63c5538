package presenter

import (
	"slices"
	"tasklist/internal/models"
	"time"
)

const (
	FlashError = "error"
	FlashInfo  = "info"
)

type Flash struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// State is everything the Presenter owns besides the task data itself.
type State struct {
	EditingID string
	// Draft is the last rejected text for EditingID.
	Draft string
	Flash *Flash
}

type Item struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	Done         bool      `json:"done"`
	Editable     bool      `json:"editable"`
	Editing      bool      `json:"editing"`
	EditText     string    `json:"editText,omitempty"`
	External     bool      `json:"external"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	CreatedLabel string    `json:"createdLabel"`
	UpdatedLabel string    `json:"updatedLabel,omitempty"`
}

type ViewModel struct {
	Items     []Item `json:"items"`
	Empty     bool   `json:"empty"`
	EditingID string `json:"editingId,omitempty"`
	FocusID   string `json:"focusId,omitempty"`
	Flash     *Flash `json:"flash,omitempty"`
}

type Formatter struct {
	Layout   string
	Location *time.Location
}

func (f Formatter) Format(t time.Time) string {
	loc := f.Location
	if loc == nil {
		loc = time.UTC
	}
	layout := f.Layout
	if layout == "" {
		layout = "02 Jan 2006, 15:04"
	}
	return t.In(loc).Format(layout)
}

// Render merges user and remote tasks, newest first, and marks which items
// can be edited. It has no side effects.
func Render(user []models.Task, remote []models.RemoteTask, state State, f Formatter) ViewModel {
	owned := make(map[string]bool, len(user))
	items := make([]Item, 0, len(user)+len(remote))

	for _, t := range user {
		owned[t.ID] = true
		items = append(items, Item{
			ID:        t.ID,
			Text:      t.Text,
			Done:      t.Done,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		})
	}
	for _, t := range remote {
		items = append(items, Item{
			ID:        t.ID,
			Text:      t.Text,
			Done:      t.Done,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		})
	}

	// Equal createdAt keeps concatenation order: user tasks before remote ones.
	slices.SortStableFunc(items, func(a, b Item) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	vm := ViewModel{
		Items: items,
		Empty: len(items) == 0,
		Flash: state.Flash,
	}

	for i := range items {
		it := &items[i]
		it.Editable = owned[it.ID]
		it.External = !it.Editable
		it.Editing = it.Editable && state.EditingID != "" && it.ID == state.EditingID
		it.CreatedLabel = f.Format(it.CreatedAt)
		if !it.UpdatedAt.Equal(it.CreatedAt) {
			it.UpdatedLabel = f.Format(it.UpdatedAt)
		}
		if it.Editing {
			it.EditText = it.Text
			if state.Draft != "" {
				it.EditText = state.Draft
			}
			vm.EditingID = it.ID
			vm.FocusID = it.ID
		}
	}

	return vm
}
