package presenter

import (
	"context"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"tasklist/internal/models"
	"tasklist/internal/storage"
	"tasklist/internal/tasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRemote []models.RemoteTask

func (r staticRemote) Snapshot() []models.RemoteTask {
	return r
}

var utcFormat = Formatter{Layout: "2006-01-02 15:04", Location: time.UTC}

func ms(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

func newPresenterForTests(t *testing.T, remote RemoteSource) (*Presenter, *tasks.Store) {
	t.Helper()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	n := 0
	store := tasks.NewStore(storage.NewMemoryKV(),
		tasks.WithClock(func() time.Time { now = now.Add(time.Second); return now }),
		tasks.WithIDGenerator(func() string { n++; return fmt.Sprintf("u%d", n) }),
		tasks.WithLogger(log.New(io.Discard, "", 0)),
	)
	return New(store, remote, utcFormat), store
}

func TestRender_MergedOrder(t *testing.T) {
	user := []models.Task{
		{ID: "a", Text: "user task one", CreatedAt: ms(100), UpdatedAt: ms(100)},
		{ID: "b", Text: "user task two", CreatedAt: ms(300), UpdatedAt: ms(300)},
	}
	remote := []models.RemoteTask{
		{ID: "r", Text: "remote example", CreatedAt: ms(200), UpdatedAt: ms(200)},
	}

	vm := Render(user, remote, State{}, utcFormat)

	require.Len(t, vm.Items, 3)
	var order []int64
	for _, it := range vm.Items {
		order = append(order, it.CreatedAt.UnixMilli())
	}
	assert.Equal(t, []int64{300, 200, 100}, order)

	assert.True(t, vm.Items[0].Editable)
	assert.False(t, vm.Items[0].External)
	assert.False(t, vm.Items[1].Editable)
	assert.True(t, vm.Items[1].External)
	assert.False(t, vm.Empty)
}

func TestRender_TiesKeepUserFirst(t *testing.T) {
	user := []models.Task{{ID: "u", Text: "same instant user", CreatedAt: ms(5), UpdatedAt: ms(5)}}
	remote := []models.RemoteTask{{ID: "r", Text: "same instant remote", CreatedAt: ms(5), UpdatedAt: ms(5)}}

	vm := Render(user, remote, State{}, utcFormat)
	assert.Equal(t, "u", vm.Items[0].ID)
	assert.Equal(t, "r", vm.Items[1].ID)
}

func TestRender_Labels(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)
	user := []models.Task{
		{ID: "same", Text: "never updated task", CreatedAt: created, UpdatedAt: created},
		{ID: "changed", Text: "updated later task", CreatedAt: created, UpdatedAt: created.Add(time.Hour)},
	}

	vm := Render(user, nil, State{}, utcFormat)
	byID := map[string]Item{}
	for _, it := range vm.Items {
		byID[it.ID] = it
	}

	assert.Equal(t, "2026-01-02 03:04", byID["same"].CreatedLabel)
	assert.Empty(t, byID["same"].UpdatedLabel)
	assert.Equal(t, "2026-01-02 04:04", byID["changed"].UpdatedLabel)
}

func TestRender_EditingOnlyForOwnedItem(t *testing.T) {
	user := []models.Task{{ID: "a", Text: "user task one", CreatedAt: ms(1), UpdatedAt: ms(1)}}
	remote := []models.RemoteTask{{ID: "r", Text: "remote example", CreatedAt: ms(2), UpdatedAt: ms(2)}}

	vm := Render(user, remote, State{EditingID: "a"}, utcFormat)
	assert.Equal(t, "a", vm.EditingID)
	assert.Equal(t, "a", vm.FocusID)
	assert.True(t, vm.Items[1].Editing)
	assert.False(t, vm.Items[0].Editing)

	vm = Render(user, remote, State{EditingID: "r"}, utcFormat)
	assert.Empty(t, vm.EditingID)
	for _, it := range vm.Items {
		assert.False(t, it.Editing)
	}
}

func TestRender_Empty(t *testing.T) {
	vm := Render(nil, nil, State{}, utcFormat)
	assert.True(t, vm.Empty)
	assert.Empty(t, vm.Items)
}

func TestView_RemoteFailureLooksLikeUserOnly(t *testing.T) {
	p, _ := newPresenterForTests(t, staticRemote(nil))
	_, err := p.Create(context.Background(), "Buy groceries today")
	require.NoError(t, err)

	withFailedRemote := p.View()
	userOnly := Render(p.store.List(), nil, State{}, utcFormat)
	assert.Equal(t, userOnly, withFailedRemote)
}

func TestView_FlashShownOnce(t *testing.T) {
	p, _ := newPresenterForTests(t, nil)

	_, err := p.Create(context.Background(), "short")
	require.ErrorIs(t, err, tasks.ErrTooShort)

	assert.Equal(t, &Flash{Message: "text must be at least 10 characters", Kind: FlashError}, p.Peek().Flash)
	assert.NotNil(t, p.View().Flash)
	assert.Nil(t, p.View().Flash)
}

func TestEditFlow_EndToEnd(t *testing.T) {
	p, _ := newPresenterForTests(t, staticRemote{{ID: "r", Text: "remote example", CreatedAt: ms(1), UpdatedAt: ms(1)}})
	ctx := context.Background()

	task, err := p.Create(ctx, "Buy groceries today")
	require.NoError(t, err)
	vm := p.View()
	require.Len(t, vm.Items, 2)
	assert.Equal(t, task.ID, vm.Items[0].ID)

	require.True(t, p.StartEdit(task.ID))
	assert.True(t, p.View().Items[0].Editing)

	err = p.SaveEdit(ctx, task.ID, "12345678")
	assert.True(t, tasks.IsValidation(err))
	vm = p.View()
	assert.Equal(t, task.ID, vm.EditingID, "still editing after a rejected save")
	assert.Equal(t, "Buy groceries today", vm.Items[0].Text)
	require.NotNil(t, vm.Flash)

	p.CancelEdit()
	vm = p.View()
	assert.Empty(t, vm.EditingID)
	assert.False(t, vm.Items[0].Editing)
	assert.Equal(t, "Buy groceries today", vm.Items[0].Text)
}

func TestSaveEdit_RejectedTextStaysAsDraft(t *testing.T) {
	p, _ := newPresenterForTests(t, nil)
	ctx := context.Background()

	task, err := p.Create(ctx, "Buy groceries today")
	require.NoError(t, err)
	require.True(t, p.StartEdit(task.ID))
	assert.Equal(t, "Buy groceries today", p.View().Items[0].EditText)

	require.Error(t, p.SaveEdit(ctx, task.ID, "Buy"))
	vm := p.View()
	assert.Equal(t, "Buy", vm.Items[0].EditText)
	assert.Equal(t, "Buy groceries today", vm.Items[0].Text)

	p.CancelEdit()
	require.True(t, p.StartEdit(task.ID))
	assert.Equal(t, "Buy groceries today", p.View().Items[0].EditText)
}

func TestSaveEdit_Success(t *testing.T) {
	p, _ := newPresenterForTests(t, nil)
	ctx := context.Background()

	task, err := p.Create(ctx, "Buy groceries today")
	require.NoError(t, err)
	require.True(t, p.StartEdit(task.ID))

	require.NoError(t, p.SaveEdit(ctx, task.ID, "  Buy groceries tomorrow "))
	vm := p.View()
	assert.Empty(t, vm.EditingID)
	assert.Equal(t, "Buy groceries tomorrow", vm.Items[0].Text)
	assert.NotEmpty(t, vm.Items[0].UpdatedLabel)
	assert.Nil(t, vm.Flash)
}

func TestStartEdit_SingleSlot(t *testing.T) {
	p, _ := newPresenterForTests(t, staticRemote{{ID: "r", Text: "remote example", CreatedAt: ms(1)}})
	ctx := context.Background()

	a, err := p.Create(ctx, "first task here")
	require.NoError(t, err)
	b, err := p.Create(ctx, "second task here")
	require.NoError(t, err)

	require.True(t, p.StartEdit(a.ID))
	require.True(t, p.StartEdit(b.ID))
	assert.Equal(t, b.ID, p.State().EditingID)

	assert.False(t, p.StartEdit("r"), "remote tasks are read-only")
	assert.Equal(t, b.ID, p.State().EditingID)

	editing := 0
	for _, it := range p.View().Items {
		if it.Editing {
			editing++
		}
	}
	assert.Equal(t, 1, editing)
}

func TestHandleKey_EscapeCancels(t *testing.T) {
	p, _ := newPresenterForTests(t, nil)
	task, err := p.Create(context.Background(), "Buy groceries today")
	require.NoError(t, err)

	assert.False(t, p.HandleKey(KeyEscape), "nothing to cancel")
	require.True(t, p.StartEdit(task.ID))
	assert.False(t, p.HandleKey("Enter"))
	assert.True(t, p.HandleKey(KeyEscape))
	assert.Empty(t, p.State().EditingID)
}

func TestDelete_ClearsEditSlot(t *testing.T) {
	p, _ := newPresenterForTests(t, nil)
	ctx := context.Background()
	task, err := p.Create(ctx, "Buy groceries today")
	require.NoError(t, err)
	require.True(t, p.StartEdit(task.ID))

	p.Delete(ctx, task.ID)
	p.Delete(ctx, task.ID)

	vm := p.View()
	assert.True(t, vm.Empty)
	assert.Empty(t, vm.EditingID)
}

func TestToggle_MissingIsSilent(t *testing.T) {
	p, _ := newPresenterForTests(t, nil)
	p.Toggle(context.Background(), "missing")
	assert.Nil(t, p.View().Flash)
}

func TestReset(t *testing.T) {
	p, store := newPresenterForTests(t, nil)
	ctx := context.Background()
	task, err := p.Create(ctx, "Buy groceries today")
	require.NoError(t, err)
	require.True(t, p.StartEdit(task.ID))

	p.Reset()

	assert.Empty(t, store.List())
	assert.Equal(t, State{}, p.State())
}
