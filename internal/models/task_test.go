package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_StoredAsMilliseconds(t *testing.T) {
	created := time.UnixMilli(1_700_000_000_123).UTC()
	b, err := json.Marshal(Task{ID: "a", Text: "write report", CreatedAt: created, UpdatedAt: created})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","text":"write report","done":false,"createdAt":1700000000123,"updatedAt":1700000000123}`, string(b))

	var back Task
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.CreatedAt.Equal(created))
}

func TestRemoteTask_LenientDecoding(t *testing.T) {
	body := `[
		{"id": 3, "text": "read the manual", "done": true, "createdAt": 1700000000000, "updatedAt": 1700000500000},
		{"id": "x-1", "todo": "walk the dog", "completed": false, "createdAt": "2024-01-02T03:04:05Z"}
	]`

	var got []RemoteTask
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	require.Len(t, got, 2)

	assert.Equal(t, "3", got[0].ID)
	assert.Equal(t, "read the manual", got[0].Text)
	assert.True(t, got[0].Done)
	assert.Equal(t, int64(1700000500000), got[0].UpdatedAt.UnixMilli())

	assert.Equal(t, "x-1", got[1].ID)
	assert.Equal(t, "walk the dog", got[1].Text)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), got[1].CreatedAt)
	assert.Equal(t, got[1].CreatedAt, got[1].UpdatedAt)
}

func TestRemoteTask_RejectsNonObject(t *testing.T) {
	var rt RemoteTask
	assert.ErrorIs(t, json.Unmarshal([]byte(`"hello"`), &rt), ErrNotAnObject)
	assert.Error(t, json.Unmarshal([]byte(`{"createdAt": "yesterday"}`), &rt))
}
