package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrNotAnObject = errors.New("remote task is not a JSON object")

// RemoteTask is a read-only record from the remote source. Decoding accepts
// numeric or string ids, Unix-ms or RFC 3339 timestamps, and the "todo" /
// "title" / "completed" spellings used by public dummy endpoints.
type RemoteTask struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t RemoteTask) MarshalJSON() ([]byte, error) {
	return Task(t).MarshalJSON()
}

func (t *RemoteTask) UnmarshalJSON(b []byte) error {
	if !bytes.HasPrefix(bytes.TrimSpace(b), []byte("{")) {
		return ErrNotAnObject
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}

	var out RemoteTask
	var err error

	if raw, ok := fields["id"]; ok {
		if out.ID, err = decodeID(raw); err != nil {
			return fmt.Errorf("id: %w", err)
		}
	}

	for _, key := range []string{"text", "todo", "title"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &out.Text); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		break
	}

	for _, key := range []string{"done", "completed"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &out.Done); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		break
	}

	if raw, ok := fields["createdAt"]; ok {
		if out.CreatedAt, err = decodeTimestamp(raw); err != nil {
			return fmt.Errorf("createdAt: %w", err)
		}
	}
	out.UpdatedAt = out.CreatedAt
	if raw, ok := fields["updatedAt"]; ok {
		if out.UpdatedAt, err = decodeTimestamp(raw); err != nil {
			return fmt.Errorf("updatedAt: %w", err)
		}
	}

	*t = out
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

func decodeTimestamp(raw json.RawMessage) (time.Time, error) {
	if string(raw) == "null" {
		return time.Time{}, nil
	}

	var ms float64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(int64(ms)).UTC(), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return ts.UTC(), nil
}
