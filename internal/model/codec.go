package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type taskRecord struct {
	ID        uint32    `json:"id"`
	Title     string    `json:"title"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type completedRecord struct {
	CompletedAt time.Time `json:"completed_at"`
}

// MarshalJSON encodes Active as the bare string "Active" and Completed as
// {"Completed": {"completed_at": ...}}.
func (s Status) MarshalJSON() ([]byte, error) {
	if !s.IsCompleted() {
		return json.Marshal(StatusActive)
	}
	return json.Marshal(map[StatusKind]completedRecord{
		StatusCompleted: {CompletedAt: s.completedAt},
	})
}

func (s *Status) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var tag string
		if err := json.Unmarshal(data, &tag); err != nil {
			return err
		}
		if StatusKind(tag) != StatusActive {
			return fmt.Errorf("model: unknown status %q", tag)
		}
		*s = Active()
		return nil
	}

	var tagged map[StatusKind]completedRecord
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("model: decode status: %w", err)
	}
	rec, ok := tagged[StatusCompleted]
	if !ok || len(tagged) != 1 {
		return fmt.Errorf("model: unknown status %s", data)
	}
	if rec.CompletedAt.IsZero() {
		return fmt.Errorf("model: completed status without completed_at")
	}
	*s = CompletedAt(rec.CompletedAt)
	return nil
}

func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(taskRecord{
		ID:        t.id.Value(),
		Title:     t.title.String(),
		Status:    t.status,
		CreatedAt: t.createdAt,
	})
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var rec taskRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	restored, err := RestoreTask(NewTaskID(rec.ID), rec.Title, rec.Status, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("task %d: %w", rec.ID, err)
	}
	*t = restored
	return nil
}
