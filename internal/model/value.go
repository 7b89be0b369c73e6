package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TaskID identifies a task. Uniqueness is a repository concern.
type TaskID uint32

func NewTaskID(v uint32) TaskID {
	return TaskID(v)
}

// ParseTaskID reads a base-10 task id as typed on the command line.
func ParseTaskID(raw string) (TaskID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTaskID, raw)
	}
	return TaskID(v), nil
}

func (id TaskID) Value() uint32 {
	return uint32(id)
}

func (id TaskID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Title is a task title that is not blank after trimming. The original,
// untrimmed text is kept.
type Title struct {
	value string
}

func NewTitle(s string) (Title, error) {
	if strings.TrimSpace(s) == "" {
		return Title{}, ErrEmptyTitle
	}
	return Title{value: s}, nil
}

func (t Title) String() string {
	return t.value
}

func (t Title) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

func (t *Title) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewTitle(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
