package model

import (
	"errors"
	"testing"
)

func TestNewTitleKeepsOriginalText(t *testing.T) {
	cases := []string{"Buy milk", "  padded  ", "新しいタスク", "\ttabbed", "x"}
	for _, in := range cases {
		title, err := NewTitle(in)
		if err != nil {
			t.Fatalf("NewTitle(%q) failed: %v", in, err)
		}
		if title.String() != in {
			t.Fatalf("NewTitle(%q).String() = %q, want unchanged", in, title.String())
		}
	}
}

func TestNewTitleRejectsBlank(t *testing.T) {
	cases := []string{"", " ", "   ", "\t\n", "　"}
	for _, in := range cases {
		_, err := NewTitle(in)
		if !errors.Is(err, ErrEmptyTitle) {
			t.Fatalf("NewTitle(%q) error = %v, want ErrEmptyTitle", in, err)
		}
		if !errors.Is(err, ErrValidation) || !errors.Is(err, ErrDomain) {
			t.Fatalf("NewTitle(%q) error should match ErrValidation and ErrDomain", in)
		}
	}
}

func TestTaskIDValue(t *testing.T) {
	if got := NewTaskID(42).Value(); got != 42 {
		t.Fatalf("Value() = %d, want 42", got)
	}
	if got := NewTaskID(0).Value(); got != 0 {
		t.Fatalf("Value() = %d, want 0", got)
	}
	if NewTaskID(3) >= NewTaskID(4) {
		t.Fatal("expected ids ordered by value")
	}
}

func TestParseTaskID(t *testing.T) {
	id, err := ParseTaskID(" 17 ")
	if err != nil {
		t.Fatalf("ParseTaskID failed: %v", err)
	}
	if id.Value() != 17 || id.String() != "17" {
		t.Fatalf("unexpected id: %v", id)
	}

	for _, bad := range []string{"", "-1", "abc", "4294967296", "1.5"} {
		if _, err := ParseTaskID(bad); !errors.Is(err, ErrInvalidTaskID) {
			t.Fatalf("ParseTaskID(%q) error = %v, want ErrInvalidTaskID", bad, err)
		}
	}
}
