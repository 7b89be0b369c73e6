package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/todo/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeList   Type = "list"
	TypeDone   Type = "done"
	TypeDelete Type = "delete"
	TypeShow   Type = "show"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
	ErrCodeNotFound        ErrorCode = "not_found"
)

type CommandError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

type AddArgs struct {
	Title string
}

type ListArgs struct {
	All bool
}

type DoneArgs struct {
	ID model.TaskID
}

type DeleteArgs struct {
	ID model.TaskID
}

type ShowArgs struct {
	ID model.TaskID
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	List   *ListArgs
	Done   *DoneArgs
	Delete *DeleteArgs
	Show   *ShowArgs
}

// Parse reads a one-line command such as "add buy milk" or "/done 3".
func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch head {
	case string(TypeAdd):
		return parseAdd(input, strings.TrimSpace(raw[len(parts[0]):]))
	case string(TypeList), "ls":
		return parseList(input, args)
	case string(TypeDone):
		id, err := parseID(TypeDone, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeDone, Raw: input, Done: &DoneArgs{ID: id}}, nil
	case string(TypeDelete), "rm":
		id, err := parseID(TypeDelete, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeDelete, Raw: input, Delete: &DeleteArgs{ID: id}}, nil
	case string(TypeShow):
		id, err := parseID(TypeShow, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeShow, Raw: input, Show: &ShowArgs{ID: id}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw, title string) (Command, error) {
	if strings.TrimSpace(title) == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title", Err: model.ErrEmptyTitle}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func parseList(raw string, args []string) (Command, error) {
	all := false
	for _, arg := range args {
		switch strings.ToLower(arg) {
		case "all", "--all", "-a":
			all = true
		default:
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("list does not accept %q", arg)}
		}
	}
	return Command{Type: TypeList, Raw: raw, List: &ListArgs{All: all}}, nil
}

func parseID(t Type, args []string) (model.TaskID, error) {
	if len(args) != 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task id", t)}
	}
	id, err := model.ParseTaskID(args[0])
	if err != nil {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s: invalid task id %q", t, args[0]), Err: err}
	}
	return id, nil
}
