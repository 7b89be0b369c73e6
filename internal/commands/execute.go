package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	List   func(ListArgs) (Result, error)
	Done   func(DoneArgs) (Result, error)
	Delete func(DeleteArgs) (Result, error)
	Show   func(ShowArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeList:
		if handlers.List == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.List(*cmd.List)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Done(*cmd.Done)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Delete(*cmd.Delete)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Show(*cmd.Show)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missingHandler(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
