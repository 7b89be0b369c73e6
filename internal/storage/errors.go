package storage

import (
	"errors"
	"fmt"
	"math"

	"github.com/sandeepkv93/todo/internal/model"
)

type ErrorCode string

const (
	ErrCodeIO     ErrorCode = "io"
	ErrCodeDecode ErrorCode = "decode"
	ErrCodeEncode ErrorCode = "encode"

	// ErrCodeExhausted means the id counter has no ids left to hand out.
	ErrCodeExhausted ErrorCode = "exhausted"
)

// MaxTaskID is the counter value at which allocation stops. Ids are uint32
// and the counter must stay one past the last id issued.
const MaxTaskID = math.MaxUint32

var errIDsExhausted = errors.New("no task ids left")

// StorageError is returned for failures reading or writing the backing store.
type StorageError struct {
	Code ErrorCode
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func exhaustedError(path string) error {
	return &StorageError{Code: ErrCodeExhausted, Op: "allocate id", Path: path, Err: errIDsExhausted}
}

func invalidTaskError(task model.Task, err error) error {
	return fmt.Errorf("storage: save task %d: %w", task.ID().Value(), err)
}

// IsCode reports whether err carries a StorageError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Code == code
}
